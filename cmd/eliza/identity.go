package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hupe1980/eliza/logging"
	"github.com/hupe1980/eliza/script"
)

// identity is a script with the display name of its chatbot.
type identity struct {
	source string
	name   string
	script script.Script
}

// resolveIdentities loads each argument as a script file when such a file
// exists and as a built-in script otherwise. Duplicate names are numbered.
func resolveIdentities(args []string, logger logging.Logger) ([]identity, error) {
	ids := make([]identity, 0, len(args))
	seen := make(map[string]int, len(args))

	for _, arg := range args {
		id, err := resolveIdentity(arg, logger)
		if err != nil {
			return nil, err
		}
		seen[id.name]++
		if n := seen[id.name]; n > 1 {
			id.name = fmt.Sprintf("%s #%d", id.name, n)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func resolveIdentity(arg string, logger logging.Logger) (identity, error) {
	if fi, err := os.Stat(arg); err == nil && !fi.IsDir() {
		logger.Info("Loading custom identity", "path", arg)
		s, err := script.LoadFile(arg)
		if err != nil {
			return identity{}, err
		}
		name := s.Name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
		}
		return identity{source: arg, name: displayName(name), script: s}, nil
	}

	logger.Info("Loading default identity", "name", arg)
	s, ok := script.Builtin(arg)
	if !ok {
		return identity{}, fmt.Errorf("unknown identity %q: not a file or built-in script (eliza, blank)", arg)
	}
	return identity{source: arg, name: displayName(s.Name), script: s}, nil
}

func displayName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
