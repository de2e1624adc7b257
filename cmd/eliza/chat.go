package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/hupe1980/eliza/conversation"
	"github.com/hupe1980/eliza/engine"
)

const userName = "You"

// lineReader reads one line of console input at a time.
type lineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
	Close() error
}

// newLineReader uses readline on terminals and a plain line scanner
// otherwise, e.g. for piped input.
func newLineReader(in io.Reader, out io.Writer) (lineReader, error) {
	if f, ok := in.(*os.File); ok && readline.IsTerminal(int(f.Fd())) {
		var history string
		if home, err := os.UserHomeDir(); err == nil {
			history = filepath.Join(home, ".eliza-history")
		}
		rl, err := readline.NewEx(&readline.Config{
			HistoryFile:     history,
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
			Stdin:           readline.NewCancelableStdin(f),
			Stdout:          out,
		})
		if err != nil {
			return nil, fmt.Errorf("init readline: %w", err)
		}
		return rl, nil
	}
	return &scanReader{scanner: bufio.NewScanner(in), out: out}, nil
}

type scanReader struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string
}

func (r *scanReader) SetPrompt(prompt string) { r.prompt = prompt }

func (r *scanReader) Readline() (string, error) {
	if r.prompt != "" {
		if _, err := io.WriteString(r.out, r.prompt); err != nil {
			return "", err
		}
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

func (r *scanReader) Close() error { return nil }

// consoleChat opens a session with bot and answers every line until an
// empty line, EOF or interrupt.
func consoleChat(bot *engine.Chatbot, lr lineReader, out io.Writer) error {
	greeting, err := bot.Start()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\n<press enter with no message to exit>")
	fmt.Fprintf(out, "%s: %s\n", bot.Name(), greeting)

	lr.SetPrompt(userName + ": ")
	for {
		msg, err := lr.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(msg) == "" {
			return nil
		}

		resp, err := bot.Respond(msg)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %s\n", bot.Name(), resp)
	}
}

// turnPrinter prints group chat turns with a header per round.
type turnPrinter struct {
	w     io.Writer
	round int
}

func (p *turnPrinter) print(t conversation.Turn) error {
	if t.Round != p.round {
		p.round = t.Round
		if _, err := fmt.Fprintf(p.w, "****** Round #%d ******\n\n", t.Round); err != nil {
			return err
		}
	}
	text := t.Text
	if t.Ended {
		text = "(END)"
	}
	_, err := fmt.Fprintf(p.w, "%s: %s\n", t.Speaker, text)
	return err
}

// steppedGroupChat advances g by one turn per line of input and stops on
// "q", EOF, interrupt or the end of the conversation.
func steppedGroupChat(ctx context.Context, g *conversation.GroupChat, lr lineReader, out io.Writer) error {
	fmt.Fprintln(out, "<press enter to continue; ctrl-c or q+enter to exit>")
	fmt.Fprintln(out)

	p := &turnPrinter{w: out}
	lr.SetPrompt("")
	for {
		line, err := lr.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "q" {
			return nil
		}

		turn, err := g.Next(ctx)
		if errors.Is(err, conversation.ErrEnd) {
			if turn.Ended {
				return p.print(turn)
			}
			return nil
		}
		if err != nil {
			return err
		}
		if err := p.print(turn); err != nil {
			return err
		}
	}
}
