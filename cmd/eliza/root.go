package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/eliza"
	"github.com/hupe1980/eliza/conversation"
	"github.com/hupe1980/eliza/engine"
	"github.com/hupe1980/eliza/internal/config"
	"github.com/hupe1980/eliza/logging"
)

// app carries the state shared by all commands.
type app struct {
	configFile string
	verbosity  int

	demo     bool
	example  int
	auto     bool
	turns    int
	interval time.Duration

	cfg    *config.Config
	logger logging.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "eliza [identity...]",
		Short: "Script-driven ELIZA chatbots",
		Long: "Chat with an ELIZA chatbot. An identity is a built-in script name " +
			"(eliza, blank) or the path of a YAML/JSON script. With two or more " +
			"identities the chatbots talk to each other.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		RunE: a.run,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default eliza.yaml in . or $HOME)")
	pf.CountVarP(&a.verbosity, "verbose", "v", "log at info (-v) or debug (-vv) level")
	pf.String("name", "", "display name of the chatbot")
	pf.String("log-format", "text", "log format: text, json or console")
	pf.String("log-level", "", "log level when no -v is given: debug, info, warn or error")

	f := cmd.Flags()
	f.BoolVarP(&a.demo, "demo", "d", false, "let Eliza talk to a patient")
	f.IntVarP(&a.example, "example", "e", 0, "print the first N rounds of the example conversation")
	f.BoolVar(&a.auto, "auto", false, "run group chats without waiting for enter")
	f.IntVar(&a.turns, "turns", 20, "turn limit of automatic group chats (0 = no limit)")
	f.DurationVar(&a.interval, "interval", 0, "delay between turns of automatic group chats")
	cmd.MarkFlagsMutuallyExclusive("demo", "example")

	cmd.AddCommand(newServeCommand(a))
	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := cfg.Log.NewLogger(a.verbosity)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	switch {
	case a.example > 0:
		return eliza.RunExample(out, a.example, a.chatbotOptions(""))
	case a.demo:
		return a.runDemo(cmd)
	}

	if len(args) == 0 {
		args = []string{a.cfg.Script}
	}
	ids, err := resolveIdentities(args, a.logger)
	if err != nil {
		return err
	}

	if len(ids) == 1 {
		bot, err := a.newChatbot(ids[0], a.cfg.Name)
		if err != nil {
			return err
		}
		lr, err := newLineReader(cmd.InOrStdin(), out)
		if err != nil {
			return err
		}
		defer lr.Close()
		return consoleChat(bot, lr, out)
	}

	participants := make([]conversation.Participant, 0, len(ids))
	for _, id := range ids {
		bot, err := a.newChatbot(id, id.name)
		if err != nil {
			return err
		}
		participants = append(participants, conversation.FromChatbot(bot))
	}
	return a.groupChat(cmd, participants)
}

// chatbotOptions applies the configured engine settings. A non-empty name
// overrides the configured one.
func (a *app) chatbotOptions(name string) func(o *eliza.Options) {
	return func(o *eliza.Options) {
		if name != "" {
			o.Name = name
		} else if a.cfg.Name != "" {
			o.Name = a.cfg.Name
		}
		o.Logger = a.logger
		o.MaxRedirects = a.cfg.Engine.MaxRedirects
		o.MemoryLimit = a.cfg.Engine.MemoryLimit
	}
}

func (a *app) newChatbot(id identity, name string) (*engine.Chatbot, error) {
	if name == "" {
		name = id.name
	}
	s := id.script
	bot, err := eliza.New(a.chatbotOptions(name), func(o *eliza.Options) { o.Script = &s })
	if err != nil {
		return nil, fmt.Errorf("identity %s: %w", id.source, err)
	}
	return bot, nil
}

func (a *app) groupChat(cmd *cobra.Command, participants []conversation.Participant) error {
	g, err := conversation.NewGroupChat(participants, func(o *conversation.GroupChatOptions) {
		o.Logger = a.logger
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if a.auto {
		p := &turnPrinter{w: out}
		err := conversation.Loop(cmd.Context(), g, p.print,
			conversation.WithMaxTurns(a.turns),
			conversation.WithInterval(a.interval),
		)
		if errors.Is(err, conversation.ErrEnd) {
			return nil
		}
		return err
	}

	lr, err := newLineReader(cmd.InOrStdin(), out)
	if err != nil {
		return err
	}
	defer lr.Close()
	return steppedGroupChat(cmd.Context(), g, lr, out)
}
