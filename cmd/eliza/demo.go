package main

import (
	"fmt"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"

	"github.com/hupe1980/eliza"
	"github.com/hupe1980/eliza/conversation"
	"github.com/hupe1980/eliza/internal/config"
	"github.com/hupe1980/eliza/model"
	"github.com/hupe1980/eliza/model/anthropic"
	"github.com/hupe1980/eliza/model/openai"
)

const patientName = "Patient"

// runDemo lets Eliza talk to a patient. The patient is played by a language
// model when one is configured and replays the example messages otherwise.
func (a *app) runDemo(cmd *cobra.Command) error {
	therapist, err := eliza.New(a.chatbotOptions(""))
	if err != nil {
		return err
	}

	patient, err := a.newPatient(therapist.Name())
	if err != nil {
		return err
	}

	return a.groupChat(cmd, []conversation.Participant{conversation.FromChatbot(therapist), patient})
}

func (a *app) newPatient(therapist string) (conversation.Participant, error) {
	if a.cfg.Model.Provider == "" {
		return conversation.Scripted(patientName, eliza.ExampleMessages...), nil
	}

	m, err := newModel(a.cfg.Model)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Patient played by model", "provider", m.Info().Provider, "model", m.Info().Name)

	return model.NewParticipant(patientName, m, func(o *model.ParticipantOptions) {
		if a.cfg.Model.Instructions != "" {
			o.Instructions = a.cfg.Model.Instructions
		}
		o.Vars = map[string]any{"therapist": therapist}
		o.MaxHistory = 20
		o.Logger = a.logger
	}), nil
}

func newModel(cfg config.ModelConfig) (model.Model, error) {
	switch cfg.Provider {
	case "openai":
		return openai.NewModel(func(o *openai.Options) {
			if cfg.Name != "" {
				o.Model = cfg.Name
			}
			o.APIKey = cfg.APIKey
			o.BaseURL = cfg.BaseURL
		}), nil
	case "anthropic":
		return anthropic.NewModel(func(o *anthropic.Options) {
			if cfg.Name != "" {
				o.Model = anthropicsdk.Model(cfg.Name)
			}
			o.APIKey = cfg.APIKey
			o.BaseURL = cfg.BaseURL
		}), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}
