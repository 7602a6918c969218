// Command sms-prompt sends SMS messages through Twilio from the terminal.
// The send path collects the destination and body interactively, validates
// them loosely, and retries transient provider failures with an increasing
// delay.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kbornfas/sms-prompt-go/internal/config"
	"github.com/kbornfas/sms-prompt-go/internal/gateway"
	"github.com/kbornfas/sms-prompt-go/internal/logger"
	"github.com/kbornfas/sms-prompt-go/internal/prompt"
	"github.com/kbornfas/sms-prompt-go/internal/sender"
	"github.com/kbornfas/sms-prompt-go/internal/template"
)

var version = "1.0.0"

func main() {
	root := &cobra.Command{
		Use:           "sms-prompt",
		Short:         "Send customized SMS messages from the command line",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(sendCmd())
	root.AddCommand(bulkCmd())
	root.AddCommand(templateCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(estimateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles the collaborators most commands need.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	sender *sender.Sender
	prompt *prompt.Prompter
}

// newApp loads configuration, builds the logger and wires the Twilio-backed
// sender. maxAttempts <= 0 means "use the configured budget".
func newApp(maxAttempts int) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	baseLogger, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init: %w", err)
	}
	log := baseLogger.With().Str("service", "sms-prompt").Logger()

	provider, err := gateway.NewTwilioProvider(gateway.TwilioConfig{
		AccountSID: cfg.Twilio.AccountSID,
		AuthToken:  cfg.Twilio.AuthToken,
	}, log.With().Str("component", "twilio").Logger())
	if err != nil {
		return nil, err
	}

	policy := sender.DefaultPolicy()
	if cfg.Retry.PolicyFile != "" {
		policy, err = sender.LoadPolicy(cfg.Retry.PolicyFile)
		if err != nil {
			return nil, err
		}
	}

	if maxAttempts <= 0 {
		maxAttempts = cfg.Retry.MaxAttempts
	}

	snd, err := sender.New(sender.Config{
		MaxAttempts:    maxAttempts,
		BaseDelay:      time.Duration(cfg.Retry.BaseDelaySeconds) * time.Second,
		AttemptTimeout: time.Duration(cfg.Timeouts.ProviderTimeoutSeconds) * time.Second,
	}, sender.Dependencies{
		Provider: provider,
		Policy:   policy,
		Logger:   log,
	})
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		log:    log,
		sender: snd,
		prompt: prompt.New(os.Stdin, os.Stdout),
	}, nil
}

// newEngine opens the template engine over the configured directory.
func newEngine(cfg *config.Config) (*template.Engine, error) {
	return template.NewEngine(cfg.Templates.Dir)
}
