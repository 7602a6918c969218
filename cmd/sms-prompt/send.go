package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kbornfas/sms-prompt-go/internal/message"
	"github.com/kbornfas/sms-prompt-go/internal/prompt"
	"github.com/kbornfas/sms-prompt-go/internal/template"
)

func sendCmd() *cobra.Command {
	var (
		tmplName    string
		msgFlag     string
		to          string
		varFlags    []string
		previewOnly bool
		yes         bool
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a single SMS (interactive unless flags are given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(0)
			if err != nil {
				return err
			}

			vars, err := parseVars(varFlags)
			if err != nil {
				return err
			}

			body, err := resolveBody(app, tmplName, msgFlag, vars, yes)
			if err != nil {
				return cancellable(err)
			}

			if to == "" {
				to, err = app.prompt.Destination()
				if err != nil {
					return cancellable(err)
				}
			} else if !strings.HasPrefix(to, "+") && !yes {
				fmt.Printf("Warning: %q has no leading + country code marker.\n", to)
				ok, err := app.prompt.Confirm("Send anyway?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Cancelled")
					return nil
				}
			}

			segments, unicode := message.Segments(body)
			estimate := message.EstimateCost("twilio", segments, 1)
			fmt.Println("\nPreview:")
			fmt.Println("  " + body)
			fmt.Printf("Length: %d chars | Segments: %d | Estimated cost: ~$%.4f\n",
				len([]rune(body)), segments, estimate.TotalUSD)
			if unicode {
				fmt.Println("Note: message contains non-ASCII characters (70 chars/segment)")
			}

			if previewOnly {
				fmt.Println("Preview mode - no message sent")
				return nil
			}

			if !yes {
				ok, err := app.prompt.Confirm(fmt.Sprintf("Send SMS to %s?", to))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Cancelled")
					return nil
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Printf("Sending to %s...\n", to)
			outcome, err := app.sender.Send(ctx, message.Outbound{
				To:   to,
				From: app.cfg.Twilio.FromNumber,
				Body: body,
			})
			if err != nil {
				return err
			}

			if outcome.Delivered {
				fmt.Println("SMS sent successfully!")
				fmt.Printf("  SID: %s\n  Status: %s\n", outcome.SID, outcome.Status)
				if outcome.Price != "" {
					fmt.Printf("  Cost: %s %s\n", outcome.Price, outcome.PriceUnit)
				}
				return nil
			}

			fmt.Println("Failed to send SMS")
			fmt.Printf("  Cause: %s (code %d) after %d attempt(s)\n", outcome.Cause, outcome.Code, outcome.Attempts)
			fmt.Printf("  Error: %s\n", outcome.Message)
			if outcome.Hint != "" {
				fmt.Printf("  Hint: %s\n", outcome.Hint)
			}
			return fmt.Errorf("send failed: %s", outcome.Cause)
		},
	}

	cmd.Flags().StringVarP(&tmplName, "template", "t", "", "template name to render")
	cmd.Flags().StringVarP(&msgFlag, "message", "m", "", "message text (skips the interactive body prompt)")
	cmd.Flags().StringVar(&to, "to", "", "destination number (skips the interactive prompt)")
	cmd.Flags().StringArrayVarP(&varFlags, "var", "v", nil, "template variable as key=value (repeatable)")
	cmd.Flags().BoolVar(&previewOnly, "preview", false, "render and estimate without sending")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompts")

	return cmd
}

// resolveBody produces the message text from a template, the --message
// flag, or the interactive prompt, in that order of precedence.
func resolveBody(app *app, tmplName, msgFlag string, vars map[string]string, yes bool) (string, error) {
	switch {
	case tmplName != "":
		engine, err := newEngine(app.cfg)
		if err != nil {
			return "", err
		}
		body, err := engine.Render(tmplName, vars)
		if err != nil {
			if errors.Is(err, template.ErrNotFound) {
				return "", fmt.Errorf("%w (use 'sms-prompt template list')", err)
			}
			return "", err
		}
		return checkFlagBody(app, body, yes)
	case msgFlag != "":
		return checkFlagBody(app, msgFlag, yes)
	default:
		return app.prompt.Body(prompt.Limits{
			BodyWarn: app.cfg.Validation.BodyWarn,
			BodyMax:  app.cfg.Validation.BodyMax,
		})
	}
}

// checkFlagBody applies the body limits to text supplied via flags: the
// hard cap always rejects, the soft threshold only warns.
func checkFlagBody(app *app, body string, yes bool) (string, error) {
	if strings.TrimSpace(body) == "" {
		return "", fmt.Errorf("message body: %w", prompt.ErrEmptyInput)
	}
	length := len([]rune(body))
	if max := app.cfg.Validation.BodyMax; max > 0 && length > max {
		return "", fmt.Errorf("message body exceeds the %d character limit", max)
	}
	if warn := app.cfg.Validation.BodyWarn; warn > 0 && length > warn && !yes {
		segments, _ := message.Segments(body)
		fmt.Printf("Warning: long message, %d characters (%d segments).\n", length, segments)
		ok, err := app.prompt.Confirm("Send anyway?")
		if err != nil {
			return "", err
		}
		if !ok {
			return "", prompt.ErrCancelled
		}
	}
	return body, nil
}

// cancellable converts a deliberate user cancellation into a clean exit.
func cancellable(err error) error {
	if errors.Is(err, prompt.ErrCancelled) {
		fmt.Println("Cancelled")
		return nil
	}
	return err
}
