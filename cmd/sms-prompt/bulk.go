package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbornfas/sms-prompt-go/internal/message"
	"github.com/kbornfas/sms-prompt-go/internal/template"
)

// recipient is one CSV row: the phone column plus template variables.
type recipient struct {
	phone string
	vars  map[string]string
}

func bulkCmd() *cobra.Command {
	var (
		tmplName  string
		file      string
		rateLimit int
		preview   bool
		yes       bool
	)

	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Send a templated SMS to every recipient in a CSV file",
		Long: `Send a templated SMS to every recipient in a CSV file.

The CSV needs a header row with a "phone" column; the remaining columns
supply the template variables. Sends are sequential with a fixed delay
derived from --rate-limit, and a failed recipient never retries.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bulk sends never retry an individual recipient.
			app, err := newApp(1)
			if err != nil {
				return err
			}

			recipients, err := loadRecipients(file)
			if err != nil {
				return err
			}
			if len(recipients) == 0 {
				return fmt.Errorf("no recipients found in %s", file)
			}

			engine, err := newEngine(app.cfg)
			if err != nil {
				return err
			}
			content, err := engine.Content(tmplName)
			if err != nil {
				return err
			}

			required := template.Variables(content)
			var missing []string
			for _, name := range required {
				if _, ok := recipients[0].vars[name]; !ok {
					missing = append(missing, name)
				}
			}
			if len(missing) > 0 {
				fmt.Printf("Warning: CSV may be missing columns for: %s\n", strings.Join(missing, ", "))
			}

			fmt.Printf("Loaded %d recipients from %s\n", len(recipients), file)

			if preview {
				limit := len(recipients)
				if limit > 5 {
					limit = 5
				}
				fmt.Println("Preview (first recipients):")
				for i := 0; i < limit; i++ {
					rendered, err := template.RenderString(content, recipients[i].vars)
					if err != nil {
						rendered = fmt.Sprintf("<render error: %v>", err)
					}
					fmt.Printf("  %s: %s\n", recipients[i].phone, rendered)
				}
				fmt.Println("Preview mode - no messages sent")
				return nil
			}

			if sample, err := template.RenderString(content, recipients[0].vars); err == nil {
				segments, _ := message.Segments(sample)
				estimate := message.EstimateCost("twilio", segments, len(recipients))
				fmt.Printf("Estimated cost: ~$%.2f (%d segment(s) each)\n", estimate.TotalUSD, segments)
			}

			if !yes {
				ok, err := app.prompt.Confirm(fmt.Sprintf("Send %d SMS messages?", len(recipients)))
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

			var delay time.Duration
			if rateLimit > 0 {
				delay = time.Second / time.Duration(rateLimit)
			}

			var sent, failed int
			type failure struct {
				phone  string
				reason string
			}
			var failures []failure

			for i, rcpt := range recipients {
				if err := ctx.Err(); err != nil {
					fmt.Println("Interrupted")
					break
				}

				rendered, err := template.RenderString(content, rcpt.vars)
				if err != nil {
					failed++
					failures = append(failures, failure{rcpt.phone, err.Error()})
					continue
				}

				outcome, err := app.sender.Send(ctx, message.Outbound{
					To:   rcpt.phone,
					From: app.cfg.Twilio.FromNumber,
					Body: rendered,
				})
				switch {
				case err != nil:
					failed++
					failures = append(failures, failure{rcpt.phone, err.Error()})
				case outcome.Delivered:
					sent++
				default:
					failed++
					failures = append(failures, failure{rcpt.phone, outcome.Message})
				}

				fmt.Printf("\rSent %d/%d (ok %d | failed %d)", i+1, len(recipients), sent, failed)

				if delay > 0 && i < len(recipients)-1 {
					select {
					case <-ctx.Done():
					case <-time.After(delay):
					}
				}
			}
			fmt.Println()

			fmt.Printf("Bulk send complete: %d ok, %d failed\n", sent, failed)
			for _, f := range failures {
				fmt.Printf("  %s: %s\n", f.phone, f.reason)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d messages failed", failed, len(recipients))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tmplName, "template", "t", "", "template name to render (required)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV file with recipients (required)")
	cmd.Flags().IntVarP(&rateLimit, "rate-limit", "r", 10, "messages per second")
	cmd.Flags().BoolVar(&preview, "preview", false, "render the first rows without sending")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// loadRecipients reads a CSV with a header row and returns one recipient
// per data row. The "phone" column is mandatory.
func loadRecipients(path string) ([]recipient, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recipients file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read recipients file: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	phoneIdx := -1
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), "phone") {
			phoneIdx = i
			break
		}
	}
	if phoneIdx < 0 {
		return nil, fmt.Errorf("recipients file must have a %q column", "phone")
	}

	var recipients []recipient
	for _, row := range rows[1:] {
		if phoneIdx >= len(row) {
			continue
		}
		rcpt := recipient{
			phone: strings.TrimSpace(row[phoneIdx]),
			vars:  make(map[string]string, len(header)-1),
		}
		if rcpt.phone == "" {
			continue
		}
		for i, col := range header {
			if i == phoneIdx || i >= len(row) {
				continue
			}
			rcpt.vars[strings.TrimSpace(col)] = strings.TrimSpace(row[i])
		}
		recipients = append(recipients, rcpt)
	}
	return recipients, nil
}

// parseVars splits repeated key=value flags into a map.
func parseVars(flags []string) (map[string]string, error) {
	vars := make(map[string]string, len(flags))
	for _, raw := range flags {
		key, value, found := strings.Cut(raw, "=")
		if !found || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid variable %q, expected key=value", raw)
		}
		vars[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return vars, nil
}
