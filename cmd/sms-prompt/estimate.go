package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbornfas/sms-prompt-go/internal/message"
)

func estimateCmd() *cobra.Command {
	var (
		text       string
		recipients int
		provider   string
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate segment count and cost without sending",
		RunE: func(cmd *cobra.Command, args []string) error {
			if text == "" {
				return fmt.Errorf("--message is required")
			}
			if recipients < 1 {
				return fmt.Errorf("--recipients must be at least 1")
			}

			segments, unicode := message.Segments(text)
			estimate := message.EstimateCost(provider, segments, recipients)

			encoding := "GSM-7 (160 chars/segment)"
			if unicode {
				encoding = "UCS-2 (70 chars/segment)"
			}

			fmt.Printf("Length: %d characters\n", len([]rune(text)))
			fmt.Printf("Encoding: %s\n", encoding)
			fmt.Printf("Segments: %d\n", segments)
			fmt.Printf("Recipients: %d\n", recipients)
			fmt.Printf("Provider: %s ($%.4f/segment)\n", estimate.Provider, estimate.PerSegmentUSD)
			fmt.Printf("Estimated cost: $%.4f\n", estimate.TotalUSD)
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "message", "m", "", "message text to estimate (required)")
	cmd.Flags().IntVarP(&recipients, "recipients", "n", 1, "number of recipients")
	cmd.Flags().StringVarP(&provider, "provider", "p", "twilio", "pricing table to use (twilio, africas_talking)")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}
