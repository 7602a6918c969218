package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbornfas/sms-prompt-go/internal/util"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <number>",
		Short: "Check whether a phone number looks like valid E.164",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			normalized, err := util.NormalizeE164(args[0])
			if err != nil {
				fmt.Printf("Invalid: %q\n", args[0])
				fmt.Println("Expected E.164 format, e.g. +14155552671")
				return err
			}
			fmt.Printf("Valid: %s\n", normalized)
			if cc := util.CountryCode(normalized); cc != "" {
				fmt.Printf("Country code: +%s\n", cc)
			}
			return nil
		},
	}
}
