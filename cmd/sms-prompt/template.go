package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbornfas/sms-prompt-go/internal/config"
	"github.com/kbornfas/sms-prompt-go/internal/template"
)

func templateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage reusable message templates",
	}

	cmd.AddCommand(templateListCmd())
	cmd.AddCommand(templateShowCmd())
	cmd.AddCommand(templateVarsCmd())
	cmd.AddCommand(templateCreateCmd())
	cmd.AddCommand(templateDeleteCmd())

	return cmd
}

func openEngine() (*template.Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return newEngine(cfg)
}

func templateListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine()
			if err != nil {
				return err
			}
			names, err := engine.List()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Printf("No templates in %s\n", engine.Dir())
				return nil
			}
			fmt.Printf("Templates in %s:\n", engine.Dir())
			for _, name := range names {
				fmt.Println("  " + name)
			}
			return nil
		},
	}
}

func templateShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a template's content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine()
			if err != nil {
				return err
			}
			content, err := engine.Content(args[0])
			if err != nil {
				return err
			}
			fmt.Println(content)
			return nil
		},
	}
}

func templateVarsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vars <name>",
		Short: "List the variables a template expects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine()
			if err != nil {
				return err
			}
			content, err := engine.Content(args[0])
			if err != nil {
				return err
			}
			vars := template.Variables(content)
			if len(vars) == 0 {
				fmt.Printf("Template %q has no variables\n", args[0])
				return nil
			}
			fmt.Printf("Variables in %q:\n", args[0])
			for _, name := range vars {
				fmt.Println("  {{" + name + "}}")
			}
			return nil
		},
	}
}

func templateCreateCmd() *cobra.Command {
	var (
		content string
		file    string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a template from --content, --file or stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine()
			if err != nil {
				return err
			}

			text := content
			switch {
			case content != "" && file != "":
				return fmt.Errorf("--content and --file are mutually exclusive")
			case file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read template source: %w", err)
				}
				text = string(data)
			case content == "":
				fmt.Println("Enter template content, end with EOF (Ctrl-D):")
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read template content: %w", err)
				}
				text = string(data)
			}

			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("template content is empty")
			}

			if err := engine.Create(args[0], text); err != nil {
				return err
			}
			fmt.Printf("Created template %q", args[0])
			if vars := template.Variables(text); len(vars) > 0 {
				fmt.Printf(" with variables: %s", strings.Join(vars, ", "))
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVarP(&content, "content", "c", "", "template text")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read template text from a file")

	return cmd
}

func templateDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine()
			if err != nil {
				return err
			}
			if !yes {
				fmt.Printf("Delete template %q? [y/N]: ", args[0])
				var answer string
				fmt.Scanln(&answer)
				if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
					fmt.Println("Cancelled")
					return nil
				}
			}
			if err := engine.Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted template %q\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
