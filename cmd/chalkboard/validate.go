package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lumilearn/chalkboard/pkg/explanation"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Lint an explanation payload file (JSON or YAML)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e, err := explanation.DecodeFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		issues := explanation.Lint(e)
		if len(issues) == 0 {
			steps := e.EffectiveSteps()
			fmt.Printf("OK: %d effective step(s)\n", len(steps))
			return
		}
		for _, iss := range issues {
			fmt.Printf("  %s\n", iss)
		}
		fmt.Printf("%d issue(s) found\n", len(issues))
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
