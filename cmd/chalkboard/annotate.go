package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lumilearn/chalkboard/internal/presentation/tui"
	"github.com/lumilearn/chalkboard/pkg/annotate"
	"github.com/lumilearn/chalkboard/pkg/explanation"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate <explanation-file>",
	Short: "Run the directive matcher over a text block",
	Long: `Applies one step's annotation directives to a text block and prints the
matched runs. On a TTY the runs are painted with their visual style;
otherwise segments are emitted as JSON.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		step, _ := cmd.Flags().GetInt("step")
		target, _ := cmd.Flags().GetString("target")
		text, _ := cmd.Flags().GetString("text")
		textFile, _ := cmd.Flags().GetString("text-file")

		if text == "" && textFile == "" {
			fmt.Fprintln(os.Stderr, "Error: --text or --text-file is required")
			os.Exit(1)
		}
		if text == "" {
			data, err := os.ReadFile(textFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			text = string(data)
		}

		e, err := explanation.DecodeFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		steps := e.EffectiveSteps()
		if step < 0 || step >= len(steps) {
			fmt.Fprintf(os.Stderr, "Error: step %d out of range (payload has %d effective steps)\n", step, len(steps))
			os.Exit(1)
		}

		directives := steps[step].Directives()
		if target != "" {
			filtered := directives[:0]
			for _, d := range directives {
				if string(d.Target) == target {
					filtered = append(filtered, d)
				}
			}
			directives = filtered
		}

		segs := annotate.Segments(text, directives)

		if term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Println(tui.PaintSegments(segs))
			return
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(segs); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(annotateCmd)
	annotateCmd.Flags().Int("step", 0, "Index into the effective step list")
	annotateCmd.Flags().String("target", "", "Only apply directives for this surface (passage, stem, choices, figure)")
	annotateCmd.Flags().String("text", "", "The text block to annotate")
	annotateCmd.Flags().String("text-file", "", "Read the text block from a file")
}
