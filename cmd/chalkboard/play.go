package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lumilearn/chalkboard"
	"github.com/lumilearn/chalkboard/internal/presentation/tui"
	"github.com/lumilearn/chalkboard/pkg/explanation"
)

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Play an explanation in the terminal",
	Long: `Plays an explanation payload file (JSON or YAML) in the terminal:
steps auto-advance on their own timing while narration appears with a
typewriter reveal. Board notes are rendered as Markdown on a TTY.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lang, _ := cmd.Flags().GetString("language")

		expl, err := explanation.DecodeFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if lang != "" {
			expl.Language = lang
		}

		isTTY := term.IsTerminal(int(os.Stdout.Fd()))
		renderMarkdown := func(md string) (string, error) { return md + "\n", nil }
		if isTTY {
			renderMarkdown = tui.NewRenderer()
		}

		done := make(chan struct{})
		var (
			mu      sync.Mutex
			printed int
		)

		hooks := chalkboard.Hooks{
			OnStepEnter: func(e chalkboard.StepEvent) {
				mu.Lock()
				printed = 0
				mu.Unlock()

				title := e.Step.Title
				if title == "" {
					title = e.Step.ID
				}
				fmt.Printf("\n--- step %d of %d", e.Index+1, e.Count)
				if title != "" {
					fmt.Printf(": %s", title)
				}
				fmt.Println(" ---")
				for _, note := range e.Step.BoardNotes {
					if out, err := renderMarkdown(note); err == nil {
						fmt.Print(out)
					}
				}
			},
			OnStepLeave: func(chalkboard.StepEvent) {
				fmt.Println()
			},
			OnReveal: func(snap chalkboard.Snapshot) {
				mu.Lock()
				defer mu.Unlock()
				runes := []rune(snap.Narration)
				if len(runes) > printed {
					fmt.Print(string(runes[printed:]))
					printed = len(runes)
				}
			},
			OnPlayChange: func(playing bool) {
				if !playing {
					close(done)
				}
			},
		}

		player := chalkboard.New(expl,
			chalkboard.WithLogger(newLogger(cmd)),
			chalkboard.WithHooks(hooks),
		)
		defer player.Close()

		if player.StepCount() == 0 {
			fmt.Println("Nothing to play: the payload has no steps.")
			return
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		player.TogglePlay()

		select {
		case <-done:
			fmt.Println("\nPlayback finished.")
		case <-ctx.Done():
			fmt.Println("\nInterrupted.")
		}
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().String("language", "", "Narration language override (e.g. en, zh)")
}
