package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/canopyhq/canopy/internal/presentation/tui"
	"github.com/canopyhq/canopy/pkg/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Run an interactive discovery conversation in the terminal",
	Long:  `Starts a discovery session on stdin/stdout. Answers to ranking questions are comma-separated lists; everything else is free text or an option value.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		logger := newLogger()
		engine, err := buildEngine(cmd.Context(), cmd, logger, nil)
		if err != nil {
			return err
		}

		sessionID, _ := cmd.Flags().GetString("session")
		if sessionID == "" {
			sessionID = fmt.Sprintf("chat-%d", time.Now().Unix())
		}

		render := tui.NewRenderer()
		printMarkdown := func(text string) {
			out, err := render(text)
			if err != nil {
				fmt.Println(text)
				return
			}
			fmt.Print(out)
		}

		tui.PrintBanner()

		ctx := cmd.Context()
		state, err := engine.GetState(ctx, sessionID)
		if err != nil {
			return err
		}

		current, ok := engine.Catalog().Get(state.ActiveQuestionID)
		if !ok {
			fmt.Println("This session is already complete.")
			return nil
		}
		printMarkdown(questionMarkdown(current))

		reader := bufio.NewReader(os.Stdin)
		for {
			fmt.Print("> ")
			line, err := reader.ReadString('\n')
			if err != nil {
				fmt.Println()
				return nil
			}
			input := strings.TrimSpace(line)
			if input == "" {
				continue
			}
			if input == "exit" || input == "quit" {
				fmt.Println("Bye! Your progress is saved.")
				return nil
			}

			answer := parseAnswer(current, input)
			result, err := engine.ProcessAnswer(ctx, sessionID, current.ID, answer)
			if err != nil {
				fmt.Printf("That didn't work: %v\n", err)
				continue
			}

			for _, ins := range result.NewInsights {
				printMarkdown(fmt.Sprintf("> 💡 *%s*", ins.Content))
			}
			printMarkdown(result.RenderedMessage)

			if result.NextQuestion == nil {
				fmt.Printf("Discovery complete (%d%%). Session: %s\n", result.State.Progress, sessionID)
				return nil
			}
			if len(result.NextQuestion.Options) > 0 {
				printMarkdown(optionsMarkdown(result.NextQuestion))
			}
			fmt.Printf("[progress %d%%]\n", result.State.Progress)
			current = result.NextQuestion
		}
	},
}

func questionMarkdown(node *domain.QuestionNode) string {
	var b strings.Builder
	b.WriteString(node.Prompt)
	if len(node.Options) > 0 {
		b.WriteString("\n")
		b.WriteString(optionsMarkdown(node))
	}
	return b.String()
}

func optionsMarkdown(node *domain.QuestionNode) string {
	var b strings.Builder
	for _, opt := range node.Options {
		if opt.Description != "" {
			fmt.Fprintf(&b, "- `%s`: %s (%s)\n", opt.Value, opt.Label, opt.Description)
		} else {
			fmt.Fprintf(&b, "- `%s`: %s\n", opt.Value, opt.Label)
		}
	}
	return b.String()
}

// parseAnswer shapes terminal input for the active question: ranking
// questions take comma-separated lists, everything else a single value.
func parseAnswer(node *domain.QuestionNode, input string) domain.Answer {
	if node.Kind == domain.KindRanking {
		parts := strings.Split(input, ",")
		values := make([]string, 0, len(parts))
		for _, p := range parts {
			if v := strings.TrimSpace(p); v != "" {
				values = append(values, v)
			}
		}
		return domain.ListAnswer(values...)
	}
	return domain.TextAnswer(input)
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringP("session", "s", "", "Session ID to start or resume (default: generated)")
}
