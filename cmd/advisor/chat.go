package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jonathan/college-advisor/internal/observability"
	"github.com/jonathan/college-advisor/internal/tui"
)

// quitCommand is the reserved input that ends the session cleanly.
const quitCommand = "quit"

var chatUseTUI bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	Long:  "Start a line-oriented conversation with the advisor. Type 'quit' to exit.",
	RunE:  runChat,
}

func init() {
	addCommonFlags(chatCmd)
	chatCmd.Flags().BoolVar(&chatUseTUI, "tui", false, "Use the full-screen terminal interface")
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	rt, client, err := bootstrap(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if cfg.Verbose && !chatUseTUI {
		rt = rt.WithPrinter(observability.NewPrinter(os.Stdout))
	}

	sess := rt.NewSession()

	if chatUseTUI {
		advisor := func(ctx context.Context, input string) string {
			return rt.Handle(ctx, sess, input)
		}
		program := tea.NewProgram(tui.New(advisor, rt.Welcome()), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("terminal interface failed: %w", err)
		}
		return nil
	}

	fmt.Println(rt.Welcome())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nYou: ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, quitCommand) {
			fmt.Println("Thank you for using the chatbot. Goodbye!")
			return nil
		}

		response := rt.Handle(ctx, sess, line)
		fmt.Printf("\nChatbot: %s\n", response)
	}

	return scanner.Err()
}
