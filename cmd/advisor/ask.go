package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question and exit",
	Long:  "Answer one question without entering the conversation loop. Eligibility state does not carry over between invocations.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	addCommonFlags(askCmd)
	rootCmd.AddCommand(askCmd)
}

func runAsk(_ *cobra.Command, args []string) error {
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

	question := strings.Join(args, " ")
	response := rt.Handle(ctx, rt.NewSession(), question)
	fmt.Println(response)

	return nil
}
