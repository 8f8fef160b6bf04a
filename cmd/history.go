package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/qsq/internal/resultlog"
	"github.com/papapumpkin/qsq/internal/ui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent results from the history database",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "number of entries to show")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.New(cfg.Verbose)

	ctx := context.Background()
	log, err := resultlog.Open(ctx, cfg.HistoryPath)
	if err != nil {
		return err
	}
	defer log.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := log.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		printer.Info("history is empty")
		return nil
	}

	for _, e := range entries {
		printer.Result(fmt.Sprintf("%s  %-12s %s  =>  %s",
			e.CreatedAt.Format("2006-01-02 15:04:05"), e.Command, e.Input, e.Output))
	}
	return nil
}
