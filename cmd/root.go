package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/qsq/internal/config"
	"github.com/papapumpkin/qsq/internal/resultlog"
	"github.com/papapumpkin/qsq/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "qsq",
	Short: "Symbolic q-series toolkit",
	Long: "qsq computes with truncated q-series over exact rationals: product and\n" +
		"eta-quotient recovery, congruence and relation discovery, Bailey chains,\n" +
		"and recurrence proofs for basic hypergeometric sums.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .qsq.yaml)")
	rootCmd.PersistentFlags().Int64P("trunc", "T", 0, "override series truncation order")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".qsq")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("QSQ")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// loadConfig resolves the effective configuration for a command run,
// applying persistent flag overrides on top of file/env settings.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if v, _ := cmd.Flags().GetInt64("trunc"); v > 0 {
		cfg.Trunc = v
	}
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		cfg.Verbose = true
	}
	return cfg, nil
}

// recordResult appends a command outcome to the history database.
// History is best-effort: a broken database warns but never fails the
// computation that produced the result.
func recordResult(cfg config.Config, printer *ui.Printer, command, input, output string) {
	ctx := context.Background()
	log, err := resultlog.Open(ctx, cfg.HistoryPath)
	if err != nil {
		printer.Debug(fmt.Sprintf("history unavailable: %v", err))
		return
	}
	defer log.Close()
	if err := log.Record(ctx, command, input, output); err != nil {
		printer.Debug(fmt.Sprintf("history write failed: %v", err))
	}
}
