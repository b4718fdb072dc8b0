// Package main is the entry point for the pdf2xlsx CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/pdf2xlsx/config"
	"github.com/tsawler/pdf2xlsx/logging"
	"github.com/tsawler/pdf2xlsx/tables"
)

// version is set at build time via ldflags.
var version = "dev"

// settings holds the merged configuration once flags are parsed.
var (
	settings    *viper.Viper
	settingsErr error
)

// rootCmd converts every PDF below a folder.
var rootCmd = &cobra.Command{
	Use:   "pdf2xlsx",
	Short: "Convert the tables in a folder of PDFs to Excel workbooks",
	Long: `pdf2xlsx walks an input folder, extracts the table found on each page of
every PDF, stitches the pages into one table and writes it to an .xlsx file.

Results are written below <output>/<input folder name>, mirroring the input
tree. Without --input and --output the folders are asked for on the terminal.
Files that cannot be converted are logged and skipped.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return settingsErr
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(settings)
		if err != nil {
			return err
		}
		return runConvert(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := tables.DefaultConfig()
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./pdf2xlsx.yaml or ~/.config/pdf2xlsx/pdf2xlsx.yaml)")
	pf.String("strategy", tables.StrategyAuto, "table detection strategy: auto, lines or text")
	pf.Int("min-rows", defaults.MinRows, "minimum rows for a detected table")
	pf.Int("min-cols", defaults.MinCols, "minimum columns for a detected table")
	pf.Float64("snap-tolerance", defaults.SnapTolerance, "distance in points within which ruling lines are merged")

	f := rootCmd.Flags()
	f.StringP("input", "i", "", "folder containing the PDFs")
	f.StringP("output", "o", "", "parent folder for the results")
	f.String("log-file", logging.DefaultFile, "log file, appended to")
	f.String("log-level", "info", "log level: debug, info, warn or error")
	f.String("report", "", "write a YAML run report to this file")
	f.Bool("progress", true, "print per-page progress")
}

// initConfig reads the config file and binds the flags over it.
func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	settings, settingsErr = config.NewViper(cfgFile)
	if settingsErr != nil {
		return
	}

	for key, flag := range map[string]string{
		"strategy":       "strategy",
		"min_rows":       "min-rows",
		"min_cols":       "min-cols",
		"snap_tolerance": "snap-tolerance",
	} {
		if err := settings.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			settingsErr = err
			return
		}
	}
	for key, flag := range map[string]string{
		"input":     "input",
		"output":    "output",
		"log_file":  "log-file",
		"log_level": "log-level",
		"report":    "report",
		"progress":  "progress",
	} {
		if err := settings.BindPFlag(key, rootCmd.Flags().Lookup(flag)); err != nil {
			settingsErr = err
			return
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
