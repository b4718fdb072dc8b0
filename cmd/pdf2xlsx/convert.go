package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tsawler/pdf2xlsx"
	"github.com/tsawler/pdf2xlsx/batch"
	"github.com/tsawler/pdf2xlsx/config"
	"github.com/tsawler/pdf2xlsx/logging"
	"github.com/tsawler/pdf2xlsx/prompt"
	"github.com/tsawler/pdf2xlsx/report"
)

// runConvert resolves the folders and converts every PDF below the input
// folder. Only setup problems are returned; a cancelled selection and
// per-file failures are not errors.
func runConvert(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) error {
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, Console: stderr})
	if err != nil {
		return err
	}
	defer logger.Close()

	conv := pdf2xlsx.New().WithOptions(cfg.Options()).WithLogger(logger.Logger)
	if err := conv.Err(); err != nil {
		return err
	}
	if cfg.Progress {
		conv = conv.WithProgress(batch.NewConsoleProgress(stdout))
	}

	input, output, err := prompt.Folders(ctx, resolver(cfg, stdin, stdout))
	if err != nil {
		switch {
		case input == "":
			logger.Info().Msg("No input folder selected. Exiting.")
		case !errors.Is(err, prompt.ErrCancelled):
			logger.Error().Msgf("Selection error: %v", err)
		default:
			logger.Info().Msg("No output folder selected. Exiting.")
		}
		logger.Info().Msg("Conversion cancelled or invalid selection.")
		fmt.Fprintln(stdout, "No valid folders selected. Exiting.")
		return nil
	}

	summary, err := batch.New(conv, stdout, logger.Logger).Run(ctx, input, output)
	if err != nil {
		return err
	}
	logger.Info().
		Str("run_id", summary.RunID).
		Int("succeeded", summary.Succeeded()).
		Int("failed", summary.Failed()).
		Msg("Run finished")

	if cfg.Report != "" {
		if err := report.Write(cfg.Report, summary); err != nil {
			logger.Error().Msgf("Could not write report: %v", err)
		}
	}
	return nil
}

// resolver uses the configured folders when both are set and asks on the
// terminal otherwise.
func resolver(cfg *config.Config, stdin io.Reader, stdout io.Writer) prompt.Resolver {
	if cfg.Input != "" && cfg.Output != "" {
		return prompt.Static{Input: cfg.Input, Output: cfg.Output}
	}
	return prompt.NewInteractive(stdin, stdout)
}
