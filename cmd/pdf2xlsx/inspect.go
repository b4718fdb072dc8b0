package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tsawler/pdf2xlsx"
	"github.com/tsawler/pdf2xlsx/config"
	"github.com/tsawler/pdf2xlsx/format"
	"github.com/tsawler/pdf2xlsx/model"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.pdf>...",
	Short: "Show PDF metadata and the tables detected on each page",
	Long: `inspect prints the metadata of each PDF and the size of every table the
configured strategy finds on each page. Use it to see why a file produced no
workbook. With --csv the cells of every table are printed as well.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(settings)
		if err != nil {
			return err
		}
		return runInspect(cfg, args, inspectCSV, cmd.OutOrStdout())
	},
}

var inspectCSV bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectCSV, "csv", false, "print the cells of every detected table as CSV")
	rootCmd.AddCommand(inspectCmd)
}

// errInspect reports that at least one file could not be inspected.
var errInspect = errors.New("some files could not be inspected")

func runInspect(cfg *config.Config, paths []string, csv bool, w io.Writer) error {
	conv := pdf2xlsx.New().WithOptions(cfg.Options())
	if err := conv.Err(); err != nil {
		return err
	}

	failed := false
	for _, path := range paths {
		if f, err := format.DetectFile(path); err == nil && f != format.PDF {
			fmt.Fprintf(w, "%s: not a PDF (%s)\n\n", path, f)
			failed = true
			continue
		}
		doc, err := conv.Inspect(path)
		if err != nil {
			fmt.Fprintf(w, "%s: %v\n\n", path, err)
			failed = true
			continue
		}
		printDocument(w, doc, csv)
	}
	if failed {
		return errInspect
	}
	return nil
}

func printDocument(w io.Writer, doc *model.Document, csv bool) {
	m := doc.Metadata
	fmt.Fprintln(w, doc.Path)
	fmt.Fprintf(w, "  Version:   %s\n", m.Version)
	fmt.Fprintf(w, "  Pages:     %d\n", m.PageCount)
	fmt.Fprintf(w, "  Encrypted: %t\n", m.Encrypted)
	if m.Title != "" {
		fmt.Fprintf(w, "  Title:     %s\n", m.Title)
	}
	if m.Producer != "" {
		fmt.Fprintf(w, "  Producer:  %s\n", m.Producer)
	}
	for _, p := range doc.Pages {
		switch {
		case p.Err != nil:
			fmt.Fprintf(w, "  Page %d: error: %v\n", p.Page, p.Err)
		case p.Blank && len(p.Tables) == 0:
			fmt.Fprintf(w, "  Page %d: no text\n", p.Page)
		case len(p.Tables) == 0:
			fmt.Fprintf(w, "  Page %d: no tables\n", p.Page)
		default:
			fmt.Fprintf(w, "  Page %d:", p.Page)
			for _, t := range p.Tables {
				fmt.Fprintf(w, " %dx%d", t.RowCount(), t.ColCount())
			}
			fmt.Fprintln(w)
			if csv {
				for i, t := range p.Tables {
					fmt.Fprintf(w, "  -- table %d (%s, confidence %.2f)\n", i+1, t.Detector, t.Confidence)
					fmt.Fprint(w, t.ToCSV())
				}
			}
		}
	}
	fmt.Fprintf(w, "  Tables:    %d\n\n", doc.TableCount())
}
