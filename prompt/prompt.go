// Package prompt resolves the input and output folders of a run, either
// from fixed settings or by asking on a terminal.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrCancelled is returned when no folder was chosen.
var ErrCancelled = errors.New("selection cancelled")

// Resolver picks the folders a run works on.
type Resolver interface {
	SelectInputFolder(ctx context.Context) (string, error)
	SelectOutputFolder(ctx context.Context) (string, error)
}

// Static returns fixed folders. An empty folder counts as cancelled.
type Static struct {
	Input  string
	Output string
}

// SelectInputFolder returns s.Input.
func (s Static) SelectInputFolder(context.Context) (string, error) {
	if s.Input == "" {
		return "", ErrCancelled
	}
	return s.Input, nil
}

// SelectOutputFolder returns s.Output.
func (s Static) SelectOutputFolder(context.Context) (string, error) {
	if s.Output == "" {
		return "", ErrCancelled
	}
	return s.Output, nil
}

// Interactive asks for folders line by line. An empty answer or end of
// input cancels; an answer that is not an existing directory is asked
// again.
type Interactive struct {
	in  *bufio.Reader
	out io.Writer
}

// NewInteractive creates a resolver reading answers from in and writing
// prompts to out.
func NewInteractive(in io.Reader, out io.Writer) *Interactive {
	return &Interactive{in: bufio.NewReader(in), out: out}
}

// SelectInputFolder asks for the folder containing the PDFs.
func (p *Interactive) SelectInputFolder(ctx context.Context) (string, error) {
	return p.ask(ctx, "Select Input Folder Containing PDFs")
}

// SelectOutputFolder asks for the folder the results are written under.
func (p *Interactive) SelectOutputFolder(ctx context.Context) (string, error) {
	return p.ask(ctx, "Select Output Parent Folder")
}

func (p *Interactive) ask(ctx context.Context, title string) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		fmt.Fprintf(p.out, "%s (empty to cancel): ", title)
		line, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}

		answer := strings.TrimSpace(line)
		if answer == "" {
			return "", ErrCancelled
		}

		info, statErr := os.Stat(answer)
		if statErr == nil && info.IsDir() {
			return answer, nil
		}
		fmt.Fprintf(p.out, "Not a folder: %s\n", answer)

		if errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
	}
}

// Folders resolves both folders, stopping at the first failure. When only
// the output choice fails, the chosen input folder is still returned so
// callers can tell which selection was abandoned.
func Folders(ctx context.Context, r Resolver) (input, output string, err error) {
	input, err = r.SelectInputFolder(ctx)
	if err != nil {
		return "", "", err
	}
	output, err = r.SelectOutputFolder(ctx)
	if err != nil {
		return input, "", err
	}
	return input, output, nil
}
