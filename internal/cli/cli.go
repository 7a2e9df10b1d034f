// Package cli parses the command line, validates arguments and drives
// the document packages.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tilegrid/svgtile/svgdoc"
	"github.com/tilegrid/svgtile/svggrid"
	"github.com/tilegrid/svgtile/svgpdf"
	"github.com/tilegrid/svgtile/svgraster"
)

const usage = `svgtile inspects, renders and retiles SVG documents.

Usage:
  svgtile info FILE
  svgtile plot FILE [-png OUT] [-pdf OUT] [-fit]
  svgtile grid FILE ROWS COLS OUT
  svgtile move FILE SIZE SRCROW SRCCOL DSTROW DSTCOL OUT
  svgtile FILE                shorthand for plot FILE

Commands:
  info   print structural metadata of the document
  plot   render the document to a PNG; OUT defaults to FILE with a
         .png extension; -pdf additionally writes a vector page;
         -fit hugs the drawn geometry instead of the declared view box
  grid   tile the document into ROWS x COLS cells and write a new SVG
  move   copy the content of one grid cell over another; SIZE is the
         cell edge used to decode untagged cells
`

// ExitError is an error carrying a specific process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(msg string) *ExitError {
	return &ExitError{Code: 2, Message: msg}
}

// Run executes one command line, writing command output to out. A
// returned *ExitError picks the process exit code; any other error
// means an operation failure.
func Run(out io.Writer, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return nil
	}
	switch args[0] {
	case "info":
		return runInfo(out, args[1:])
	case "plot":
		return runPlot(out, args[1:])
	case "grid":
		return runGrid(out, args[1:])
	case "move":
		return runMove(out, args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return nil
	default:
		// a bare file argument renders it
		return runPlot(out, args)
	}
}

// checkInput rejects unreadable input up front, before any work.
func checkInput(path string) error {
	if _, err := os.Stat(path); err != nil {
		return usageError(err.Error())
	}
	return nil
}

func runInfo(out io.Writer, args []string) error {
	if len(args) != 1 {
		return usageError("info wants exactly one FILE argument")
	}
	if err := checkInput(args[0]); err != nil {
		return err
	}
	doc, err := svgdoc.ReadFile(args[0])
	if err != nil {
		return err
	}
	info := svgdoc.CollectInfo(doc)
	slog.Debug("collected metadata", "file", info.File, "paths", info.Paths, "groups", info.Groups)
	fmt.Fprint(out, info.Report())
	return nil
}

func runPlot(out io.Writer, args []string) error {
	fs := flag.NewFlagSet("plot", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	pngOut := fs.String("png", "", "output PNG path")
	pdfOut := fs.String("pdf", "", "also write a PDF page to this path")
	fit := fs.Bool("fit", false, "hug the drawn geometry")
	file, err := parseWithFile(fs, args)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprint(out, usage)
		return nil
	}
	if err != nil {
		return err
	}
	if err := checkInput(file); err != nil {
		return err
	}
	target := *pngOut
	if target == "" {
		target = strings.TrimSuffix(file, filepath.Ext(file)) + ".png"
	}
	doc, err := svgdoc.ReadFile(file)
	if err != nil {
		return err
	}
	slog.Debug("rendering", "file", file, "fit", *fit, "target", target)
	if err := svgraster.RenderToPNG(doc, target, svgraster.Options{FitGeometry: *fit}); err != nil {
		return fmt.Errorf("rendering %s: %w", file, err)
	}
	fmt.Fprintf(out, "Wrote PNG to %s\n", target)
	if *pdfOut != "" {
		if err := svgpdf.RenderToPDF(doc, *pdfOut, svgpdf.Options{FitGeometry: *fit}); err != nil {
			return fmt.Errorf("rendering %s: %w", file, err)
		}
		fmt.Fprintf(out, "Wrote PDF to %s\n", *pdfOut)
	}
	return nil
}

// parseWithFile reads flags around a single positional file argument,
// accepting them both before and after it.
func parseWithFile(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return "", err
		}
		return "", usageError(err.Error())
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return "", usageError(fs.Name() + " wants a FILE argument")
	}
	file := rest[0]
	if err := fs.Parse(rest[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return "", err
		}
		return "", usageError(err.Error())
	}
	if fs.NArg() != 0 {
		return "", usageError("unexpected argument " + fs.Arg(0))
	}
	return file, nil
}

func runGrid(out io.Writer, args []string) error {
	if len(args) != 4 {
		return usageError("grid wants FILE ROWS COLS OUT")
	}
	rows, err := strconv.Atoi(args[1])
	if err != nil {
		return usageError("rows: " + err.Error())
	}
	cols, err := strconv.Atoi(args[2])
	if err != nil {
		return usageError("cols: " + err.Error())
	}
	if err := checkInput(args[0]); err != nil {
		return err
	}
	doc, err := svgdoc.ReadFile(args[0])
	if err != nil {
		return err
	}
	tiled, err := svggrid.BuildGrid(doc, rows, cols)
	if err != nil {
		return err
	}
	if err := svgdoc.WriteFile(args[3], tiled.Root); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote tiled SVG to %s\n", args[3])
	return nil
}

func runMove(out io.Writer, args []string) error {
	if len(args) != 7 {
		return usageError("move wants FILE SIZE SRCROW SRCCOL DSTROW DSTCOL OUT")
	}
	size, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return usageError("grid size: " + err.Error())
	}
	var coords [4]int
	for i, a := range args[2:6] {
		coords[i], err = strconv.Atoi(a)
		if err != nil {
			return usageError("cell coordinate: " + err.Error())
		}
	}
	if err := checkInput(args[0]); err != nil {
		return err
	}
	doc, err := svgdoc.ReadFile(args[0])
	if err != nil {
		return err
	}
	if err := svggrid.MoveTile(doc.Root, size, coords[0], coords[1], coords[2], coords[3]); err != nil {
		return err
	}
	if err := svgdoc.WriteFile(args[6], doc.Root); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote updated SVG to %s\n", args[6])
	return nil
}
