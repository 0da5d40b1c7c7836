// Command slct evaluates every selection in an input directory's
// selection.json against universe.json and input_data.csv, writing one
// output_{selection_id}.csv per selection (spec.md §6). Options and the
// --help/--version handling follow sqldef's cmd/mysqldef/mysqldef.go
// jessevdk/go-flags struct-tag style.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/AndreyKorabelnik/FS-SLCT-NODB/config"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/ioadapters"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/runner"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/selection"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/universe"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/util"
)

var version = "dev"

type options struct {
	Input       string `long:"input" description:"Input directory containing input_data.csv, universe.json, selection.json" value-name:"dir" required:"true"`
	Output      string `long:"output" description:"Output directory for output_{selection_id}.csv files" value-name:"dir" required:"true"`
	Concurrency int    `long:"concurrency" description:"Max selections evaluated concurrently (0 means unlimited)" value-name:"n" default:"4"`
	Version     bool   `long:"version" description:"Show this version"`
}

func main() {
	util.InitSlog()

	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "--input <dir> --output <dir> [--concurrency N]"
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	if opts.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	os.Exit(run(opts))
}

// run implements the process surface of spec.md §6: exit 0 on success,
// non-zero if any fatal load error occurred, partial outputs on
// per-selection failures.
func run(opts options) int {
	files := config.Default()

	uni, err := loadUniverse(files, opts.Input)
	if err != nil {
		slog.Error("failed to load universe", "error", err)
		return 1
	}

	sels, err := loadSelections(files, opts.Input)
	if err != nil {
		slog.Error("failed to load selections", "error", err)
		return 1
	}

	var reader ioadapters.CSVReader
	rs, err := reader.ReadTable(files.InputDataPath(opts.Input))
	if err != nil {
		slog.Error("failed to load input data", "error", err)
		return 1
	}

	if err := os.MkdirAll(opts.Output, 0o755); err != nil {
		slog.Error("failed to create output directory", "error", err)
		return 1
	}

	results := runner.RunAll(context.Background(), uni, rs, sels, uni.Key(), opts.Concurrency)

	var writer ioadapters.CSVWriter
	failed := false
	for _, res := range results {
		if res.Err != nil {
			failed = true
			slog.Error("selection failed", "selection_id", res.SelectionID, "error", res.Err)
			continue
		}
		path := files.OutputPath(opts.Output, res.SelectionID)
		if err := writer.WriteTable(path, res.Columns); err != nil {
			failed = true
			slog.Error("failed to write selection output", "selection_id", res.SelectionID, "error", err)
			continue
		}
		slog.Info("selection complete", "selection_id", res.SelectionID, "output", path)
	}

	if failed {
		return 2
	}
	return 0
}

func loadUniverse(files config.Files, inputDir string) (*universe.Universe, error) {
	data, err := os.ReadFile(files.UniversePath(inputDir))
	if err != nil {
		return nil, err
	}
	return universe.LoadJSON(data)
}

func loadSelections(files config.Files, inputDir string) ([]*selection.Selection, error) {
	data, err := os.ReadFile(files.SelectionPath(inputDir))
	if err != nil {
		return nil, err
	}
	return selection.LoadJSON(data)
}
