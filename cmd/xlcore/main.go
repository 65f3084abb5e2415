// Package main provides the CLI entry point for xlcore.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/LEONFROMWORK/xlcore/config"
	"github.com/LEONFROMWORK/xlcore/pkg/xlcore"
	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/models"
	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/output"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}

	rootCmd := newRootCmd(cfg)
	if err := rootCmd.Execute(); err != nil {
		data, jsonErr := output.ErrorToJSON(err, false)
		if jsonErr != nil {
			fmt.Fprintln(os.Stderr, err)
		} else {
			fmt.Fprintln(os.Stderr, string(data))
		}
		os.Exit(1)
	}
}

// cli holds flag values shared by the subcommands.
type cli struct {
	cfg *config.Config

	outputPath      string
	pretty          bool
	logLevel        string
	password        string
	includeFormulas bool
	parallelism     int
	sheetsDir       string

	maxRows     int
	contextJSON string
	contextFile string
	cellAddress string
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	c := &cli{cfg: cfg}

	rootCmd := &cobra.Command{
		Use:   "xlcore",
		Short: "Decode spreadsheets into typed JSON and evaluate simple formulas",
		Long: `xlcore decodes Excel workbooks (xlsx, encrypted xlsx, optionally gzip,
zstd or xz compressed) into sheets of typed cells and outputs JSON.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setupLogging,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.outputPath, "output", "o", "", "Output file path (default: stdout)")
	flags.BoolVar(&c.pretty, "pretty", false, "Pretty-print JSON output")
	flags.StringVar(&c.logLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flags.StringVar(&c.password, "password", cfg.Password, "Password for encrypted workbooks")
	flags.BoolVar(&c.includeFormulas, "include-formulas", false, "Include formula text in cells")
	flags.IntVar(&c.parallelism, "parallelism", cfg.Parallelism, "Number of sheets decoded concurrently")
	flags.StringVar(&c.sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")

	streamCmd := &cobra.Command{
		Use:   "stream <input>",
		Short: "Decode every sheet, keeping at most --max-rows rows per sheet",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runStream,
	}
	streamCmd.Flags().IntVar(&c.maxRows, "max-rows", cfg.MaxRows, "Maximum rows per sheet")

	evalCmd := &cobra.Command{
		Use:   "eval <formula>",
		Short: "Evaluate a formula against a JSON object of cell values",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runEval,
	}
	evalCmd.Flags().StringVar(&c.contextJSON, "context", "", `Cell values as JSON, e.g. '{"A1": 1}'`)
	evalCmd.Flags().StringVar(&c.contextFile, "context-file", "", "File holding cell values as JSON")
	evalCmd.Flags().StringVar(&c.cellAddress, "cell", "", "Address the formula belongs to")
	evalCmd.MarkFlagsMutuallyExclusive("context", "context-file")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "parse <input>",
			Short: "Decode every sheet of a workbook",
			Args:  cobra.ExactArgs(1),
			RunE:  c.runParse,
		},
		&cobra.Command{
			Use:   "metadata <input>",
			Short: "List sheet names without reading cells",
			Args:  cobra.ExactArgs(1),
			RunE:  c.runMetadata,
		},
		&cobra.Command{
			Use:   "sheet <input> <name>",
			Short: "Decode a single sheet",
			Args:  cobra.ExactArgs(2),
			RunE:  c.runSheet,
		},
		streamCmd,
		evalCmd,
		&cobra.Command{
			Use:   "sum <number>...",
			Short: "Sum numbers",
			RunE:  c.runSum,
		},
		&cobra.Command{
			Use:   "average <number>...",
			Short: "Average numbers",
			RunE:  c.runAverage,
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the build identity",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), xlcore.Version())
				return nil
			},
		},
		&cobra.Command{
			Use:   "selftest",
			Short: "Run a runtime speed check",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.write(cmd, xlcore.SelfTest(slog.Default()))
			},
		},
	)

	return rootCmd
}

func (c *cli) setupLogging(cmd *cobra.Command, args []string) error {
	level, err := config.ParseLevel(c.logLevel)
	if err != nil {
		return err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if c.cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	} else {
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

func (c *cli) options() xlcore.Options {
	opts := xlcore.DefaultOptions()
	opts.IncludeFormulas = c.includeFormulas
	opts.Parallelism = c.parallelism
	opts.Password = c.password
	opts.SizeLimit = c.cfg.UnzipSizeLimit
	opts.Logger = slog.Default()
	return opts
}

func (c *cli) runParse(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	wb, err := xlcore.ParseWorkbook(data, c.options())
	if err != nil {
		return err
	}
	slog.Debug("Parsed workbook", "sheets", len(wb.Sheets), "elapsed_ms", wb.ProcessingTimeMs)
	return c.writeWorkbook(cmd, wb)
}

func (c *cli) runStream(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	wb, err := xlcore.ParseStreaming(data, c.maxRows, c.options())
	if err != nil {
		return err
	}
	return c.writeWorkbook(cmd, wb)
}

func (c *cli) runMetadata(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	meta, err := xlcore.ParseMetadata(data, c.options())
	if err != nil {
		return err
	}
	return c.write(cmd, meta)
}

func (c *cli) runSheet(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	sheet, err := xlcore.ParseSheet(data, args[1], c.options())
	if err != nil {
		return err
	}
	return c.write(cmd, sheet)
}

func (c *cli) runEval(cmd *cobra.Command, args []string) error {
	ctx, err := c.formulaContext()
	if err != nil {
		return err
	}
	result := xlcore.EvaluateFormulaResult(args[0], c.cellAddress, ctx)
	if err := c.write(cmd, result); err != nil {
		return err
	}
	if result.IsError {
		return &xlcore.FormulaError{Formula: args[0], Err: errors.New(*result.ErrorMessage)}
	}
	return nil
}

func (c *cli) formulaContext() (map[string]float64, error) {
	raw := []byte(c.contextJSON)
	if c.contextFile != "" {
		var err error
		if raw, err = os.ReadFile(c.contextFile); err != nil {
			return nil, fmt.Errorf("failed to read context file: %w", err)
		}
	}
	ctx := map[string]float64{}
	if len(raw) == 0 {
		return ctx, nil
	}
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, fmt.Errorf("invalid formula context: %w", err)
	}
	return ctx, nil
}

func (c *cli) runSum(cmd *cobra.Command, args []string) error {
	values, err := parseNumbers(args)
	if err != nil {
		return err
	}
	return c.write(cmd, aggregateResult{Result: xlcore.Sum(values), Count: len(values)})
}

func (c *cli) runAverage(cmd *cobra.Command, args []string) error {
	values, err := parseNumbers(args)
	if err != nil {
		return err
	}
	avg, err := xlcore.Average(values)
	if err != nil {
		return err
	}
	return c.write(cmd, aggregateResult{Result: avg, Count: len(values)})
}

type aggregateResult struct {
	Result float64 `json:"result"`
	Count  int     `json:"count"`
}

func parseNumbers(args []string) ([]float64, error) {
	values := make([]float64, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number: %s", arg)
		}
		values = append(values, v)
	}
	return values, nil
}

// readInput reads a workbook from path, or from stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	return os.ReadFile(path)
}

func (c *cli) writeWorkbook(cmd *cobra.Command, wb *models.Workbook) error {
	if c.sheetsDir != "" {
		if err := writeSheetFiles(wb, c.sheetsDir, c.pretty); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
		if c.outputPath == "" {
			return nil
		}
	}

	jsonData, err := output.WorkbookToJSON(wb, c.pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return c.emit(cmd, jsonData)
}

func (c *cli) write(cmd *cobra.Command, v any) error {
	jsonData, err := output.ToJSON(v, c.pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return c.emit(cmd, jsonData)
}

func (c *cli) emit(cmd *cobra.Command, jsonData []byte) error {
	if c.outputPath != "" {
		if err := os.WriteFile(c.outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}

func writeSheetFiles(wb *models.Workbook, dir string, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	used := make(map[string]bool, len(wb.Sheets))
	for i := range wb.Sheets {
		sheet := &wb.Sheets[i]
		jsonData, err := output.SheetToJSON(sheet, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, sheetFileName(sheet.Name, i, used))
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}

// sheetFileName maps a sheet name to a file name inside the output directory.
// Separators are replaced so the file cannot escape the directory, and a name
// already taken (compared case-insensitively) gets a numeric suffix starting
// at the 1-based sheet index.
func sheetFileName(name string, index int, used map[string]bool) string {
	base := filepath.Base(sheetNameReplacer.Replace(strings.TrimSpace(name)))
	if base == "" || base == "." || base == ".." {
		base = "sheet"
	}

	filename := base + ".json"
	for n := index + 1; used[strings.ToLower(filename)]; n++ {
		filename = fmt.Sprintf("%s_%d.json", base, n)
	}
	used[strings.ToLower(filename)] = true
	return filename
}

var sheetNameReplacer = strings.NewReplacer("/", "_", "\\", "_", ":", "_", "\x00", "_")
