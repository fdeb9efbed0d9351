package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mawngo/gower/internal/config"
	"github.com/mawngo/gower/internal/gower"
	"github.com/mawngo/gower/internal/table"
	"github.com/phsym/console-slog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func Init() *slog.LevelVar {
	level := &slog.LevelVar{}
	logger := slog.New(
		console.NewHandler(os.Stderr, &console.HandlerOptions{
			Level:      level,
			TimeFormat: time.Kitchen,
		}))
	slog.SetDefault(logger)
	cobra.EnableCommandSorting = false
	return level
}

type CLI struct {
	command *cobra.Command
}

// NewCLI create new CLI instance and set up application config.
func NewCLI() *CLI {
	level := Init()

	f := flags{
		Output:    ".",
		Precision: 7,
		ZeroRange: gower.ZeroRangeMatch.String(),
		Files:     1,
	}

	command := cobra.Command{
		Use:   "gower [files...]",
		Short: "Compute the Gower distance matrix of mixed-type tables",
		Long: "Compute the Gower distance matrix of each CSV, TSV or XLSX table.\n" +
			"Numeric columns are range normalized, other columns compared for equality.\n" +
			"Use --type to mark columns as categorical, symmetric-binary or asymmetric-binary.",
		Args: cobra.MinimumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			debug, err := cmd.PersistentFlags().GetBool("debug")
			if err != nil {
				return err
			}
			if debug {
				level.Set(slog.LevelDebug)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			cfg, err := config.Load(f.Config)
			if err != nil {
				return err
			}
			if err := f.apply(cmd, cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if f.Output != "-" {
				if _, err := os.Stat(f.Output); err != nil {
					if err := os.MkdirAll(f.Output, os.ModePerm); err != nil {
						return fmt.Errorf("error creating output directory %s: %w", f.Output, err)
					}
				}
			}

			limit := cfg.Files
			if f.Output == "-" {
				limit = 1
			}
			var g errgroup.Group
			g.SetLimit(limit)
			for _, arg := range args {
				g.Go(func() error {
					return handleFile(arg, cfg, f)
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			slog.Info("Processing completed", slog.Int("files", len(args)), slog.Duration("took", time.Since(now)))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	command.Flags().StringVarP(&f.Output, "out", "o", f.Output, "Output directory name, - for stdout")
	command.Flags().StringVarP(&f.Config, "config", "c", f.Config, "YAML config file with weights, types and defaults")
	command.Flags().StringArrayVarP(&f.Weights, "weight", "w", nil, "Feature weight as name=value, repeatable (default 1 for every feature)")
	command.Flags().StringArrayVarP(&f.Types, "type", "t", nil, "Feature type as name=[numeric,categorical,symmetric-binary,asymmetric-binary], repeatable")
	command.Flags().StringVar(&f.ZeroRange, "zero-range", f.ZeroRange, "Handling of constant numeric features [match,skip,error]")
	command.Flags().StringSliceVar(&f.Missing, "missing", table.DefaultMissing, "Cell values read as missing")
	command.Flags().StringVar(&f.ID, "id", f.ID, "Column labelling the rows, excluded from the distance")
	command.Flags().StringVar(&f.Sheet, "sheet", f.Sheet, "Sheet of xlsx input (default first sheet)")
	command.Flags().IntVarP(&f.Precision, "precision", "p", f.Precision, "Digits after the decimal point in output [-1=shortest]")
	command.Flags().BoolVar(&f.Overwrite, "overwrite", f.Overwrite, "Overwrite output if exists")
	command.Flags().IntVar(&f.Concurrency, "concurrency", f.Concurrency, "Maximum cpu used computing each matrix [0=auto]")
	command.Flags().IntVar(&f.Files, "files", f.Files, "Maximum number of files processed at a time")
	command.PersistentFlags().Bool("debug", false, "Enable debug mode")
	command.Flags().SortFlags = false
	return &CLI{&command}
}

type flags struct {
	Output      string
	Config      string
	Weights     []string
	Types       []string
	ZeroRange   string
	Missing     []string
	ID          string
	Sheet       string
	Precision   int
	Overwrite   bool
	Concurrency int
	Files       int
}

// apply overrides cfg with every flag set on the command line.
func (f flags) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed
	if len(f.Weights) > 0 && cfg.Weights == nil {
		cfg.Weights = make(map[string]float64, len(f.Weights))
	}
	for _, kv := range f.Weights {
		name, value, err := splitPair(kv)
		if err != nil {
			return fmt.Errorf("invalid --weight: %w", err)
		}
		w, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid --weight %q: %w", kv, err)
		}
		cfg.Weights[name] = w
	}
	if len(f.Types) > 0 && cfg.Types == nil {
		cfg.Types = make(map[string]string, len(f.Types))
	}
	for _, kv := range f.Types {
		name, value, err := splitPair(kv)
		if err != nil {
			return fmt.Errorf("invalid --type: %w", err)
		}
		cfg.Types[name] = value
	}
	if changed("zero-range") {
		cfg.ZeroRange = f.ZeroRange
	}
	if changed("missing") || cfg.Missing == nil {
		cfg.Missing = f.Missing
	}
	if changed("id") {
		cfg.ID = f.ID
	}
	if changed("sheet") {
		cfg.Sheet = f.Sheet
	}
	if changed("precision") {
		cfg.Precision = f.Precision
	}
	if changed("concurrency") {
		cfg.Concurrency = f.Concurrency
	}
	if changed("files") {
		cfg.Files = f.Files
	}
	return nil
}

func splitPair(kv string) (string, string, error) {
	name, value, ok := strings.Cut(kv, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("%q is not name=value", kv)
	}
	return name, strings.TrimSpace(value), nil
}

func handleFile(path string, cfg *config.Config, f flags) error {
	basename := filepath.Base(path)
	outfile := "-"
	if f.Output != "-" {
		outfile = filepath.Join(f.Output, strings.TrimSuffix(basename, filepath.Ext(basename))+".gower.csv")
		if stats, err := os.Stat(outfile); err == nil {
			slog.Info("File existed",
				slog.Any("path", outfile),
				slog.Bool("isDir", stats.IsDir()),
				slog.Bool("overwrite", f.Overwrite),
			)
			if !f.Overwrite || stats.IsDir() {
				return nil
			}
		}
	}

	now := time.Now()
	frame, err := table.ReadFile(path, cfg.ReadOptions()...)
	if err != nil {
		slog.Error("Err reading table", slog.String("path", path), slog.Any("err", err))
		return err
	}

	var labels []string
	if cfg.ID != "" {
		labels, frame, err = splitLabels(frame, cfg.ID)
		if err != nil {
			slog.Error("Err reading id column", slog.String("path", path), slog.Any("err", err))
			return err
		}
	}

	options, err := cfg.Options()
	if err != nil {
		return err
	}
	slog.Info("Processing",
		slog.String("file", basename),
		slog.Int("rows", frame.Len()),
		slog.Int("features", len(frame.Columns())),
	)
	model, err := gower.NewCalculator(options...).Fit(frame)
	if err != nil {
		slog.Error("Err preparing table", slog.String("path", path), slog.Any("err", err))
		return err
	}
	types, weights := model.Types(), model.Weights()
	for _, name := range frame.Names() {
		slog.Debug("Feature",
			slog.String("file", basename),
			slog.String("name", name),
			slog.String("type", types[name].String()),
			slog.Float64("weight", weights[name]),
		)
	}

	d := model.Matrix()
	slog.Debug("Matrix computed",
		slog.String("file", basename),
		slog.Duration("elapsed", time.Since(now)),
	)

	if err := writeMatrixFile(outfile, d, labels, cfg.Precision); err != nil {
		slog.Error("Error writing matrix",
			slog.String("out", outfile),
			slog.Any("err", err))
		return err
	}
	slog.Info("Distance completed",
		slog.String("out", outfile),
		slog.Duration("took", time.Since(now)))
	return nil
}

// splitLabels extracts the id column as row labels and removes it from the frame.
func splitLabels(frame *table.Frame, id string) ([]string, *table.Frame, error) {
	col, err := frame.Column(id)
	if err != nil {
		return nil, nil, err
	}
	labels := make([]string, col.Len())
	for i := range labels {
		if !col.Missing(i) {
			labels[i] = col.Text(i)
		}
	}
	rest, err := frame.Drop(id)
	if err != nil {
		return nil, nil, err
	}
	return labels, rest, nil
}

func (cli *CLI) Execute() {
	if err := cli.command.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
