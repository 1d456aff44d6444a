package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/blockalign/blockalign/align"
	"github.com/blockalign/blockalign/align/store"
)

var (
	configPath   string // YAML config file
	logLevel     string // Log verbosity level
	cacheBackend string // Weight table store backend
	cacheDir     string // Directory for the file backend
	cachePath    string // Database path for the sqlite backend

	seqA  string // First sequence, inline
	seqB  string // Second sequence, inline
	fileA string // First sequence, from file
	fileB string // Second sequence, from file
	exact bool   // Also report the symbol-level score
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "blockalign",
	Short: "Approximate sequence alignment over precomputed block weights",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// alignReport is what `align` prints.
type alignReport struct {
	Score       int    `yaml:"score"`
	BlockLength int    `yaml:"block_length"`
	Elapsed     string `yaml:"elapsed"`
	ExactScore  *int   `yaml:"exact_score,omitempty"`
}

// precomputeReport is what `precompute` prints.
type precomputeReport struct {
	BlockLength int `yaml:"block_length"`
	Pairs       int `yaml:"pairs"`
}

// alignCmd scores two sequences with the block aligner
var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Score two sequences block by block",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, b, err := readPair()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		e, closeStore, err := openEngine(ctx, resolveConfig(cmd))
		if err != nil {
			return err
		}
		defer closeStore()

		logrus.Infof("Aligning %d x %d symbols", len([]rune(a)), len([]rune(b)))
		res, err := e.Align(ctx, a, b)
		if err != nil {
			return err
		}
		report := alignReport{Score: res.Score, BlockLength: res.BlockLength, Elapsed: res.Elapsed.String()}
		if exact {
			score := align.AlignSymbols(a, b, e.Scoring())
			report.ExactScore = &score
		}
		return writeYAML(cmd, report)
	},
}

// precomputeCmd warms the weight table store for a pair's block length
var precomputeCmd = &cobra.Command{
	Use:   "precompute",
	Short: "Build or load the weight table for the block length of two sequences",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, b, err := readPair()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		e, closeStore, err := openEngine(ctx, resolveConfig(cmd))
		if err != nil {
			return err
		}
		defer closeStore()

		if err := e.Precompute(ctx, a, b); err != nil {
			return err
		}
		if err := e.Flush(ctx); err != nil {
			return err
		}
		return writeYAML(cmd, precomputeReport{BlockLength: e.BlockLength(), Pairs: e.Table().Len()})
	},
}

// symbolsCmd scores two sequences with the exact symbol-level aligner
var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "Score two sequences symbol by symbol (exact global alignment)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, b, err := readPair()
		if err != nil {
			return err
		}
		s := resolveConfig(cmd).Scoring.Scoring()
		if err := s.Validate(); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "score: %d\n", align.AlignSymbols(a, b, s))
		return err
	},
}

// resolveConfig loads --config (or defaults) and applies cache flags the
// user set explicitly.
func resolveConfig(cmd *cobra.Command) Config {
	cfg := DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = loadConfig(configPath)
		if err != nil {
			logrus.Fatalf("Failed to load config: %v", err)
		}
	}
	if cmd.Flags().Changed("cache-backend") {
		cfg.Cache.Backend = cacheBackend
	}
	if cmd.Flags().Changed("cache-dir") {
		cfg.Cache.Dir = cacheDir
	}
	if cmd.Flags().Changed("cache-path") {
		cfg.Cache.Path = cachePath
	}
	return cfg
}

func openEngine(ctx context.Context, cfg Config) (*align.Engine, func(), error) {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(ctx, cfg.Cache)
	if err != nil {
		return nil, nil, err
	}
	e, err := align.NewEngine(st, align.WithScoring(cfg.Scoring.Scoring()))
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}
	logrus.Debugf("Using %s cache backend, %s", cfg.Cache.Backend, e.Scoring())
	return e, func() {
		if err := st.Close(); err != nil {
			logrus.Warnf("closing cache store: %v", err)
		}
	}, nil
}

func readPair() (string, string, error) {
	a, err := readSequence(seqA, fileA)
	if err != nil {
		return "", "", err
	}
	b, err := readSequence(seqB, fileB)
	if err != nil {
		return "", "", err
	}
	return a, b, nil
}

func writeYAML(cmd *cobra.Command, v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSequenceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&seqA, "a", "", "First sequence")
	cmd.Flags().StringVar(&seqB, "b", "", "Second sequence")
	cmd.Flags().StringVar(&fileA, "a-file", "", "Read the first sequence from a file (FASTA headers ignored)")
	cmd.Flags().StringVar(&fileB, "b-file", "", "Read the second sequence from a file (FASTA headers ignored)")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (scoring, cache)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&cacheBackend, "cache-backend", store.BackendFile, "Weight table store (memory, file, sqlite)")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", store.DefaultDir, "Directory for the file cache backend")
	rootCmd.PersistentFlags().StringVar(&cachePath, "cache-path", store.DefaultSQLitePath, "Database for the sqlite cache backend")

	addSequenceFlags(alignCmd)
	alignCmd.Flags().BoolVar(&exact, "exact", false, "Also report the exact symbol-level score")
	addSequenceFlags(precomputeCmd)
	addSequenceFlags(symbolsCmd)

	rootCmd.AddCommand(alignCmd)
	rootCmd.AddCommand(precomputeCmd)
	rootCmd.AddCommand(symbolsCmd)
}
