// Package main provides the CLI entry point for flexparse: a thin
// front end over the candidate-extraction pipeline, useful for inspecting
// what the parser does with a given blob of LLM output without writing a
// Go program against the library.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/flexparse/flexparse"
	"go.jacobcolvin.com/flexparse/flexscore"
	"go.jacobcolvin.com/flexparse/log"
	"go.jacobcolvin.com/flexparse/profile"
	"go.jacobcolvin.com/flexparse/version"
)

var (
	logLevel  string
	logFormat string
)

func main() {
	cfg := flexparse.NewConfig()
	profileCfg := profile.NewConfig()

	rootCmd := &cobra.Command{
		Use:           "flexparse",
		Short:         "Extract and rank structured-data candidates from messy text",
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "logfmt", "log format (logfmt, json)")

	cfg.RegisterFlags(rootCmd.PersistentFlags())
	profileCfg.RegisterFlags(rootCmd.PersistentFlags())

	if err := cfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	rootCmd.AddCommand(newParseCmd(cfg, profileCfg))
	rootCmd.AddCommand(newSchemaCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func setupLogger() error {
	handler, err := log.CreateHandlerWithStrings(os.Stderr, logLevel, logFormat)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(handler))

	return nil
}

func newParseCmd(cfg *flexparse.Config, profileCfg *profile.Config) *cobra.Command {
	var inputFile string

	cmd := &cobra.Command{
		Use:   "parse [flags]",
		Short: "Extract and rank candidates from stdin or a file",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := setupLogger(); err != nil {
				return err
			}

			profiler := profileCfg.NewProfiler()
			if err := profiler.Start(); err != nil {
				return err
			}

			defer func() { _ = profiler.Stop() }()

			return runParse(cfg, inputFile)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "file", "f", "-", "input file path (- for stdin)")

	return cmd
}

func runParse(cfg *flexparse.Config, inputFile string) error {
	var (
		data []byte
		err  error
	)

	if inputFile == "-" || inputFile == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(inputFile)
	}

	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	parser := cfg.NewParser()
	candidates := parser.Parse(string(data))

	ranked := flexscore.RankCandidates(candidates)

	type rankedOut struct {
		Score      int             `json:"score"`
		Diagnostic json.RawMessage `json:"diagnostic"`
	}

	out := make([]rankedOut, 0, len(ranked))

	for _, r := range ranked {
		diag, err := r.Value.DiagnosticJSON(r.Score)
		if err != nil {
			return fmt.Errorf("rendering diagnostic: %w", err)
		}

		out = append(out, rankedOut{Score: r.Score, Diagnostic: diag})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <registered-type>",
		Short: "Report that no types registered via flexparse.Register are available in this binary",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return fmt.Errorf("schema lookup for %q: no types are statically registered in this binary; "+
				"link a program that calls flexparse.Register and import cmd/flexparse as a library entry point instead", args[0])
		},
	}
}
