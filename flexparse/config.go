package flexparse

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/flexparse/flexparser"
)

// Flags holds CLI flag names for parser configuration, mirroring
// magicschema.Config's Flags/Config split so callers can rename flags
// without touching defaults.
type Flags struct {
	MaxCandidates    string
	MaxInputSize     string
	RepairAttemptCap string
	MaxDepth         string
}

// Config holds CLI flag values bridging spec §5's resource bounds to
// pflag/cobra for cmd/flexparse, the same way magicschema.Config bridges
// schema-generation options.
type Config struct {
	Flags            Flags
	MaxCandidates    int
	MaxInputSize     int
	RepairAttemptCap int
	MaxDepth         int
}

// NewConfig returns a Config with default flag names.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{
			MaxCandidates:    "max-candidates",
			MaxInputSize:     "max-input-size",
			RepairAttemptCap: "repair-attempt-cap",
			MaxDepth:         "max-depth",
		},
	}
}

// RegisterFlags adds parser/coercion bound flags to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.IntVar(&c.MaxCandidates, c.Flags.MaxCandidates, 20,
		"heuristic candidate cap stored on the parser (extraction uses its fixed cap of 20)")
	flags.IntVar(&c.MaxInputSize, c.Flags.MaxInputSize, 1<<20,
		"heuristic size guard stored on the parser (extraction uses its fixed 1 MiB guard)")
	flags.IntVar(&c.RepairAttemptCap, c.Flags.RepairAttemptCap, 10,
		"maximum combined JSON repair attempts per candidate")
	flags.IntVar(&c.MaxDepth, c.Flags.MaxDepth, 100,
		"maximum coercion recursion depth (not passed to the parser built by NewParser)")
}

// RegisterCompletions registers no-file-path shell completions for every
// numeric flag, following magicschema.Config.RegisterCompletions.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{c.Flags.MaxCandidates, c.Flags.MaxInputSize, c.Flags.RepairAttemptCap, c.Flags.MaxDepth} {
		if err := cmd.RegisterFlagCompletionFunc(flag, noFileComp); err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	return nil
}

// NewParser builds a flexparser.Parser from this Config.
func (c *Config) NewParser() *flexparser.Parser {
	return flexparser.New(
		flexparser.WithMaxCandidates(c.MaxCandidates),
		flexparser.WithMaxInputSize(c.MaxInputSize),
		flexparser.WithRepairAttemptCap(c.RepairAttemptCap),
	)
}
