package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/AgaevDavid/filescan/internal/filestat"
	"github.com/AgaevDavid/filescan/internal/search"
)

// EnvPrefix prefixes the environment variables that override flag defaults.
const EnvPrefix = "FILESCAN"

// ErrInvalidOption is returned for flag or config values out of range.
var ErrInvalidOption = errors.New("invalid option")

// Options configures a search and how its results are presented.
type Options struct {
	// Directory is the directory to search.
	Directory string
	// Pattern is the glob applied to file names.
	Pattern string
	// MaxFiles stops the search after that many files (0=unlimited).
	MaxFiles int
	// TopN is the number of largest files to list.
	TopN int
	// Output represents output format (table or json).
	Output string
	// Interactive prompts for directory, pattern and limit.
	Interactive bool
	// LogLevel is the minimum level logged.
	LogLevel string
	// LogFile receives log output instead of stderr when set.
	LogFile string
	// Debug is a shortcut for LogLevel=debug.
	Debug bool
}

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Execute runs the CLI with the process arguments. An interrupt cancels a
// running search.
func (c CLI) Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return c.Command().ExecuteContext(ctx)
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "filescan [flags] [directory]",
		Short: "Find the largest files in a directory",
		Long: heredoc.Doc(`
			filescan lists the files of a directory whose names match a glob
			pattern, reports the largest one and prints summary statistics.

			Subdirectories are not searched. Patterns follow Go's filepath.Match:
			'*' matches any run of characters, '?' a single character and
			'[a-z]' a character class.

			Without a directory argument filescan asks for the directory, the
			pattern and the file limit when stdin is a terminal, and searches
			the current directory otherwise.

			Flags can also be set through FILESCAN_<FLAG> environment variables
			(e.g. FILESCAN_MAX_FILES=10) or a config file passed with --config.
		`),
		Example: heredoc.Doc(`
			filescan ~/Downloads
			filescan -p '*.log' -n 100 /var/log
			filescan -o json -t 10 .
		`),
		Args:          cobra.MaximumNArgs(1),
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := loadOptions(v, cmd.Flags(), args)
			if err != nil {
				return err
			}

			return logic(cmd.Context(), options, streams{
				in:  cmd.InOrStdin(),
				out: cmd.OutOrStdout(),
				err: cmd.ErrOrStderr(),
			})
		},
	}

	cmd.SetVersionTemplate("{{.Version}}\n")
	registerFlags(cmd.Flags())

	return cmd
}

func registerFlags(flags *pflag.FlagSet) {
	flags.StringP("pattern", "p", search.DefaultPattern, "Glob pattern file names must match (e.g. *.txt)")
	flags.IntP("max-files", "n", 0, "Stop after this many files (0=unlimited)")
	flags.IntP("top", "t", filestat.DefaultTopN, "Number of largest files to list")
	flags.StringP("output", "o", "table", "Output format: table or json")
	flags.BoolP("interactive", "i", false, "Prompt for directory, pattern and file limit")
	flags.String("config", "", "Config file (yaml, toml or json)")
	flags.String("log-level", "warn", "Log level: debug, info, warn or error")
	flags.String("log-file", "", "Write logs to this file (rotated) instead of stderr")
	flags.Bool("debug", false, "Enable debug output")

	flags.SortFlags = false
}

// loadOptions resolves options with the precedence flags, environment,
// config file, defaults.
func loadOptions(v *viper.Viper, flags *pflag.FlagSet, args []string) (Options, error) {
	if err := v.BindPFlags(flags); err != nil {
		return Options{}, fmt.Errorf("binding flags: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)

		if err := v.ReadInConfig(); err != nil {
			return Options{}, fmt.Errorf("reading config %q: %w", file, err)
		}
	}

	options := Options{
		Directory:   v.GetString("directory"),
		Pattern:     v.GetString("pattern"),
		MaxFiles:    v.GetInt("max-files"),
		TopN:        v.GetInt("top"),
		Output:      strings.ToLower(v.GetString("output")),
		Interactive: v.GetBool("interactive"),
		LogLevel:    v.GetString("log-level"),
		LogFile:     v.GetString("log-file"),
		Debug:       v.GetBool("debug"),
	}

	if len(args) > 0 {
		options.Directory = args[0]
	}

	allowedOutputs := []string{"table", "json"}
	if !slices.Contains(allowedOutputs, options.Output) {
		return Options{}, fmt.Errorf("%w: output format %q: must be one of %v",
			ErrInvalidOption, options.Output, allowedOutputs)
	}

	if options.MaxFiles < 0 {
		return Options{}, fmt.Errorf("%w: max-files cannot be negative", ErrInvalidOption)
	}

	if options.TopN < 0 {
		return Options{}, fmt.Errorf("%w: top cannot be negative", ErrInvalidOption)
	}

	return options, nil
}
