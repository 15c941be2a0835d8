// Package cli wires sift's commands. The root command is the search
// itself; everything else (history, index, tui) hangs off it.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pders01/sift/internal/config"
	"github.com/pders01/sift/internal/debuglog"
	"github.com/pders01/sift/internal/history"
	"github.com/pders01/sift/internal/search"
)

var (
	cfgPath     string
	logLevel    string
	saveHistory bool

	// loaded once in the persistent pre-run, shared by subcommands
	cfg *config.Config

	// swappable in tests
	searcher search.Searcher = search.NewEngine()
)

var rootCmd = &cobra.Command{
	Use:   "sift <pattern> <path>",
	Short: "search a file for lines containing a pattern",
	Long: `sift prints the lines of a file that contain a pattern, in file order,
exactly as they appear in the file.

The pattern is a literal substring, not a regular expression. Set the
environment variable IGNORE_CASE (any value, including empty) to match
case-insensitively.

An invocation with exactly two bare arguments is always a search, even
when the pattern happens to equal a subcommand name. Subcommands that
take their own arguments are invoked with a leading "--", for example:

  sift index -- notes.txt`,
	// The resolver owns argument counting so its usage diagnostic is the
	// one the user sees.
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}

		level := cfg.Log.Level
		if logLevel != "" {
			level = logLevel
		}
		return debuglog.Setup(debuglog.ParseLogLevel(level), cfg.Log.Path)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = debuglog.Close()
	},
	RunE: runRoot,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug log level: debug, info, warn, error, off")
	rootCmd.Flags().BoolVar(&saveHistory, "save", false, "record this search in the history database")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Execute runs the root command and maps failures onto the diagnostic
// stream. Usage errors print their usage text verbatim; everything else
// is surfaced as an application error. The caller decides the exit code.
func Execute() error {
	err := dispatch(os.Args[1:])
	if err == nil {
		return nil
	}

	var usageErr *config.UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(os.Stderr, usageErr.Usage)
	} else {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
	}
	return err
}

// dispatch routes args onto the command tree and runs it.
func dispatch(args []string) error {
	rootCmd.SetArgs(routeArgs(args))
	return rootCmd.Execute()
}

// routeArgs pins the two-token <pattern> <path> shape to the search
// path, so a pattern equal to a subcommand name ("version", "index")
// still searches. An explicit "--" keeps the normal routing.
func routeArgs(args []string) []string {
	var flags, payload []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return args
		case strings.HasPrefix(arg, "-"):
			flags = append(flags, arg)
			if flagTakesValue(arg) && !strings.Contains(arg, "=") && i+1 < len(args) {
				flags = append(flags, args[i+1])
				i++
			}
		default:
			payload = append(payload, arg)
		}
	}
	if len(payload) != 2 {
		return args
	}
	routed := append(flags, "--")
	return append(routed, payload...)
}

// flagTakesValue reports whether a root-level flag consumes the next
// token as its value.
func flagTakesValue(arg string) bool {
	switch strings.TrimLeft(arg, "-") {
	case "config", "log-level":
		return true
	}
	return false
}

func runRoot(cmd *cobra.Command, args []string) error {
	req, err := config.Resolve(append([]string{cmd.Root().Name()}, args...), os.LookupEnv)
	if err != nil {
		return err
	}

	debuglog.Debugf("search pattern=%q path=%q case_sensitive=%v",
		req.Pattern, req.Path, req.CaseSensitive)

	lines, err := searcher.Run(req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}

	if saveHistory || cfg.History.Enabled {
		if recErr := recordSearch(req, len(lines)); recErr != nil {
			// history is best effort; the search already succeeded
			debuglog.Warnf("recording search: %v", recErr)
		}
	}

	return nil
}

func recordSearch(req config.Request, matches int) error {
	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Save(&history.Entry{
		Pattern:       req.Pattern,
		Path:          req.Path,
		CaseSensitive: req.CaseSensitive,
		Matches:       matches,
	})
}
