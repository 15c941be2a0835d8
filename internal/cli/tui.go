package cli

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pders01/sift/internal/config"
	"github.com/pders01/sift/internal/search"
	"github.com/pders01/sift/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui -- <path>",
	Short: "Filter a file's lines interactively",
	Long: `Open a file in an interactive view and filter its lines as you type.
The match predicate is the same substring containment as the plain search;
tab toggles case sensitivity (IGNORE_CASE sets the starting mode).

The "--" keeps the path from reading as a plain two-token search.`,
	Args: cobra.ExactArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return &search.ReadError{Path: path, Err: err}
	}

	_, ignoreCase := os.LookupEnv(config.IgnoreCaseVar)
	app := tui.NewApp(cfg, path, search.SplitLines(string(data)), !ignoreCase)

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
