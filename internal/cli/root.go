// Package cli implements the hnsearch commands.
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fragmede/hnsearch/internal/config"
	"github.com/fragmede/hnsearch/internal/ui"
)

var cfg = config.Default().FromEnv()

// RootCmd launches the interactive search UI.
var RootCmd = &cobra.Command{
	Use:          "hnsearch",
	Short:        "Search Hacker News stories from the terminal",
	Long:         "Interactive Hacker News search. The last search term is remembered between runs.",
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	f := RootCmd.PersistentFlags()
	f.StringVarP(&cfg.DBPath, "db", "d", cfg.DBPath, "Database path (env HNSEARCH_DB)")
	f.StringVar(&cfg.Endpoint, "endpoint", cfg.Endpoint, "Search endpoint; the term is appended (env HNSEARCH_ENDPOINT)")
	f.StringVarP(&cfg.Mode, "mode", "m", cfg.Mode, "Filter mode: server or client (env HNSEARCH_MODE)")
	f.StringVar(&cfg.Policy, "policy", cfg.Policy, "Overlapping fetches: latest or last-write-wins")
	f.StringVarP(&cfg.Where, "where", "w", "", "Extra filter expression, e.g. 'Points > 100'")
	f.DurationVar(&cfg.FetchTimeout, "timeout", cfg.FetchTimeout, "Per-fetch timeout")
	f.IntVar(&cfg.Retries, "retries", cfg.Retries, "Extra attempts after a failed fetch")
	f.IntVar(&cfg.Pages, "pages", cfg.Pages, "Result pages to fetch per search")
	f.BoolVar(&cfg.NoCache, "no-cache", false, "Do not read or write cached results")
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

func runTUI(cmd *cobra.Command, args []string) error {
	env, err := open(cfg)
	if err != nil {
		return err
	}
	defer env.Close()

	app := ui.NewApp(env.Session, ui.Options{Logger: env.Logger})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
