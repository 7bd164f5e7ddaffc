package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fragmede/hnsearch/internal/search"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [term...]",
		Short: "Run one search and print the results as JSON",
		Long:  "Run one search and print the visible results as JSON. Without a term the remembered term is used.",
		RunE:  runSearch,
	}

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	e, err := open(cfg)
	if err != nil {
		return err
	}
	defer e.Close()

	s := e.Session
	var req search.Request
	if len(args) > 0 {
		s.TypeTerm(strings.Join(args, " "))
		req = s.Submit()
	} else {
		req = s.Start()
	}
	s.Load(cmd.Context(), req)

	st := s.State()
	if st.IsError {
		return fmt.Errorf("search: %w", st.Err)
	}

	b, err := json.MarshalIndent(s.Visible(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}
