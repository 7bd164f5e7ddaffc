package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	termCmd := &cobra.Command{
		Use:   "term",
		Short: "Print the remembered search term",
		Args:  cobra.NoArgs,
		RunE:  runTerm,
	}

	setCmd := &cobra.Command{
		Use:   "set <text...>",
		Short: "Replace the remembered search term",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeTerm(cmd, strings.Join(args, " "))
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget the remembered search term",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeTerm(cmd, "")
		},
	}

	termCmd.AddCommand(setCmd, clearCmd)
	RootCmd.AddCommand(termCmd)
}

func runTerm(cmd *cobra.Command, args []string) error {
	e, err := open(cfg)
	if err != nil {
		return err
	}
	defer e.Close()

	fmt.Fprintln(cmd.OutOrStdout(), e.Term.Get())
	return nil
}

func writeTerm(cmd *cobra.Command, text string) error {
	e, err := open(cfg)
	if err != nil {
		return err
	}
	defer e.Close()

	e.Session.TypeTerm(text)
	b, err := json.Marshal(struct {
		OK   bool   `json:"ok"`
		Term string `json:"term"`
	}{true, text})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}
