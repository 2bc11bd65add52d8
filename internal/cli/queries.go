package cli

import (
	"fmt"

	"github.com/rpggio/clubboard/internal/domain/query"
	"github.com/spf13/cobra"
)

func newQueriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queries",
		Short: "Submit and answer member queries",
	}
	cmd.AddCommand(newQueriesListCmd())
	cmd.AddCommand(newQueriesAddressCmd())
	cmd.AddCommand(newQueriesSubmitCmd())
	return cmd
}

func newQueriesListCmd() *cobra.Command {
	var pendingOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List queries, unaddressed first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			queries, err := a.Queries.List(cmd.Context(), a.Session.Current())
			if err != nil {
				return err
			}
			if pendingOnly {
				pending := queries[:0:0]
				for _, q := range queries {
					if !q.Addressed {
						pending = append(pending, q)
					}
				}
				queries = pending
			}
			if ok, err := printJSON(cmd, queries); ok || err != nil {
				return err
			}
			if len(queries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No queries.")
				return nil
			}
			for _, q := range queries {
				state := "pending"
				if q.Addressed {
					state = "addressed by " + q.AddressedBy
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "- %s [%s] %s: %s (%s)\n", q.ID, q.Category, q.Name, q.Message, state)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&pendingOnly, "pending", false, "Only list unaddressed queries")
	return cmd
}

func newQueriesAddressCmd() *cobra.Command {
	var solution string

	cmd := &cobra.Command{
		Use:   "address <query-id>",
		Short: "Answer a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if solution == "" {
				return fmt.Errorf("--solution is required")
			}
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			q, err := a.Queries.Address(cmd.Context(), a.Session.Current(), args[0], solution)
			if err != nil {
				return err
			}
			if ok, err := printJSON(cmd, q); ok || err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Addressed query %s\n", q.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&solution, "solution", "", "Answer text")
	return cmd
}

func newQueriesSubmitCmd() *cobra.Command {
	var name, category, message string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a query, help request or suggestion",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			sub := query.Submission{Name: name, Category: query.Category(category), Message: message}
			if err := a.Queries.Submit(cmd.Context(), sub); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Submitted %s from %s\n", category, name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Your name")
	cmd.Flags().StringVar(&category, "category", string(query.CategoryQuery), "query, help or suggestion")
	cmd.Flags().StringVar(&message, "message", "", "Message")
	return cmd
}
