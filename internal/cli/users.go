package cli

import (
	"fmt"

	"github.com/rpggio/clubboard/internal/domain/user"
	"github.com/spf13/cobra"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage club members",
	}
	cmd.AddCommand(newUsersListCmd())
	cmd.AddCommand(newUsersUpdateCmd())
	cmd.AddCommand(newUsersDeleteCmd())
	return cmd
}

func newUsersListCmd() *cobra.Command {
	var team string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List members",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if err := a.Session.Current().CanAccess(user.ViewAdmin); err != nil {
				return err
			}
			users, err := a.Users.List(cmd.Context())
			if err != nil {
				return err
			}
			if team != "" {
				filtered := users[:0:0]
				for _, u := range users {
					if string(u.Team) == team {
						filtered = append(filtered, u)
					}
				}
				users = filtered
			}
			if ok, err := printJSON(cmd, users); ok || err != nil {
				return err
			}
			if len(users) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No members.")
				return nil
			}
			for _, u := range users {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "- %s %s <%s> %s, %s\n", u.ID, u.Name, u.Email, u.Role, u.Team)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&team, "team", "", "Only list members of this team")
	return cmd
}

func newUsersUpdateCmd() *cobra.Command {
	var role, team string

	cmd := &cobra.Command{
		Use:   "update <user-id>",
		Short: "Set a member's role and team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if role == "" || team == "" {
				return fmt.Errorf("--role and --team are required")
			}
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if err := a.Users.Update(cmd.Context(), a.Session.Current(), args[0], user.Role(role), user.Team(team)); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s, %s\n", args[0], role, team)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "Role (e.g. \"Core Member\")")
	cmd.Flags().StringVar(&team, "team", "", "Team (e.g. \"Web\")")
	return cmd
}

func newUsersDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Remove a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete %s without --yes", args[0])
			}
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if err := a.Users.Delete(cmd.Context(), a.Session.Current(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	return cmd
}
