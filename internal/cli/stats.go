package cli

import (
	"fmt"

	"github.com/rpggio/clubboard/internal/domain/stats"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show and submit monthly stats",
	}
	cmd.AddCommand(newStatsShowCmd())
	cmd.AddCommand(newStatsSubmitCmd())
	return cmd
}

type statsReport struct {
	Overview         stats.Overview    `json:"overview"`
	NeedsMediaEntry  bool              `json:"needs_media_entry"`
	NeedsDesignEntry bool              `json:"needs_design_entry"`
	Teams            []stats.TeamStats `json:"teams,omitempty"`
	Warnings         []string          `json:"warnings,omitempty"`
}

func newStatsShowCmd() *cobra.Command {
	var teams bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the dashboard summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()
			ctx := cmd.Context()

			var report statsReport
			report.Overview, err = a.Stats.Overview(ctx)
			if err != nil {
				report.Warnings = append(report.Warnings, err.Error())
			}
			if report.NeedsMediaEntry, err = a.Stats.NeedsMediaEntry(ctx); err != nil {
				report.Warnings = append(report.Warnings, err.Error())
			}
			if report.NeedsDesignEntry, err = a.Stats.NeedsDesignEntry(ctx); err != nil {
				report.Warnings = append(report.Warnings, err.Error())
			}
			if teams {
				if report.Teams, err = a.Stats.Teams(ctx); err != nil {
					return err
				}
			}

			if ok, err := printJSON(cmd, report); ok || err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			c := report.Overview.Counters
			_, _ = fmt.Fprintf(out, "Events: %d total, %d completed, %d pending\n", c.TotalEvents, c.Completed, c.Pending())
			_, _ = fmt.Fprintf(out, "Followers: instagram=%d linkedin=%d youtube=%d\n", c.Insta, c.Linkedin, c.Youtube)
			t := report.Overview.MediaTrend
			_, _ = fmt.Fprintf(out, "Media trend: instagram %s, linkedin %s, youtube %s\n", t.Instagram, t.Linkedin, t.Youtube)
			_, _ = fmt.Fprintf(out, "Design trend: %s\n", report.Overview.DesignTrend)
			if report.NeedsMediaEntry {
				_, _ = fmt.Fprintln(out, "Media stats for this month are missing.")
			}
			if report.NeedsDesignEntry {
				_, _ = fmt.Fprintln(out, "Design stats for this month are missing.")
			}
			for _, team := range report.Teams {
				_, _ = fmt.Fprintf(out, "- %s: %d events\n", team.Name, team.TotalEvents)
				for _, m := range team.Members {
					_, _ = fmt.Fprintf(out, "    %s: %d (%d%%)\n", m.Name, m.Events, team.Share(m))
				}
			}
			for _, w := range report.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&teams, "teams", false, "Include per-team contribution counts")
	return cmd
}

func newStatsSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit this month's stats",
	}
	cmd.AddCommand(newStatsSubmitMediaCmd())
	cmd.AddCommand(newStatsSubmitDesignCmd())
	return cmd
}

func newStatsSubmitMediaCmd() *cobra.Command {
	var instagram, linkedin, youtube int

	cmd := &cobra.Command{
		Use:   "media",
		Short: "Submit this month's follower counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			in := stats.MediaInput{
				Instagram: changedInt(cmd, "instagram", instagram),
				Linkedin:  changedInt(cmd, "linkedin", linkedin),
				Youtube:   changedInt(cmd, "youtube", youtube),
			}
			series, err := a.Stats.SubmitMedia(cmd.Context(), a.Session.Current(), in)
			if err != nil {
				return err
			}
			if ok, err := printJSON(cmd, series); ok || err != nil {
				return err
			}
			latest, _ := series.Latest()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Recorded media stats for %s %d\n", latest.Month, latest.Year)
			return nil
		},
	}
	cmd.Flags().IntVar(&instagram, "instagram", 0, "Instagram followers")
	cmd.Flags().IntVar(&linkedin, "linkedin", 0, "LinkedIn followers")
	cmd.Flags().IntVar(&youtube, "youtube", 0, "YouTube subscribers")
	return cmd
}

func newStatsSubmitDesignCmd() *cobra.Command {
	var posters int

	cmd := &cobra.Command{
		Use:   "design",
		Short: "Submit this month's poster count",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			in := stats.DesignInput{Posters: changedInt(cmd, "posters", posters)}
			series, err := a.Stats.SubmitDesign(cmd.Context(), a.Session.Current(), in)
			if err != nil {
				return err
			}
			if ok, err := printJSON(cmd, series); ok || err != nil {
				return err
			}
			latest, _ := series.Latest()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Recorded design stats for %s %d\n", latest.Month, latest.Year)
			return nil
		},
	}
	cmd.Flags().IntVar(&posters, "posters", 0, "Posters designed this month")
	return cmd
}

// changedInt returns nil for flags left unset so validation reports them missing.
func changedInt(cmd *cobra.Command, name string, v int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}
