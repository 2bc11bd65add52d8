package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/rpggio/clubboard/internal/domain/event"
	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List and progress events",
	}
	cmd.AddCommand(newEventsListCmd())
	cmd.AddCommand(newEventsTransitionCmd())
	cmd.AddCommand(newEventsCreateCmd())
	return cmd
}

func newEventsListCmd() *cobra.Command {
	var (
		status   string
		techLead bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events, optionally filtered by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			events, err := a.Events.List(cmd.Context())
			if err != nil {
				return err
			}

			if techLead {
				buckets := event.TechLeadBuckets(events, time.Now())
				if ok, err := printJSON(cmd, buckets); ok || err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				printBucket(out, "Needs links", buckets.Submittable)
				printBucket(out, "Editable", buckets.Editable)
				printBucket(out, "Past", buckets.Disabled)
				return nil
			}

			if status != "" {
				events = event.ByStatus(events, event.Status(status))
			}
			if ok, err := printJSON(cmd, events); ok || err != nil {
				return err
			}
			if len(events) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No events.")
				return nil
			}
			for _, ev := range events {
				printEvent(cmd.OutOrStdout(), ev)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", `Filter by status ("under approval", "ongoing", "completed")`)
	cmd.Flags().BoolVar(&techLead, "techlead", false, "Group events the way the tech lead view does")
	return cmd
}

func newEventsTransitionCmd() *cobra.Command {
	var fields map[string]string

	cmd := &cobra.Command{
		Use:   "transition <event-id> <action>",
		Short: "Advance or revert an event (approve, submit_links, submit_design, advance, submit_media, complete, revert)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			req := event.TransitionRequest{EventID: args[0], Action: event.Action(args[1])}
			if len(fields) > 0 {
				req.Fields = make(map[event.Field]string, len(fields))
				for k, v := range fields {
					req.Fields[event.Field(k)] = v
				}
			}
			ev, err := a.Events.Transition(cmd.Context(), a.Session.Current(), req)
			if err != nil {
				return err
			}
			if ok, err := printJSON(cmd, ev); ok || err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Event %s is now at %s (%d), status %s\n",
				ev.ID, ev.Stage(), ev.ProgressIndex, ev.Status)
			return nil
		},
	}
	cmd.Flags().StringToStringVar(&fields, "field", nil, "Field values as name=value (e.g. --field formLink=https://...)")
	return cmd
}

func newEventsCreateCmd() *cobra.Command {
	var req event.CreateRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Propose a new event",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Name == "" || req.Organiser == "" {
				return fmt.Errorf("--name and --organiser are required")
			}
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ev, err := a.Events.Create(cmd.Context(), a.Session.Current(), req)
			if err != nil {
				return err
			}
			if ok, err := printJSON(cmd, ev); ok || err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Proposed event %q (id %s)\n", ev.Name, ev.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "Event name")
	cmd.Flags().StringVar(&req.Organiser, "organiser", "", "Organising team or member")
	cmd.Flags().StringVar(&req.EventDate, "date", "", "Event date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Time, "time", "", "Start time")
	cmd.Flags().StringVar(&req.Venue, "venue", "", "Venue")
	cmd.Flags().StringVar(&req.TargetYear, "target-year", "", "Target year of study")
	cmd.Flags().StringVar(&req.ExpectedParticipants, "participants", "", "Expected participant count")
	cmd.Flags().StringVar(&req.Proposal, "proposal", "", "Proposal document link")
	return cmd
}

func printEvent(w io.Writer, ev event.Event) {
	date := ev.EventDate
	if date == "" {
		date = "no date"
	}
	_, _ = fmt.Fprintf(w, "- %s %q by %s: %s (%d/7), %s, %s\n",
		ev.ID, ev.Name, ev.Organiser, ev.Stage(), ev.ProgressIndex, ev.Status, date)
}

func printBucket(w io.Writer, title string, events []event.Event) {
	_, _ = fmt.Fprintf(w, "%s (%d)\n", title, len(events))
	for _, ev := range events {
		printEvent(w, ev)
	}
}
