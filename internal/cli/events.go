package cli

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var (
		limit    int
		watch    bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List recent tag events",
		Long: `List recent tag events, newest first.

With --watch the server is polled every --interval and new events are printed
as they appear, oldest first. Press Ctrl+C to stop.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				return watchEvents(cmd.Context(), limit, interval)
			}

			var result TagEvents
			if err := client.Get(cmd.Context(), eventsPath(limit), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of events to fetch (max 100)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Poll for new events until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "Poll interval for --watch")

	return cmd
}

func eventsPath(limit int) string {
	return fmt.Sprintf("/api/v1/tag/events?limit=%d", limit)
}

func watchEvents(ctx context.Context, limit int, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("--interval must be positive")
	}

	out := NewOutput(cfg.Output)
	seen := make(map[string]bool)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		var result TagEvents
		if err := client.Get(ctx, eventsPath(limit), &result); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		// Server returns newest first
		for _, e := range slices.Backward(result.Events) {
			if !seen[e.ID] {
				seen[e.ID] = true
				out.Print(e)
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
