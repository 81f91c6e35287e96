package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newTagCmd() *cobra.Command {
	var admin bool

	cmd := &cobra.Command{
		Use:   "tag <tagger-id> <tagged-id>",
		Short: "Pass \"it\" from the current holder to another player",
		Long: `Pass "it" from the current holder to another player.

The tagger must be the player who is currently "it" unless --admin is set,
in which case the tagger must be an admin.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tagger, err := parseID(args[0])
			if err != nil {
				return err
			}
			tagged, err := parseID(args[1])
			if err != nil {
				return err
			}

			req := map[string]any{
				"tagger_id": tagger,
				"tagged_id": tagged,
			}
			if admin {
				req["admin_override"] = true
			}

			var result TagResult
			if err := client.Post(cmd.Context(), "/api/v1/tag", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&admin, "admin", false, "Tag as an admin, bypassing the holder check")

	return cmd
}

func newCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show who is currently \"it\"",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result CurrentlyTagged

			if err := client.Get(cmd.Context(), "/api/v1/tag/current", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid player id %q", raw)
	}
	return id, nil
}
