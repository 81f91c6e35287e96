package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player profile commands",
	}

	cmd.AddCommand(newPlayerGetCmd())
	cmd.AddCommand(newPlayerUpdateCmd())

	return cmd
}

func newPlayerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a player's profile and stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Get(cmd.Context(), "/api/v1/players/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerUpdateCmd() *cobra.Command {
	var name, handle, avatar string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Create or update a player's profile",
		Long: `Create or update a player's profile.

Only the flags you pass are changed. Pass an empty value (e.g. --handle "")
to clear a field.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{}
			if cmd.Flags().Changed("name") {
				req["display_name"] = name
			}
			if cmd.Flags().Changed("handle") {
				req["handle"] = handle
			}
			if cmd.Flags().Changed("avatar") {
				req["avatar_url"] = avatar
			}
			if len(req) == 0 {
				return fmt.Errorf("at least one of --name, --handle or --avatar is required")
			}

			var result Player
			if err := client.Put(cmd.Context(), "/api/v1/players/"+args[0], req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&handle, "handle", "", "Handle")
	cmd.Flags().StringVar(&avatar, "avatar", "", "Avatar URL")

	return cmd
}
