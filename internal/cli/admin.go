package cli

import (
	"github.com/spf13/cobra"

	"github.com/GrahamMcBain/urit/internal/services/auth"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin commands",
	}

	cmd.AddCommand(newAdminResetCmd())
	cmd.AddCommand(newAdminCheckResetCmd())
	cmd.AddCommand(newAdminHashKeyCmd())

	return cmd
}

func newAdminResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <admin-id>",
		Short: "Force a game cycle reset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adminID, err := parseID(args[0])
			if err != nil {
				return err
			}

			var result ResetResult
			if err := client.Post(cmd.Context(), "/api/v1/admin/reset", map[string]int64{"admin_id": adminID}, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAdminCheckResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-reset",
		Short: "Reset the game cycle if it is due",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ResetResult

			if err := client.Post(cmd.Context(), "/api/v1/admin/check-reset", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAdminHashKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-key <key>",
		Short: "Print the bcrypt hash of an API key for API_KEY_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashAPIKey(args[0])
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(HashResult{Hash: hash})
			return nil
		},
	}
}
