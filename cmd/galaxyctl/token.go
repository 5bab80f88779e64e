package main

import (
	"fmt"

	"stellaris-server/internal/auth"

	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	var username, role string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an API token signed with the configured JWT secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			tokens, err := auth.NewTokenManager(cfg.Auth)
			if err != nil {
				return err
			}

			token, err := tokens.Generate(username, role)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "token subject")
	cmd.Flags().StringVar(&role, "role", auth.RoleViewer, "token role (admin or viewer)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}
