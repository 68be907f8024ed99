// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/recetario/internal/platform/constants"
	"github.com/taibuivan/recetario/internal/platform/sec"
)

type tokenFlags struct {
	subject    string
	role       string
	ttl        time.Duration
	privateKey string
	publicKey  string
}

func newTokenCmd() *cobra.Command {
	flags := &tokenFlags{}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for an editor or administrator",
		Long: `Signs an RS256 access token the API accepts in the Authorization header.

Roles: admin (taxonomy management), editor (recipes), viewer.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToken(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.subject, "subject", "", "Token subject, e.g. an e-mail address (required)")
	cmd.Flags().StringVar(&flags.role, "role", string(sec.RoleEditor), "admin, editor or viewer")
	cmd.Flags().DurationVar(&flags.ttl, "ttl", constants.DefaultTokenTTL, "Token lifetime")
	cmd.Flags().StringVar(&flags.privateKey, "private-key", os.Getenv("JWT_PRIVATE_KEY_PATH"), "PEM private key")
	cmd.Flags().StringVar(&flags.publicKey, "public-key", os.Getenv("JWT_PUBLIC_KEY_PATH"), "PEM public key")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func runToken(cmd *cobra.Command, flags *tokenFlags) error {
	role := sec.UserRole(flags.role)
	if !role.Valid() {
		return fmt.Errorf("unknown role %q", flags.role)
	}
	if flags.privateKey == "" || flags.publicKey == "" {
		return errors.New("both --private-key and --public-key are required")
	}

	tokens, err := sec.NewTokenService(flags.privateKey, flags.publicKey, constants.AuthIssuer)
	if err != nil {
		return err
	}

	token, err := tokens.GenerateAccessToken(flags.subject, role, flags.ttl)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
