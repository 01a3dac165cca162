package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/DhavalSuthar-24/pitchside/config"
	"github.com/DhavalSuthar-24/pitchside/pkg/token"
)

var (
	tokenUserID string
	tokenRoles  []string
)

// tokenCmd mints bearer tokens for local development; identity is normally
// issued elsewhere.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development bearer token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenUserID == "" {
			return errors.New("--user is required")
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		expiry := time.Duration(cfg.JWT.AccessTokenExpiryMinutes) * time.Minute
		tok, err := token.GenerateJWT(tokenUserID, tokenRoles, cfg.JWT.AccessTokenSecret, cfg.JWT.Issuer, expiry)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user", "", "user id to put in the token")
	tokenCmd.Flags().StringSliceVar(&tokenRoles, "role", nil, "role to grant, repeatable (e.g. admin)")
}
