// Command tokengen prints a bearer token for the manual trigger endpoints.
package main

import (
	"fmt"
	"os"
	"time"

	"property-revenue-sync/internal/pkg/config"
	"property-revenue-sync/internal/pkg/jwt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "tokengen",
		Short: "Mint an operator token for the sync and revenue triggers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// only the JWT settings matter here; the server's required store settings may be absent
			_ = godotenv.Load()
			var jwtCfg config.JWTConfig
			if err := envconfig.Process("", &jwtCfg); err != nil {
				return err
			}

			duration := ttl
			if duration <= 0 {
				var err error
				if duration, err = time.ParseDuration(jwtCfg.Duration); err != nil {
					return fmt.Errorf("invalid JWT_DURATION: %w", err)
				}
			}

			token, err := jwt.NewService(jwtCfg.Secret, duration).GenerateToken(subject, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "", "operator identity recorded in the token")
	cmd.Flags().StringVarP(&role, "role", "r", "operator", "role claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime; defaults to JWT_DURATION")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}
