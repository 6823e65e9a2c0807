package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"evalgo.org/hostreg/internal/auth"
	"evalgo.org/hostreg/internal/config"
)

var tokenCmd = &cobra.Command{
	Use:   "token [sub]",
	Short: "Generate a bearer token for a user",
	Long: `Generate a JWT bearer token for development and testing.

The token is signed with security.jwt_secret from the configuration and
carries the given sub and pwa scopes. Tokens from the real identity
provider look the same, so the API treats both alike.

Examples:
  # Token for user 42 with the default user scope
  hostreg token 42

  # Admin token valid for 8 hours
  hostreg token 1 --scope user --scope admin --expiration 8

  # Use custom secret (overrides config)
  hostreg token 42 --secret "my-custom-secret"`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerateToken,
}

var (
	tokenScopes     []string
	tokenExpiration int64
	tokenSecret     string
)

func init() {
	tokenCmd.Flags().StringSliceVar(&tokenScopes, "scope", []string{"user"}, "pwa scopes to grant (repeatable)")
	tokenCmd.Flags().Int64Var(&tokenExpiration, "expiration", 24, "Token expiration in hours")
	tokenCmd.Flags().StringVar(&tokenSecret, "secret", "", "JWT secret (default: from config file)")
}

func runGenerateToken(cmd *cobra.Command, args []string) error {
	sub := args[0]

	signing := *cfg
	if tokenSecret != "" {
		signing.Security.JWTSecret = tokenSecret
	}
	if signing.Security.JWTSecret == "" {
		return fmt.Errorf(`jwt_secret not found in config file and --secret not provided

Please either:
  1. Add to your config.yaml:
     security:
       jwt_secret: your-secret-here

  2. Or use the --secret flag:
     hostreg token %s --secret "your-secret-here"`, sub)
	}

	expiration := time.Duration(tokenExpiration) * time.Hour
	token, err := issueToken(&signing, sub, tokenScopes, expiration)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Sub:        %s\n", sub)
	fmt.Fprintf(out, "Scopes:     %v\n", tokenScopes)
	fmt.Fprintf(out, "Expiration: %s\n", expiration)
	fmt.Fprintf(out, "\nToken:\n%s\n", token)
	return nil
}

func issueToken(c *config.Config, sub string, scopes []string, expiration time.Duration) (string, error) {
	token, err := auth.NewJWTService(c).GenerateToken(sub, scopes, expiration)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
