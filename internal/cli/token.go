package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hirematch/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTokenCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret := rt.v.GetString("jwt-access-secret")
			if strings.TrimSpace(secret) == "" {
				return errors.New("JWT_ACCESS_SECRET (or MATCHCTL_JWT_ACCESS_SECRET) is not set")
			}

			userID, err := uuid.Parse(strings.TrimSpace(rt.v.GetString("token.user-id")))
			if err != nil {
				return fmt.Errorf("--user-id: %w", err)
			}
			role := strings.ToLower(strings.TrimSpace(rt.v.GetString("token.role")))
			if !jwt.ValidRole(role) {
				return fmt.Errorf("--role must be %s or %s", jwt.RoleCandidate, jwt.RoleRecruiter)
			}

			svc := jwt.NewHMACService(secret, rt.v.GetDuration("token.expires-in"))
			tok, err := svc.GenerateAccessToken(userID, rt.v.GetString("token.email"), role)
			if err != nil {
				return fmt.Errorf("generate token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().String("user-id", "", "subject user id (UUID)")
	cmd.Flags().String("email", "", "email claim")
	cmd.Flags().String("role", jwt.RoleCandidate, "role claim: candidate or recruiter")
	cmd.Flags().Duration("expires-in", 15*time.Minute, "token lifetime")
	_ = cmd.MarkFlagRequired("user-id")
	_ = rt.v.BindPFlag("token.user-id", cmd.Flags().Lookup("user-id"))
	_ = rt.v.BindPFlag("token.email", cmd.Flags().Lookup("email"))
	_ = rt.v.BindPFlag("token.role", cmd.Flags().Lookup("role"))
	_ = rt.v.BindPFlag("token.expires-in", cmd.Flags().Lookup("expires-in"))
	_ = rt.v.BindEnv("jwt-access-secret", "MATCHCTL_JWT_ACCESS_SECRET", "JWT_ACCESS_SECRET")

	return cmd
}
