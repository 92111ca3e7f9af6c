package cli

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/noah-isme/sma-adp-console/internal/client"
	"github.com/noah-isme/sma-adp-console/internal/dto"
	"github.com/noah-isme/sma-adp-console/internal/models"
	appErrors "github.com/noah-isme/sma-adp-console/pkg/errors"
)

func (con *console) loginCommand() *cobra.Command {
	var token, email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a bearer token, or sign in with email and password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var user *models.Profile

			if token == "" {
				if email == "" {
					return appErrors.Clone(appErrors.ErrValidation, "either --token or --email is required")
				}
				var resp dto.LoginResponse
				err := con.app.Client.Do(ctx, client.Request{
					Method: http.MethodPost,
					Path:   "/auth/login",
					Body:   dto.LoginRequest{Email: email, Password: password},
				}, &resp)
				if err != nil {
					return err
				}
				token, user = resp.Token, resp.User
			}

			if err := con.app.Auth.Save(ctx, token, user); err != nil {
				return err
			}
			return printJSON(cmd, map[string]interface{}{"isAuthenticated": true, "user": user})
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "bearer token to store")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func (con *console) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := con.app.Auth.Clear(cmd.Context()); err != nil {
				return err
			}
			return printJSON(cmd, map[string]interface{}{"isAuthenticated": false})
		},
	}
}

func (con *console) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Describe the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if con.app.Auth.Token(ctx) == "" {
				return appErrors.ErrAuthTokenMissing
			}
			out := map[string]interface{}{
				"isAuthenticated": true,
				"user":            con.app.Auth.User(ctx),
			}
			if claims, err := con.app.Auth.Claims(ctx); err == nil {
				out["claims"] = claims
			}
			return printJSON(cmd, out)
		},
	}
}
