package cli

import (
	"github.com/spf13/cobra"

	"github.com/noah-isme/sma-adp-console/internal/dto"
)

func (con *console) profileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and edit the signed-in user's profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile := con.app.Registry.Profile
			if err := profile.FetchProfile(cmd.Context()); err != nil {
				return err
			}
			return printJSON(cmd, profile.Profile())
		},
	}

	update := &cobra.Command{
		Use:   "update",
		Short: "Update name, phone or department",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			patch := dto.UpdateProfileRequest{
				Name:       optionalString(cmd, "name"),
				Phone:      optionalString(cmd, "phone"),
				Department: optionalString(cmd, "department"),
			}
			profile, err := con.app.Registry.Profile.UpdateProfile(cmd.Context(), patch)
			if err != nil {
				return err
			}
			return printJSON(cmd, profile)
		},
	}
	update.Flags().String("name", "", "display name")
	update.Flags().String("phone", "", "phone number")
	update.Flags().String("department", "", "department")

	var input dto.ChangePasswordRequest
	password := &cobra.Command{
		Use:   "password",
		Short: "Change the account password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := con.app.Registry.Profile.ChangePassword(cmd.Context(), input); err != nil {
				return err
			}
			return printJSON(cmd, map[string]bool{"changed": true})
		},
	}
	password.Flags().StringVar(&input.CurrentPassword, "current", "", "current password")
	password.Flags().StringVar(&input.NewPassword, "new", "", "new password")

	cmd.AddCommand(show, update, password)
	return cmd
}
