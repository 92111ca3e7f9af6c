package cli

import (
	"github.com/spf13/cobra"

	"github.com/noah-isme/sma-adp-console/internal/dto"
	appErrors "github.com/noah-isme/sma-adp-console/pkg/errors"
)

func (con *console) shareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Student roster share requests between lecturers",
	}
	cmd.AddCommand(
		con.shareListCommand("incoming", "List requests addressed to you"),
		con.shareListCommand("outgoing", "List requests you sent"),
		con.shareTeachersCommand(),
		con.shareRequestCommand(),
		con.shareRespondCommand(),
		con.shareCancelCommand(),
	)
	return cmd
}

func (con *console) shareListCommand(direction, short string) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   direction,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			share := con.app.Registry.Share
			if direction == "incoming" {
				if err := share.FetchIncoming(cmd.Context(), status); err != nil {
					return err
				}
				return printJSON(cmd, share.Snapshot().Incoming)
			}
			if err := share.FetchOutgoing(cmd.Context(), status); err != nil {
				return err
			}
			return printJSON(cmd, share.Snapshot().Outgoing)
		},
	}
	cmd.Flags().StringVar(&status, "status", "all", "request status filter")
	return cmd
}

func (con *console) shareTeachersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "teachers",
		Short: "List lecturers you can request students from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			share := con.app.Registry.Share
			if err := share.FetchTeachers(cmd.Context()); err != nil {
				return err
			}
			return printJSON(cmd, share.Snapshot().Teachers)
		},
	}
}

func (con *console) shareRequestCommand() *cobra.Command {
	var input dto.ShareRequestInput
	cmd := &cobra.Command{
		Use:   "request",
		Short: "Ask a course owner to share students",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := con.app.Registry.Share.CreateRequest(cmd.Context(), input)
			if err != nil {
				return err
			}
			return printJSON(cmd, req)
		},
	}
	cmd.Flags().StringVar(&input.OwnerID, "owner", "", "owning lecturer id")
	cmd.Flags().StringVar(&input.CourseID, "course", "", "course id")
	cmd.Flags().StringSliceVar(&input.StudentIDs, "student", nil, "student id (repeatable)")
	cmd.Flags().StringVar(&input.Message, "message", "", "note for the owner")
	return cmd
}

func (con *console) shareRespondCommand() *cobra.Command {
	var (
		approve, reject bool
		message         string
	)
	cmd := &cobra.Command{
		Use:   "respond REQUEST_ID",
		Short: "Approve or reject an incoming request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if approve == reject {
				return appErrors.Clone(appErrors.ErrValidation, "exactly one of --approve or --reject is required")
			}
			req, err := con.app.Registry.Share.Respond(cmd.Context(), args[0], approve, message)
			if err != nil {
				return err
			}
			return printJSON(cmd, req)
		},
	}
	cmd.Flags().BoolVar(&approve, "approve", false, "approve the request")
	cmd.Flags().BoolVar(&reject, "reject", false, "reject the request")
	cmd.Flags().StringVar(&message, "message", "", "response note")
	return cmd
}

func (con *console) shareCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel REQUEST_ID",
		Short: "Withdraw an outgoing request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := con.app.Registry.Share.Cancel(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printJSON(cmd, map[string]string{"cancelled": args[0]})
		},
	}
}
