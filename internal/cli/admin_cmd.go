package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/sma-adp-console/internal/dto"
	"github.com/noah-isme/sma-adp-console/pkg/jobs"
)

func (con *console) teachersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teachers",
		Short: "Manage lecturer accounts",
	}
	cmd.AddCommand(
		con.teachersListCommand(),
		con.teacherCoursesCommand(),
		con.teacherCreateCommand(),
		con.teacherBulkCommand(),
		con.teacherUpdateCommand(),
		con.teacherDeleteCommand(),
	)
	return cmd
}

func (con *console) teachersListCommand() *cobra.Command {
	var pf pageFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List lecturers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			admin := con.app.Registry.Admin
			if err := admin.GetAllTeachers(cmd.Context(), pf.page, pf.limit); err != nil {
				return err
			}
			return printJSON(cmd, admin.Teachers())
		},
	}
	pf.bind(cmd)
	return cmd
}

func (con *console) teacherCoursesCommand() *cobra.Command {
	var pf pageFlags
	cmd := &cobra.Command{
		Use:   "courses TEACHER_ID",
		Short: "List the courses taught by a lecturer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			admin := con.app.Registry.Admin
			if err := admin.GetTeacherCourses(cmd.Context(), args[0], pf.page, pf.limit); err != nil {
				return err
			}
			return printJSON(cmd, admin.Snapshot().TeacherCourses)
		},
	}
	pf.bind(cmd)
	return cmd
}

func (con *console) teacherCreateCommand() *cobra.Command {
	var input dto.CreateLecturerRequest
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a lecturer account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			teacher, err := con.app.Registry.Admin.CreateLecturer(cmd.Context(), input)
			if err != nil {
				return err
			}
			return printJSON(cmd, teacher)
		},
	}
	cmd.Flags().StringVar(&input.Name, "name", "", "full name")
	cmd.Flags().StringVar(&input.Email, "email", "", "email address")
	return cmd
}

func (con *console) teacherBulkCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Create lecturers from a JSON array of {name, email}",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var rows []dto.CreateLecturerRequest
			if err := readJSONFile(cmd, file, &rows); err != nil {
				return err
			}
			resp, err := con.app.Registry.Admin.BulkCreateLecturers(cmd.Context(), rows)
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file, or - for stdin")
	return cmd
}

func (con *console) teacherUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update TEACHER_ID",
		Short: "Update a lecturer's name or email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := dto.UpdateLecturerRequest{
				Name:  optionalString(cmd, "name"),
				Email: optionalString(cmd, "email"),
			}
			teacher, err := con.app.Registry.Admin.UpdateLecturer(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			return printJSON(cmd, teacher)
		},
	}
	cmd.Flags().String("name", "", "new name")
	cmd.Flags().String("email", "", "new email")
	return cmd
}

func (con *console) teacherDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete TEACHER_ID",
		Short: "Delete a lecturer account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := con.app.Registry.Admin.DeleteLecturer(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printJSON(cmd, map[string]string{"deleted": args[0]})
		},
	}
}

func (con *console) auditLogsCommand() *cobra.Command {
	var (
		pf     pageFlags
		filter dto.AuditLogFilter
	)
	cmd := &cobra.Command{
		Use:   "audit-logs",
		Short: "List audit log entries with analytics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			admin := con.app.Registry.Admin
			if err := admin.GetAuditLogs(cmd.Context(), pf.page, pf.limit, filter); err != nil {
				return err
			}
			return printJSON(cmd, admin.Snapshot().AuditLogs)
		},
	}
	pf.bind(cmd)
	cmd.Flags().StringVar(&filter.Action, "action", "all", "action filter")
	cmd.Flags().StringVar(&filter.Severity, "severity", "all", "severity filter")
	cmd.Flags().StringVar(&filter.UserID, "user-id", "", "restrict to one user")
	return cmd
}

func (con *console) healthCommand() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Show system health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			admin := con.app.Registry.Admin
			refresh := func(ctx context.Context) error {
				if err := admin.GetSystemHealth(ctx); err != nil {
					return err
				}
				return printJSON(cmd, admin.Health())
			}
			if watch {
				return con.watch(cmd, "health", con.app.Config.Polling.HealthInterval, refresh)
			}
			return refresh(cmd.Context())
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "poll until interrupted")
	return cmd
}

func (con *console) statsCommand() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			admin := con.app.Registry.Admin
			refresh := func(ctx context.Context) error {
				if err := admin.GetStats(ctx); err != nil {
					return err
				}
				return printJSON(cmd, admin.Stats())
			}
			if watch {
				return con.watch(cmd, "stats", con.app.Config.Polling.StatsInterval, refresh)
			}
			return refresh(cmd.Context())
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "poll until interrupted")
	return cmd
}

// watch polls fn until SIGINT or SIGTERM. Failed ticks are logged by the
// store and do not stop the loop.
func (con *console) watch(cmd *cobra.Command, name string, interval time.Duration, fn jobs.PollFunc) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	poller := jobs.NewPoller(jobs.PollerConfig{
		Name:     name,
		Interval: interval,
		Logger:   con.app.Logger.Named("poller"),
		Observer: con.app.Metrics,
	}, fn)
	_ = poller.Run(ctx)
	return nil
}

func (con *console) semesterCleanupCommand() *cobra.Command {
	var confirm bool
	cmd := &cobra.Command{
		Use:   "semester-cleanup",
		Short: "Delete the previous semester's data (irreversible)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := con.app.Registry.Admin.SemesterCleanup(cmd.Context(), confirm)
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	cmd.Flags().BoolVar(&confirm, "confirm", false, "confirm the cleanup")
	return cmd
}
