package cli

import (
	"github.com/spf13/cobra"

	"github.com/noah-isme/sma-adp-console/internal/dto"
)

func (con *console) coursesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "Inspect and manage courses",
	}
	cmd.AddCommand(
		con.courseListCommand(),
		con.courseGetCommand(),
		con.courseStudentsCommand(),
		con.courseSessionsCommand(),
		con.courseAttendanceCommand(),
		con.courseCreateCommand(),
		con.courseUpdateCommand(),
		con.courseDeleteCommand(),
		con.courseReassignCommand(),
	)
	return cmd
}

func (con *console) courseListCommand() *cobra.Command {
	var pf pageFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the signed-in lecturer's courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			courses := con.app.Registry.Courses
			if err := courses.FetchCourses(cmd.Context(), pf.page, pf.limit); err != nil {
				return err
			}
			return printJSON(cmd, courses.Snapshot().Courses)
		},
	}
	pf.bind(cmd)
	return cmd
}

func (con *console) courseGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get COURSE_ID",
		Short: "Show one course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courses := con.app.Registry.Courses
			if err := courses.FetchCourse(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printJSON(cmd, courses.Snapshot().CurrentCourse)
		},
	}
}

func (con *console) courseStudentsCommand() *cobra.Command {
	var pf pageFlags
	cmd := &cobra.Command{
		Use:   "students COURSE_ID",
		Short: "List students enrolled in a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courses := con.app.Registry.Courses
			if err := courses.FetchCourseStudents(cmd.Context(), args[0], pf.page, pf.limit); err != nil {
				return err
			}
			return printJSON(cmd, courses.Snapshot().CourseStudents)
		},
	}
	pf.bind(cmd)
	return cmd
}

func (con *console) courseSessionsCommand() *cobra.Command {
	var (
		pf       pageFlags
		status   string
		lecturer bool
	)
	cmd := &cobra.Command{
		Use:   "sessions COURSE_ID",
		Short: "List a course's sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if lecturer {
				courses := con.app.Registry.Courses
				if err := courses.FetchSessions(cmd.Context(), args[0], pf.page, pf.limit, status); err != nil {
					return err
				}
				return printJSON(cmd, courses.Snapshot().Sessions)
			}
			admin := con.app.Registry.Admin
			if err := admin.GetCourseSessions(cmd.Context(), args[0], pf.page, pf.limit, status); err != nil {
				return err
			}
			return printJSON(cmd, admin.Snapshot().CourseSessions)
		},
	}
	pf.bind(cmd)
	cmd.Flags().StringVar(&status, "status", "all", "session status filter")
	cmd.Flags().BoolVar(&lecturer, "lecturer", false, "use the lecturer endpoint instead of the admin one")
	return cmd
}

func (con *console) courseAttendanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "attendance SESSION_ID",
		Short: "Show the attendance sheet of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courses := con.app.Registry.Courses
			if err := courses.FetchSessionAttendance(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printJSON(cmd, courses.Snapshot().SessionAttendance)
		},
	}
}

func (con *console) courseCreateCommand() *cobra.Command {
	var input dto.CourseInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a course",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			course, err := con.app.Registry.Courses.CreateCourse(cmd.Context(), input)
			if err != nil {
				return err
			}
			return printJSON(cmd, course)
		},
	}
	cmd.Flags().StringVar(&input.Title, "title", "", "course title")
	cmd.Flags().StringVar(&input.CourseCode, "code", "", "course code")
	cmd.Flags().StringVar(&input.Description, "description", "", "description")
	return cmd
}

func (con *console) courseUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update COURSE_ID",
		Short: "Update a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := dto.UpdateCourseRequest{
				Title:       optionalString(cmd, "title"),
				CourseCode:  optionalString(cmd, "code"),
				Description: optionalString(cmd, "description"),
			}
			course, err := con.app.Registry.Courses.UpdateCourse(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			return printJSON(cmd, course)
		},
	}
	cmd.Flags().String("title", "", "new title")
	cmd.Flags().String("code", "", "new course code")
	cmd.Flags().String("description", "", "new description")
	return cmd
}

func (con *console) courseDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete COURSE_ID",
		Short: "Delete a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := con.app.Registry.Courses.DeleteCourse(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printJSON(cmd, map[string]string{"deleted": args[0]})
		},
	}
}

func (con *console) courseReassignCommand() *cobra.Command {
	var input dto.ReassignCourseRequest
	cmd := &cobra.Command{
		Use:   "reassign COURSE_ID",
		Short: "Move a course to another lecturer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			course, err := con.app.Registry.Admin.ReassignCourse(cmd.Context(), args[0], input)
			if err != nil {
				return err
			}
			return printJSON(cmd, course)
		},
	}
	cmd.Flags().StringVar(&input.NewLecturerID, "to", "", "id of the new lecturer")
	cmd.Flags().StringVar(&input.Reason, "reason", "", "reason recorded in the audit log")
	return cmd
}
