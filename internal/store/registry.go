package store

import (
	"context"
	"sort"
	"strings"

	"github.com/noah-isme/sma-adp-console/internal/dto"
	appErrors "github.com/noah-isme/sma-adp-console/pkg/errors"
)

// RefreshParams carries the arguments a fetch action may need. Unused fields
// are ignored.
type RefreshParams struct {
	ID       string
	Page     int
	Limit    int
	Status   string
	Category string
	Search   string
	Action   string
	Severity string
	UserID   string
}

type sliceEntry struct {
	refresh func(ctx context.Context, p RefreshParams) error
	clear   func()
}

// Registry groups the stores and addresses their slices by qualified name
// ("admin.teachers", "help.faqs").
type Registry struct {
	Admin   *AdminStore
	Help    *HelpStore
	Profile *ProfileStore
	Courses *CourseStore
	Share   *StudentShareStore

	slices map[string]sliceEntry
}

// NewRegistry builds every store over the same dependencies.
func NewRegistry(deps Deps, state StateStore, helpStorageKey string) *Registry {
	r := &Registry{
		Admin:   NewAdminStore(deps),
		Help:    NewHelpStore(deps, state, helpStorageKey),
		Profile: NewProfileStore(deps),
		Courses: NewCourseStore(deps),
		Share:   NewStudentShareStore(deps),
	}
	r.slices = r.buildSlices()
	return r
}

func (r *Registry) buildSlices() map[string]sliceEntry {
	a, h, p, c, s := r.Admin, r.Help, r.Profile, r.Courses, r.Share
	return map[string]sliceEntry{
		"admin." + SliceTeachers: {
			refresh: func(ctx context.Context, q RefreshParams) error { return a.GetAllTeachers(ctx, q.Page, q.Limit) },
			clear:   a.ClearTeachersError,
		},
		"admin." + SliceTeacherCourses: {
			refresh: func(ctx context.Context, q RefreshParams) error {
				if err := requireID(q); err != nil {
					return err
				}
				return a.GetTeacherCourses(ctx, q.ID, q.Page, q.Limit)
			},
			clear: a.ClearTeacherCoursesError,
		},
		"admin." + SliceCourseSessions: {
			refresh: func(ctx context.Context, q RefreshParams) error {
				if err := requireID(q); err != nil {
					return err
				}
				return a.GetCourseSessions(ctx, q.ID, q.Page, q.Limit, q.Status)
			},
			clear: a.ClearCourseSessionsError,
		},
		"admin." + SliceAuditLogs: {
			refresh: func(ctx context.Context, q RefreshParams) error {
				return a.GetAuditLogs(ctx, q.Page, q.Limit, dto.AuditLogFilter{Action: q.Action, Severity: q.Severity, UserID: q.UserID})
			},
			clear: a.ClearAuditLogsError,
		},
		"admin." + SliceHealth: {
			refresh: func(ctx context.Context, _ RefreshParams) error { return a.GetSystemHealth(ctx) },
			clear:   a.ClearHealthError,
		},
		"admin." + SliceStats: {
			refresh: func(ctx context.Context, _ RefreshParams) error { return a.GetStats(ctx) },
			clear:   a.ClearStatsError,
		},
		"help." + SliceFAQs: {
			refresh: func(ctx context.Context, q RefreshParams) error {
				return h.FetchFAQs(ctx, dto.FAQFilter{Category: q.Category, Search: q.Search})
			},
			clear: h.ClearFAQsError,
		},
		"help." + SliceCurrentFAQ: {
			refresh: func(ctx context.Context, q RefreshParams) error {
				if err := requireID(q); err != nil {
					return err
				}
				return h.FetchFAQ(ctx, q.ID)
			},
			clear: h.ClearCurrentFAQError,
		},
		"help." + SliceCategories: {
			refresh: func(ctx context.Context, _ RefreshParams) error { return h.FetchCategories(ctx) },
			clear:   h.ClearCategoriesError,
		},
		"help." + SliceSupportInfo: {
			refresh: func(ctx context.Context, _ RefreshParams) error { return h.FetchSupportInfo(ctx) },
			clear:   h.ClearSupportInfoError,
		},
		"profile." + SliceProfile: {
			refresh: func(ctx context.Context, _ RefreshParams) error { return p.FetchProfile(ctx) },
			clear:   p.ClearProfileError,
		},
		"course." + SliceCourses: {
			refresh: func(ctx context.Context, q RefreshParams) error { return c.FetchCourses(ctx, q.Page, q.Limit) },
			clear:   c.ClearCoursesError,
		},
		"course." + SliceCurrentCourse: {
			refresh: func(ctx context.Context, q RefreshParams) error {
				if err := requireID(q); err != nil {
					return err
				}
				return c.FetchCourse(ctx, q.ID)
			},
			clear: c.ClearCurrentCourseError,
		},
		"course." + SliceCourseStudents: {
			refresh: func(ctx context.Context, q RefreshParams) error {
				if err := requireID(q); err != nil {
					return err
				}
				return c.FetchCourseStudents(ctx, q.ID, q.Page, q.Limit)
			},
			clear: c.ClearCourseStudentsError,
		},
		"course." + SliceSessions: {
			refresh: func(ctx context.Context, q RefreshParams) error {
				if err := requireID(q); err != nil {
					return err
				}
				return c.FetchSessions(ctx, q.ID, q.Page, q.Limit, q.Status)
			},
			clear: c.ClearSessionsError,
		},
		"course." + SliceSessionAttendance: {
			refresh: func(ctx context.Context, q RefreshParams) error {
				if err := requireID(q); err != nil {
					return err
				}
				return c.FetchSessionAttendance(ctx, q.ID)
			},
			clear: c.ClearSessionAttendanceError,
		},
		"share." + SliceIncoming: {
			refresh: func(ctx context.Context, q RefreshParams) error { return s.FetchIncoming(ctx, q.Status) },
			clear:   s.ClearIncomingError,
		},
		"share." + SliceOutgoing: {
			refresh: func(ctx context.Context, q RefreshParams) error { return s.FetchOutgoing(ctx, q.Status) },
			clear:   s.ClearOutgoingError,
		},
		"share." + SliceShareTeachers: {
			refresh: func(ctx context.Context, _ RefreshParams) error { return s.FetchTeachers(ctx) },
			clear:   s.ClearTeachersError,
		},
	}
}

func requireID(q RefreshParams) error {
	if strings.TrimSpace(q.ID) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "id is required for this slice")
	}
	return nil
}

func unknownSlice(name string) error {
	return appErrors.Clone(appErrors.ErrNotFound, "unknown slice "+name)
}

// Slices lists every addressable slice name.
func (r *Registry) Slices() []string {
	names := make([]string, 0, len(r.slices))
	for name := range r.slices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Refresh re-invokes the fetch action behind a slice.
func (r *Registry) Refresh(ctx context.Context, slice string, params RefreshParams) error {
	entry, ok := r.slices[slice]
	if !ok {
		return unknownSlice(slice)
	}
	return entry.refresh(ctx, params)
}

// ClearError resets a slice's error field.
func (r *Registry) ClearError(slice string) error {
	entry, ok := r.slices[slice]
	if !ok {
		return unknownSlice(slice)
	}
	entry.clear()
	return nil
}

// Snapshot returns a copy of every slice of the named store.
func (r *Registry) Snapshot(storeName string) (interface{}, error) {
	switch storeName {
	case "admin":
		return r.Admin.Snapshot(), nil
	case "help":
		return r.Help.Snapshot(), nil
	case "profile":
		return r.Profile.Profile(), nil
	case "course":
		return r.Courses.Snapshot(), nil
	case "share":
		return r.Share.Snapshot(), nil
	default:
		return nil, appErrors.Clone(appErrors.ErrNotFound, "unknown store "+storeName)
	}
}

// Close aborts in-flight fetches in every store.
func (r *Registry) Close() {
	r.Admin.Close()
	r.Help.Close()
	r.Profile.Close()
	r.Courses.Close()
	r.Share.Close()
}
