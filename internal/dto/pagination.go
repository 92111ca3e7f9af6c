package dto

import "github.com/noah-isme/sma-adp-console/internal/models"

// PageInfo is the pagination block as the backend sends it. Each resource
// names its total differently (totalTeachers, totalCourses, ...).
type PageInfo struct {
	CurrentPage   int  `json:"currentPage"`
	TotalPages    int  `json:"totalPages"`
	HasNext       bool `json:"hasNext"`
	HasPrev       bool `json:"hasPrev"`
	TotalItems    int  `json:"totalItems,omitempty"`
	Total         int  `json:"total,omitempty"`
	TotalTeachers int  `json:"totalTeachers,omitempty"`
	TotalCourses  int  `json:"totalCourses,omitempty"`
	TotalSessions int  `json:"totalSessions,omitempty"`
	TotalStudents int  `json:"totalStudents,omitempty"`
	TotalLogs     int  `json:"totalLogs,omitempty"`
}

// ToModel collapses the wire block into the normalised pagination descriptor.
func (p *PageInfo) ToModel() *models.Pagination {
	if p == nil {
		return nil
	}
	total := 0
	for _, candidate := range []int{p.TotalItems, p.TotalTeachers, p.TotalCourses, p.TotalSessions, p.TotalStudents, p.TotalLogs, p.Total} {
		if candidate > 0 {
			total = candidate
			break
		}
	}
	normalized := models.Pagination{
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		TotalItems:  total,
		HasNext:     p.HasNext,
		HasPrev:     p.HasPrev,
	}.Normalize()
	return &normalized
}
