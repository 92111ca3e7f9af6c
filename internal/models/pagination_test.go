package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Pagination
		want Pagination
	}{
		{
			name: "page past the end",
			in:   Pagination{CurrentPage: 9, TotalPages: 3, TotalItems: 50, HasNext: true},
			want: Pagination{CurrentPage: 3, TotalPages: 3, TotalItems: 50, HasPrev: true},
		},
		{
			name: "empty collection",
			in:   Pagination{CurrentPage: 0, TotalPages: 0, TotalItems: -1, HasPrev: true},
			want: Pagination{CurrentPage: 1, TotalPages: 1},
		},
		{
			name: "middle page ignores server flags",
			in:   Pagination{CurrentPage: 2, TotalPages: 3, TotalItems: 30},
			want: Pagination{CurrentPage: 2, TotalPages: 3, TotalItems: 30, HasNext: true, HasPrev: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Normalize())
		})
	}
}
