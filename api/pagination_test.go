package api

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	cases := []struct {
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"", defaultPageLimit, 0},
		{"?limit=25", 25, 0},
		{"?limit=25&offset=50", 25, 50},
		{"?limit=9999", maxPageLimit, 0},
		{"?limit=-1&offset=-5", defaultPageLimit, 0},
		{"?limit=abc&offset=xyz", defaultPageLimit, 0},
	}
	for _, tc := range cases {
		r := httptest.NewRequest("GET", "/admin/audit"+tc.query, nil)
		limit, offset := parsePagination(r)
		assert.Equal(t, tc.wantLimit, limit, "query %q", tc.query)
		assert.Equal(t, tc.wantOffset, offset, "query %q", tc.query)
	}
}

func TestPaginate(t *testing.T) {
	records := []int{9, 8, 7, 6, 5}

	assert.Equal(t, []int{9, 8}, paginate(records, 2, 0))
	assert.Equal(t, []int{7, 6}, paginate(records, 2, 2))
	assert.Equal(t, []int{5}, paginate(records, 10, 4))
	assert.Empty(t, paginate(records, 10, 99))
	assert.Equal(t, records, paginate(records, 100, 0))
}
