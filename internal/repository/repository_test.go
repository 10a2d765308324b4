package repository

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageSkip(t *testing.T) {
	tests := []struct {
		name string
		page Page
		want int64
	}{
		{"first page", Page{Limit: 10, Page: 1}, 0},
		{"third page", Page{Limit: 20, Page: 3}, 40},
		{"unset page", Page{Limit: 10}, 0},
		{"unset limit", Page{Page: 4}, 0},
		{"huge page saturates", Page{Limit: 100, Page: 1 << 62}, math.MaxInt64},
		{"max int page", Page{Limit: 1, Page: math.MaxInt}, math.MaxInt - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.page.Skip())
		})
	}
}
