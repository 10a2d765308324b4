package service

import (
	"alcyxob/fittrack/internal/repository"
	"time"
)

const (
	DefaultWorkoutPageSize = 10
	DefaultMealPageSize    = 20
	MaxPageSize            = 100
)

// PageResult is one page of a date-descending listing.
type PageResult[T any] struct {
	Items       []T
	Total       int64
	CurrentPage int
	TotalPages  int
}

// normalizePage fills defaults and clamps the limit.
func normalizePage(p repository.Page, defaultLimit int) repository.Page {
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	if p.Page < 1 {
		p.Page = 1
	}
	return p
}

func newPageResult[T any](items []T, total int64, p repository.Page) *PageResult[T] {
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return &PageResult[T]{Items: items, Total: total, CurrentPage: p.Page, TotalPages: pages}
}

// trailingWindow returns the instant `days` days before now. Non-positive
// values fall back to def.
func trailingWindow(days, def int) time.Time {
	if days <= 0 {
		days = def
	}
	return timeNow().AddDate(0, 0, -days)
}
