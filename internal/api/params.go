package api

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"alcyxob/fittrack/internal/service"
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errBadDate = errors.New("date must be YYYY-MM-DD or RFC 3339")

// parseDate accepts RFC 3339 timestamps and bare calendar days (UTC). A bare
// day used as an upper bound covers the whole day.
func parseDate(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(domain.DayLayout, s)
	if err != nil {
		return time.Time{}, errBadDate
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// Date is a JSON date that accepts the same formats as parseDate.
type Date struct{ time.Time }

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errBadDate
	}
	t, err := parseDate(s, false)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// timePtr returns nil for an absent date.
func (d *Date) timePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// timeOrZero returns the zero time for an absent date.
func (d *Date) timeOrZero() time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time
}

// objectIDParam parses a path ID. A malformed ID is reported as notFound so it
// cannot be told apart from a missing record.
func objectIDParam(c *gin.Context, name string, notFound error) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		respondError(c, notFound)
		return primitive.NilObjectID, false
	}
	return id, true
}

func queryError(c *gin.Context, field, msg string) {
	respondError(c, service.Validation(service.FieldError{Field: field, Message: msg}))
}

// dateQuery reads an optional date query parameter.
func dateQuery(c *gin.Context, name string, endOfDay bool) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := parseDate(raw, endOfDay)
	if err != nil {
		queryError(c, name, err.Error())
		return nil, false
	}
	return &t, true
}

// dateRangeQuery reads startDate/endDate. A bare endDate is inclusive.
func dateRangeQuery(c *gin.Context) (repository.DateRange, bool) {
	from, ok := dateQuery(c, "startDate", false)
	if !ok {
		return repository.DateRange{}, false
	}
	to, ok := dateQuery(c, "endDate", true)
	if !ok {
		return repository.DateRange{}, false
	}
	return repository.DateRange{From: from, To: to}, true
}

// intQuery reads an optional positive integer; absent yields 0.
func intQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		queryError(c, name, "must be a positive integer")
		return 0, false
	}
	return n, true
}

func pageQuery(c *gin.Context) (repository.Page, bool) {
	limit, ok := intQuery(c, "limit")
	if !ok {
		return repository.Page{}, false
	}
	page, ok := intQuery(c, "page")
	if !ok {
		return repository.Page{}, false
	}
	return repository.Page{Limit: limit, Page: page}, true
}

// MessageResponse is the body of replies that carry no resource.
type MessageResponse struct {
	Message string `json:"message"`
}

func respondMessage(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, MessageResponse{Message: msg})
}

func parseObjectID(s string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(s)
}
