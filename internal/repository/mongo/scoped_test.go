package mongo

import (
	"alcyxob/fittrack/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestScopePinsOwner(t *testing.T) {
	s := scopedCollection[struct{}]{ownerField: "user"}
	owner, intruder := primitive.NewObjectID(), primitive.NewObjectID()

	extra := bson.M{"user": intruder, "status": "pending"}
	filter := s.scope(owner, extra)

	assert.Equal(t, owner, filter["user"])
	assert.Equal(t, "pending", filter["status"])
	assert.Equal(t, intruder, extra["user"], "caller's map is left alone")
}

func TestDateFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, dateFilter(repository.DateRange{}))

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)
	assert.Equal(t, bson.M{"date": bson.M{"$gte": from}}, dateFilter(repository.DateRange{From: &from}))
	assert.Equal(t, bson.M{"date": bson.M{"$gte": from, "$lte": to}}, dateFilter(repository.DateRange{From: &from, To: &to}))
}

func TestPageOptions(t *testing.T) {
	opts := pageOptions(repository.Page{Limit: 20, Page: 3})
	assert.EqualValues(t, 20, *opts.Limit)
	assert.EqualValues(t, 40, *opts.Skip)
	assert.Equal(t, bson.D{{Key: "date", Value: -1}}, opts.Sort)

	opts = pageOptions(repository.Page{Limit: 100, Page: 1 << 62})
	assert.GreaterOrEqual(t, *opts.Skip, int64(0))
}
