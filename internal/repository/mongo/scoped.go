package mongo

import (
	"alcyxob/fittrack/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// scopedCollection wraps a collection whose documents belong to one user via
// ownerField. Every read and write it issues carries the owner predicate, so a
// record owned by someone else behaves exactly like a missing one.
type scopedCollection[T any] struct {
	collection *mongo.Collection
	ownerField string
}

func newScopedCollection[T any](coll *mongo.Collection, ownerField string) scopedCollection[T] {
	return scopedCollection[T]{collection: coll, ownerField: ownerField}
}

// scope copies extra and pins the owner field last so callers cannot override it.
func (s scopedCollection[T]) scope(ownerID primitive.ObjectID, extra bson.M) bson.M {
	filter := bson.M{}
	for k, v := range extra {
		filter[k] = v
	}
	filter[s.ownerField] = ownerID
	return filter
}

func (s scopedCollection[T]) insert(ctx context.Context, doc any) (primitive.ObjectID, error) {
	result, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (s scopedCollection[T]) get(ctx context.Context, ownerID, id primitive.ObjectID) (*T, error) {
	return s.findOne(ctx, ownerID, bson.M{"_id": id})
}

func (s scopedCollection[T]) findOne(ctx context.Context, ownerID primitive.ObjectID, extra bson.M, opts ...*options.FindOneOptions) (*T, error) {
	var doc T
	err := s.collection.FindOne(ctx, s.scope(ownerID, extra), opts...).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (s scopedCollection[T]) find(ctx context.Context, ownerID primitive.ObjectID, extra bson.M, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := s.collection.Find(ctx, s.scope(ownerID, extra), opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []T{}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s scopedCollection[T]) count(ctx context.Context, ownerID primitive.ObjectID, extra bson.M) (int64, error) {
	return s.collection.CountDocuments(ctx, s.scope(ownerID, extra))
}

// set applies fields with $set and always refreshes updatedAt.
func (s scopedCollection[T]) set(ctx context.Context, ownerID, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now().UTC()
	result, err := s.collection.UpdateOne(ctx, s.scope(ownerID, bson.M{"_id": id}), bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s scopedCollection[T]) delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, s.scope(ownerID, bson.M{"_id": id}))
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// matchSince is the leading $match stage of every owner-scoped aggregation.
func (s scopedCollection[T]) matchSince(ownerID primitive.ObjectID, since time.Time) bson.D {
	return bson.D{{Key: "$match", Value: s.scope(ownerID, bson.M{"date": bson.M{"$gte": since}})}}
}

// aggregate runs pipeline and decodes every result document into R.
func aggregate[R any](ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline) ([]R, error) {
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []R{}
	if err = cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, cursor.Err()
}

// dateFilter turns an inclusive range into a filter on "date".
func dateFilter(r repository.DateRange) bson.M {
	if r.From == nil && r.To == nil {
		return bson.M{}
	}
	cond := bson.M{}
	if r.From != nil {
		cond["$gte"] = *r.From
	}
	if r.To != nil {
		cond["$lte"] = *r.To
	}
	return bson.M{"date": cond}
}

// pageOptions sorts newest first and applies limit/skip.
func pageOptions(p repository.Page) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(p.Limit)).
		SetSkip(p.Skip())
}

// dayKey formats a date field as a UTC calendar day inside a $group stage.
func dayKey(field string) bson.M {
	return bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": field}}
}
