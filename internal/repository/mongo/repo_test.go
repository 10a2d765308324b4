package mongo

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMock(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestUserRepository(t *testing.T) {
	mt := newMock(t)

	mt.Run("get by email", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "fittrack.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Alice"},
			{Key: "email", Value: "alice@example.com"},
			{Key: "role", Value: "user"},
		}))

		user, err := NewMongoUserRepository(mt.DB).GetByEmail(context.Background(), "alice@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, id, user.ID)
		assert.Equal(mt, domain.RoleUser, user.Role)
	})

	mt.Run("missing user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "fittrack.users", mtest.FirstBatch))

		_, err := NewMongoUserRepository(mt.DB).GetByID(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key error"}))

		_, err := NewMongoUserRepository(mt.DB).Create(context.Background(), &domain.User{
			Email:        "alice@example.com",
			PasswordHash: "hash",
			Role:         domain.RoleUser,
		})
		assert.ErrorIs(mt, err, repository.ErrDuplicate)
	})

	mt.Run("assign trainer conflict", func(mt *mtest.T) {
		userID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, "fittrack.users", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: userID},
				{Key: "role", Value: "user"},
				{Key: "assignedTrainer", Value: primitive.NewObjectID()},
			}),
		)

		err := NewMongoUserRepository(mt.DB).AssignTrainerIfUnassigned(context.Background(), userID, primitive.NewObjectID())
		assert.ErrorIs(mt, err, repository.ErrConflict)
	})

	mt.Run("assign trainer filter", func(mt *mtest.T) {
		userID, trainerID := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		require.NoError(mt, NewMongoUserRepository(mt.DB).AssignTrainerIfUnassigned(context.Background(), userID, trainerID))

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "update", evt.CommandName)
		q := evt.Command.Lookup("updates").Array().Index(0).Value().Document().Lookup("q").Document()
		assert.Equal(mt, userID, q.Lookup("_id").ObjectID())
		assert.Equal(mt, "user", q.Lookup("role").StringValue())
	})
}

func TestWorkoutRepository(t *testing.T) {
	mt := newMock(t)

	mt.Run("owner scoped get", func(mt *mtest.T) {
		owner := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "fittrack.workouts", mtest.FirstBatch))

		_, err := NewMongoWorkoutRepository(mt.DB).GetByID(context.Background(), owner, primitive.NewObjectID())
		assert.ErrorIs(mt, err, repository.ErrNotFound)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		filter := evt.Command.Lookup("filter").Document()
		assert.Equal(mt, owner, filter.Lookup("user").ObjectID())
	})

	mt.Run("list with total", func(mt *mtest.T) {
		owner := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "fittrack.workouts", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "user", Value: owner}, {Key: "name", Value: "Run"}},
			),
			mtest.CreateCursorResponse(0, "fittrack.workouts", mtest.FirstBatch, bson.D{{Key: "n", Value: int32(11)}}),
		)

		workouts, total, err := NewMongoWorkoutRepository(mt.DB).List(context.Background(), owner, repository.DateRange{}, repository.Page{Limit: 10, Page: 1})
		require.NoError(mt, err)
		assert.Len(mt, workouts, 1)
		assert.EqualValues(mt, 11, total)
	})

	mt.Run("stats without workouts", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "fittrack.workouts", mtest.FirstBatch))

		stats, err := NewMongoWorkoutRepository(mt.DB).Stats(context.Background(), primitive.NewObjectID(), time.Now())
		require.NoError(mt, err)
		assert.Equal(mt, domain.WorkoutStats{}, stats)
	})

	mt.Run("stats rollup", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "fittrack.workouts", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalWorkouts", Value: int32(2)},
			{Key: "totalDuration", Value: 90.0},
			{Key: "totalCalories", Value: 700.0},
			{Key: "avgDuration", Value: 45.0},
		}))

		stats, err := NewMongoWorkoutRepository(mt.DB).Stats(context.Background(), primitive.NewObjectID(), time.Now())
		require.NoError(mt, err)
		assert.Equal(mt, domain.WorkoutStats{TotalWorkouts: 2, TotalDuration: 90, TotalCalories: 700, AvgDuration: 45}, stats)
	})

	mt.Run("delete foreign workout", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := NewMongoWorkoutRepository(mt.DB).Delete(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})
}

func TestTrainerRequestRepository(t *testing.T) {
	mt := newMock(t)

	mt.Run("resolve already processed", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := NewMongoTrainerRequestRepository(mt.DB).Resolve(context.Background(),
			primitive.NewObjectID(), primitive.NewObjectID(), domain.RequestApproved, "", time.Now())
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("resolve requires terminal status", func(mt *mtest.T) {
		_, err := NewMongoTrainerRequestRepository(mt.DB).Resolve(context.Background(),
			primitive.NewObjectID(), primitive.NewObjectID(), domain.RequestPending, "", time.Now())
		assert.Error(mt, err)
	})

	mt.Run("reopen blocked by newer pending request", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "one_pending_per_user"}))

		err := NewMongoTrainerRequestRepository(mt.DB).Reopen(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, repository.ErrDuplicate)
	})

	mt.Run("withdraw only matches approved requests", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		err := NewMongoTrainerRequestRepository(mt.DB).Withdraw(context.Background(), id, "superseded", time.Now())
		require.NoError(mt, err)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "update", started.CommandName)
		filter := started.Command.Lookup("updates").Array().Index(0).Value().Document().Lookup("q").Document()
		assert.Equal(mt, id, filter.Lookup("_id").ObjectID())
		assert.Equal(mt, string(domain.RequestApproved), filter.Lookup("status").StringValue())
	})

	mt.Run("withdraw missing request", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := NewMongoTrainerRequestRepository(mt.DB).Withdraw(context.Background(), primitive.NewObjectID(), "", time.Now())
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("second pending request", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "one_pending_per_user"}))

		_, err := NewMongoTrainerRequestRepository(mt.DB).Create(context.Background(), &domain.TrainerRequest{
			UserID:    primitive.NewObjectID(),
			TrainerID: primitive.NewObjectID(),
		})
		assert.ErrorIs(mt, err, repository.ErrDuplicate)
	})
}
