package service

import (
	"alcyxob/fittrack/internal/domain"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRequestApproveAssignsTrainer(t *testing.T) {
	e := newTestEnv()
	ctx := context.Background()
	alice := register(t, e, "Alice", "alice@example.com", domain.RoleUser)
	coach := register(t, e, "Coach Tom", "tom@example.com", domain.RoleTrainer)
	other := register(t, e, "Coach Ann", "ann@example.com", domain.RoleTrainer)

	req, err := e.client.RequestTrainer(ctx, alice.ID, coach.ID, "hi")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, req.Request.Status)
	assert.Equal(t, "hi", req.Request.Message)
	require.NotNil(t, req.Trainer)
	assert.Equal(t, "Coach Tom", req.Trainer.Name)

	pending, err := e.trainer.ListRequests(ctx, coach.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Alice", pending[0].User.Name)

	approved, err := e.trainer.ApproveRequest(ctx, coach.ID, req.Request.ID, "welcome")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestApproved, approved.Request.Status)
	assert.Equal(t, "welcome", approved.Request.ResponseMessage)
	assert.NotNil(t, approved.Request.RespondedAt)

	acc, err := e.auth.GetAccount(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, acc.Trainer)
	assert.Equal(t, coach.Name, acc.Trainer.Name)

	_, err = e.client.RequestTrainer(ctx, alice.ID, other.ID, "switch?")
	assert.ErrorIs(t, err, ErrAlreadyHasTrainer)
	assert.Equal(t, KindConflict, KindOf(err))

	clients, err := e.trainer.ListClients(ctx, coach.ID)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, alice.ID, clients[0].ID)
}

func TestOnePendingRequestPerUser(t *testing.T) {
	e := newTestEnv()
	ctx := context.Background()
	alice := register(t, e, "Alice", "alice@example.com", domain.RoleUser)
	tom := register(t, e, "Tom", "tom@example.com", domain.RoleTrainer)
	ann := register(t, e, "Ann", "ann@example.com", domain.RoleTrainer)

	_, err := e.client.RequestTrainer(ctx, alice.ID, tom.ID, "")
	require.NoError(t, err)

	_, err = e.client.RequestTrainer(ctx, alice.ID, tom.ID, "again")
	assert.ErrorIs(t, err, ErrPendingRequestExists)
	_, err = e.client.RequestTrainer(ctx, alice.ID, ann.ID, "")
	assert.ErrorIs(t, err, ErrPendingRequestExists)
}

func TestRequestTrainerTargetMustBeTrainer(t *testing.T) {
	e := newTestEnv()
	ctx := context.Background()
	alice := register(t, e, "Alice", "alice@example.com", domain.RoleUser)
	bob := register(t, e, "Bob", "bob@example.com", domain.RoleUser)

	_, err := e.client.RequestTrainer(ctx, alice.ID, bob.ID, "")
	assert.ErrorIs(t, err, ErrTrainerNotFound)

	_, err = e.client.RequestTrainer(ctx, alice.ID, primitive.NewObjectID(), "")
	assert.ErrorIs(t, err, ErrTrainerNotFound)
}

func TestRequestMessageLimit(t *testing.T) {
	e := newTestEnv()
	alice := register(t, e, "Alice", "alice@example.com", domain.RoleUser)
	tom := register(t, e, "Tom", "tom@example.com", domain.RoleTrainer)

	_, err := e.client.RequestTrainer(context.Background(), alice.ID, tom.ID, strings.Repeat("x", domain.MaxRequestMessageLen+1))
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = e.client.RequestTrainer(context.Background(), alice.ID, tom.ID, strings.Repeat("é", domain.MaxRequestMessageLen))
	assert.NoError(t, err)
}

func TestCancelRequest(t *testing.T) {
	e := newTestEnv()
	ctx := context.Background()
	alice := register(t, e, "Alice", "alice@example.com", domain.RoleUser)
	bob := register(t, e, "Bob", "bob@example.com", domain.RoleUser)
	tom := register(t, e, "Tom", "tom@example.com", domain.RoleTrainer)

	req, err := e.client.RequestTrainer(ctx, alice.ID, tom.ID, "")
	require.NoError(t, err)

	mine, err := e.client.MyRequest(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, mine)
	assert.Equal(t, req.Request.ID, mine.Request.ID)

	err = e.client.CancelRequest(ctx, bob.ID, req.Request.ID)
	assert.ErrorIs(t, err, ErrRequestNotFound)

	require.NoError(t, e.client.CancelRequest(ctx, alice.ID, req.Request.ID))
	mine, err = e.client.MyRequest(ctx, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, mine)

	err = e.client.CancelRequest(ctx, alice.ID, req.Request.ID)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestRejectLeavesUserFree(t *testing.T) {
	e := newTestEnv()
	ctx := context.Background()
	alice := register(t, e, "Alice", "alice@example.com", domain.RoleUser)
	tom := register(t, e, "Tom", "tom@example.com", domain.RoleTrainer)

	req, err := e.client.RequestTrainer(ctx, alice.ID, tom.ID, "")
	require.NoError(t, err)

	rejected, err := e.trainer.RejectRequest(ctx, tom.ID, req.Request.ID, "full")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestRejected, rejected.Request.Status)

	_, err = e.trainer.ApproveRequest(ctx, tom.ID, req.Request.ID, "")
	assert.ErrorIs(t, err, ErrRequestNotFound)

	acc, err := e.auth.GetAccount(ctx, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, acc.Trainer)

	_, err = e.client.RequestTrainer(ctx, alice.ID, tom.ID, "please")
	assert.NoError(t, err)
}

func TestOnlyAddressedTrainerMayResolve(t *testing.T) {
	e := newTestEnv()
	ctx := context.Background()
	alice := register(t, e, "Alice", "alice@example.com", domain.RoleUser)
	tom := register(t, e, "Tom", "tom@example.com", domain.RoleTrainer)
	ann := register(t, e, "Ann", "ann@example.com", domain.RoleTrainer)

	req, err := e.client.RequestTrainer(ctx, alice.ID, tom.ID, "")
	require.NoError(t, err)

	_, err = e.trainer.ApproveRequest(ctx, ann.ID, req.Request.ID, "")
	assert.ErrorIs(t, err, ErrRequestNotFound)
	_, err = e.trainer.RejectRequest(ctx, ann.ID, req.Request.ID, "")
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestApproveRollsBackWhenUserWasTaken(t *testing.T) {
	e := newTestEnv()
	ctx := context.Background()
	alice := register(t, e, "Alice", "alice@example.com", domain.RoleUser)
	tom := register(t, e, "Tom", "tom@example.com", domain.RoleTrainer)
	ann := register(t, e, "Ann", "ann@example.com", domain.RoleTrainer)

	req, err := e.client.RequestTrainer(ctx, alice.ID, tom.ID, "")
	require.NoError(t, err)

	// Ann claims Alice directly while Tom's request is still pending.
	_, err = e.trainer.AssignClient(ctx, ann.ID, alice.ID)
	require.NoError(t, err)

	_, err = e.trainer.ApproveRequest(ctx, tom.ID, req.Request.ID, "")
	assert.ErrorIs(t, err, ErrClientTaken)

	stored, err := e.requests.GetByID(ctx, req.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, stored.Status)
	assert.Nil(t, stored.RespondedAt)

	acc, err := e.auth.GetAccount(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, acc.Trainer)
	assert.Equal(t, ann.ID, acc.Trainer.ID)
}

func TestApproveWithdrawsRequestSupersededDuringRollback(t *testing.T) {
	e := newTestEnv()
	ctx := context.Background()
	alice := register(t, e, "Alice", "alice@example.com", domain.RoleUser)
	tom := register(t, e, "Tom", "tom@example.com", domain.RoleTrainer)
	ann := register(t, e, "Ann", "ann@example.com", domain.RoleTrainer)
	bob := register(t, e, "Bob", "bob@example.com", domain.RoleTrainer)

	first, err := e.client.RequestTrainer(ctx, alice.ID, tom.ID, "")
	require.NoError(t, err)

	// While Tom's approval is in flight Alice asks Bob, then Ann claims her.
	var second *RequestDetails
	e.users.beforeAssign = func() {
		second, err = e.client.RequestTrainer(ctx, alice.ID, bob.ID, "")
		require.NoError(t, err)
		_, err = e.trainer.AssignClient(ctx, ann.ID, alice.ID)
		require.NoError(t, err)
	}

	_, err = e.trainer.ApproveRequest(ctx, tom.ID, first.Request.ID, "welcome")
	assert.ErrorIs(t, err, ErrClientTaken)
	require.NotNil(t, second)

	stored, err := e.requests.GetByID(ctx, first.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestRejected, stored.Status)
	assert.Equal(t, supersededResponse, stored.ResponseMessage)
	assert.NotNil(t, stored.RespondedAt)

	pending, err := e.client.MyRequest(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, second.Request.ID, pending.Request.ID)
}

func TestRemoveTrainer(t *testing.T) {
	e := newTestEnv()
	ctx := context.Background()
	alice := register(t, e, "Alice", "alice@example.com", domain.RoleUser)
	tom := register(t, e, "Tom", "tom@example.com", domain.RoleTrainer)

	_, err := e.trainer.AssignClient(ctx, tom.ID, alice.ID)
	require.NoError(t, err)

	acc, err := e.client.RemoveTrainer(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, acc.User.HasTrainer())

	clients, err := e.trainer.ListClients(ctx, tom.ID)
	require.NoError(t, err)
	assert.Empty(t, clients)
}
