package service

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestDetails is a trainer request with both parties resolved.
type RequestDetails struct {
	Request domain.TrainerRequest
	User    *domain.User
	Trainer *domain.User
}

// PlanDetails is a trainer plan with both parties resolved.
type PlanDetails struct {
	Plan    domain.TrainerPlan
	Trainer *domain.User
	Client  *domain.User
}

// userLookup loads every referenced user in one query. Missing users resolve to nil.
func userLookup(ctx context.Context, users repository.UserRepository, ids ...primitive.ObjectID) (map[primitive.ObjectID]*domain.User, error) {
	seen := map[primitive.ObjectID]bool{}
	unique := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	found, err := users.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]*domain.User, len(found))
	for i := range found {
		found[i].PasswordHash = ""
		out[found[i].ID] = &found[i]
	}
	return out, nil
}

func populateRequests(ctx context.Context, users repository.UserRepository, reqs []domain.TrainerRequest) ([]RequestDetails, error) {
	ids := make([]primitive.ObjectID, 0, 2*len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.UserID, r.TrainerID)
	}
	byID, err := userLookup(ctx, users, ids...)
	if err != nil {
		return nil, err
	}
	out := make([]RequestDetails, len(reqs))
	for i, r := range reqs {
		out[i] = RequestDetails{Request: r, User: byID[r.UserID], Trainer: byID[r.TrainerID]}
	}
	return out, nil
}

func populateRequest(ctx context.Context, users repository.UserRepository, req *domain.TrainerRequest) (*RequestDetails, error) {
	out, err := populateRequests(ctx, users, []domain.TrainerRequest{*req})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func populatePlans(ctx context.Context, users repository.UserRepository, plans []domain.TrainerPlan) ([]PlanDetails, error) {
	ids := make([]primitive.ObjectID, 0, 2*len(plans))
	for _, p := range plans {
		ids = append(ids, p.TrainerID, p.ClientID)
	}
	byID, err := userLookup(ctx, users, ids...)
	if err != nil {
		return nil, err
	}
	out := make([]PlanDetails, len(plans))
	for i, p := range plans {
		out[i] = PlanDetails{Plan: p, Trainer: byID[p.TrainerID], Client: byID[p.ClientID]}
	}
	return out, nil
}

func populatePlan(ctx context.Context, users repository.UserRepository, plan *domain.TrainerPlan) (*PlanDetails, error) {
	out, err := populatePlans(ctx, users, []domain.TrainerPlan{*plan})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}
