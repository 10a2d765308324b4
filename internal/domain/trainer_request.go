package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestStatus type for trainer request lifecycle
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved" // terminal
	RequestRejected RequestStatus = "rejected" // terminal
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible from s.
func (s RequestStatus) Terminal() bool {
	return s == RequestApproved || s == RequestRejected
}

// MaxRequestMessageLen bounds both the request and response messages.
const MaxRequestMessageLen = 500

// TrainerRequest is a user's offer to be coached by a trainer. A cancelled
// request is deleted rather than stored with a status.
type TrainerRequest struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID          primitive.ObjectID `bson:"user" json:"user"`
	TrainerID       primitive.ObjectID `bson:"trainer" json:"trainer"`
	Status          RequestStatus      `bson:"status" json:"status"`
	Message         string             `bson:"message" json:"message"`
	ResponseMessage string             `bson:"responseMessage,omitempty" json:"responseMessage,omitempty"`
	RespondedAt     *time.Time         `bson:"respondedAt,omitempty" json:"respondedAt,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
