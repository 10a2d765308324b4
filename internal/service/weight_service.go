package service

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultWeightListLimit = 30

// WeightPatch is a partial update of a weight log. Nil fields are left unchanged.
type WeightPatch struct {
	Weight          *float64
	BodyFat         *float64
	MuscleMass      *float64
	WaterPercentage *float64
	Notes           *string
	Date            *time.Time
}

type WeightService interface {
	Create(ctx context.Context, ownerID primitive.ObjectID, log *domain.WeightLog) (*domain.WeightLog, error)
	List(ctx context.Context, ownerID primitive.ObjectID, limit int) ([]domain.WeightLog, error)
	// Latest returns nil without error when nothing has been logged.
	Latest(ctx context.Context, ownerID primitive.ObjectID) (*domain.WeightLog, error)
	Get(ctx context.Context, ownerID, id primitive.ObjectID) (*domain.WeightLog, error)
	Update(ctx context.Context, ownerID, id primitive.ObjectID, patch WeightPatch) (*domain.WeightLog, error)
	Delete(ctx context.Context, ownerID, id primitive.ObjectID) error
	Progress(ctx context.Context, ownerID primitive.ObjectID) (domain.WeightProgress, error)
}

type weightService struct {
	weightRepo repository.WeightRepository
}

func NewWeightService(weightRepo repository.WeightRepository) WeightService {
	return &weightService{weightRepo: weightRepo}
}

func (s *weightService) Create(ctx context.Context, ownerID primitive.ObjectID, log *domain.WeightLog) (*domain.WeightLog, error) {
	log.UserID = ownerID
	if log.Date.IsZero() {
		log.Date = timeNow()
	}
	if err := validateWeight(log); err != nil {
		return nil, err
	}
	id, err := s.weightRepo.Create(ctx, log)
	if err != nil {
		return nil, err
	}
	log.ID = id
	return log, nil
}

// List returns the newest entries first, DefaultWeightListLimit when limit <= 0.
func (s *weightService) List(ctx context.Context, ownerID primitive.ObjectID, limit int) ([]domain.WeightLog, error) {
	if limit <= 0 {
		limit = DefaultWeightListLimit
	}
	return s.weightRepo.List(ctx, ownerID, limit)
}

func (s *weightService) Latest(ctx context.Context, ownerID primitive.ObjectID) (*domain.WeightLog, error) {
	log, err := s.weightRepo.Latest(ctx, ownerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return log, err
}

func (s *weightService) Get(ctx context.Context, ownerID, id primitive.ObjectID) (*domain.WeightLog, error) {
	log, err := s.weightRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWeightNotFound
		}
		return nil, err
	}
	return log, nil
}

func (s *weightService) Update(ctx context.Context, ownerID, id primitive.ObjectID, patch WeightPatch) (*domain.WeightLog, error) {
	log, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if patch.Weight != nil {
		log.Weight = *patch.Weight
	}
	if patch.BodyFat != nil {
		log.BodyFat = patch.BodyFat
	}
	if patch.MuscleMass != nil {
		log.MuscleMass = patch.MuscleMass
	}
	if patch.WaterPercentage != nil {
		log.WaterPercentage = patch.WaterPercentage
	}
	if patch.Notes != nil {
		log.Notes = *patch.Notes
	}
	if patch.Date != nil {
		log.Date = *patch.Date
	}
	if err := validateWeight(log); err != nil {
		return nil, err
	}

	if err := s.weightRepo.Update(ctx, log); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWeightNotFound
		}
		return nil, err
	}
	return log, nil
}

func (s *weightService) Delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	err := s.weightRepo.Delete(ctx, ownerID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrWeightNotFound
	}
	return err
}

// Progress summarises the full history.
func (s *weightService) Progress(ctx context.Context, ownerID primitive.ObjectID) (domain.WeightProgress, error) {
	logs, err := s.weightRepo.History(ctx, ownerID, repository.DateRange{})
	if err != nil {
		return domain.WeightProgress{}, err
	}
	return domain.ComputeWeightProgress(logs), nil
}

func percentage(p *float64) bool {
	return p == nil || (*p >= 0 && *p <= 100)
}

func validateWeight(l *domain.WeightLog) error {
	var errs fieldErrors
	errs.check(l.Weight > 0, "weight", "Weight must be positive")
	errs.check(percentage(l.BodyFat), "bodyFat", "Body fat must be between 0 and 100")
	errs.check(percentage(l.WaterPercentage), "waterPercentage", "Water percentage must be between 0 and 100")
	errs.check(nonNegative(l.MuscleMass), "muscleMass", "Muscle mass cannot be negative")
	return errs.err()
}
