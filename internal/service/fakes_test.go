package service

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repositories. Every read hands back a copy so services can
// mutate results (e.g. clear PasswordHash) without touching stored state.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]domain.User
	// beforeAssign, when set, runs once before the next trainer assignment.
	beforeAssign func()
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = timeNow()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return user.ID, nil
}

func (r *fakeUserRepo) find(pred func(u *domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if pred(&u) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) filter(pred func(u *domain.User) bool) []domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.User{}
	for _, u := range r.users {
		if pred(&u) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ID == id })
}

func (r *fakeUserRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	want := map[primitive.ObjectID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	return r.filter(func(u *domain.User) bool { return want[u.ID] }), nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	return r.filter(func(u *domain.User) bool { return u.Role == role }), nil
}

func (r *fakeUserRepo) modify(id primitive.ObjectID, fn func(u *domain.User) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	if err := fn(&u); err != nil {
		return err
	}
	u.UpdatedAt = timeNow()
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id primitive.ObjectID, name string, profile domain.Profile) error {
	return r.modify(id, func(u *domain.User) error {
		u.Name = name
		u.Profile = profile
		return nil
	})
}

func (r *fakeUserRepo) SetAvatar(_ context.Context, id primitive.ObjectID, objectKey string) error {
	return r.modify(id, func(u *domain.User) error {
		u.Profile.Avatar = objectKey
		return nil
	})
}

func (r *fakeUserRepo) GetClientsByTrainerID(_ context.Context, trainerID primitive.ObjectID) ([]domain.User, error) {
	return r.filter(func(u *domain.User) bool {
		return u.Role == domain.RoleUser && u.HasTrainer() && *u.AssignedTrainer == trainerID
	}), nil
}

func (r *fakeUserRepo) GetClientOfTrainer(_ context.Context, clientID, trainerID primitive.ObjectID) (*domain.User, error) {
	return r.find(func(u *domain.User) bool {
		return u.ID == clientID && u.HasTrainer() && *u.AssignedTrainer == trainerID
	})
}

func (r *fakeUserRepo) AssignTrainerIfUnassigned(_ context.Context, userID, trainerID primitive.ObjectID) error {
	if hook := r.beforeAssign; hook != nil {
		r.beforeAssign = nil
		hook()
	}
	return r.modify(userID, func(u *domain.User) error {
		if u.Role != domain.RoleUser || (u.HasTrainer() && *u.AssignedTrainer != trainerID) {
			return repository.ErrConflict
		}
		id := trainerID
		u.AssignedTrainer = &id
		return nil
	})
}

func (r *fakeUserRepo) ClearTrainer(_ context.Context, userID primitive.ObjectID) error {
	return r.modify(userID, func(u *domain.User) error {
		u.AssignedTrainer = nil
		return nil
	})
}

// ownedStore keeps documents that belong to one user each.
type ownedStore[T any] struct {
	mu    sync.Mutex
	items []T
	id    func(*T) *primitive.ObjectID
	owner func(*T) primitive.ObjectID
	date  func(*T) time.Time
}

func (s *ownedStore[T]) create(doc *T) primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	*s.id(doc) = primitive.NewObjectID()
	s.items = append(s.items, *doc)
	return *s.id(doc)
}

func (s *ownedStore[T]) get(ownerID, id primitive.ObjectID) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if *s.id(&it) == id && s.owner(&it) == ownerID {
			return &it, nil
		}
	}
	return nil, repository.ErrNotFound
}

// list returns the owner's documents matching pred, newest first unless asc.
func (s *ownedStore[T]) list(ownerID primitive.ObjectID, pred func(*T) bool, asc bool) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []T{}
	for _, it := range s.items {
		if s.owner(&it) == ownerID && (pred == nil || pred(&it)) {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if asc {
			return s.date(&out[i]).Before(s.date(&out[j]))
		}
		return s.date(&out[i]).After(s.date(&out[j]))
	})
	return out
}

func (s *ownedStore[T]) inRange(r repository.DateRange) func(*T) bool {
	return func(doc *T) bool {
		d := s.date(doc)
		if r.From != nil && d.Before(*r.From) {
			return false
		}
		if r.To != nil && d.After(*r.To) {
			return false
		}
		return true
	}
}

func (s *ownedStore[T]) since(t time.Time) func(*T) bool {
	return func(doc *T) bool { return !s.date(doc).Before(t) }
}

func (s *ownedStore[T]) replace(doc *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if *s.id(&s.items[i]) == *s.id(doc) && s.owner(&s.items[i]) == s.owner(doc) {
			s.items[i] = *doc
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *ownedStore[T]) delete(ownerID, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if *s.id(&s.items[i]) == id && s.owner(&s.items[i]) == ownerID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func pageOf[T any](items []T, p repository.Page) []T {
	if p.Skip() >= int64(len(items)) {
		return []T{}
	}
	start := int(p.Skip())
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type fakeWorkoutRepo struct{ store ownedStore[domain.Workout] }

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{store: ownedStore[domain.Workout]{
		id:    func(w *domain.Workout) *primitive.ObjectID { return &w.ID },
		owner: func(w *domain.Workout) primitive.ObjectID { return w.UserID },
		date:  func(w *domain.Workout) time.Time { return w.Date },
	}}
}

func (r *fakeWorkoutRepo) Create(_ context.Context, w *domain.Workout) (primitive.ObjectID, error) {
	return r.store.create(w), nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, ownerID, id primitive.ObjectID) (*domain.Workout, error) {
	return r.store.get(ownerID, id)
}

func (r *fakeWorkoutRepo) List(_ context.Context, ownerID primitive.ObjectID, dates repository.DateRange, p repository.Page) ([]domain.Workout, int64, error) {
	all := r.store.list(ownerID, r.store.inRange(dates), false)
	return pageOf(all, p), int64(len(all)), nil
}

func (r *fakeWorkoutRepo) ListInRange(_ context.Context, ownerID primitive.ObjectID, dates repository.DateRange) ([]domain.Workout, error) {
	return r.store.list(ownerID, r.store.inRange(dates), true), nil
}

func (r *fakeWorkoutRepo) Recent(_ context.Context, ownerID primitive.ObjectID, n int) ([]domain.Workout, error) {
	return pageOf(r.store.list(ownerID, nil, false), repository.Page{Limit: n}), nil
}

func (r *fakeWorkoutRepo) Update(_ context.Context, w *domain.Workout) error {
	return r.store.replace(w)
}

func (r *fakeWorkoutRepo) Delete(_ context.Context, ownerID, id primitive.ObjectID) error {
	return r.store.delete(ownerID, id)
}

func (r *fakeWorkoutRepo) Stats(_ context.Context, ownerID primitive.ObjectID, since time.Time) (domain.WorkoutStats, error) {
	return domain.SummarizeWorkouts(r.store.list(ownerID, r.store.since(since), true)), nil
}

func (r *fakeWorkoutRepo) WeeklyBreakdown(_ context.Context, ownerID primitive.ObjectID, since time.Time) ([]domain.WeeklyWorkouts, error) {
	return domain.GroupWorkoutsByWeek(r.store.list(ownerID, r.store.since(since), true)), nil
}

func (r *fakeWorkoutRepo) DailyCaloriesBurned(_ context.Context, ownerID primitive.ObjectID, since time.Time) ([]domain.DailyCalories, error) {
	return domain.GroupCaloriesBurnedByDay(r.store.list(ownerID, r.store.since(since), true)), nil
}

type fakeMealRepo struct{ store ownedStore[domain.Meal] }

func newFakeMealRepo() *fakeMealRepo {
	return &fakeMealRepo{store: ownedStore[domain.Meal]{
		id:    func(m *domain.Meal) *primitive.ObjectID { return &m.ID },
		owner: func(m *domain.Meal) primitive.ObjectID { return m.UserID },
		date:  func(m *domain.Meal) time.Time { return m.Date },
	}}
}

func (r *fakeMealRepo) Create(_ context.Context, m *domain.Meal) (primitive.ObjectID, error) {
	return r.store.create(m), nil
}

func (r *fakeMealRepo) GetByID(_ context.Context, ownerID, id primitive.ObjectID) (*domain.Meal, error) {
	return r.store.get(ownerID, id)
}

func (r *fakeMealRepo) List(_ context.Context, ownerID primitive.ObjectID, f repository.MealFilter, p repository.Page) ([]domain.Meal, int64, error) {
	inRange := r.store.inRange(f.Dates)
	all := r.store.list(ownerID, func(m *domain.Meal) bool {
		return inRange(m) && (f.Type == "" || m.Type == f.Type)
	}, false)
	return pageOf(all, p), int64(len(all)), nil
}

func (r *fakeMealRepo) ListInRange(_ context.Context, ownerID primitive.ObjectID, dates repository.DateRange) ([]domain.Meal, error) {
	return r.store.list(ownerID, r.store.inRange(dates), true), nil
}

func (r *fakeMealRepo) Recent(_ context.Context, ownerID primitive.ObjectID, n int) ([]domain.Meal, error) {
	return pageOf(r.store.list(ownerID, nil, false), repository.Page{Limit: n}), nil
}

func (r *fakeMealRepo) Update(_ context.Context, m *domain.Meal) error {
	return r.store.replace(m)
}

func (r *fakeMealRepo) Delete(_ context.Context, ownerID, id primitive.ObjectID) error {
	return r.store.delete(ownerID, id)
}

func (r *fakeMealRepo) DailyTotals(_ context.Context, ownerID primitive.ObjectID, since time.Time) ([]domain.DailyNutrition, error) {
	return domain.GroupMealsByDay(r.store.list(ownerID, r.store.since(since), true)), nil
}

func (r *fakeMealRepo) DailyCaloriesEaten(_ context.Context, ownerID primitive.ObjectID, since time.Time) ([]domain.DailyCalories, error) {
	return domain.GroupCaloriesEatenByDay(r.store.list(ownerID, r.store.since(since), true)), nil
}

type fakeWeightRepo struct{ store ownedStore[domain.WeightLog] }

func newFakeWeightRepo() *fakeWeightRepo {
	return &fakeWeightRepo{store: ownedStore[domain.WeightLog]{
		id:    func(l *domain.WeightLog) *primitive.ObjectID { return &l.ID },
		owner: func(l *domain.WeightLog) primitive.ObjectID { return l.UserID },
		date:  func(l *domain.WeightLog) time.Time { return l.Date },
	}}
}

func (r *fakeWeightRepo) Create(_ context.Context, l *domain.WeightLog) (primitive.ObjectID, error) {
	return r.store.create(l), nil
}

func (r *fakeWeightRepo) GetByID(_ context.Context, ownerID, id primitive.ObjectID) (*domain.WeightLog, error) {
	return r.store.get(ownerID, id)
}

func (r *fakeWeightRepo) List(_ context.Context, ownerID primitive.ObjectID, limit int) ([]domain.WeightLog, error) {
	all := r.store.list(ownerID, nil, false)
	if limit > 0 {
		return pageOf(all, repository.Page{Limit: limit}), nil
	}
	return all, nil
}

func (r *fakeWeightRepo) Latest(_ context.Context, ownerID primitive.ObjectID) (*domain.WeightLog, error) {
	all := r.store.list(ownerID, nil, false)
	if len(all) == 0 {
		return nil, repository.ErrNotFound
	}
	return &all[0], nil
}

func (r *fakeWeightRepo) History(_ context.Context, ownerID primitive.ObjectID, dates repository.DateRange) ([]domain.WeightLog, error) {
	return r.store.list(ownerID, r.store.inRange(dates), true), nil
}

func (r *fakeWeightRepo) Update(_ context.Context, l *domain.WeightLog) error {
	return r.store.replace(l)
}

func (r *fakeWeightRepo) Delete(_ context.Context, ownerID, id primitive.ObjectID) error {
	return r.store.delete(ownerID, id)
}

type fakeGoalRepo struct{ store ownedStore[domain.Goal] }

func newFakeGoalRepo() *fakeGoalRepo {
	return &fakeGoalRepo{store: ownedStore[domain.Goal]{
		id:    func(g *domain.Goal) *primitive.ObjectID { return &g.ID },
		owner: func(g *domain.Goal) primitive.ObjectID { return g.UserID },
		date:  func(g *domain.Goal) time.Time { return g.Deadline },
	}}
}

func (r *fakeGoalRepo) Create(_ context.Context, g *domain.Goal) (primitive.ObjectID, error) {
	return r.store.create(g), nil
}

func (r *fakeGoalRepo) GetByID(_ context.Context, ownerID, id primitive.ObjectID) (*domain.Goal, error) {
	return r.store.get(ownerID, id)
}

func (r *fakeGoalRepo) List(_ context.Context, ownerID primitive.ObjectID, status domain.GoalStatus) ([]domain.Goal, error) {
	return r.store.list(ownerID, func(g *domain.Goal) bool {
		return status == "" || g.Status == status
	}, true), nil
}

func (r *fakeGoalRepo) Update(_ context.Context, g *domain.Goal) error {
	return r.store.replace(g)
}

func (r *fakeGoalRepo) Delete(_ context.Context, ownerID, id primitive.ObjectID) error {
	return r.store.delete(ownerID, id)
}

type fakeRequestRepo struct {
	mu   sync.Mutex
	reqs []domain.TrainerRequest
}

func (r *fakeRequestRepo) Create(_ context.Context, req *domain.TrainerRequest) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reqs {
		if existing.UserID == req.UserID && existing.Status == domain.RequestPending {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	req.ID = primitive.NewObjectID()
	req.Status = domain.RequestPending
	req.CreatedAt = timeNow()
	r.reqs = append(r.reqs, *req)
	return req.ID, nil
}

func (r *fakeRequestRepo) find(pred func(*domain.TrainerRequest) bool) (*domain.TrainerRequest, int) {
	for i := range r.reqs {
		if pred(&r.reqs[i]) {
			req := r.reqs[i]
			return &req, i
		}
	}
	return nil, -1
}

func (r *fakeRequestRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.TrainerRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req, _ := r.find(func(q *domain.TrainerRequest) bool { return q.ID == id }); req != nil {
		return req, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeRequestRepo) FindPendingByUser(_ context.Context, userID primitive.ObjectID) (*domain.TrainerRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, _ := r.find(func(q *domain.TrainerRequest) bool {
		return q.UserID == userID && q.Status == domain.RequestPending
	})
	if req == nil {
		return nil, repository.ErrNotFound
	}
	return req, nil
}

func (r *fakeRequestRepo) ListPendingForTrainer(_ context.Context, trainerID primitive.ObjectID) ([]domain.TrainerRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.TrainerRequest{}
	for _, q := range r.reqs {
		if q.TrainerID == trainerID && q.Status == domain.RequestPending {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) Resolve(_ context.Context, id, trainerID primitive.ObjectID, status domain.RequestStatus, response string, at time.Time) (*domain.TrainerRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, i := r.find(func(q *domain.TrainerRequest) bool {
		return q.ID == id && q.TrainerID == trainerID && q.Status == domain.RequestPending
	})
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	r.reqs[i].Status = status
	r.reqs[i].ResponseMessage = response
	r.reqs[i].RespondedAt = &at
	req := r.reqs[i]
	return &req, nil
}

func (r *fakeRequestRepo) Reopen(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, i := r.find(func(q *domain.TrainerRequest) bool { return q.ID == id && q.Status == domain.RequestApproved })
	if i < 0 {
		return repository.ErrNotFound
	}
	for _, q := range r.reqs {
		if q.UserID == r.reqs[i].UserID && q.Status == domain.RequestPending {
			return repository.ErrDuplicate
		}
	}
	r.reqs[i].Status = domain.RequestPending
	r.reqs[i].ResponseMessage = ""
	r.reqs[i].RespondedAt = nil
	return nil
}

func (r *fakeRequestRepo) Withdraw(_ context.Context, id primitive.ObjectID, response string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, i := r.find(func(q *domain.TrainerRequest) bool { return q.ID == id && q.Status == domain.RequestApproved })
	if i < 0 {
		return repository.ErrNotFound
	}
	r.reqs[i].Status = domain.RequestRejected
	r.reqs[i].ResponseMessage = response
	r.reqs[i].RespondedAt = &at
	return nil
}

func (r *fakeRequestRepo) DeletePending(_ context.Context, id, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, i := r.find(func(q *domain.TrainerRequest) bool {
		return q.ID == id && q.UserID == userID && q.Status == domain.RequestPending
	})
	if i < 0 {
		return repository.ErrNotFound
	}
	r.reqs = append(r.reqs[:i], r.reqs[i+1:]...)
	return nil
}

type fakePlanRepo struct {
	mu    sync.Mutex
	plans []domain.TrainerPlan
}

func (r *fakePlanRepo) Create(_ context.Context, plan *domain.TrainerPlan) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	plan.ID = primitive.NewObjectID()
	plan.CreatedAt = timeNow()
	r.plans = append(r.plans, *plan)
	return plan.ID, nil
}

func (r *fakePlanRepo) get(pred func(*domain.TrainerPlan) bool) (*domain.TrainerPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if pred(&p) {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakePlanRepo) list(pred func(*domain.TrainerPlan) bool) []domain.TrainerPlan {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.TrainerPlan{}
	for i := len(r.plans) - 1; i >= 0; i-- {
		if pred(&r.plans[i]) {
			out = append(out, r.plans[i])
		}
	}
	return out
}

func (r *fakePlanRepo) GetForTrainer(_ context.Context, id, trainerID primitive.ObjectID) (*domain.TrainerPlan, error) {
	return r.get(func(p *domain.TrainerPlan) bool { return p.ID == id && p.TrainerID == trainerID })
}

func (r *fakePlanRepo) GetForClient(_ context.Context, id, clientID primitive.ObjectID) (*domain.TrainerPlan, error) {
	return r.get(func(p *domain.TrainerPlan) bool { return p.ID == id && p.ClientID == clientID })
}

func (r *fakePlanRepo) ListByTrainer(_ context.Context, trainerID primitive.ObjectID) ([]domain.TrainerPlan, error) {
	return r.list(func(p *domain.TrainerPlan) bool { return p.TrainerID == trainerID }), nil
}

func (r *fakePlanRepo) ListByClient(_ context.Context, clientID primitive.ObjectID) ([]domain.TrainerPlan, error) {
	return r.list(func(p *domain.TrainerPlan) bool { return p.ClientID == clientID }), nil
}

func (r *fakePlanRepo) Update(_ context.Context, plan *domain.TrainerPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.plans {
		if r.plans[i].ID == plan.ID && r.plans[i].TrainerID == plan.TrainerID {
			r.plans[i] = *plan
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakePlanRepo) Delete(_ context.Context, id, trainerID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.plans {
		if r.plans[i].ID == id && r.plans[i].TrainerID == trainerID {
			r.plans = append(r.plans[:i], r.plans[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// testEnv wires every service over fresh fakes.
type testEnv struct {
	users    *fakeUserRepo
	workouts *fakeWorkoutRepo
	meals    *fakeMealRepo
	weights  *fakeWeightRepo
	goals    *fakeGoalRepo
	requests *fakeRequestRepo
	plans    *fakePlanRepo

	auth    AuthService
	client  ClientService
	trainer TrainerService
	workout WorkoutService
	meal    MealService
	weight  WeightService
	goal    GoalService
	report  ReportService
}

func newTestEnv() *testEnv {
	e := &testEnv{
		users:    newFakeUserRepo(),
		workouts: newFakeWorkoutRepo(),
		meals:    newFakeMealRepo(),
		weights:  newFakeWeightRepo(),
		goals:    newFakeGoalRepo(),
		requests: &fakeRequestRepo{},
		plans:    &fakePlanRepo{},
	}
	e.auth = NewAuthService(e.users, &fakeStorage{}, "test-secret", time.Hour)
	e.client = NewClientService(e.users, e.requests, e.plans)
	e.trainer = NewTrainerService(e.users, e.requests, e.plans, e.workouts, e.meals, e.weights, e.goals)
	e.workout = NewWorkoutService(e.workouts)
	e.meal = NewMealService(e.meals)
	e.weight = NewWeightService(e.weights)
	e.goal = NewGoalService(e.goals)
	e.report = NewReportService(e.workouts, e.meals, e.weights, e.goals)
	return e
}

// fakeStorage records deletions and returns predictable URLs.
type fakeStorage struct {
	mu      sync.Mutex
	deleted []string
}

func (s *fakeStorage) GeneratePresignedUploadURL(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	return "https://storage.test/put/" + key, nil
}

func (s *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.test/get/" + key, nil
}

func (s *fakeStorage) DeleteObject(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	return nil
}
