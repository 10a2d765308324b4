package service

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"alcyxob/fittrack/internal/storage"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

// RegisterInput carries the fields of a new account. An empty role means user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// Session is what Register and Login hand back to the caller.
type Session struct {
	Token string
	User  *domain.User
}

// Account is a user together with their assigned trainer, if any.
type Account struct {
	User    *domain.User
	Trainer *domain.User
}

// ProfileUpdate is a partial update of the caller's own account.
type ProfileUpdate struct {
	Name    *string
	Profile domain.ProfilePatch
}

// UploadURL is a presigned upload target plus the key to report back.
type UploadURL struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	// ResolveToken verifies a bearer token and loads the user it names.
	ResolveToken(ctx context.Context, token string) (*domain.User, error)

	GetAccount(ctx context.Context, userID primitive.ObjectID) (*Account, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, upd ProfileUpdate) (*Account, error)
	ListTrainers(ctx context.Context) ([]domain.User, error)

	AvatarUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (*UploadURL, error)
	SetAvatar(ctx context.Context, userID primitive.ObjectID, objectKey string) (*Account, error)
	AvatarURL(ctx context.Context, userID primitive.ObjectID) (string, error)
}

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	fileStorage   storage.FileStorage
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, fileStorage storage.FileStorage, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // config.Validate should have caught this
	}
	return &authService{
		userRepo:      userRepo,
		fileStorage:   fileStorage,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new user registration.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = domain.NormalizeEmail(in.Email)
	if in.Role == "" {
		in.Role = domain.RoleUser
	}

	var errs fieldErrors
	errs.check(in.Name != "", "name", "Name is required")
	errs.check(validEmail(in.Email), "email", "Please include a valid email")
	errs.check(len(in.Password) >= minPasswordLen, "password", fmt.Sprintf("Password must be at least %d characters", minPasswordLen))
	errs.check(in.Role.Valid(), "role", "Role must be user or trainer")
	if err := errs.err(); err != nil {
		return nil, err
	}

	_, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hashedPassword),
		Role:         in.Role,
		Profile:      domain.Profile{HeightUnit: domain.HeightUnitCM},
	}
	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// Lost a race with a concurrent registration of the same email.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	user.ID = userID

	return s.newSession(user)
}

// Login handles user authentication and JWT generation. Unknown email and
// wrong password fail identically.
func (s *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = domain.NormalizeEmail(email)
	var errs fieldErrors
	errs.check(validEmail(email), "email", "Please include a valid email")
	errs.check(password != "", "password", "Password is required")
	if err := errs.err(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.newSession(user)
}

func (s *authService) newSession(user *domain.User) (*Session, error) {
	token, err := s.generateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	user.PasswordHash = ""
	return &Session{Token: token, User: user}, nil
}

// ResolveToken verifies the signature and expiry, then loads the user. A token
// for a deleted user is rejected.
func (s *authService) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// GetAccount loads the user and their trainer. A dangling trainer reference
// yields an account without a trainer.
func (s *authService) GetAccount(ctx context.Context, userID primitive.ObjectID) (*Account, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return loadAccount(ctx, s.userRepo, user)
}

func loadAccount(ctx context.Context, users repository.UserRepository, user *domain.User) (*Account, error) {
	acc := &Account{User: user}
	if !user.HasTrainer() {
		return acc, nil
	}
	trainer, err := users.GetByID(ctx, *user.AssignedTrainer)
	switch {
	case err == nil:
		trainer.PasswordHash = ""
		acc.Trainer = trainer
	case errors.Is(err, repository.ErrNotFound):
		log.Printf("WARN: User %s references missing trainer %s", user.ID.Hex(), user.AssignedTrainer.Hex())
	default:
		return nil, err
	}
	return acc, nil
}

// UpdateProfile merges the patch into the stored profile field by field.
func (s *authService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, upd ProfileUpdate) (*Account, error) {
	if err := validateProfileUpdate(upd); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	name := user.Name
	if upd.Name != nil {
		name = strings.TrimSpace(*upd.Name)
	}
	profile := user.Profile.Merge(upd.Profile)

	if err := s.userRepo.UpdateProfile(ctx, userID, name, profile); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.GetAccount(ctx, userID)
}

func validateProfileUpdate(upd ProfileUpdate) error {
	var errs fieldErrors
	p := upd.Profile
	if upd.Name != nil {
		errs.check(strings.TrimSpace(*upd.Name) != "", "name", "Name cannot be empty")
	}
	if p.Age != nil {
		errs.check(*p.Age > 0 && *p.Age < 150, "profile.age", "Age must be between 1 and 149")
	}
	if p.Gender != nil {
		errs.check(p.Gender.Valid(), "profile.gender", "Gender must be male, female or other")
	}
	if p.HeightUnit != nil {
		errs.check(p.HeightUnit.Valid(), "profile.heightUnit", "Height unit must be cm or ft")
	}
	if p.ActivityLevel != nil {
		errs.check(p.ActivityLevel.Valid(), "profile.activityLevel", "Unknown activity level")
	}
	errs.check(nonNegative(p.Height), "profile.height", "Height cannot be negative")
	errs.check(nonNegative(p.HeightFeet), "profile.heightFeet", "Height cannot be negative")
	errs.check(nonNegative(p.HeightInches), "profile.heightInches", "Height cannot be negative")
	return errs.err()
}

// ListTrainers returns every trainer account, by name.
func (s *authService) ListTrainers(ctx context.Context) ([]domain.User, error) {
	trainers, err := s.userRepo.ListByRole(ctx, domain.RoleTrainer)
	if err != nil {
		return nil, err
	}
	for i := range trainers {
		trainers[i].PasswordHash = ""
	}
	return trainers, nil
}

// === Avatar ===

// AvatarUploadURL issues a presigned PUT for a new avatar image.
func (s *authService) AvatarUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (*UploadURL, error) {
	key, err := storage.NewAvatarKey(userID.Hex(), contentType)
	if err != nil {
		return nil, Validation(FieldError{Field: "contentType", Message: "Content type must be a JPEG, PNG, WebP or GIF image"})
	}

	url, err := s.fileStorage.GeneratePresignedUploadURL(ctx, key, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, storageError(err)
	}
	return &UploadURL{UploadURL: url, ObjectKey: key}, nil
}

// SetAvatar records an uploaded avatar and deletes the previous one.
func (s *authService) SetAvatar(ctx context.Context, userID primitive.ObjectID, objectKey string) (*Account, error) {
	if !storage.OwnsAvatarKey(userID.Hex(), objectKey) {
		return nil, Validation(FieldError{Field: "objectKey", Message: "Object key was not issued for this account"})
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.userRepo.SetAvatar(ctx, userID, objectKey); err != nil {
		return nil, err
	}

	if old := user.Profile.Avatar; old != "" && old != objectKey {
		if err := s.fileStorage.DeleteObject(ctx, old); err != nil {
			log.Printf("WARN: Failed to delete previous avatar %s of user %s: %v", old, userID.Hex(), err)
		}
	}
	return s.GetAccount(ctx, userID)
}

// AvatarURL returns a presigned GET for the caller's avatar.
func (s *authService) AvatarURL(ctx context.Context, userID primitive.ObjectID) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	if user.Profile.Avatar == "" {
		return "", ErrAvatarNotSet
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, user.Profile.Avatar, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", storageError(err)
	}
	return url, nil
}

func storageError(err error) error {
	if errors.Is(err, storage.ErrStorageDisabled) {
		return ErrStorageUnavailable
	}
	return fmt.Errorf("file storage: %w", err)
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := &jwtClaims{
		UserID: user.ID.Hex(),
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "fittrack",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
