package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/slodongo/kgl-api/internal/application/dto"
	"github.com/slodongo/kgl-api/internal/domain"
	"github.com/slodongo/kgl-api/internal/domain/entity"
	"github.com/slodongo/kgl-api/internal/domain/repository"
	"github.com/slodongo/kgl-api/pkg/jwt"
)

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret  string
	ExpDays int
	Issuer  string
}

// AuthUseCase registration, login and profile lookup.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase builds the auth use case.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register hashes the password with bcrypt, persists the user and returns a
// signed token. Emails are normalized to lowercase so duplicates are caught
// case-insensitively; returns ErrEmailAlreadyExists on a duplicate.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	existing, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Branch:       in.Branch,
		Contact:      in.Contact,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		// The unique index is the last word on concurrent registrations.
		return nil, err
	}

	return uc.authResponse(user)
}

// Login verifies email and password and returns a signed token. Unknown email
// and wrong password both map to ErrUnauthorized, the handler surfaces a
// single generic 401 either way.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	return uc.authResponse(user)
}

// Profile returns a user without the credential hash.
func (uc *AuthUseCase) Profile(id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

func (uc *AuthUseCase) authResponse(user *entity.User) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpDays)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token:  token,
		Role:   user.Role,
		UserID: user.ID,
		Name:   user.Name,
		Branch: user.Branch,
	}, nil
}

// ToUserResponse maps a User entity to its client representation.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Branch:    u.Branch,
		Contact:   u.Contact,
		Photo:     u.Photo,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
