package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/slodongo/kgl-api/internal/application/auth"
	"github.com/slodongo/kgl-api/internal/application/dto"
	"github.com/slodongo/kgl-api/internal/domain"
	"github.com/slodongo/kgl-api/internal/domain/entity"
	pkgjwt "github.com/slodongo/kgl-api/pkg/jwt"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
	byID    map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*entity.User{}, byID: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	if _, exists := r.byEmail[strings.ToLower(u.Email)]; exists {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	r.byEmail[strings.ToLower(u.Email)] = &cp
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	u, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

var testJWT = auth.JWTConfig{Secret: "test-secret", ExpDays: 7, Issuer: "kgl-api-test"}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Name:            "Jane Manager",
		Email:           "jane@kgl.test",
		Password:        "s3cret-pw",
		ConfirmPassword: "s3cret-pw",
		Role:            entity.RoleManager,
		Branch:          entity.Branch1,
		Contact:         "0770123456",
	}
}

func TestRegister_HashesPasswordAndReturnsToken(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWT)

	out, err := uc.Register(registerRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleManager, out.Role)
	assert.Equal(t, "Jane Manager", out.Name)
	assert.Equal(t, entity.Branch1, out.Branch)

	userID, email, role, err := pkgjwt.Parse(testJWT.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.UserID, userID)
	assert.Equal(t, "jane@kgl.test", email)
	assert.Equal(t, entity.RoleManager, role)

	stored, err := repo.GetByID(out.UserID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cret-pw", stored.PasswordHash, "password is never stored in the clear")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pw")))
}

func TestRegister_DuplicateEmailCaseInsensitive(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testJWT)

	_, err := uc.Register(registerRequest())
	require.NoError(t, err)

	dup := registerRequest()
	dup.Email = "JANE@KGL.TEST"
	_, err = uc.Register(dup)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testJWT)
	_, err := uc.Register(registerRequest())
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "Jane@KGL.test", Password: "s3cret-pw"})
	require.NoError(t, err, "login matches email case-insensitively")
	assert.NotEmpty(t, out.Token)

	_, err = uc.Login(dto.LoginRequest{Email: "jane@kgl.test", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nobody@kgl.test", Password: "s3cret-pw"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"unknown email and wrong password are indistinguishable")
}

func TestProfile(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testJWT)
	created, err := uc.Register(registerRequest())
	require.NoError(t, err)

	out, err := uc.Profile(created.UserID)
	require.NoError(t, err)
	assert.Equal(t, "jane@kgl.test", out.Email)
	assert.Equal(t, entity.Branch1, out.Branch)

	_, err = uc.Profile("no-such-user")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
