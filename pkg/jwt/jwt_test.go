package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/slodongo/kgl-api/pkg/jwt"
)

const (
	secret = "unit-test-secret"
	userID = "11111111-1111-1111-1111-111111111111"
	email  = "manager@kgl.test"
	issuer = "kgl-api-test"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, email, "manager", issuer, 7)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	gotID, gotEmail, gotRole, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, email, gotEmail)
	assert.Equal(t, "manager", gotRole)
}

func TestParse_ExpiredToken(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, email, "agent", issuer, -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, email, "director", issuer, 7)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("a-completely-different-secret", tok)
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := pkgjwt.Generate("", userID, email, "agent", issuer, 7)
	assert.Error(t, err)
}
