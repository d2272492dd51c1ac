package api

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/personal-goal-tracker-backend/errs"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := newTokenIssuer("test-secret", time.Hour)
	userID := uuid.New()

	token, err := issuer.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsedID, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsedID)
}

func TestTokenExpired(t *testing.T) {
	issuer := newTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	require.Error(t, err)
	assert.True(t, errs.IsExpiredToken(err))
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := newTokenIssuer("test-secret", time.Hour)
	other := newTokenIssuer("other-secret", time.Hour)

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = other.Parse(token)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidToken(err))
}

func TestTokenGarbage(t *testing.T) {
	issuer := newTokenIssuer("test-secret", time.Hour)

	_, err := issuer.Parse("not-a-token")
	require.Error(t, err)
	assert.True(t, errs.IsInvalidToken(err))
}
