package token_test

import (
	"cotacao/infra/token"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const key = "12345678901234567890123456789012"

func TestPasetoMaker(t *testing.T) {
	t.Parallel()

	maker, err := token.NewPasetoMaker(key)
	require.NoError(t, err)

	tok, issued, err := maker.CreateToken("session-1", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	payload, err := maker.VerifyToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "session-1", payload.SessionID)
	assert.Equal(t, issued.ID, payload.ID)
	assert.WithinDuration(t, issued.ExpiredAt, payload.ExpiredAt, time.Second)
}

func TestPasetoMakerExpired(t *testing.T) {
	t.Parallel()

	maker, err := token.NewPasetoMaker(key)
	require.NoError(t, err)

	tok, _, err := maker.CreateToken("session-1", -time.Minute)
	require.NoError(t, err)

	_, err = maker.VerifyToken(tok)
	assert.ErrorIs(t, err, token.ErrExpiredToken)
}

func TestPasetoMakerInvalid(t *testing.T) {
	t.Parallel()

	_, err := token.NewPasetoMaker("short")
	assert.Error(t, err)

	maker, err := token.NewPasetoMaker(key)
	require.NoError(t, err)

	other, err := token.NewPasetoMaker("abcdefghijabcdefghijabcdefghijab")
	require.NoError(t, err)
	tok, _, err := other.CreateToken("session-1", time.Minute)
	require.NoError(t, err)

	_, err = maker.VerifyToken(tok)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
	_, err = maker.VerifyToken("garbage")
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}
