package helpers

import (
	"testing"
	"time"

	"AMALGAM_server/config"
	"AMALGAM_server/global"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	config.Config.SessionSecret = "test-secret"

	token, err := GenerateSessionToken("a1b2c3")
	require.NoError(t, err)

	sessionID, err := ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a1b2c3", sessionID)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	config.Config.SessionSecret = "test-secret"

	token, err := GenerateSessionToken("a1b2c3")
	require.NoError(t, err)

	config.Config.SessionSecret = "other-secret"
	_, err = ParseSessionToken(token)
	assert.Error(t, err)
}

func TestSessionTokenExpired(t *testing.T) {
	config.Config.SessionSecret = "test-secret"

	duration := global.SessionDuration
	global.SessionDuration = -time.Hour
	token, err := GenerateSessionToken("a1b2c3")
	global.SessionDuration = duration
	require.NoError(t, err)

	_, err = ParseSessionToken(token)
	assert.Error(t, err)
}
