package infra

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOOKUP_TIMEOUT", "5s")
	t.Setenv("SESSION_TTL", "not-a-duration")
	t.Setenv("LOOKUP_BASE_URL", "")

	config := NewConfig()

	assert.Equal(t, ":9090", config.ServerPort)
	assert.Equal(t, "http://localhost:9090", config.LookupBaseURL)
	assert.Equal(t, 5*time.Second, config.LookupTimeout)
	assert.Equal(t, defaultSessionTTL, config.SessionTTL)
}
