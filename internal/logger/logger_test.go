package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuildsForKnownEnvs(t *testing.T) {
	for _, env := range []string{"development", "production", "test"} {
		log, err := New(env)
		require.NoError(t, err, "env %s", env)
		require.NotNil(t, log)
		log.Info("probe")
	}
}

func TestNewWithDefaultsNeverReturnsNil(t *testing.T) {
	assert.NotNil(t, NewWithDefaults())
}
