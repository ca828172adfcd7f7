package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/internal/infrastructure"
)

func TestNewApplication(t *testing.T) {
	infrastructure.ResetLoggerForTesting()

	t.Setenv("SALESPULSE_SERVER_PORT", "18080")
	t.Setenv("SALESPULSE_LOGGING_OUTPUT", "stdout")
	t.Setenv("SALESPULSE_SECURITY_RATE_LIMIT_ENABLED", "false")

	application, err := NewApplication()
	require.NoError(t, err)
	require.NotNil(t, application)

	assert.Equal(t, ":18080", application.Server.Addr)
	assert.NotNil(t, application.Router)
	assert.NotNil(t, application.DatasetService)
	assert.NotNil(t, application.Logger)
	assert.Equal(t, 18080, application.Config.Server.Port)

	// Stop on a never-started server exercises the shutdown path.
	require.NoError(t, application.Stop(context.Background()))
}
