package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/course-api/pkg/config"
	"github.com/noah-isme/course-api/pkg/middleware/requestid"
)

func TestWithContextAddsCorrelationID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	ctx := requestid.NewContext(context.Background(), "corr-1")
	WithContext(ctx, base).Info("fetching teacher")
	WithContext(context.Background(), base).Info("no request")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "corr-1", entries[0].ContextMap()["correlation_id"])
	assert.Equal(t, "N/A", entries[1].ContextMap()["correlation_id"])
}

func TestNewFallsBackOnBadLevel(t *testing.T) {
	l, err := New(&config.Config{Env: config.EnvDevelopment, Log: config.LogConfig{Level: "loud", Format: "console"}})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.InfoLevel))
}
