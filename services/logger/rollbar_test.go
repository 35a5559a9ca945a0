package logsvc

import (
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pedagogyradar/radar/core"
)

func TestRollbarLogger(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	logger := NewRollbarLogger(zap.New(obs), &core.Config{Env: "TEST"})
	logger.Enable(false)

	req := httptest.NewRequest("POST", "/scaffold", nil)
	logger.Info("serving", req)
	logger.Error("failed", errors.New("boom"), map[string]interface{}{"strategy": "pbl"})
	logger.Debug("plain")

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)

	assert.Equal(t, "serving", entries[0].Message)
	assert.Equal(t, "/scaffold", entries[0].ContextMap()["path"])
	assert.Equal(t, "POST", entries[0].ContextMap()["method"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
	assert.Equal(t, map[string]interface{}{"strategy": "pbl"}, entries[1].ContextMap()["data"])

	assert.Equal(t, zapcore.DebugLevel, entries[2].Level)
	assert.Empty(t, entries[2].Context)
}
