package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*ZapAdapter, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return FromZap(zap.New(core)), logs
}

func TestZapAdapter_Levels(t *testing.T) {
	log, logs := newObserved()

	log.Debug("d")
	log.Info("i", "key", "value")
	log.Warn("w")
	log.Error("e")

	require.Equal(t, 4, logs.Len())
	entries := logs.All()
	assert.Equal(t, "i", entries[1].Message)
	assert.Equal(t, "value", entries[1].ContextMap()["key"])
}

func TestZapAdapter_WithField(t *testing.T) {
	log, logs := newObserved()

	log.WithField("runId", "abc").Info("started")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "abc", logs.All()[0].ContextMap()["runId"])
}

func TestZapAdapter_WithFields(t *testing.T) {
	log, logs := newObserved()

	log.WithFields(map[string]any{"a": 1, "b": 2}).Info("x")

	ctx := logs.All()[0].ContextMap()
	assert.EqualValues(t, 1, ctx["a"])
	assert.EqualValues(t, 2, ctx["b"])
}

func TestNewZapAdapter_BadLevelFallsBack(t *testing.T) {
	log, err := NewZapAdapter("nonsense", false)
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.NoError(t, log.Close())
}
