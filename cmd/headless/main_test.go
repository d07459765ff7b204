package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solarflight/config"
	"solarflight/sim"
)

func defaultConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestRun_LogsSnapshots(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	err := run(context.Background(), defaultConfig(t), options{frames: 100, reportEvery: 50}, logger)
	require.NoError(t, err)

	assert.Equal(t, 3, bytes.Count(buf.Bytes(), []byte(`"message":"Snapshot"`)))
	assert.Contains(t, buf.String(), `"message":"Simulation complete"`)
}

func TestRun_AutopilotTarget(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	err := run(context.Background(), defaultConfig(t), options{frames: 2000, target: "Sun"}, logger)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"message":"Autopilot arrived"`)
}

func TestRun_UnknownTarget(t *testing.T) {
	err := run(context.Background(), defaultConfig(t), options{frames: 10, target: "Pluto"}, zerolog.Nop())
	assert.ErrorIs(t, err, sim.ErrUnknownBody)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := run(ctx, defaultConfig(t), options{frames: 10}, zerolog.Nop())
	assert.ErrorIs(t, err, context.Canceled)
}
