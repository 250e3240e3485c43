package log

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {

	for level, name := range levelNames {
		parsed, err := ParseLevel(name)
		require.NoError(t, err)
		assert.Equal(t, level, parsed)
	}

	parsed, err := ParseLevel("  WARNING ")
	require.NoError(t, err)
	assert.Equal(t, Warning, parsed)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)

	assert.Equal(t, "Level(42)", Level(42).String())

}

func TestLoggerLevels(t *testing.T) {

	buffer := &bytes.Buffer{}
	SetSink(buffer)
	defer SetSink(os.Stderr)

	previous := CurrentLevel()
	defer SetLevel(previous)

	logger := New("test")

	SetLevel(Warning)
	logger.Info("hidden")
	logger.Warningf("shown %d", 1)

	assert.NotContains(t, buffer.String(), "hidden")
	assert.Contains(t, buffer.String(), "shown 1")
	assert.Contains(t, buffer.String(), "[test]")

	// Replacing the sink keeps the level.
	other := &bytes.Buffer{}
	SetSink(other)
	logger.Info("still hidden")
	assert.Empty(t, other.String())
	assert.Equal(t, Warning, CurrentLevel())

}

func TestModuleLoggersShareSink(t *testing.T) {

	buffer := &bytes.Buffer{}
	SetSink(buffer)
	defer SetSink(os.Stderr)

	previous := CurrentLevel()
	defer SetLevel(previous)
	SetLevel(Debug)

	New("bvh").Debugf("built %d nodes", 7)
	New("gltf").Warning("skipped texture")

	assert.Contains(t, buffer.String(), "[bvh] [DEBUG]")
	assert.Contains(t, buffer.String(), "built 7 nodes")
	assert.Contains(t, buffer.String(), "[gltf] [WARNING]")

}
