package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONWithLevelKey(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("debug", &buf)

	logger.WithField("id", 42).Debug("Ledger.Add")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["loglevel"])
	assert.Equal(t, "Ledger.Add", entry["msg"])
	assert.Equal(t, float64(42), entry["id"])
}

func TestNewLogger_UnknownLevel(t *testing.T) {
	logger := newLogger("chatty", &bytes.Buffer{})
	assert.Equal(t, logrus.InfoLevel, logger.Level)
}
