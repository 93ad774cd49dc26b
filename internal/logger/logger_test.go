package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("production builds a JSON logger", func(t *testing.T) {
		log, err := New("production")
		require.NoError(t, err)
		require.NotNil(t, log)
		assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("development enables debug", func(t *testing.T) {
		log, err := New("development")
		require.NoError(t, err)
		require.NotNil(t, log)
		assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
	})
}

// Feature: commerce-backoffice, Property 25: Log entries are structured
func TestProperty_LogEntriesAreStructured(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every entry encodes as one JSON object with level, timestamp and message", prop.ForAll(
		func(message string) bool {
			var buf bytes.Buffer

			encoderConfig := zap.NewProductionEncoderConfig()
			encoderConfig.TimeKey = "timestamp"
			encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

			core := zapcore.NewCore(
				zapcore.NewJSONEncoder(encoderConfig),
				zapcore.AddSync(&buf),
				zapcore.InfoLevel,
			)
			log := zap.New(core)

			log.Info(message, zap.String("component", "test"))
			log.Sync()

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				return false
			}
			if entry["msg"] != message {
				return false
			}
			if _, ok := entry["timestamp"]; !ok {
				return false
			}
			return entry["component"] == "test"
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
