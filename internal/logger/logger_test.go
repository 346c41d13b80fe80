//go:build !integration

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		pretty   bool
		expected zerolog.Level
	}{
		{name: "debug level", level: "debug", expected: zerolog.DebugLevel},
		{name: "info level", level: "info", expected: zerolog.InfoLevel},
		{name: "warn level", level: "warn", expected: zerolog.WarnLevel},
		{name: "error level", level: "error", expected: zerolog.ErrorLevel},
		{name: "upper case level", level: " DEBUG ", expected: zerolog.DebugLevel},
		{name: "invalid level defaults to info", level: "invalid", expected: zerolog.InfoLevel},
		{name: "empty level defaults to info", level: "", expected: zerolog.InfoLevel},
		{name: "pretty output", level: "info", pretty: true, expected: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init(tt.level, tt.pretty)
			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestInitWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "info", false)

	log.Info().Str("quote_id", "q-1").Msg("quote stored")
	log.Debug().Msg("dropped")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "quote stored", line["message"])
	assert.Equal(t, "q-1", line["quote_id"])
	assert.Contains(t, line, "time")
}

func TestInitWithWriter_Pretty(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "info", true)

	log.Info().Msg("catalog loaded")

	assert.Contains(t, buf.String(), "catalog loaded")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "info", false)

	l := WithContext(map[string]interface{}{"component": "solver", "nodes": 12})
	l.Info().Msg("solved")

	assert.Contains(t, buf.String(), `"component":"solver"`)
	assert.Contains(t, buf.String(), `"nodes":12`)
	assert.NotNil(t, Logger())
}
