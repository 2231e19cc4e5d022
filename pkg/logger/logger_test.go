package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
}

func TestNewWithWriter_EscribeJSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info")

	sub := l.Component("pedidos")
	sub.Info().Int64("pedido_id", 7).Msg("pedido creado")
	l.Debug().Msg("no debe aparecer")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "pedidos", entry["component"])
	assert.Equal(t, "pedido creado", entry["message"])
	assert.EqualValues(t, 7, entry["pedido_id"])
}
