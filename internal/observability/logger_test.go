package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithSessionAttachesSessionID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{
		Level:       "debug",
		Format:      "json",
		Output:      &buf,
		ServiceName: "bankbot",
	})

	logger.WithSession("abc-123").Info().Msg("turn classified")

	out := buf.String()
	assert.Contains(t, out, `"session_id":"abc-123"`)
	assert.Contains(t, out, `"service":"bankbot"`)
}

func TestWithComponentAttachesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{
		Level:  "debug",
		Format: "json",
		Output: &buf,
	})

	logger.WithComponent("chat").Debug().Str("language", "bg").Msg("dispatch")

	assert.Contains(t, buf.String(), `"component":"chat"`)
}
