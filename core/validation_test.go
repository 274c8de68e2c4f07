package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateMessage(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		msg := &Message{Sender: SenderTypeLead, SenderName: "Ana", Content: "hola"}
		assert.NoError(t, ValidateMessage(msg))
	})

	t.Run("empty sender name allowed", func(t *testing.T) {
		msg := &Message{Sender: SenderTypeAgent, Content: "buenas tardes"}
		assert.NoError(t, ValidateMessage(msg))
	})

	t.Run("nil message", func(t *testing.T) {
		assert.ErrorIs(t, ValidateMessage(nil), ErrInvalidMessage)
	})

	t.Run("empty content", func(t *testing.T) {
		err := ValidateMessage(&Message{Sender: SenderTypeLead, Content: ""})
		assert.ErrorIs(t, err, ErrInvalidMessage)
		assert.ErrorIs(t, err, ErrEmptyContent)
	})

	t.Run("invalid sender", func(t *testing.T) {
		err := ValidateMessage(&Message{Sender: 0, Content: "hola"})
		assert.ErrorIs(t, err, ErrInvalidMessage)
		assert.ErrorIs(t, err, ErrInvalidSenderType)
	})
}

func TestValidateChunk(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		chunk := &Chunk{Text: "departamentos en preventa", Embedding: []float32{0.1, 0.2}}
		assert.NoError(t, ValidateChunk(chunk))
	})

	t.Run("nil chunk", func(t *testing.T) {
		assert.Error(t, ValidateChunk(nil))
	})

	t.Run("empty text", func(t *testing.T) {
		err := ValidateChunk(&Chunk{Embedding: []float32{0.1}})
		assert.ErrorIs(t, err, ErrEmptyContent)
	})

	t.Run("missing embedding truncates long text in error", func(t *testing.T) {
		chunk := &Chunk{Text: strings.Repeat("a", 100)}
		err := ValidateChunk(chunk)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), strings.Repeat("a", 40)+"...")
	})
}
