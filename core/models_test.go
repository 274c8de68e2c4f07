package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSenderTypeLabel(t *testing.T) {
	assert.Equal(t, "Asesor", SenderTypeAgent.Label())
	assert.Equal(t, "Prospecto", SenderTypeLead.Label())
}

func TestParseSenderType(t *testing.T) {
	t.Run("agent", func(t *testing.T) {
		sender, err := ParseSenderType("agent")
		require.NoError(t, err)
		assert.Equal(t, SenderTypeAgent, sender)
	})

	t.Run("lead", func(t *testing.T) {
		sender, err := ParseSenderType("lead")
		require.NoError(t, err)
		assert.Equal(t, SenderTypeLead, sender)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := ParseSenderType("bot")
		assert.ErrorIs(t, err, ErrInvalidSenderType)
	})

	t.Run("case sensitive", func(t *testing.T) {
		_, err := ParseSenderType("Agent")
		assert.ErrorIs(t, err, ErrInvalidSenderType)
	})
}

func TestPriorityValid(t *testing.T) {
	assert.True(t, PriorityHigh.Valid())
	assert.True(t, PriorityMedium.Valid())
	assert.True(t, PriorityLow.Valid())
	assert.False(t, Priority("urgent").Valid())
	assert.False(t, Priority("").Valid())
}
