package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/models"
)

func TestNormalizePairOrdering(t *testing.T) {
	a := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	b := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	u1, u2 := NormalizePair(a, b)
	assert.Equal(t, a, u1)
	assert.Equal(t, b, u2)

	// Swapped input yields the same ordered key.
	u1, u2 = NormalizePair(b, a)
	assert.Equal(t, a, u1)
	assert.Equal(t, b, u2)
}

func TestNormalizePairSamePair(t *testing.T) {
	a := uuid.New()
	u1, u2 := NormalizePair(a, a)
	assert.Equal(t, a, u1)
	assert.Equal(t, a, u2)
}

func TestValidateMessageContent(t *testing.T) {
	trimmed, err := ValidateMessageContent("  anchored off Jost Van Dyke  ")
	require.NoError(t, err)
	assert.Equal(t, "anchored off Jost Van Dyke", trimmed)

	_, err = ValidateMessageContent("")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = ValidateMessageContent("   \n\t ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestValidateMessageContentLength(t *testing.T) {
	atLimit := strings.Repeat("a", models.MaxMessageLength)
	trimmed, err := ValidateMessageContent(atLimit)
	require.NoError(t, err)
	assert.Equal(t, atLimit, trimmed)

	_, err = ValidateMessageContent(strings.Repeat("a", models.MaxMessageLength+1))
	assert.ErrorIs(t, err, ErrMessageTooLong)

	// Length is counted in runes, not bytes.
	multibyte := strings.Repeat("é", models.MaxMessageLength)
	_, err = ValidateMessageContent(multibyte)
	assert.NoError(t, err)
}

func TestCounterpart(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	conv := &models.Conversation{User1ID: a, User2ID: b}

	assert.Equal(t, b, Counterpart(conv, a))
	assert.Equal(t, a, Counterpart(conv, b))
}
