package types

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory_AddAndTurns(t *testing.T) {
	h := NewHistory(10)
	h.Add(SpeakerUser, "hello")
	h.Add(SpeakerBot, "hi there")

	turns := h.Turns()
	assert.Len(t, turns, 2)
	assert.Equal(t, SpeakerUser, turns[0].Speaker)
	assert.Equal(t, "hello", turns[0].Text)
	assert.Equal(t, SpeakerBot, turns[1].Speaker)
}

func TestHistory_EvictsOldestFirst(t *testing.T) {
	h := NewHistory(10)
	for i := 0; i < 15; i++ {
		h.Add(SpeakerUser, fmt.Sprintf("turn %d", i))
	}

	turns := h.Turns()
	assert.Len(t, turns, 10)
	// The five oldest turns are gone; the most recent survive in order.
	assert.Equal(t, "turn 5", turns[0].Text)
	assert.Equal(t, "turn 14", turns[9].Text)
}

func TestHistory_DefaultLimit(t *testing.T) {
	h := NewHistory(0)
	for i := 0; i < 20; i++ {
		h.Add(SpeakerBot, "x")
	}
	assert.Equal(t, DefaultHistoryLimit, h.Len())
}

func TestHistory_TurnsReturnsCopy(t *testing.T) {
	h := NewHistory(10)
	h.Add(SpeakerUser, "original")

	turns := h.Turns()
	turns[0].Text = "mutated"

	assert.Equal(t, "original", h.Turns()[0].Text)
}
