package types

// Speaker identifies who produced a conversation turn.
type Speaker string

// Speaker constants for conversation turns.
const (
	SpeakerUser Speaker = "You"
	SpeakerBot  Speaker = "Chatbot"
)

// DefaultHistoryLimit is the number of turns kept as prompt context for the
// generative fallback path.
const DefaultHistoryLimit = 10

// Turn is one utterance in a conversation.
type Turn struct {
	Speaker Speaker
	Text    string
}

// History is an append-only, bounded record of conversation turns. When the
// bound is exceeded the oldest turns are discarded from the front. It is used
// only as prompt context for open-ended questions.
type History struct {
	limit int
	turns []Turn
}

// NewHistory creates a history bounded to limit turns. A non-positive limit
// uses DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Add appends a turn, evicting the oldest turns if the bound is exceeded.
func (h *History) Add(speaker Speaker, text string) {
	h.turns = append(h.turns, Turn{Speaker: speaker, Text: text})
	if len(h.turns) > h.limit {
		h.turns = h.turns[len(h.turns)-h.limit:]
	}
}

// Turns returns a copy of the recorded turns, oldest first.
func (h *History) Turns() []Turn {
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Len returns the number of recorded turns.
func (h *History) Len() int {
	return len(h.turns)
}
