package cli

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/vidqa/internal/metrics"
	"github.com/raphaelgruber/vidqa/internal/models"
	"github.com/raphaelgruber/vidqa/internal/service"
)

type scriptedAnswerer struct {
	histories [][]models.ConversationTurn
	fail      map[string]error
}

func (s *scriptedAnswerer) Answer(_ context.Context, question string, history []models.ConversationTurn) (*service.Answer, error) {
	s.histories = append(s.histories, slices.Clone(history))
	if err := s.fail[question]; err != nil {
		return nil, err
	}
	return &service.Answer{
		Text:      "answer to " + question,
		Citations: []models.Citation{{Seconds: 65, Formatted: "01:05"}},
	}, nil
}

func TestChatSession(t *testing.T) {
	a := &scriptedAnswerer{fail: map[string]error{"broken": errors.New("model unavailable")}}
	s := &chatSession{
		videoID:  "dQw4w9WgXcQ",
		answerer: a,
		metrics:  metrics.NewCollector(),
		theme:    defaultTheme,
	}

	in := strings.NewReader(strings.Join([]string{
		"What is the pricing?",
		"",
		"And for teams?",
		"broken",
		"/stats",
		"/reset",
		"Fresh start?",
		"exit",
		"never asked",
	}, "\n"))
	var out bytes.Buffer

	require.NoError(t, s.run(context.Background(), in, &out))

	require.Len(t, a.histories, 4)
	assert.Empty(t, a.histories[0])
	assert.Equal(t, []models.ConversationTurn{
		{Role: models.RoleUser, Content: "What is the pricing?"},
		{Role: models.RoleAssistant, Content: "answer to What is the pricing?"},
	}, a.histories[1])
	assert.Len(t, a.histories[2], 4, "failed questions are not added to history")
	assert.Empty(t, a.histories[3], "reset clears history")

	text := out.String()
	assert.Contains(t, text, "answer to And for teams?")
	assert.Contains(t, text, "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=65s")
	assert.Contains(t, text, "model unavailable")
	assert.Contains(t, text, "Statistics")
	assert.Contains(t, text, "Conversation cleared.")
	assert.NotContains(t, text, "never asked")
}

func TestChatSession_EOF(t *testing.T) {
	s := &chatSession{videoID: "dQw4w9WgXcQ", answerer: &scriptedAnswerer{}, theme: defaultTheme}
	var out bytes.Buffer

	require.NoError(t, s.run(context.Background(), strings.NewReader("hello"), &out))
	assert.Len(t, s.history, 2)
}
