package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/vidqa/internal/metrics"
	"github.com/raphaelgruber/vidqa/internal/models"
	"github.com/raphaelgruber/vidqa/internal/prompts"
)

func TestCondense_UsesRecentTurnsOnly(t *testing.T) {
	lib, err := prompts.Default()
	require.NoError(t, err)

	var history []models.ConversationTurn
	for i := 1; i <= 8; i++ {
		role := models.RoleUser
		if i%2 == 0 {
			role = models.RoleAssistant
		}
		history = append(history, models.ConversationTurn{Role: role, Content: fmt.Sprintf("turn %d", i)})
	}

	c := &fakeCompleter{rewrite: "  What happens in turn nine?  "}
	collector := metrics.NewCollector()
	condenser := NewCondenser(c, lib, collector, nil)

	got, err := condenser.Condense(context.Background(), "and next?", history)
	require.NoError(t, err)
	assert.Equal(t, "What happens in turn nine?", got)

	ps := c.Prompts()
	require.Len(t, ps, 1)
	assert.NotContains(t, ps[0], "turn 1\n")
	assert.NotContains(t, ps[0], "turn 2\n")
	assert.Contains(t, ps[0], "User: turn 3\nAssistant: turn 4")
	assert.Contains(t, ps[0], "Assistant: turn 8")
	assert.Contains(t, ps[0], "Follow-up question: and next?")

	snap := collector.Snapshot()
	require.NotNil(t, snap.Condense)
	assert.Equal(t, int64(1), snap.Condense.Count)
}

func TestCondense_EmptyRewrite(t *testing.T) {
	lib, err := prompts.Default()
	require.NoError(t, err)

	condenser := NewCondenser(&fakeCompleter{rewrite: "\n\t"}, lib, nil, nil)
	_, err = condenser.Condense(context.Background(), "q", []models.ConversationTurn{{Role: models.RoleUser, Content: "x"}})

	assert.ErrorIs(t, err, ErrEmptyRewrite)
	assert.ErrorIs(t, err, ErrCondense)
}
