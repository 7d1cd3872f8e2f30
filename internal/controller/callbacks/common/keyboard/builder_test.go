package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_RowsAndGrid(t *testing.T) {
	kb := NewBuilder().
		Row().
		Grid(2, Button("a", "1"), Button("b", "2"), Button("c", "3")).
		AddHomeButton().
		Build()

	require.Len(t, kb.InlineKeyboard, 3)
	assert.Len(t, kb.InlineKeyboard[0], 2)
	assert.Len(t, kb.InlineKeyboard[1], 1)
	assert.Equal(t, "3", kb.InlineKeyboard[1][0].CallbackData)
	assert.Equal(t, HomeData, kb.InlineKeyboard[2][0].CallbackData)
}

func TestBuilder_GridNonPositive(t *testing.T) {
	kb := NewBuilder().Grid(0, Button("a", "1"), Button("b", "2")).Build()
	assert.Len(t, kb.InlineKeyboard, 2)
}

func TestEmpty(t *testing.T) {
	assert.Empty(t, Empty().InlineKeyboard)
}
