package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailySlots_Ordered(t *testing.T) {
	slots := DailySlots()
	require.Len(t, slots, 12)

	assert.Equal(t, "07:10", slots[0].StartTime)
	assert.Equal(t, "16:40", slots[len(slots)-1].EndTime)

	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].EndTime, slots[i].StartTime, "slot %d must start where the previous ends", i)
		assert.Less(t, slots[i-1].StartTime, slots[i].StartTime)
	}
}

func TestDailySlots_ReturnsCopy(t *testing.T) {
	first := DailySlots()
	first[0].StartTime = "00:00"

	assert.Equal(t, "07:10", DailySlots()[0].StartTime)
}

func TestFindSlot(t *testing.T) {
	slot, ok := FindSlot("11:40")
	require.True(t, ok)
	assert.Equal(t, "13:00", slot.EndTime)
	assert.Equal(t, "Almoço: 11:40 - 13:00", slot.Label())

	_, ok = FindSlot("11:41")
	assert.False(t, ok)
}
