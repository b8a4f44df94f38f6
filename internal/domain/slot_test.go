package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlotLabel(t *testing.T) {
	tests := []struct {
		label      SlotLabel
		wantHour   int
		wantMinute int
	}{
		{"12:00 AM", 0, 0},
		{"12:00 PM", 12, 0},
		{"1:00 PM", 13, 0},
		{"10:00 AM", 10, 0},
		{"5:30 PM", 17, 30},
		{"11:45 PM", 23, 45},
	}

	for _, tt := range tests {
		t.Run(string(tt.label), func(t *testing.T) {
			h, m, err := ParseSlotLabel(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHour, h)
			assert.Equal(t, tt.wantMinute, m)
		})
	}
}

func TestParseSlotLabel_InvalidFormat(t *testing.T) {
	for _, label := range []SlotLabel{"", "10:00", "10:00 am", "13:00 PM", "0:00 AM", "10:60 AM", "10.00 AM", " 10:00 AM"} {
		t.Run(string(label), func(t *testing.T) {
			_, _, err := ParseSlotLabel(label)
			assert.True(t, errors.Is(err, ErrInvalidFormat))
		})
	}
}

func TestFormatSlotLabel_RoundTrip(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		label := FormatSlotLabel(hour, 30)
		h, m, err := ParseSlotLabel(label)
		require.NoError(t, err)
		assert.Equal(t, hour, h, label)
		assert.Equal(t, 30, m, label)
	}
	assert.Equal(t, SlotLabel("12:00 AM"), FormatSlotLabel(0, 0))
	assert.Equal(t, SlotLabel("12:00 PM"), FormatSlotLabel(12, 0))
}
