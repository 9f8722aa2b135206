package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{input: "assistant", want: ModeAssistant},
		{input: " Strategist ", want: ModeStrategist},
		{input: "ANALYST", want: ModeAnalyst},
		{input: "oracle", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMode_Next(t *testing.T) {
	assert.Equal(t, ModeStrategist, ModeAssistant.Next())
	assert.Equal(t, ModeAnalyst, ModeStrategist.Next())
	assert.Equal(t, ModeAssistant, ModeAnalyst.Next())
	assert.Equal(t, ModeAssistant, Mode("bogus").Next())
}

func TestSequence_StrictlyIncreasing(t *testing.T) {
	fixed := time.UnixMilli(1_700_000_000_000)
	seq := &Sequence{now: func() time.Time { return fixed }}

	first := seq.Next()
	second := seq.Next()
	third := seq.Next()

	assert.Equal(t, fixed.UnixMilli(), first)
	assert.Equal(t, first+1, second)
	assert.Equal(t, second+1, third)
}

func TestSequence_FollowsClock(t *testing.T) {
	now := time.UnixMilli(1_000)
	seq := &Sequence{now: func() time.Time { return now }}

	assert.Equal(t, int64(1_000), seq.Next())
	now = time.UnixMilli(5_000)
	assert.Equal(t, int64(5_000), seq.Next())
}
