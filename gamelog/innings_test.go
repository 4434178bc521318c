package gamelog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInningsToOuts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ip     float64
		want   int
		wantOk bool
	}{
		{0.0, 0, true},
		{0.1, 1, true},
		{0.2, 2, true},
		{1.1, 4, true},
		{1.2, 5, true},
		{5.1, 16, true},
		{6.0, 18, true},
		{7.2, 23, true},
		{9.0, 27, true},
		{1.3, 6, false},
		{2.5, 11, false},
	}
	for _, tt := range tests {
		outs, ok := InningsToOuts(tt.ip)
		assert.Equal(t, tt.want, outs, "ip=%v", tt.ip)
		assert.Equal(t, tt.wantOk, ok, "ip=%v", tt.ip)
	}
}

func TestInningsToOutsMissing(t *testing.T) {
	t.Parallel()

	outs, ok := InningsToOuts(math.NaN())
	assert.Equal(t, 0, outs)
	assert.True(t, ok)

	outs, ok = Appearance{IPMissing: true, IP: 4.2}.Outs()
	assert.Equal(t, 0, outs)
	assert.True(t, ok)
}

func TestFormatInnings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0.0", FormatInnings(0))
	assert.Equal(t, "5.1", FormatInnings(16))
	assert.Equal(t, "11.1", FormatInnings(34))
	for _, outs := range []int{0, 1, 2, 4, 5, 16, 23, 27} {
		back, _ := InningsToOuts(mustFloat(FormatInnings(outs)))
		assert.Equal(t, outs, back)
	}
}
