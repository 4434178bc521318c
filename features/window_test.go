package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	t.Parallel()

	w := NewWindow(3)
	w.Update(Totals{Outs: 18, SO: 7})
	w.Update(Totals{Outs: 16, SO: 4})
	assert.False(t, w.Ready())
	assert.Equal(t, Totals{}, w.Value())

	w.Update(Totals{Outs: 21, SO: 8})
	assert.True(t, w.Ready())
	assert.Equal(t, Totals{Outs: 55, SO: 19}, w.Value())

	w.Update(Totals{Outs: 14, SO: 3})
	assert.Equal(t, Totals{Outs: 51, SO: 15}, w.Value())

	short := NewWindow(1)
	short.Update(Totals{Outs: 9, SO: 2})
	assert.True(t, short.Ready())
	assert.Equal(t, Totals{Outs: 9, SO: 2}, short.Value())
}
