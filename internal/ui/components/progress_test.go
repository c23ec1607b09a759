package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar(t *testing.T) {
	out := NewProgressBar("", 0.5, false, 10).View()
	assert.Equal(t, 5, strings.Count(out, "▰"))
	assert.Equal(t, 5, strings.Count(out, "▱"))

	out = NewProgressBar("1/4", 2, true, 20).View()
	assert.NotContains(t, out, "▱", "overfull bars are clamped")
	assert.Contains(t, out, "100%")

	out = NewProgressBar("", 0, false, 1).View()
	assert.Equal(t, 4, strings.Count(out, "▱"), "bars keep a minimum width")
}
