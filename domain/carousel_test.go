package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarouselPopPushRotates(t *testing.T) {
	c := NewCarousel([]string{"a", "b", "c"})

	assert.Equal(t, "a", c.Front())
	c.PopPush()
	assert.Equal(t, "b", c.Front())
	c.PopPush()
	assert.Equal(t, "c", c.Front())
	c.PopPush()
	assert.Equal(t, "a", c.Front())
}

func TestCarouselFullRotationPreservesOrder(t *testing.T) {
	c := NewCarousel([]int{1, 2, 3, 4})

	for i := 0; i < 4; i++ {
		c.PopPush()
	}

	assert.Equal(t, []int{1, 2, 3, 4}, c.Items())
}

func TestCarouselRemoveKeepsRemainingOrder(t *testing.T) {
	c := NewCarousel([]string{"a", "b", "c", "d"})

	removed := c.Remove(func(s string) bool { return s == "b" })

	require.True(t, removed)
	assert.Equal(t, []string{"a", "c", "d"}, c.Items())
	assert.Equal(t, 3, c.Len())
}

func TestCarouselRemoveUnknownIsNoop(t *testing.T) {
	c := NewCarousel([]string{"a", "b"})

	removed := c.Remove(func(s string) bool { return s == "x" })

	assert.False(t, removed)
	assert.Equal(t, []string{"a", "b"}, c.Items())
}

func TestCarouselAddAppendsAtBack(t *testing.T) {
	c := NewCarousel([]string{"a"})

	c.Add("b")

	assert.Equal(t, "a", c.Front())
	assert.Equal(t, []string{"a", "b"}, c.Items())
}

func TestCarouselItemsIsASnapshot(t *testing.T) {
	c := NewCarousel([]int{1, 2, 3})

	items := c.Items()
	items[0] = 99

	assert.Equal(t, 1, c.Front())
}
