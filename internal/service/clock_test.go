package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonotonicClock_StrictlyIncreasing(t *testing.T) {
	frozen := time.Date(2024, 1, 1, 10, 0, 0, 123456789, time.UTC)
	c := NewMonotonicClock(func() time.Time { return frozen })

	first := c.Now()
	second := c.Now()
	third := c.Now()

	assert.Equal(t, frozen.Truncate(time.Millisecond), first)
	assert.True(t, second.After(first))
	assert.True(t, third.After(second))
	assert.Equal(t, time.Millisecond, third.Sub(second))
}

func TestMonotonicClock_FollowsWallClock(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	c := NewMonotonicClock(func() time.Time { return now })

	c.Now()
	now = now.Add(time.Hour)
	assert.Equal(t, now, c.Now())
}

func TestMonotonicClock_UTC(t *testing.T) {
	loc := time.FixedZone("PET", -5*3600)
	c := NewMonotonicClock(func() time.Time { return time.Date(2024, 1, 1, 10, 0, 0, 0, loc) })

	assert.Equal(t, time.UTC, c.Now().Location())
}
