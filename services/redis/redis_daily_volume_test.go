package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsSameDay(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	assert.True(t, isSameDay(base, base.Add(13*time.Hour)))
	assert.False(t, isSameDay(base, base.Add(24*time.Hour)))
	assert.False(t, isSameDay(base, base.AddDate(-1, 0, 0)))
}
