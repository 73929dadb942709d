package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasAny(t *testing.T) {
	assert.True(t, HasAny("Clear Sky", "clear"))
	assert.True(t, HasAny("light rain", "snow", "RAIN"))
	assert.False(t, HasAny("overcast clouds", "clear"))
	assert.False(t, HasAny("anything"))
}

func TestIsYes(t *testing.T) {
	assert.True(t, IsYes(" YES\n"))
	assert.False(t, IsYes("y"))
	assert.False(t, IsYes("no"))
	assert.False(t, IsYes(""))
}
