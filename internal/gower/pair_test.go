package gower

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSumFold(t *testing.T) {
	var s sum
	assert.True(t, math.IsNaN(s.value()))

	s = s.add(1, 0.5).add(2, 1).add(0, 1)
	assert.Equal(t, sum{num: 2.5, den: 3}, s)
	assert.InDelta(t, 2.5/3, s.value(), 1e-15)
}

func TestMismatch(t *testing.T) {
	assert.Equal(t, 0.0, mismatch(true))
	assert.Equal(t, 1.0, mismatch(false))
}
