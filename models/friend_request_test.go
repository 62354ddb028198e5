package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalPairOrdersConsistently(t *testing.T) {
	a, b := CanonicalPair("user-b", "user-a")
	assert.Equal(t, "user-a", a)
	assert.Equal(t, "user-b", b)

	// Same result regardless of argument order
	a2, b2 := CanonicalPair("user-a", "user-b")
	assert.Equal(t, a, a2)
	assert.Equal(t, b, b2)
}
