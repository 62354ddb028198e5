package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.True(t, IsValidEmail("first.last+tag@sub.domain.org"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("secret1"))
	assert.False(t, IsValidPassword("short"))
}

func TestIsValidRating(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		assert.True(t, IsValidRating(rating))
	}
	assert.False(t, IsValidRating(0))
	assert.False(t, IsValidRating(6))
}

func TestCoordinateBounds(t *testing.T) {
	assert.True(t, IsValidLatitude(52.23))
	assert.False(t, IsValidLatitude(91))
	assert.False(t, IsValidLatitude(-91))

	assert.True(t, IsValidLongitude(-180))
	assert.False(t, IsValidLongitude(181))
}
