package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToCents_RoundsInsteadOfTruncating(t *testing.T) {
	// 19.99 has no exact float64 representation; truncation drops a cent.
	assert.Equal(t, int64(1999), ToCents(19.99))
	assert.Equal(t, int64(2875), ToCents(28.75))
	assert.Equal(t, int64(10), ToCents(0.1))
	assert.Equal(t, int64(5), ToCents(0.049999999))
	assert.Equal(t, int64(0), ToCents(0))
}

func TestFromCents(t *testing.T) {
	assert.Equal(t, 19.99, FromCents(1999))
	assert.Equal(t, 0.0, FromCents(0))
}
