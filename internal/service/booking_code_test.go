package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Codes are the sole key for customer lookups and cancellations, so a burst
// of bookings must never mint the same code twice.
func TestNewBookingCode_DistinctAcrossBurst(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		code := newBookingCode()
		require.Regexp(t, `^[0-9A-F]{8}$`, code)
		assert.False(t, seen[code], "code %s minted twice", code)
		seen[code] = true
	}
}
