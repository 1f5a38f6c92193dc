package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReference_Format(t *testing.T) {
	ref := NewReference()

	assert.Len(t, ref, 11)
	assert.Equal(t, "TKT", ref[:3])
	for _, c := range ref[3:] {
		assert.Contains(t, "0123456789ABCDEF", string(c))
	}
}

func TestNewReference_Varies(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[NewReference()] = true
	}
	assert.Greater(t, len(seen), 99)
}

func TestSeatLabel(t *testing.T) {
	assert.Equal(t, "S1", seatLabel(1))
	assert.Equal(t, "S42", seatLabel(42))
}
