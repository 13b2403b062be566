package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookingReferenceShape(t *testing.T) {
	for i := 0; i < 1000; i++ {
		ref, err := NewBookingReference()
		require.NoError(t, err)
		assert.True(t, IsBookingReference(ref), "bad reference %q", ref)
	}
}

func TestNewBookingReferenceUnique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		ref, err := NewBookingReference()
		require.NoError(t, err)
		_, dup := seen[ref]
		assert.False(t, dup, "duplicate reference %q", ref)
		seen[ref] = struct{}{}
	}
}

func TestNewBookingReferenceUsesWholeAlphabet(t *testing.T) {
	counts := make(map[rune]int)
	for i := 0; i < 2000; i++ {
		ref, err := NewBookingReference()
		require.NoError(t, err)
		for _, r := range ref {
			counts[r]++
		}
	}
	assert.Len(t, counts, len(referenceAlphabet))
}

func TestIsBookingReference(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"ABC123", true},
		{"ZZZZZZ", true},
		{"000000", true},
		{"abc123", false},
		{"ABC12", false},
		{"ABC1234", false},
		{"ABC-12", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsBookingReference(tt.in), tt.in)
	}
}
