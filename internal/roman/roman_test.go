package roman

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRoman(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{1, "I"},
		{4, "IV"},
		{5, "V"},
		{9, "IX"},
		{10, "X"},
		{14, "XIV"},
		{40, "XL"},
		{90, "XC"},
		{400, "CD"},
		{1994, "MCMXCIV"},
		{3999, "MMMCMXCIX"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ToRoman(tt.n))
	}
}

func TestToRoman_OutOfRangeFallsBackToDigits(t *testing.T) {
	assert.Equal(t, "0", ToRoman(0))
	assert.Equal(t, "-3", ToRoman(-3))
	assert.Equal(t, "4000", ToRoman(4000))
}

func TestFromRoman(t *testing.T) {
	tests := []struct {
		s        string
		expected int
	}{
		{"I", 1},
		{"iv", 4},
		{"XIV", 14},
		{"mcmxciv", 1994},
		{"MMMCMXCIX", 3999},
	}

	for _, tt := range tests {
		n, err := FromRoman(tt.s)
		require.NoError(t, err, tt.s)
		assert.Equal(t, tt.expected, n)
	}
}

func TestFromRoman_Invalid(t *testing.T) {
	for _, s := range []string{"", "IIII", "VX", "ABC", "IXIX"} {
		_, err := FromRoman(s)
		assert.Error(t, err, s)
	}
}

func TestRomanRoundTrip(t *testing.T) {
	for n := 1; n <= 3999; n++ {
		parsed, err := FromRoman(ToRoman(n))
		require.NoError(t, err)
		require.Equal(t, n, parsed)
	}
}
