package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMicroToSTX(t *testing.T) {
	assert.Equal(t, "0.000000", MicroToSTX(0))
	assert.Equal(t, "0.000001", MicroToSTX(1))
	assert.Equal(t, "1.000000", MicroToSTX(1_000_000))
	assert.Equal(t, "24.981836", MicroToSTX(24_981_836))
}

func TestSTXToMicro(t *testing.T) {
	testCases := []struct {
		in   string
		want uint64
	}{
		{"0", 0},
		{"1", 1_000_000},
		{"24.981836", 24_981_836},
		{"0.5", 500_000},
		{"  2.25 ", 2_250_000},
		{"1.0000009", 1_000_000}, // extra precision truncates
	}
	for _, tc := range testCases {
		got, err := STXToMicro(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}

	for _, bad := range []string{"", "abc", "1.2.3", "-1"} {
		_, err := STXToMicro(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestCompareSTXAmounts(t *testing.T) {
	testCases := []struct {
		a, b string
		want int
	}{
		{"1", "1.000000", 0},
		{"0.5", "1", -1},
		{"2", "1.999999", 1},
	}
	for _, tc := range testCases {
		got, err := CompareSTXAmounts(tc.a, tc.b)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s vs %s", tc.a, tc.b)
	}

	_, err := CompareSTXAmounts("abc", "1")
	assert.Error(t, err)
}
