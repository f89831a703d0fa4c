package units

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1, "1 B"},
		{1023, "1023 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024*1024 - 1, "1.00 MB"},
		{1024*1024 - 6000, "1018.14 KB"},
		{1<<40 - 1, "1.00 TB"},
		{1024 * 1024, "1.00 MB"},
		{8 << 30, "8.00 GB"},
		{17179869184, "16.00 GB"},
		{3 << 40, "3.00 TB"},
		{5 << 50, "5.00 PB"},
		{math.MaxUint64, "16.00 EB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.in))
		})
	}
}

func TestFormatBytesMagnitudeBelow1024(t *testing.T) {
	for exp := uint(1); exp <= 6; exp++ {
		for _, delta := range []uint64{1, 2, 1000} {
			b := uint64(1)<<(10*exp) - delta
			if b < 1024 {
				continue
			}
			out := FormatBytes(b)
			magnitude, err := strconv.ParseFloat(strings.Fields(out)[0], 64)
			require.NoError(t, err)
			assert.Less(t, magnitude, 1024.0, "%d rendered as %q", b, out)
		}
	}
}

func TestFormatBytesRoundTrip(t *testing.T) {
	scales := map[string]float64{"B": 1}
	for i, unit := range byteUnits {
		scales[unit] = math.Pow(1024, float64(i+1))
	}

	for _, b := range []uint64{0, 7, 999, 4096, 123456789, 987654321012, 1 << 55, math.MaxUint64 / 3} {
		out := FormatBytes(b)
		fields := strings.Fields(out)
		require.Len(t, fields, 2, out)

		magnitude, err := strconv.ParseFloat(fields[0], 64)
		require.NoError(t, err)
		scale, ok := scales[fields[1]]
		require.True(t, ok, "unknown unit in %q", out)

		if b == 0 {
			assert.Equal(t, "0 B", out)
			continue
		}
		got := magnitude * scale
		assert.InEpsilon(t, float64(b), got, 0.01, "%d rendered as %q", b, out)
	}
}
