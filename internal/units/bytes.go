package units

import "fmt"

// byteUnits are the suffixes for successive powers of 1024, starting at KB.
var byteUnits = []string{"KB", "MB", "GB", "TB", "PB", "EB"}

// roundsTo1024 is the smallest magnitude printed as "1024.00" by %.2f.
const roundsTo1024 = 1023.995

// FormatBytes renders a byte count scaled to the largest unit whose
// magnitude is at least 1, e.g. "512 B", "1.50 KB", "16.00 GB". A value
// that would round to 1024.00 is shown in the next unit instead.
func FormatBytes(b uint64) string {
	if b < 1024 {
		return fmt.Sprintf("%d B", b)
	}

	// Walk the exponent by division instead of log(b) so zero never reaches math.Log.
	exp := 0
	for n := b / 1024; n >= 1024 && exp < len(byteUnits)-1; n /= 1024 {
		exp++
	}

	scale := float64(uint64(1) << (10 * uint(exp+1)))
	value := float64(b) / scale
	if value >= roundsTo1024 && exp < len(byteUnits)-1 {
		exp++
		value /= 1024
	}
	return fmt.Sprintf("%.2f %s", value, byteUnits[exp])
}
