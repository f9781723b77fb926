// Package format renders amounts and splits long reports into
// message-sized chunks.
package format

import (
	"math"
	"strconv"
)

// Amount renders a monetary value as a whole number with spaces
// between thousands groups: 1250000 -> "1 250 000".
func Amount(v float64) string {
	n := int64(math.Round(v))
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		var b []byte
		for i, c := range []byte(s) {
			if i > 0 && (len(s)-i)%3 == 0 {
				b = append(b, ' ')
			}
			b = append(b, c)
		}
		s = string(b)
	}
	if neg {
		return "-" + s
	}
	return s
}
