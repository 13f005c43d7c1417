package checkout

import (
	"fmt"
	"math"
	"strconv"
)

// FormatBRL renders a value as Brazilian currency: "R$ 1.234,56".
// Presentation only; amounts are stored as plain numbers.
func FormatBRL(value float64) string {
	negative := value < 0
	cents := int64(math.Round(math.Abs(value) * 100))

	integer := cents / 100
	fraction := cents % 100

	digits := strconv.FormatInt(integer, 10)
	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, d)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, grouped, fraction)
}
