package formula

// Sum returns the sum of values; the sum of no values is 0.
func Sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// Average returns the arithmetic mean of values. It fails with ErrEmptyInput
// when values is empty.
func Average(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	return Sum(values) / float64(len(values)), nil
}
