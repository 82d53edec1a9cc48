package utils

import "strconv"

func StrPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FormatAmount renders a money amount the way payment providers expect it,
// with exactly two decimal places ("1800" -> "1800.00").
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
