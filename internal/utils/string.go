package utils

import "fmt"

// FormatWithCommas formats an integer with comma separators for the
// header/table displays ("1,234,567").
func FormatWithCommas(n uint64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	str := fmt.Sprintf("%d", n)
	result := ""
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(char)
	}
	return result
}

// Truncate shortens s to at most n runes, appending an ellipsis when it
// actually cut something. n below 2 returns the bare cut.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n < 2 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}
