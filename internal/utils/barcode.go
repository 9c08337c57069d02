// internal/utils/barcode.go
package utils

import "strings"

// CleanBarcode drops spaces and hyphens from a scanned code.
func CleanBarcode(code string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, strings.TrimSpace(code))
}

// IsValidBarcode reports whether code is 1 to 14 digits.
func IsValidBarcode(code string) bool {
	return len(code) <= 14 && allDigits(code)
}

// BarcodeVariants returns every form under which the same product may be
// stored: UPC-A and EAN-13 differ by a leading zero, short codes get padded,
// over-long codes get trimmed. The original code comes first and the order is
// deterministic.
func BarcodeVariants(code string) []string {
	if !allDigits(code) {
		return []string{code}
	}

	stripped := strings.TrimLeft(code, "0")
	if stripped == "" {
		return []string{code}
	}

	variants := []string{code, stripped}
	switch n := len(code); {
	case n == 12:
		variants = append(variants, "0"+code)
	case n == 13:
		if code[0] == '0' {
			variants = append(variants, code[1:])
		}
	case n == 8:
		variants = append(variants, zeroPad(stripped, 12), zeroPad(stripped, 13))
	case n < 8:
		variants = append(variants, zeroPad(stripped, 8), zeroPad(stripped, 12), zeroPad(stripped, 13))
	case n < 12:
		variants = append(variants, zeroPad(stripped, 12), zeroPad(stripped, 13))
	default:
		variants = append(variants, zeroPad(stripped, 13), zeroPad(stripped, 12))
	}

	seen := make(map[string]bool, len(variants))
	out := variants[:0]
	for _, v := range variants {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func zeroPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
