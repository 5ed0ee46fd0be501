// Package validators holds the Brazilian document checks used by the form's
// server-side safety net: CPF check digits and RG shape.
package validators

import "strings"

const (
	cpfLength   = 11
	rgMinLength = 5
	rgMaxLength = 15
)

// OnlyDigits strips every non-digit character from a document number.
func OnlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidCPF verifies the two CPF check digits. Formatting characters are
// ignored; eleven equal digits are rejected.
func ValidCPF(cpf string) bool {
	digits := OnlyDigits(cpf)
	if len(digits) != cpfLength {
		return false
	}
	allEqual := true
	for i := 1; i < cpfLength; i++ {
		if digits[i] != digits[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	if int(digits[9]-'0') != cpfCheckDigit(digits, 9) {
		return false
	}
	return int(digits[10]-'0') == cpfCheckDigit(digits, 10)
}

// cpfCheckDigit computes the check digit over the first n digits with the
// standard weight sequence (n+1 down to 2).
func cpfCheckDigit(digits string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(digits[i]-'0') * (n + 1 - i)
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

// ValidRG checks the RG length range only; the format varies by state.
// All-equal digit sequences are rejected.
func ValidRG(rg string) bool {
	digits := OnlyDigits(rg)
	if len(digits) < rgMinLength || len(digits) > rgMaxLength {
		return false
	}
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return true
		}
	}
	return false
}

// FormatCPF renders an 11-digit CPF as XXX.XXX.XXX-XX. Anything else is
// returned unchanged.
func FormatCPF(cpf string) string {
	digits := OnlyDigits(cpf)
	if len(digits) != cpfLength {
		return cpf
	}
	return digits[:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:]
}
