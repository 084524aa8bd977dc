package fiscal

import (
	"fmt"
	"strings"
)

// NormalizeCNPJ strips the usual punctuation from a CNPJ (Brazilian company
// tax id), returning only its 14 digits. The input formatting
// "12.345.678/0001-95" and the bare form are both accepted.
func NormalizeCNPJ(cnpj string) string {
	var b strings.Builder
	for _, r := range cnpj {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCNPJ renders a 14-digit CNPJ in the conventional punctuated form.
// Inputs that are not 14 digits are returned unchanged.
func FormatCNPJ(cnpj string) string {
	d := NormalizeCNPJ(cnpj)
	if len(d) != 14 {
		return cnpj
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s", d[0:2], d[2:5], d[5:8], d[8:12], d[12:14])
}

// ValidateCNPJ checks length, rejects same-digit sequences and verifies the
// two check digits.
func ValidateCNPJ(cnpj string) error {
	d := NormalizeCNPJ(cnpj)
	if len(d) != 14 {
		return fmt.Errorf("CNPJ must have 14 digits, got %d", len(d))
	}

	allSame := true
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return fmt.Errorf("CNPJ %s is a repeated-digit sequence", cnpj)
	}

	if int(d[12]-'0') != cnpjCheckDigit(d[:12]) {
		return fmt.Errorf("CNPJ %s has an invalid first check digit", cnpj)
	}
	if int(d[13]-'0') != cnpjCheckDigit(d[:13]) {
		return fmt.Errorf("CNPJ %s has an invalid second check digit", cnpj)
	}
	return nil
}

// cnpjCheckDigit computes the modulus-11 check digit over the given prefix.
// Weights cycle 2..9 from the rightmost digit leftwards.
func cnpjCheckDigit(digits string) int {
	weight := 2
	sum := 0
	for i := len(digits) - 1; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight
		weight++
		if weight > 9 {
			weight = 2
		}
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}
