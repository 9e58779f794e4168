package format

import (
	"strings"
	"unicode"
)

const bullet = "•"

// MaskCardNumber keeps only the last four digits of a card number
func MaskCardNumber(number string) string {
	var digits []rune
	for _, r := range number {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}

	groups := []string{
		strings.Repeat(bullet, 4),
		strings.Repeat(bullet, 4),
		strings.Repeat(bullet, 4),
	}
	if len(digits) < 4 {
		return strings.Join(append(groups, strings.Repeat(bullet, 4)), " ")
	}
	return strings.Join(append(groups, string(digits[len(digits)-4:])), " ")
}

// MaskOwner keeps the first letter of every word of the card owner name
func MaskOwner(name string) string {
	words := strings.Fields(strings.ToUpper(name))
	for i, word := range words {
		r := []rune(word)
		words[i] = string(r[0]) + strings.Repeat("*", len(r)-1)
	}
	return strings.Join(words, " ")
}
