package validators

import (
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^(\+213|0)[5-7]\d{8}$`)

// NormalizePhone retire séparateurs et parenthèses avant validation/stockage
func NormalizePhone(phone string) string {
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")
	return cleaned
}

// IsPhoneValid accepte les numéros mobiles algériens, formats 05/06/07
// ou préfixe international +213
func IsPhoneValid(phone string) bool {
	return phonePattern.MatchString(NormalizePhone(phone))
}
