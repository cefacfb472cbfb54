package utils

import "strings"

// FormatMobile normalise un numéro de mobile en chaîne de chiffres préfixée
// de l'indicatif "91". Best effort, pas une validation :
//   - 10 chiffres → "91" + numéro
//   - 12 chiffres commençant par "91" → inchangé
//   - sinon → "91" + les 10 derniers chiffres
func FormatMobile(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	if len(cleaned) == 10 {
		return "91" + cleaned
	}
	if len(cleaned) == 12 && strings.HasPrefix(cleaned, "91") {
		return cleaned
	}
	if len(cleaned) > 10 {
		cleaned = cleaned[len(cleaned)-10:]
	}
	return "91" + cleaned
}
