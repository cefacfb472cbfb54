package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GeneratePassword génère un mot de passe aléatoire de 32 caractères hex
// (16 octets). Le storefront n'a pas de login par mot de passe : ce mot de
// passe sert uniquement à obtenir un customerAccessToken Shopify juste
// après, il n'est ni stocké ni réutilisé.
func GeneratePassword() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
