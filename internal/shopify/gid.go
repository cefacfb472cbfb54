package shopify

import "strings"

// GID est un identifiant global Shopify ("gid://shopify/Product/123").
// On garde la forme brute pour les appels API et on expose le segment final
// pour le frontend, au lieu de découper la string à chaque endroit.
type GID string

// Raw renvoie la forme amont complète.
func (g GID) Raw() string { return string(g) }

// ID renvoie le dernier segment de l'identifiant ("123").
// Pour une string sans "/", renvoie la string telle quelle.
func (g GID) ID() string {
	s := string(g)
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	return s
}
