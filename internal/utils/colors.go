package utils

import "strings"

// BaseColor est la palette réduite affichée sur les cartes produit. Les
// couleurs Shopify sont du texte libre ("14K Yellow Gold") : on les range
// dans trois familles par recherche de sous-chaîne. Classification avec
// perte, best effort : tout ce qui ne matche pas est ignoré.
type BaseColor string

const (
	ColorYellow  BaseColor = "yellow"
	ColorRose    BaseColor = "rose"
	ColorWhite   BaseColor = "white"
	ColorUnknown BaseColor = ""
)

// baseColorOrder fixe l'ordre d'affichage.
var baseColorOrder = []BaseColor{ColorYellow, ColorRose, ColorWhite}

// ClassifyColor range une couleur libre dans la palette. L'ordre des tests
// compte : "yellow" gagne sur "white" si les deux apparaissent.
func ClassifyColor(color string) BaseColor {
	c := strings.ToLower(color)
	switch {
	case strings.Contains(c, "yellow"):
		return ColorYellow
	case strings.Contains(c, "rose"):
		return ColorRose
	case strings.Contains(c, "white"):
		return ColorWhite
	default:
		return ColorUnknown
	}
}

// UniqueBaseColors déduplique une liste de couleurs libres en familles,
// dans l'ordre fixe yellow → rose → white.
func UniqueBaseColors(colors []string) []BaseColor {
	seen := map[BaseColor]bool{}
	for _, c := range colors {
		if base := ClassifyColor(c); base != ColorUnknown {
			seen[base] = true
		}
	}

	result := []BaseColor{}
	for _, base := range baseColorOrder {
		if seen[base] {
			result = append(result, base)
		}
	}
	return result
}
