package service

import (
	"strings"

	"lucira_back_end/internal/models"
	"lucira_back_end/internal/shopify"
	"lucira_back_end/internal/utils"
)

// Normalisation pure des shapes Shopify vers les shapes UI. Aucun I/O, et
// jamais d'erreur : valeurs absentes → zéro/vide.

// NormalizeVariant aplatit une variante : id court, options Size/Color
// (insensible à la casse), flag stock = disponible ET quantité > 0.
func NormalizeVariant(raw shopify.RawVariant) models.Variant {
	v := models.Variant{
		ID:      raw.ID.ID(),
		Price:   float64(raw.Price.Amount),
		InStock: raw.AvailableForSale && raw.QuantityAvailable > 0,
	}

	for _, opt := range raw.SelectedOptions {
		value := opt.Value
		switch strings.ToLower(opt.Name) {
		case "size":
			v.Size = &value
		case "color":
			v.Color = &value
		}
	}

	if raw.CompareAtPrice != nil {
		compare := float64(raw.CompareAtPrice.Amount)
		v.ComparePrice = &compare
	}

	if raw.Image != nil {
		url := raw.Image.URL
		v.Image = &url
		if raw.Image.AltText != nil {
			v.AltText = *raw.Image.AltText
		}
	}

	return v
}

// NormalizeProduct construit la forme UI d'un produit : variante
// sélectionnée (première en stock, sinon la première), couleurs ramenées à
// la palette yellow/rose/white, image de la variante sélectionnée avec
// repli sur l'image vedette.
func NormalizeProduct(raw shopify.RawProduct) models.Product {
	variants := make([]models.Variant, 0, len(raw.Variants.Edges))
	for _, edge := range raw.Variants.Edges {
		variants = append(variants, NormalizeVariant(edge.Node))
	}

	p := models.Product{
		ID:       raw.ID.ID(),
		Title:    raw.Title,
		Handle:   raw.Handle,
		Images:   []models.Image{},
		Colors:   []string{},
		Variants: variants,
	}

	for _, edge := range raw.Images.Edges {
		img := models.Image{URL: edge.Node.URL}
		if edge.Node.AltText != nil {
			img.AltText = *edge.Node.AltText
		}
		p.Images = append(p.Images, img)
	}

	selected := selectVariant(variants)
	if selected != nil {
		p.Price = selected.Price
		p.ComparePrice = selected.ComparePrice
		p.SelectedColor = selected.Color
		p.Image = selected.Image
		p.AltText = selected.AltText
	}
	if p.Image == nil && raw.FeaturedImage != nil {
		url := raw.FeaturedImage.URL
		p.Image = &url
	}

	rawColors := []string{}
	for _, v := range variants {
		if v.Color != nil {
			rawColors = append(rawColors, *v.Color)
		}
	}
	for _, base := range utils.UniqueBaseColors(rawColors) {
		p.Colors = append(p.Colors, string(base))
	}

	return p
}

// selectVariant renvoie la première variante en stock, sinon la première.
// Nil uniquement pour un produit sans aucune variante.
func selectVariant(variants []models.Variant) *models.Variant {
	for i := range variants {
		if variants[i].InStock {
			return &variants[i]
		}
	}
	if len(variants) > 0 {
		return &variants[0]
	}
	return nil
}

// NormalizeFilters transforme les facettes Shopify en mapping label →
// options. Les groupes PRICE_RANGE et les options à count 0 sont éliminés,
// ainsi que les groupes qui finissent vides. Idempotent.
func NormalizeFilters(groups []shopify.RawFilterGroup) map[string][]models.FilterOption {
	filters := map[string][]models.FilterOption{}

	for _, group := range groups {
		if group.Type == "PRICE_RANGE" {
			continue
		}

		options := []models.FilterOption{}
		for _, v := range group.Values {
			if v.Count <= 0 {
				continue
			}
			options = append(options, models.FilterOption{
				Label: v.Label,
				Count: v.Count,
				Input: v.Input,
			})
		}
		if len(options) == 0 {
			continue
		}

		key := group.Label
		if key == "" {
			key = group.ID
		}
		filters[key] = options
	}

	return filters
}
