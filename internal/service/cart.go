package service

import (
	"context"
	"encoding/json"
	"errors"

	"lucira_back_end/internal/models"
	"lucira_back_end/internal/shopify"
)

// CartService crée et rattache des paniers Shopify. Le panier vit côté
// Shopify, ici on ne fait que transmettre le customerAccessToken.
type CartService struct {
	shopify shopifyAPI
}

func NewCartService(api shopifyAPI) *CartService {
	return &CartService{shopify: api}
}

// Create crée un panier rattaché au customer du token.
func (s *CartService) Create(ctx context.Context, token string) (*models.Cart, error) {
	raw, err := s.shopify.StorefrontQuery(ctx, shopify.CartCreateMutation, map[string]interface{}{
		"input": map[string]interface{}{
			"buyerIdentity": map[string]interface{}{
				"customerAccessToken": token,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	var data shopify.CartCreateData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	if data.CartCreate.Cart == nil {
		return nil, errors.New("cartCreate: réponse sans cart")
	}

	return &models.Cart{ID: data.CartCreate.Cart.ID, TotalQuantity: data.CartCreate.Cart.TotalQuantity}, nil
}

// Attach rattache un panier existant (ex: panier invité) au customer.
func (s *CartService) Attach(ctx context.Context, cartID, token string) (*models.Cart, error) {
	raw, err := s.shopify.StorefrontQuery(ctx, shopify.CartBuyerIdentityUpdateMutation, map[string]interface{}{
		"cartId": cartID,
		"buyerIdentity": map[string]interface{}{
			"customerAccessToken": token,
		},
	})
	if err != nil {
		return nil, err
	}

	var data shopify.CartBuyerIdentityUpdateData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	if data.CartBuyerIdentityUpdate.Cart == nil {
		return nil, errors.New("cartBuyerIdentityUpdate: réponse sans cart")
	}

	return &models.Cart{
		ID:            data.CartBuyerIdentityUpdate.Cart.ID,
		TotalQuantity: data.CartBuyerIdentityUpdate.Cart.TotalQuantity,
	}, nil
}
