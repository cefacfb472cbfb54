package service

import (
	"context"
	"encoding/json"

	"lucira_back_end/internal/cache"
	"lucira_back_end/internal/nector"
)

// reviewsAPI est la surface Nector utilisée par le service.
type reviewsAPI interface {
	ProductReviews(ctx context.Context, productID string) nector.Summary
}

// ReviewService sert les agrégats d'avis avec 5 minutes de mémoïsation par
// produit. Les avis sont décoratifs : jamais d'erreur, au pire {0, 0}.
type ReviewService struct {
	nector reviewsAPI
	cache  cache.Store
}

func NewReviewService(api reviewsAPI, store cache.Store) *ReviewService {
	return &ReviewService{nector: api, cache: store}
}

func (s *ReviewService) ProductReviews(ctx context.Context, productID string) nector.Summary {
	key := cache.ReviewsKey(productID)

	if cached, ok := s.cache.Get(ctx, key); ok {
		var summary nector.Summary
		if json.Unmarshal([]byte(cached), &summary) == nil {
			return summary
		}
	}

	summary := s.nector.ProductReviews(ctx, productID)

	if encoded, err := json.Marshal(summary); err == nil {
		s.cache.Set(ctx, key, string(encoded), cache.ReviewsTTL)
	}

	return summary
}
