package ports

import (
	"context"

	"nbp-rate-service/internal/domain/model"
)

// RateCache stores rate lists with sliding expiration: a successful Get resets
// the entry's time to live.
type RateCache interface {
	Get(ctx context.Context, key model.CacheKey) ([]model.Rate, bool)
	Set(ctx context.Context, key model.CacheKey, rates []model.Rate) error
	ClearExpired(ctx context.Context) error
}
