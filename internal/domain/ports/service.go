package ports

import (
	"context"

	"nbp-rate-service/internal/domain/model"
)

type RateService interface {
	Rates(ctx context.Context, key model.CacheKey) ([]model.Rate, error)
	ListCodes(ctx context.Context) ([]string, error)
	GetRate(ctx context.Context, code string) (float64, error)
	Convert(ctx context.Context, code string, value float64) (float64, error)
	ClearExpired(ctx context.Context) error
}
