package ports

import (
	"context"

	"nbp-rate-service/internal/domain/model"
)

type RateRepository interface {
	FetchTable(ctx context.Context, table model.TableID) (*model.Table, error)
}
