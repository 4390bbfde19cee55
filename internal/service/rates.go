package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"nbp-rate-service/internal/domain/model"
	"nbp-rate-service/internal/domain/ports"
	"nbp-rate-service/pkg/logger"
	"nbp-rate-service/pkg/utils"
)

var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrNotFound            = errors.New("currency not found")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

type loader func(ctx context.Context) ([]model.Rate, error)

// RateService answers rate queries from cached NBP tables, fetching a table
// on a cache miss. Concurrent misses on the same key each fetch.
type RateService struct {
	repository ports.RateRepository
	cache      ports.RateCache
	log        *logger.Logger
	loaders    map[model.CacheKey]loader
}

func NewRateService(repository ports.RateRepository, cache ports.RateCache, log *logger.Logger) *RateService {
	s := &RateService{
		repository: repository,
		cache:      cache,
		log:        log,
	}

	s.loaders = map[model.CacheKey]loader{
		model.RatesA:    s.loadTable(model.TableA, model.RatesA),
		model.RatesB:    s.loadTable(model.TableB, model.RatesB),
		model.FullRates: s.loadFullRates,
	}

	return s
}

// Rates returns the list stored under key, loading it from upstream on a miss.
func (s *RateService) Rates(ctx context.Context, key model.CacheKey) ([]model.Rate, error) {
	if !key.Valid() {
		return nil, fmt.Errorf("%w: unknown cache key %s", ErrInvalidArgument, key)
	}
	load := s.loaders[key]

	if rates, found := s.cache.Get(ctx, key); found {
		return rates, nil
	}

	s.log.Info("Loading rates from NBP", "key", key.String())
	rates, err := load(ctx)
	if err != nil {
		s.log.Error("Failed to load rates", "key", key.String(), "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	return rates, nil
}

// ListCodes returns the codes of tables A and B, in publication order.
func (s *RateService) ListCodes(ctx context.Context) ([]string, error) {
	rates, err := s.Rates(ctx, model.FullRates)
	if err != nil {
		return nil, err
	}

	return model.CodesOf(rates), nil
}

// GetRate returns the mid rate of the first currency matching code, ignoring case.
func (s *RateService) GetRate(ctx context.Context, code string) (float64, error) {
	if err := validateCode(code); err != nil {
		return 0, err
	}

	rate, err := s.find(ctx, code)
	if err != nil {
		return 0, err
	}

	return rate.Mid, nil
}

// Convert returns value expressed in PLN, rounded to two decimal places.
func (s *RateService) Convert(ctx context.Context, code string, value float64) (float64, error) {
	if err := validateCode(code); err != nil {
		return 0, err
	}

	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: value must be a non-negative number, got %v", ErrInvalidArgument, value)
	}

	rate, err := s.find(ctx, code)
	if err != nil {
		return 0, err
	}

	return utils.ConvertAmount(value, rate.Mid), nil
}

func (s *RateService) ClearExpired(ctx context.Context) error {
	return s.cache.ClearExpired(ctx)
}

// find returns the first rate whose code matches, ignoring case. Upstream
// failures are reported as ErrNotFound.
func (s *RateService) find(ctx context.Context, code string) (model.Rate, error) {
	rates, err := s.Rates(ctx, model.FullRates)
	if err != nil {
		return model.Rate{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	for _, rate := range rates {
		if strings.EqualFold(rate.Code, code) {
			return rate, nil
		}
	}

	return model.Rate{}, fmt.Errorf("%w: %s", ErrNotFound, code)
}

func (s *RateService) loadTable(table model.TableID, key model.CacheKey) loader {
	return func(ctx context.Context) ([]model.Rate, error) {
		rates, err := s.fetchRates(ctx, table)
		if err != nil {
			return nil, err
		}

		s.store(ctx, key, rates)
		return rates, nil
	}
}

// loadFullRates fetches both tables and stores A, B and their concatenation.
func (s *RateService) loadFullRates(ctx context.Context) ([]model.Rate, error) {
	ratesA, err := s.fetchRates(ctx, model.TableA)
	if err != nil {
		return nil, err
	}

	ratesB, err := s.fetchRates(ctx, model.TableB)
	if err != nil {
		return nil, err
	}

	full := make([]model.Rate, 0, len(ratesA)+len(ratesB))
	full = append(full, ratesA...)
	full = append(full, ratesB...)

	s.store(ctx, model.RatesA, ratesA)
	s.store(ctx, model.RatesB, ratesB)
	s.store(ctx, model.FullRates, full)

	return full, nil
}

func (s *RateService) fetchRates(ctx context.Context, table model.TableID) ([]model.Rate, error) {
	result, err := s.repository.FetchTable(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", table, err)
	}
	if result == nil {
		return nil, fmt.Errorf("table %s: empty response", table)
	}

	return result.Rates, nil
}

func (s *RateService) store(ctx context.Context, key model.CacheKey, rates []model.Rate) {
	if err := s.cache.Set(ctx, key, rates); err != nil {
		s.log.Error("Failed to cache rates", "key", key.String(), "error", err)
	}
}

func validateCode(code string) error {
	if !model.ValidCode(code) {
		return fmt.Errorf("%w: code must be %d characters, got %q", ErrInvalidArgument, model.CodeLength, code)
	}
	return nil
}
