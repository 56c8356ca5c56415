package markets

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/joefazee/creda/internal/cache"
	"github.com/joefazee/creda/internal/logger"
	"github.com/joefazee/creda/internal/sanitizer"
	rules "github.com/joefazee/creda/internal/validator"
	"github.com/joefazee/creda/models"
)

type service struct {
	repo        Repository
	config      *Config
	sanitizer   sanitizer.HTMLStripperer
	logger      logger.Logger
	validator   *validator.Validate
	detailCache cache.Cache[MarketResponse]
	listCache   cache.Cache[MarketListResponse]

	// listGeneration versions the list cache keys; bumping it expires
	// every cached list page at once
	listGeneration atomic.Uint64
}

// NewService creates a new market service
func NewService(
	repo Repository,
	config *Config,
	s sanitizer.HTMLStripperer,
	detailCache cache.Cache[MarketResponse],
	listCache cache.Cache[MarketListResponse],
	lg logger.Logger) Service {
	return &service{
		repo:        repo,
		config:      config,
		sanitizer:   s,
		logger:      lg,
		validator:   validator.New(),
		detailCache: detailCache,
		listCache:   listCache,
	}
}

// CreateMarket validates, sanitizes and persists a new market with its options
func (s *service) CreateMarket(ctx context.Context, creatorID uuid.UUID, req *CreateMarketRequest) (*MarketResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	now := time.Now()
	if req.CloseTime.Before(now.Add(s.config.MinMarketDuration)) ||
		req.CloseTime.After(now.Add(s.config.MaxMarketDuration)) {
		return nil, models.ErrInvalidCloseTime
	}

	market := &models.Market{
		CreatorID: &creatorID,
		Title:     s.sanitizer.StripHTML(req.Title),
		Summary:   s.sanitizer.StripHTML(req.Summary),
		Category:  s.sanitizer.StripHTML(req.Category),
		Kind:      models.MarketKind(req.Kind),
		Status:    models.MarketStatusOpen,
		Featured:  req.Featured,
		Sources:   req.Sources,
		CloseTime: req.CloseTime,
		EventTime: req.EventTime,
	}

	options, err := s.buildOptions(market, req.Options)
	if err != nil {
		return nil, err
	}

	if err := market.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, market, options); err != nil {
		return nil, err
	}

	market.Options = options
	s.InvalidateMarket(ctx, market.ID)

	s.logger.Info("market created", map[string]interface{}{
		"market_id": market.ID,
		"kind":      market.Kind,
		"options":   len(options),
	})

	resp := ToMarketResponse(market)
	return &resp, nil
}

// buildOptions derives the option rows for the market's kind. Binary markets
// always get the fixed yes/no pair; multi-option markets take the caller's
// 2-10 options with unique keys.
func (s *service) buildOptions(market *models.Market, reqs []CreateOptionRequest) ([]models.MarketOption, error) {
	if market.Kind == models.MarketKindBinary {
		return models.BinaryOptions(market.ID), nil
	}

	if len(reqs) < models.MinMultiOptions || len(reqs) > models.MaxMultiOptions {
		return nil, models.ErrInvalidOptionCount
	}

	keys := make([]string, 0, len(reqs))
	options := make([]models.MarketOption, 0, len(reqs))
	for i, req := range reqs {
		key := strings.ToLower(strings.TrimSpace(req.Key))
		if !rules.NotBlank(key) {
			return nil, models.ErrInvalidOptionKey
		}
		keys = append(keys, key)

		options = append(options, models.MarketOption{
			OptionKey: key,
			Label:     s.sanitizer.StripHTML(req.Label),
			SortOrder: i,
		})
	}
	if !rules.Unique(keys) {
		return nil, models.ErrInvalidOptionKey
	}

	return options, nil
}

// GetMarkets returns a filtered, paginated market list, served from cache
// when a fresh copy exists
func (s *service) GetMarkets(ctx context.Context, filters *MarketFilters) (*MarketListResponse, error) {
	filters.Normalize(s.config.MaxPageSize)

	key := s.listCacheKey(filters)
	if cached, err := s.listCache.Get(ctx, key); err == nil {
		return &cached, nil
	}

	records, total, err := s.repo.GetAll(ctx, filters)
	if err != nil {
		return nil, err
	}

	resp := &MarketListResponse{
		Markets: make([]MarketResponse, 0, len(records)),
		Total:   total,
		Page:    filters.Page,
		PerPage: filters.PerPage,
	}
	for i := range records {
		resp.Markets = append(resp.Markets, ToMarketResponse(&records[i]))
	}
	resp.TotalPages = int((total + int64(filters.PerPage) - 1) / int64(filters.PerPage))

	if err := s.listCache.Set(ctx, key, *resp, s.config.ListCacheTTL); err != nil {
		s.logger.Debug("market list cache set failed", map[string]interface{}{"error": err.Error()})
	}

	return resp, nil
}

// GetMarketByID returns one market with its options
func (s *service) GetMarketByID(ctx context.Context, id uuid.UUID) (*MarketResponse, error) {
	key := detailCacheKey(id)
	if cached, err := s.detailCache.Get(ctx, key); err == nil {
		return &cached, nil
	}

	market, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToMarketResponse(market)
	if err := s.detailCache.Set(ctx, key, resp, s.config.DetailCacheTTL); err != nil {
		s.logger.Debug("market detail cache set failed", map[string]interface{}{"error": err.Error()})
	}

	return &resp, nil
}

// EndMarket closes an open market before its scheduled close time
func (s *service) EndMarket(ctx context.Context, id uuid.UUID) (*MarketResponse, error) {
	market, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := market.Close(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, market); err != nil {
		return nil, err
	}

	s.InvalidateMarket(ctx, id)
	s.logger.Info("market ended", map[string]interface{}{"market_id": id})

	resp := ToMarketResponse(market)
	return &resp, nil
}

// FeatureMarket toggles the featured flag on a market
func (s *service) FeatureMarket(ctx context.Context, id uuid.UUID, featured bool) (*MarketResponse, error) {
	if err := s.repo.SetFeatured(ctx, id, featured); err != nil {
		return nil, err
	}

	s.InvalidateMarket(ctx, id)

	market, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToMarketResponse(market)
	return &resp, nil
}

// ProcessExpiredMarkets closes every open market past its close time
func (s *service) ProcessExpiredMarkets(ctx context.Context) (int64, error) {
	closed, err := s.repo.CloseExpired(ctx)
	if err != nil {
		return 0, err
	}

	if closed > 0 {
		s.listGeneration.Add(1)
		s.logger.Info("expired markets closed", map[string]interface{}{"count": closed})
	}

	return closed, nil
}

// InvalidateMarket drops the cached detail for the market and expires every
// cached list page. Modules that mutate markets outside this service call it
// so stale copies never outlive the mutation.
func (s *service) InvalidateMarket(ctx context.Context, id uuid.UUID) {
	if err := s.detailCache.Delete(ctx, detailCacheKey(id)); err != nil {
		s.logger.Debug("market detail cache delete failed", map[string]interface{}{"error": err.Error()})
	}
	s.listGeneration.Add(1)
}

func detailCacheKey(id uuid.UUID) string {
	return "market:" + id.String()
}

func (s *service) listCacheKey(f *MarketFilters) string {
	featured, resolved := "any", "any"
	if f.Featured != nil {
		featured = fmt.Sprintf("%t", *f.Featured)
	}
	if f.Resolved != nil {
		resolved = fmt.Sprintf("%t", *f.Resolved)
	}
	return fmt.Sprintf("markets:%d:%s:%s:%s:%s:%s:%d:%d",
		s.listGeneration.Load(), f.Status, f.Category, f.Kind, featured, resolved, f.Page, f.PerPage)
}
