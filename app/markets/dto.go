package markets

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/joefazee/creda/models"
)

// CreateMarketRequest represents the payload for creating a market
type CreateMarketRequest struct {
	Title     string                `json:"title" binding:"required" validate:"required,min=3,max=255"`
	Summary   string                `json:"summary" validate:"max=2000"`
	Category  string                `json:"category" validate:"max=100"`
	Kind      string                `json:"kind" binding:"required" validate:"required,oneof=binary multi_option"`
	Sources   []string              `json:"sources" validate:"max=10,dive,url"`
	CloseTime time.Time             `json:"close_time" binding:"required" validate:"required"`
	EventTime *time.Time            `json:"event_time"`
	Featured  bool                  `json:"featured"`
	Options   []CreateOptionRequest `json:"options" validate:"dive"`
}

// CreateOptionRequest represents one option of a multi-option market
type CreateOptionRequest struct {
	Key   string `json:"key" validate:"required,min=1,max=50"`
	Label string `json:"label" validate:"required,min=1,max=255"`
}

// FeatureMarketRequest toggles the featured flag on a market
type FeatureMarketRequest struct {
	Featured bool `json:"featured"`
}

// MarketFilters represents query filters for listing markets
type MarketFilters struct {
	Status   string `form:"status" validate:"omitempty,oneof=open closed"`
	Category string `form:"category"`
	Kind     string `form:"kind" validate:"omitempty,oneof=binary multi_option"`
	Featured *bool  `form:"featured"`
	Resolved *bool  `form:"resolved"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}

// Normalize clamps pagination to sane values
func (f *MarketFilters) Normalize(maxPageSize int) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = 20
	}
	if f.PerPage > maxPageSize {
		f.PerPage = maxPageSize
	}
}

// OptionResponse represents a market option in API responses
type OptionResponse struct {
	ID          uuid.UUID       `json:"id"`
	OptionKey   string          `json:"option_key"`
	Label       string          `json:"label"`
	SortOrder   int             `json:"sort_order"`
	StakeTotal  decimal.Decimal `json:"stake_total"`
	Probability decimal.Decimal `json:"probability"`
}

// MarketResponse represents a market in API responses
type MarketResponse struct {
	ID            uuid.UUID        `json:"id"`
	CreatorID     *uuid.UUID       `json:"creator_id,omitempty"`
	Title         string           `json:"title"`
	Summary       string           `json:"summary,omitempty"`
	Category      string           `json:"category,omitempty"`
	Kind          string           `json:"kind"`
	Status        string           `json:"status"`
	Resolved      bool             `json:"resolved"`
	WinningOption string           `json:"winning_option,omitempty"`
	Featured      bool             `json:"featured"`
	Sources       []string         `json:"sources,omitempty"`
	CloseTime     time.Time        `json:"close_time"`
	EventTime     *time.Time       `json:"event_time,omitempty"`
	ResolvedAt    *time.Time       `json:"resolved_at,omitempty"`
	TotalPool     decimal.Decimal  `json:"total_pool"`
	Options       []OptionResponse `json:"options,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// MarketListResponse represents a paginated list of markets
type MarketListResponse struct {
	Markets    []MarketResponse `json:"markets"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	TotalPages int              `json:"total_pages"`
}

// ToOptionResponse converts a model option to its API representation
func ToOptionResponse(option *models.MarketOption, totalPool decimal.Decimal) OptionResponse {
	return OptionResponse{
		ID:          option.ID,
		OptionKey:   option.OptionKey,
		Label:       option.Label,
		SortOrder:   option.SortOrder,
		StakeTotal:  option.StakeTotal,
		Probability: option.Probability(totalPool),
	}
}

// ToMarketResponse converts a market model to its API representation
func ToMarketResponse(market *models.Market) MarketResponse {
	resp := MarketResponse{
		ID:            market.ID,
		CreatorID:     market.CreatorID,
		Title:         market.Title,
		Summary:       market.Summary,
		Category:      market.Category,
		Kind:          string(market.Kind),
		Status:        string(market.Status),
		Resolved:      market.Resolved,
		WinningOption: market.WinningOption,
		Featured:      market.Featured,
		Sources:       market.Sources,
		CloseTime:     market.CloseTime,
		EventTime:     market.EventTime,
		ResolvedAt:    market.ResolvedAt,
		TotalPool:     market.TotalPool,
		CreatedAt:     market.CreatedAt,
	}

	for i := range market.Options {
		resp.Options = append(resp.Options, ToOptionResponse(&market.Options[i], market.TotalPool))
	}

	return resp
}
