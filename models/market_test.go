package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMarket(t *testing.T) {
	t.Run("TableName", func(t *testing.T) {
		m := Market{}
		assert.Equal(t, "markets", m.TableName())
	})

	t.Run("BeforeCreate", func(t *testing.T) {
		m := Market{}
		assert.Equal(t, uuid.Nil, m.ID)

		err := m.BeforeCreate(nil)
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, m.ID)

		existingID := uuid.New()
		m2 := Market{ID: existingID}
		err = m2.BeforeCreate(nil)
		assert.NoError(t, err)
		assert.Equal(t, existingID, m2.ID)
	})

	t.Run("IsOpen", func(t *testing.T) {
		m := Market{Status: MarketStatusOpen, CloseTime: time.Now().Add(time.Hour)}
		assert.True(t, m.IsOpen())
		assert.True(t, m.CanStake())

		m.CloseTime = time.Now().Add(-time.Hour)
		assert.False(t, m.IsOpen())
		assert.True(t, m.IsClosed())
		assert.False(t, m.CanStake())

		m = Market{Status: MarketStatusClosed, CloseTime: time.Now().Add(time.Hour)}
		assert.False(t, m.IsOpen())
		assert.True(t, m.IsClosed())
	})

	t.Run("HasOption binary", func(t *testing.T) {
		m := Market{Kind: MarketKindBinary}
		assert.True(t, m.HasOption(BinaryOptionYes))
		assert.True(t, m.HasOption(BinaryOptionNo))
		assert.False(t, m.HasOption("maybe"))
	})

	t.Run("HasOption multi", func(t *testing.T) {
		m := Market{
			Kind: MarketKindMultiOption,
			Options: []MarketOption{
				{OptionKey: "alpha"},
				{OptionKey: "beta"},
			},
		}
		assert.True(t, m.HasOption("alpha"))
		assert.True(t, m.HasOption("beta"))
		assert.False(t, m.HasOption("yes"))
	})

	t.Run("Resolve", func(t *testing.T) {
		m := Market{Kind: MarketKindBinary, Status: MarketStatusOpen, CloseTime: time.Now().Add(time.Hour)}

		err := m.Resolve("maybe")
		assert.Equal(t, ErrInvalidOption, err)
		assert.False(t, m.Resolved)

		err = m.Resolve(BinaryOptionYes)
		assert.NoError(t, err)
		assert.True(t, m.Resolved)
		assert.True(t, m.IsResolved())
		assert.Equal(t, MarketStatusClosed, m.Status)
		assert.Equal(t, BinaryOptionYes, m.WinningOption)
		assert.NotNil(t, m.ResolvedAt)

		err = m.Resolve(BinaryOptionNo)
		assert.Equal(t, ErrMarketAlreadyResolved, err)
		assert.Equal(t, BinaryOptionYes, m.WinningOption)
	})

	t.Run("Close", func(t *testing.T) {
		m := Market{Kind: MarketKindBinary, Status: MarketStatusOpen, CloseTime: time.Now().Add(time.Hour)}

		err := m.Close()
		assert.NoError(t, err)
		assert.Equal(t, MarketStatusClosed, m.Status)
		assert.False(t, m.Resolved)

		assert.NoError(t, m.Resolve(BinaryOptionNo))
		err = m.Close()
		assert.Equal(t, ErrMarketAlreadyResolved, err)
	})

	t.Run("Validate", func(t *testing.T) {
		validMarket := Market{
			Title:     "Will it rain tomorrow?",
			Summary:   "Resolves yes on any measurable rainfall",
			Category:  "weather",
			Kind:      MarketKindBinary,
			Status:    MarketStatusOpen,
			CloseTime: time.Now().Add(24 * time.Hour),
		}

		tests := []struct {
			name   string
			modify func(*Market)
			err    error
		}{
			{"Valid Market", func(_ *Market) {}, nil},
			{"Missing Title", func(m *Market) { m.Title = "" }, ErrInvalidMarketTitle},
			{"Missing Category", func(m *Market) { m.Category = "" }, ErrInvalidCategory},
			{"Bad Kind", func(m *Market) { m.Kind = "spread" }, ErrInvalidMarketKind},
			{"Past CloseTime", func(m *Market) { m.CloseTime = time.Now().Add(-time.Hour) }, ErrInvalidCloseTime},
			{"Resolved Without Winner", func(m *Market) { m.Resolved = true }, ErrInvalidMarketStatus},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				market := validMarket
				tt.modify(&market)
				if tt.err != nil {
					assert.Equal(t, tt.err, market.Validate())
				} else {
					assert.NoError(t, market.Validate())
				}
			})
		}
	})
}

func TestSourceList(t *testing.T) {
	t.Run("Value and Scan", func(t *testing.T) {
		sources := SourceList{"https://example.com/a", "https://example.com/b"}

		value, err := sources.Value()
		assert.NoError(t, err)

		var scanned SourceList
		assert.NoError(t, scanned.Scan(value))
		assert.Equal(t, sources, scanned)
	})

	t.Run("Nil list marshals empty", func(t *testing.T) {
		var sources SourceList
		value, err := sources.Value()
		assert.NoError(t, err)
		assert.Equal(t, "[]", string(value.([]byte)))
	})

	t.Run("Scan nil is a no-op", func(t *testing.T) {
		var scanned SourceList
		assert.NoError(t, scanned.Scan(nil))
		assert.Nil(t, scanned)
	})
}
