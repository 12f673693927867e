package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/hubln/hubln/internal/clock"
	"github.com/hubln/hubln/internal/migration"
	"github.com/hubln/hubln/internal/pricing/domain"
	"github.com/hubln/hubln/internal/pricing/repository"
	productdomain "github.com/hubln/hubln/internal/product/domain"
	productrepository "github.com/hubln/hubln/internal/product/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newFixture(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.Run(db))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       clock.Fixed{T: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		Repo:        repository.Provide(),
		ProductRepo: productrepository.Provide(),
	})
	return svc, db, node
}

func seedProduct(t *testing.T, db *gorm.DB, node *snowflake.Node, basePrice string, active bool) productdomain.Product {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := productdomain.Product{
		ID:        node.Generate(),
		Name:      "product",
		Category:  "digital",
		BasePrice: decimal.RequireFromString(basePrice),
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, productrepository.Provide().Create(context.Background(), db, &p))
	return p
}

func TestSetPriceAndResolve(t *testing.T) {
	svc, db, node := newFixture(t)
	ctx := context.Background()

	product := seedProduct(t, db, node, "100", true)
	userID := node.Generate()

	// Without an override the user cannot resell, only buy at base.
	quote, err := svc.ResolveEffectivePrice(ctx, userID.String(), product.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "100.00", quote.BasePrice)
	assert.Nil(t, quote.UserPrice)
	assert.False(t, quote.CanSell)

	resp, err := svc.SetPrice(ctx, domain.SetPriceRequest{
		UserID:      userID.String(),
		ProductID:   product.ID.String(),
		CustomPrice: "150",
	})
	require.NoError(t, err)
	assert.Equal(t, "150.00", resp.CustomPrice)

	quote, err = svc.ResolveEffectivePrice(ctx, userID.String(), product.ID.String())
	require.NoError(t, err)
	require.NotNil(t, quote.UserPrice)
	assert.Equal(t, "150.00", *quote.UserPrice)
	assert.True(t, quote.CanSell)

	// Setting again replaces, it does not stack rows.
	_, err = svc.SetPrice(ctx, domain.SetPriceRequest{
		UserID:      userID.String(),
		ProductID:   product.ID.String(),
		CustomPrice: "175",
	})
	require.NoError(t, err)

	prices, err := svc.ListForUser(ctx, userID.String())
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.Equal(t, "175.00", prices[0].CustomPrice)
}

func TestSetPrice_Validation(t *testing.T) {
	svc, db, node := newFixture(t)
	ctx := context.Background()

	product := seedProduct(t, db, node, "100", true)
	archived := seedProduct(t, db, node, "100", false)
	userID := node.Generate()

	_, err := svc.SetPrice(ctx, domain.SetPriceRequest{
		UserID:      userID.String(),
		ProductID:   product.ID.String(),
		CustomPrice: "-10",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = svc.SetPrice(ctx, domain.SetPriceRequest{
		UserID:      userID.String(),
		ProductID:   archived.ID.String(),
		CustomPrice: "150",
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = svc.SetPrice(ctx, domain.SetPriceRequest{
		UserID:      "not-an-id",
		ProductID:   product.ID.String(),
		CustomPrice: "150",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestRemovePrice(t *testing.T) {
	svc, db, node := newFixture(t)
	ctx := context.Background()

	product := seedProduct(t, db, node, "100", true)
	userID := node.Generate()

	_, err := svc.SetPrice(ctx, domain.SetPriceRequest{
		UserID:      userID.String(),
		ProductID:   product.ID.String(),
		CustomPrice: "150",
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemovePrice(ctx, userID.String(), product.ID.String()))

	quote, err := svc.ResolveEffectivePrice(ctx, userID.String(), product.ID.String())
	require.NoError(t, err)
	assert.Nil(t, quote.UserPrice)
	assert.False(t, quote.CanSell)

	// Removing a price that does not exist is fine.
	require.NoError(t, svc.RemovePrice(ctx, userID.String(), product.ID.String()))
}
