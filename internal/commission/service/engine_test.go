package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/hubln/hubln/internal/clock"
	"github.com/hubln/hubln/internal/commission/domain"
	commissionrepository "github.com/hubln/hubln/internal/commission/repository"
	"github.com/hubln/hubln/internal/config"
	"github.com/hubln/hubln/internal/migration"
	pricingdomain "github.com/hubln/hubln/internal/pricing/domain"
	pricingrepository "github.com/hubln/hubln/internal/pricing/repository"
	productdomain "github.com/hubln/hubln/internal/product/domain"
	productrepository "github.com/hubln/hubln/internal/product/repository"
	userdomain "github.com/hubln/hubln/internal/user/domain"
	userrepository "github.com/hubln/hubln/internal/user/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type engineFixture struct {
	db       *gorm.DB
	node     *snowflake.Node
	now      time.Time
	svc      domain.Service
	users    userdomain.Repository
	products productdomain.Repository
	prices   pricingdomain.Repository
}

func newEngine(t *testing.T, maxDepth int) *engineFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.Run(db))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	f := &engineFixture{
		db:       db,
		node:     node,
		now:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		users:    userrepository.Provide(),
		products: productrepository.Provide(),
		prices:   pricingrepository.Provide(),
	}
	f.svc = New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.Fixed{T: f.now},
		Cfg: config.Config{
			Referral: config.ReferralConfig{MaxDepth: maxDepth, CommissionHoldDays: 7},
		},
		Repo:        commissionrepository.Provide(),
		UserRepo:    f.users,
		ProductRepo: f.products,
		PricingRepo: f.prices,
	})
	return f
}

func (f *engineFixture) seedUser(t *testing.T, code string, referredBy *string) userdomain.User {
	t.Helper()
	u := userdomain.User{
		ID:           f.node.Generate(),
		Name:         "user " + code,
		Email:        code + "@test.local",
		ReferralCode: code,
		ReferredBy:   referredBy,
		CreatedAt:    f.now,
		UpdatedAt:    f.now,
	}
	require.NoError(t, f.users.Create(context.Background(), f.db, &u))
	return u
}

func (f *engineFixture) seedProduct(t *testing.T, basePrice string) productdomain.Product {
	t.Helper()
	p := productdomain.Product{
		ID:        f.node.Generate(),
		Name:      "product",
		Category:  "digital",
		BasePrice: decimal.RequireFromString(basePrice),
		Active:    true,
		CreatedAt: f.now,
		UpdatedAt: f.now,
	}
	require.NoError(t, f.products.Create(context.Background(), f.db, &p))
	return p
}

func (f *engineFixture) setOverride(t *testing.T, userID, productID snowflake.ID, price string) {
	t.Helper()
	require.NoError(t, f.prices.Upsert(context.Background(), f.db, &pricingdomain.UserProductPrice{
		ID:          f.node.Generate(),
		UserID:      userID,
		ProductID:   productID,
		CustomPrice: decimal.RequireFromString(price),
		CreatedAt:   f.now,
		UpdatedAt:   f.now,
	}))
}

func ref(code string) *string { return &code }

func TestCalculateChain_MarginPerLevel(t *testing.T) {
	f := newEngine(t, 10)
	ctx := context.Background()

	product := f.seedProduct(t, "100")
	root := f.seedUser(t, "100001", nil)
	mid := f.seedUser(t, "100002", ref("100001"))
	buyer := f.seedUser(t, "100003", ref("100002"))
	f.setOverride(t, root.ID, product.ID, "150")

	chain, err := f.svc.CalculateChain(ctx, domain.CalculateRequest{
		BuyerID:   buyer.ID.String(),
		ProductID: product.ID.String(),
		Quantity:  2,
		UnitPrice: "120.00",
	})
	require.NoError(t, err)
	require.Len(t, chain, 3)

	// Level 0 reports the buyer's own transaction at the literal price paid.
	assert.Equal(t, 0, chain[0].Level)
	assert.Equal(t, buyer.ID.String(), chain[0].UserID)
	assert.Equal(t, "120.00", chain[0].SellingPrice)
	assert.Equal(t, "100.00", chain[0].BasePrice)
	assert.Equal(t, "20.00", chain[0].CommissionPerUnit)
	assert.Equal(t, "40.00", chain[0].TotalCommission)

	// No override: sells at base, earns nothing.
	assert.Equal(t, mid.ID.String(), chain[1].UserID)
	assert.Equal(t, "100.00", chain[1].SellingPrice)
	assert.Equal(t, "0.00", chain[1].CommissionPerUnit)

	// Override at 150 on a base of 100 captures 50 per unit.
	assert.Equal(t, root.ID.String(), chain[2].UserID)
	assert.Equal(t, "150.00", chain[2].SellingPrice)
	assert.Equal(t, "50.00", chain[2].CommissionPerUnit)
	assert.Equal(t, "100.00", chain[2].TotalCommission)
}

func TestCalculateChain_NegativeMarginClampsToZero(t *testing.T) {
	f := newEngine(t, 10)
	ctx := context.Background()

	product := f.seedProduct(t, "100")
	buyer := f.seedUser(t, "100001", nil)

	chain, err := f.svc.CalculateChain(ctx, domain.CalculateRequest{
		BuyerID:   buyer.ID.String(),
		ProductID: product.ID.String(),
		Quantity:  1,
		UnitPrice: "70.00",
	})
	require.NoError(t, err)
	require.Len(t, chain, 1)
	assert.Equal(t, "0.00", chain[0].CommissionPerUnit)
	assert.Equal(t, "0.00", chain[0].TotalCommission)
}

func TestCalculateChain_TruncatesOnDanglingReferralCode(t *testing.T) {
	f := newEngine(t, 10)
	ctx := context.Background()

	product := f.seedProduct(t, "100")
	buyer := f.seedUser(t, "100001", ref("999999"))

	chain, err := f.svc.CalculateChain(ctx, domain.CalculateRequest{
		BuyerID:   buyer.ID.String(),
		ProductID: product.ID.String(),
		Quantity:  1,
		UnitPrice: "100.00",
	})
	require.NoError(t, err)
	require.Len(t, chain, 1)
	assert.Equal(t, buyer.ID.String(), chain[0].UserID)
}

func TestCalculateChain_FullChainLength(t *testing.T) {
	f := newEngine(t, 10)
	ctx := context.Background()

	product := f.seedProduct(t, "100")

	// 10 ancestors above the buyer fit exactly inside the depth cap.
	var parentCode *string
	for i := 0; i < 10; i++ {
		u := f.seedUser(t, fmt.Sprintf("20%04d", i), parentCode)
		parentCode = ref(u.ReferralCode)
	}
	buyer := f.seedUser(t, "209999", parentCode)

	chain, err := f.svc.CalculateChain(ctx, domain.CalculateRequest{
		BuyerID:   buyer.ID.String(),
		ProductID: product.ID.String(),
		Quantity:  1,
		UnitPrice: "100.00",
	})
	require.NoError(t, err)
	assert.Len(t, chain, 11)
}

func TestCalculateChain_DepthCapTruncates(t *testing.T) {
	f := newEngine(t, 3)
	ctx := context.Background()

	product := f.seedProduct(t, "100")

	var parentCode *string
	for i := 0; i < 6; i++ {
		u := f.seedUser(t, fmt.Sprintf("30%04d", i), parentCode)
		parentCode = ref(u.ReferralCode)
	}
	buyer := f.seedUser(t, "309999", parentCode)

	chain, err := f.svc.CalculateChain(ctx, domain.CalculateRequest{
		BuyerID:   buyer.ID.String(),
		ProductID: product.ID.String(),
		Quantity:  1,
		UnitPrice: "100.00",
	})
	require.NoError(t, err)
	assert.Len(t, chain, 4)
}

func TestCalculateChain_Validation(t *testing.T) {
	f := newEngine(t, 10)
	ctx := context.Background()

	product := f.seedProduct(t, "100")
	buyer := f.seedUser(t, "100001", nil)

	_, err := f.svc.CalculateChain(ctx, domain.CalculateRequest{
		BuyerID:   buyer.ID.String(),
		ProductID: f.node.Generate().String(),
		Quantity:  1,
		UnitPrice: "100.00",
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = f.svc.CalculateChain(ctx, domain.CalculateRequest{
		BuyerID:   f.node.Generate().String(),
		ProductID: product.ID.String(),
		Quantity:  1,
		UnitPrice: "100.00",
	})
	assert.ErrorIs(t, err, domain.ErrBuyerNotFound)

	_, err = f.svc.CalculateChain(ctx, domain.CalculateRequest{
		BuyerID:   buyer.ID.String(),
		ProductID: product.ID.String(),
		Quantity:  0,
		UnitPrice: "100.00",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.svc.CalculateChain(ctx, domain.CalculateRequest{
		BuyerID:   buyer.ID.String(),
		ProductID: product.ID.String(),
		Quantity:  1,
		UnitPrice: "not-a-price",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestRecord_WritesLedgerOnce(t *testing.T) {
	f := newEngine(t, 10)
	ctx := context.Background()

	product := f.seedProduct(t, "100")
	root := f.seedUser(t, "100001", nil)
	buyer := f.seedUser(t, "100002", ref("100001"))
	f.setOverride(t, root.ID, product.ID, "150")

	submissionID := f.node.Generate()
	req := domain.RecordRequest{
		SubmissionID: submissionID.String(),
		BuyerID:      buyer.ID.String(),
		ProductID:    product.ID.String(),
		Quantity:     2,
		UnitPrice:    "150.00",
	}
	require.NoError(t, f.svc.Record(ctx, req))

	// The buyer's level 0 row describes the transaction and earns nothing,
	// so only the referrer gets a ledger row.
	items, err := f.svc.ListForUser(ctx, root.ID.String(), "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, submissionID.String(), items[0].SubmissionID)
	assert.Equal(t, 1, items[0].Level)
	assert.Equal(t, "50.00", items[0].CommissionPerUnit)
	assert.Equal(t, "100.00", items[0].TotalCommission)
	assert.Equal(t, string(domain.EarningStatusPending), items[0].Status)

	buyerItems, err := f.svc.ListForUser(ctx, buyer.ID.String(), "")
	require.NoError(t, err)
	assert.Empty(t, buyerItems)

	// Replaying the same submission is a no-op.
	require.NoError(t, f.svc.Record(ctx, req))
	items, err = f.svc.ListForUser(ctx, root.ID.String(), "")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestReleaseAndSummary(t *testing.T) {
	f := newEngine(t, 10)
	ctx := context.Background()

	product := f.seedProduct(t, "100")
	root := f.seedUser(t, "100001", nil)
	buyer := f.seedUser(t, "100002", ref("100001"))
	f.setOverride(t, root.ID, product.ID, "150")

	require.NoError(t, f.svc.Record(ctx, domain.RecordRequest{
		SubmissionID: f.node.Generate().String(),
		BuyerID:      buyer.ID.String(),
		ProductID:    product.ID.String(),
		Quantity:     2,
		UnitPrice:    "150.00",
	}))

	summary, err := f.svc.Summary(ctx, root.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "100.00", summary.Pending)
	assert.Equal(t, "0.00", summary.Available)

	// Inside the hold window nothing matures.
	released, err := f.svc.Release(ctx)
	require.NoError(t, err)
	assert.Zero(t, released)

	// A sweep after the hold window flips pending to available.
	later := New(Params{
		DB:    f.db,
		Log:   zap.NewNop(),
		GenID: f.node,
		Clock: clock.Fixed{T: f.now.AddDate(0, 0, 8)},
		Cfg: config.Config{
			Referral: config.ReferralConfig{MaxDepth: 10, CommissionHoldDays: 7},
		},
		Repo:        commissionrepository.Provide(),
		UserRepo:    f.users,
		ProductRepo: f.products,
		PricingRepo: f.prices,
	})
	released, err = later.Release(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, released)

	summary, err = later.Summary(ctx, root.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "0.00", summary.Pending)
	assert.Equal(t, "100.00", summary.Available)

	available, err := later.ListForUser(ctx, root.ID.String(), string(domain.EarningStatusAvailable))
	require.NoError(t, err)
	assert.Len(t, available, 1)
}
