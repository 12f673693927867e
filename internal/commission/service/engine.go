package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/hubln/hubln/internal/clock"
	"github.com/hubln/hubln/internal/commission/domain"
	"github.com/hubln/hubln/internal/config"
	pricingdomain "github.com/hubln/hubln/internal/pricing/domain"
	productdomain "github.com/hubln/hubln/internal/product/domain"
	userdomain "github.com/hubln/hubln/internal/user/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Cfg         config.Config
	Repo        domain.Repository
	UserRepo    userdomain.Repository
	ProductRepo productdomain.Repository
	PricingRepo pricingdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        domain.Repository
	userRepo    userdomain.Repository
	productRepo productdomain.Repository
	pricingRepo pricingdomain.Repository

	maxDepth int
	holdDays int
}

func New(p Params) domain.Service {
	maxDepth := p.Cfg.Referral.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 10
	}
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("commission.engine"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		userRepo:    p.UserRepo,
		productRepo: p.ProductRepo,
		pricingRepo: p.PricingRepo,
		maxDepth:    maxDepth,
		holdDays:    p.Cfg.Referral.CommissionHoldDays,
	}
}

// CalculateChain walks referred_by links from the buyer toward the root.
// Level 0 reports the buyer's own transaction at the literal price paid;
// every level above it uses that ancestor's resale price (override, or the
// base price when none is set). The depth cap is a loop safety valve against
// referral cycles, not a business rule: deeper chains truncate silently.
func (s *Service) CalculateChain(ctx context.Context, req domain.CalculateRequest) ([]domain.ChainEntry, error) {
	buyerID, err := parseID(req.BuyerID)
	if err != nil {
		return nil, err
	}
	productID, err := parseID(req.ProductID)
	if err != nil {
		return nil, err
	}
	if req.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	unitPrice, err := decimal.NewFromString(strings.TrimSpace(req.UnitPrice))
	if err != nil || unitPrice.IsNegative() {
		return nil, domain.ErrInvalidPrice
	}

	product, err := s.productRepo.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	basePrice := product.BasePrice
	quantity := decimal.NewFromInt(int64(req.Quantity))

	var chain []domain.ChainEntry
	currentID := buyerID
	for level := 0; level <= s.maxDepth; level++ {
		u, err := s.userRepo.FindByID(ctx, s.db, currentID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			if level == 0 {
				return nil, domain.ErrBuyerNotFound
			}
			break
		}

		sellingPrice := unitPrice
		if level > 0 {
			sellingPrice = basePrice
			override, err := s.pricingRepo.FindByUserAndProduct(ctx, s.db, u.ID, productID)
			if err != nil {
				return nil, err
			}
			if override != nil {
				sellingPrice = override.CustomPrice
			}
		}

		perUnit := sellingPrice.Sub(basePrice)
		if perUnit.IsNegative() {
			perUnit = decimal.Zero
		}

		chain = append(chain, domain.ChainEntry{
			Level:             level,
			UserID:            u.ID.String(),
			ReferralCode:      u.ReferralCode,
			BasePrice:         basePrice.StringFixed(2),
			SellingPrice:      sellingPrice.StringFixed(2),
			CommissionPerUnit: perUnit.StringFixed(2),
			TotalCommission:   perUnit.Mul(quantity).StringFixed(2),
		})

		if u.ReferredBy == nil || *u.ReferredBy == "" {
			break
		}
		referrer, err := s.userRepo.FindByReferralCode(ctx, s.db, *u.ReferredBy)
		if err != nil {
			return nil, err
		}
		if referrer == nil {
			// Dangling referral code. Partial chains are valid results.
			s.log.Warn("referral chain truncated",
				zap.String("user_id", u.ID.String()),
				zap.String("referred_by", *u.ReferredBy),
				zap.Int("level", level))
			break
		}
		currentID = referrer.ID
	}

	return chain, nil
}

func (s *Service) Record(ctx context.Context, req domain.RecordRequest) error {
	submissionID, err := parseID(req.SubmissionID)
	if err != nil {
		return err
	}

	exists, err := s.repo.ExistsForSubmission(ctx, s.db, submissionID)
	if err != nil {
		return err
	}
	if exists {
		s.log.Debug("commission already recorded", zap.String("submission_id", submissionID.String()))
		return nil
	}

	chain, err := s.CalculateChain(ctx, domain.CalculateRequest{
		BuyerID:   req.BuyerID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		return err
	}

	now := s.clock.Now(ctx)
	availableAt := now.AddDate(0, 0, s.holdDays)

	var earnings []domain.Earning
	for _, entry := range chain {
		if entry.Level == 0 {
			// The buyer's row describes the transaction; it earns nothing.
			continue
		}
		userID, err := parseID(entry.UserID)
		if err != nil {
			return err
		}
		perUnit, err := decimal.NewFromString(entry.CommissionPerUnit)
		if err != nil {
			return err
		}
		total, err := decimal.NewFromString(entry.TotalCommission)
		if err != nil {
			return err
		}
		earnings = append(earnings, domain.Earning{
			ID:                s.genID.Generate(),
			SubmissionID:      submissionID,
			UserID:            userID,
			ReferralCode:      entry.ReferralCode,
			Level:             entry.Level,
			CommissionPerUnit: perUnit,
			TotalCommission:   total,
			Status:            domain.EarningStatusPending,
			AvailableAt:       availableAt,
			CreatedAt:         now,
		})
	}

	if err := s.repo.InsertBatch(ctx, s.db, earnings); err != nil {
		return err
	}

	s.log.Info("commission chain recorded",
		zap.String("submission_id", submissionID.String()),
		zap.Int("levels", len(earnings)))
	return nil
}

func (s *Service) Release(ctx context.Context) (int64, error) {
	released, err := s.repo.ReleaseMatured(ctx, s.db, s.clock.Now(ctx))
	if err != nil {
		return 0, err
	}
	if released > 0 {
		s.log.Info("commissions released", zap.Int64("count", released))
	}
	return released, nil
}

func (s *Service) Summary(ctx context.Context, userID string) (*domain.SummaryResponse, error) {
	uid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListByUser(ctx, s.db, uid, "")
	if err != nil {
		return nil, err
	}

	pending := decimal.Zero
	available := decimal.Zero
	for _, item := range items {
		switch item.Status {
		case domain.EarningStatusPending:
			pending = pending.Add(item.TotalCommission)
		case domain.EarningStatusAvailable:
			available = available.Add(item.TotalCommission)
		}
	}
	return &domain.SummaryResponse{
		UserID:    uid.String(),
		Pending:   pending.StringFixed(2),
		Available: available.StringFixed(2),
	}, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string, status string) ([]domain.EarningResponse, error) {
	uid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListByUser(ctx, s.db, uid, domain.EarningStatus(strings.TrimSpace(status)))
	if err != nil {
		return nil, err
	}

	out := make([]domain.EarningResponse, 0, len(items))
	for _, item := range items {
		out = append(out, domain.EarningResponse{
			ID:                item.ID.String(),
			SubmissionID:      item.SubmissionID.String(),
			Level:             item.Level,
			CommissionPerUnit: item.CommissionPerUnit.StringFixed(2),
			TotalCommission:   item.TotalCommission.StringFixed(2),
			Status:            string(item.Status),
		})
	}
	return out, nil
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
