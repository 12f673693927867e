package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/hubln/hubln/internal/clock"
	"github.com/hubln/hubln/internal/pricing/domain"
	productdomain "github.com/hubln/hubln/internal/product/domain"
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
	Repo        domain.Repository
	ProductRepo productdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        domain.Repository
	productRepo productdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("pricing.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		productRepo: p.ProductRepo,
	}
}

func (s *Service) SetPrice(ctx context.Context, req domain.SetPriceRequest) (*domain.PriceResponse, error) {
	userID, err := parseID(req.UserID)
	if err != nil {
		return nil, err
	}
	productID, err := parseID(req.ProductID)
	if err != nil {
		return nil, err
	}

	customPrice, err := decimal.NewFromString(strings.TrimSpace(req.CustomPrice))
	if err != nil || customPrice.IsNegative() {
		return nil, domain.ErrInvalidPrice
	}

	if _, err := s.activeProduct(ctx, productID); err != nil {
		return nil, err
	}

	now := s.clock.Now(ctx)
	price := domain.UserProductPrice{
		ID:          s.genID.Generate(),
		UserID:      userID,
		ProductID:   productID,
		CustomPrice: customPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Upsert(ctx, s.db, &price); err != nil {
		return nil, err
	}

	s.log.Info("resale price set",
		zap.String("user_id", userID.String()),
		zap.String("product_id", productID.String()),
		zap.String("custom_price", customPrice.StringFixed(2)))

	return &domain.PriceResponse{
		UserID:      userID.String(),
		ProductID:   productID.String(),
		CustomPrice: customPrice.StringFixed(2),
	}, nil
}

func (s *Service) RemovePrice(ctx context.Context, userID, productID string) error {
	uid, err := parseID(userID)
	if err != nil {
		return err
	}
	pid, err := parseID(productID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, uid, pid)
}

func (s *Service) ResolveEffectivePrice(ctx context.Context, userID, productID string) (*domain.Quote, error) {
	uid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	pid, err := parseID(productID)
	if err != nil {
		return nil, err
	}

	p, err := s.activeProduct(ctx, pid)
	if err != nil {
		return nil, err
	}

	quote := domain.Quote{BasePrice: p.BasePrice.StringFixed(2)}

	override, err := s.repo.FindByUserAndProduct(ctx, s.db, uid, pid)
	if err != nil {
		return nil, err
	}
	if override != nil {
		userPrice := override.CustomPrice.StringFixed(2)
		quote.UserPrice = &userPrice
		quote.CanSell = true
	}
	return &quote, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]domain.PriceResponse, error) {
	uid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.FindByUser(ctx, s.db, uid)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PriceResponse, 0, len(items))
	for _, item := range items {
		out = append(out, domain.PriceResponse{
			UserID:      item.UserID.String(),
			ProductID:   item.ProductID.String(),
			CustomPrice: item.CustomPrice.StringFixed(2),
		})
	}
	return out, nil
}

func (s *Service) activeProduct(ctx context.Context, productID snowflake.ID) (*productdomain.Product, error) {
	p, err := s.productRepo.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.Active {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
