package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/hubln/hubln/internal/clock"
	pricingdomain "github.com/hubln/hubln/internal/pricing/domain"
	productdomain "github.com/hubln/hubln/internal/product/domain"
	"github.com/hubln/hubln/internal/submission/domain"
	userdomain "github.com/hubln/hubln/internal/user/domain"
	"github.com/hubln/hubln/pkg/db/pagination"
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
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("submission.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		userRepo:    p.UserRepo,
		productRepo: p.ProductRepo,
		pricingRepo: p.PricingRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	userID, err := parseID(req.UserID)
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

	buyer, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if buyer == nil {
		return nil, domain.ErrUserNotFound
	}

	product, err := s.productRepo.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, domain.ErrProductNotFound
	}

	unitPrice, err := s.paidPrice(ctx, buyer, product)
	if err != nil {
		return nil, err
	}

	id := s.genID.Generate()
	now := s.clock.Now(ctx)
	sub := domain.Submission{
		ID:                id,
		UserID:            userID,
		ProductID:         productID,
		Quantity:          req.Quantity,
		UnitPrice:         unitPrice,
		TotalAmount:       unitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))),
		ExternalReference: fmt.Sprintf("submission_%s", id.String()),
		CreatedAt:         now,
	}
	if err := s.repo.Create(ctx, s.db, &sub); err != nil {
		return nil, err
	}

	s.log.Info("submission created",
		zap.String("submission_id", sub.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("total_amount", sub.TotalAmount.StringFixed(2)))

	return toResponse(&sub), nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	parsed, err := parseID(id)
	if err != nil {
		return nil, err
	}
	sub, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(sub), nil
}

func (s *Service) ListByUser(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	userID, err := parseID(req.UserID)
	if err != nil {
		return domain.ListResponse{}, err
	}

	page := req.Page.Normalize()
	items, total, err := s.repo.ListByUser(ctx, s.db, userID, req.Paid, page)
	if err != nil {
		return domain.ListResponse{}, err
	}

	out := make([]domain.Response, 0, len(items))
	for i := range items {
		out = append(out, *toResponse(&items[i]))
	}
	return domain.ListResponse{
		PageInfo:    pagination.PageInfo{Page: page.Page, PageSize: page.PageSize, TotalCount: total},
		Submissions: out,
	}, nil
}

func (s *Service) MarkPaidByExternalReference(ctx context.Context, ref string) (*domain.PaidResult, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, domain.ErrInvalidID
	}

	matched, err := s.repo.FindByExternalReference(ctx, s.db, ref)
	if err != nil {
		return nil, err
	}
	if len(matched) == 0 {
		return nil, domain.ErrNotFound
	}

	updated, err := s.repo.MarkPaid(ctx, s.db, ref, s.clock.Now(ctx))
	if err != nil {
		return nil, err
	}

	if updated == 0 {
		s.log.Debug("paid event replayed, no rows changed", zap.String("external_reference", ref))
	} else {
		s.log.Info("submissions marked paid",
			zap.String("external_reference", ref),
			zap.Int64("updated", updated))
	}

	// Re-read so callers see the post-update state.
	matched, err = s.repo.FindByExternalReference(ctx, s.db, ref)
	if err != nil {
		return nil, err
	}
	return &domain.PaidResult{Submissions: matched, Updated: updated}, nil
}

// paidPrice is what the buyer actually pays: their referrer's resale price for
// the product when one is set, the catalog base price otherwise.
func (s *Service) paidPrice(ctx context.Context, buyer *userdomain.User, product *productdomain.Product) (decimal.Decimal, error) {
	if buyer.ReferredBy == nil || *buyer.ReferredBy == "" {
		return product.BasePrice, nil
	}
	referrer, err := s.userRepo.FindByReferralCode(ctx, s.db, *buyer.ReferredBy)
	if err != nil {
		return decimal.Zero, err
	}
	if referrer == nil {
		return product.BasePrice, nil
	}
	override, err := s.pricingRepo.FindByUserAndProduct(ctx, s.db, referrer.ID, product.ID)
	if err != nil {
		return decimal.Zero, err
	}
	if override == nil {
		return product.BasePrice, nil
	}
	return override.CustomPrice, nil
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func toResponse(s *domain.Submission) *domain.Response {
	return &domain.Response{
		ID:                s.ID.String(),
		UserID:            s.UserID.String(),
		ProductID:         s.ProductID.String(),
		Quantity:          s.Quantity,
		UnitPrice:         s.UnitPrice.StringFixed(2),
		TotalAmount:       s.TotalAmount.StringFixed(2),
		ExternalReference: s.ExternalReference,
		Paid:              s.Paid,
		PaidAt:            s.PaidAt,
		CreatedAt:         s.CreatedAt,
	}
}
