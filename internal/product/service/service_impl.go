package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/hubln/hubln/internal/clock"
	"github.com/hubln/hubln/internal/product/domain"
	"github.com/hubln/hubln/pkg/db/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("product.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	basePrice, err := parsePrice(req.BasePrice)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now(ctx)
	p := domain.Product{
		ID:        s.genID.Generate(),
		Name:      name,
		Category:  strings.TrimSpace(req.Category),
		BasePrice: basePrice,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, s.db, &p); err != nil {
		return nil, err
	}

	s.log.Info("product created",
		zap.String("product_id", p.ID.String()),
		zap.String("base_price", p.BasePrice.StringFixed(2)))

	return toResponse(&p), nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(p), nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	page := pagination.Pagination{}.Normalize()
	items, total, err := s.repo.List(ctx, s.db, req, page)
	if err != nil {
		return domain.ListResponse{}, err
	}

	out := make([]domain.Response, 0, len(items))
	for i := range items {
		out = append(out, *toResponse(&items[i]))
	}
	return domain.ListResponse{
		PageInfo: pagination.PageInfo{Page: page.Page, PageSize: page.PageSize, TotalCount: total},
		Products: out,
	}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	p, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		p.Name = name
	}
	if req.Category != nil {
		p.Category = strings.TrimSpace(*req.Category)
	}
	if req.BasePrice != nil {
		basePrice, err := parsePrice(*req.BasePrice)
		if err != nil {
			return nil, err
		}
		p.BasePrice = basePrice
	}
	if req.Active != nil {
		p.Active = *req.Active
	}

	p.UpdatedAt = s.clock.Now(ctx)
	if err := s.repo.Update(ctx, s.db, p); err != nil {
		return nil, err
	}
	return toResponse(p), nil
}

func (s *Service) Archive(ctx context.Context, id string) (*domain.Response, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Active {
		p.Active = false
		p.UpdatedAt = s.clock.Now(ctx)
		if err := s.repo.Update(ctx, s.db, p); err != nil {
			return nil, err
		}
	}
	return toResponse(p), nil
}

func (s *Service) find(ctx context.Context, id string) (*domain.Product, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	p, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() {
		return decimal.Zero, domain.ErrInvalidPrice
	}
	return d, nil
}

func toResponse(p *domain.Product) *domain.Response {
	return &domain.Response{
		ID:        p.ID.String(),
		Name:      p.Name,
		Category:  p.Category,
		BasePrice: p.BasePrice.StringFixed(2),
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
