package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/hubln/hubln/internal/clock"
	"github.com/hubln/hubln/internal/user/domain"
	"github.com/hubln/hubln/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const referralCodeAttempts = 5

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
		log:   p.Log.Named("user.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}

	existing, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	var referredBy *string
	if req.ReferredBy != nil {
		code := strings.TrimSpace(*req.ReferredBy)
		if code != "" {
			referrer, err := s.repo.FindByReferralCode(ctx, s.db, code)
			if err != nil {
				return nil, err
			}
			if referrer == nil {
				return nil, domain.ErrInvalidReferrer
			}
			referredBy = &referrer.ReferralCode
		}
	}

	code, err := s.freshReferralCode(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now(ctx)
	u := domain.User{
		ID:           s.genID.Generate(),
		Name:         name,
		Email:        email,
		ReferralCode: code,
		ReferredBy:   referredBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, s.db, &u); err != nil {
		return nil, err
	}

	s.log.Info("user registered",
		zap.String("user_id", u.ID.String()),
		zap.String("referral_code", u.ReferralCode),
		zap.Bool("referred", referredBy != nil))

	return toResponse(&u), nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	u, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(u), nil
}

func (s *Service) GetByReferralCode(ctx context.Context, code string) (*domain.Response, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrNotFound
	}
	u, err := s.repo.FindByReferralCode(ctx, s.db, code)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(u), nil
}

func (s *Service) Approve(ctx context.Context, id string) (*domain.Response, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	u, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	if !u.IsApproved {
		u.IsApproved = true
		u.UpdatedAt = s.clock.Now(ctx)
		if err := s.repo.Update(ctx, s.db, u); err != nil {
			return nil, err
		}
	}
	return toResponse(u), nil
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
		Users:    out,
	}, nil
}

// freshReferralCode draws short numeric codes until one is unused. Collisions
// are rare at this range but the retry keeps registration from failing on one.
func (s *Service) freshReferralCode(ctx context.Context) (string, error) {
	for i := 0; i < referralCodeAttempts; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
		if err != nil {
			return "", err
		}
		code := fmt.Sprintf("%06d", n.Int64())
		existing, err := s.repo.FindByReferralCode(ctx, s.db, code)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not allocate referral code")
}

func toResponse(u *domain.User) *domain.Response {
	return &domain.Response{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		ReferralCode: u.ReferralCode,
		ReferredBy:   u.ReferredBy,
		IsAdmin:      u.IsAdmin,
		IsApproved:   u.IsApproved,
		CreatedAt:    u.CreatedAt,
	}
}
