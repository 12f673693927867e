package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	commissiondomain "github.com/hubln/hubln/internal/commission/domain"
	"github.com/hubln/hubln/internal/config"
	paymentdomain "github.com/hubln/hubln/internal/payment/domain"
	"github.com/hubln/hubln/internal/poller"
	pricingdomain "github.com/hubln/hubln/internal/pricing/domain"
	productdomain "github.com/hubln/hubln/internal/product/domain"
	submissiondomain "github.com/hubln/hubln/internal/submission/domain"
	subscriptiondomain "github.com/hubln/hubln/internal/subscription/domain"
	userdomain "github.com/hubln/hubln/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log             *zap.Logger
	Cfg             config.Config
	UserSvc         userdomain.Service
	ProductSvc      productdomain.Service
	PricingSvc      pricingdomain.Service
	CommissionSvc   commissiondomain.Service
	SubmissionSvc   submissiondomain.Service
	SubscriptionSvc subscriptiondomain.Service
	WebhookSvc      paymentdomain.Service
	StatusSvc       paymentdomain.StatusService
	Poller          *poller.Poller
}

type Server struct {
	log             *zap.Logger
	cfg             config.Config
	userSvc         userdomain.Service
	productSvc      productdomain.Service
	pricingSvc      pricingdomain.Service
	commissionSvc   commissiondomain.Service
	submissionSvc   submissiondomain.Service
	subscriptionSvc subscriptiondomain.Service
	webhookSvc      paymentdomain.Service
	statusSvc       paymentdomain.StatusService
	poller          *poller.Poller
}

func New(p Params) *Server {
	return &Server{
		log:             p.Log.Named("server"),
		cfg:             p.Cfg,
		userSvc:         p.UserSvc,
		productSvc:      p.ProductSvc,
		pricingSvc:      p.PricingSvc,
		commissionSvc:   p.CommissionSvc,
		submissionSvc:   p.SubmissionSvc,
		subscriptionSvc: p.SubscriptionSvc,
		webhookSvc:      p.WebhookSvc,
		statusSvc:       p.StatusSvc,
		poller:          p.Poller,
	}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.POST("/webhooks/abacatepay", s.HandleAbacatePayWebhook)
	r.POST("/webhooks/asaas", s.HandleAsaasWebhook)
	r.GET("/payments/:id/status", s.CheckPaymentStatus)
	r.POST("/payments/:id/poll", s.StartPaymentPolling)

	r.POST("/users", s.RegisterUser)
	r.GET("/users", s.ListUsers)
	r.GET("/users/:id", s.GetUser)
	r.POST("/users/:id/approve", s.ApproveUser)

	r.POST("/products", s.CreateProduct)
	r.GET("/products", s.ListProducts)
	r.GET("/products/:id", s.GetProductByID)
	r.PATCH("/products/:id", s.UpdateProduct)
	r.POST("/products/:id/archive", s.ArchiveProduct)

	r.PUT("/users/:id/prices/:productId", s.SetResalePrice)
	r.DELETE("/users/:id/prices/:productId", s.RemoveResalePrice)
	r.GET("/users/:id/prices", s.ListResalePrices)
	r.GET("/users/:id/prices/:productId", s.ResolveEffectivePrice)

	r.POST("/submissions", s.CreateSubmission)
	r.GET("/submissions/:id", s.GetSubmission)
	r.GET("/users/:id/submissions", s.ListSubmissions)

	r.POST("/commissions/preview", s.PreviewCommissionChain)
	r.GET("/users/:id/commissions", s.ListCommissions)
	r.GET("/users/:id/commissions/summary", s.CommissionSummary)

	r.GET("/users/:id/subscription", s.GetSubscription)
	r.POST("/users/:id/subscription/checkout", s.StartSubscriptionCheckout)
	r.POST("/users/:id/subscription/trial", s.StartSubscriptionTrial)
}

var Module = fx.Module("server",
	fx.Provide(New),
	fx.Invoke(RunHTTP),
)

func RunHTTP(lc fx.Lifecycle, s *Server, cfg config.Config) {
	engine := gin.New()
	engine.Use(gin.Recovery())
	s.RegisterRoutes(engine)

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			s.log.Info("http server listening", zap.String("addr", cfg.HTTP.Addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
