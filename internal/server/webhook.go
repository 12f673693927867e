package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hubln/hubln/internal/payment/adapters/abacatepay"
	"github.com/hubln/hubln/internal/payment/adapters/asaas"
	"go.uber.org/zap"
)

func (s *Server) HandleAbacatePayWebhook(c *gin.Context) {
	s.handleWebhook(c, abacatepay.ProviderName)
}

func (s *Server) HandleAsaasWebhook(c *gin.Context) {
	s.handleWebhook(c, asaas.ProviderName)
}

func (s *Server) handleWebhook(c *gin.Context, provider string) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.webhookSvc.Ingest(c.Request.Context(), provider, payload, c.Request.Header)
	if err != nil {
		s.log.Warn("webhook rejected",
			zap.String("provider", provider),
			zap.Error(err))
		AbortWithError(c, err)
		return
	}

	// Ignored and replayed events still get a 200 so the provider stops
	// redelivering them.
	c.JSON(http.StatusOK, result)
}
