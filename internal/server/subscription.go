package server

import (
	"github.com/gin-gonic/gin"
	subscriptiondomain "github.com/hubln/hubln/internal/subscription/domain"
)

type startCheckoutRequest struct {
	BillingID string `json:"billing_id"`
}

func (s *Server) GetSubscription(c *gin.Context) {
	resp, err := s.subscriptionSvc.GetForUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

func (s *Server) StartSubscriptionCheckout(c *gin.Context) {
	var req startCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.subscriptionSvc.StartCheckout(c.Request.Context(), subscriptiondomain.StartCheckoutRequest{
		UserID:    c.Param("id"),
		BillingID: req.BillingID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

func (s *Server) StartSubscriptionTrial(c *gin.Context) {
	resp, err := s.subscriptionSvc.StartTrial(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}
