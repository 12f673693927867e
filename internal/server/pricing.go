package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	pricingdomain "github.com/hubln/hubln/internal/pricing/domain"
)

type setPriceRequest struct {
	CustomPrice string `json:"custom_price"`
}

func (s *Server) SetResalePrice(c *gin.Context) {
	var req setPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.pricingSvc.SetPrice(c.Request.Context(), pricingdomain.SetPriceRequest{
		UserID:      c.Param("id"),
		ProductID:   c.Param("productId"),
		CustomPrice: strings.TrimSpace(req.CustomPrice),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

func (s *Server) RemoveResalePrice(c *gin.Context) {
	err := s.pricingSvc.RemovePrice(c.Request.Context(), c.Param("id"), c.Param("productId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, gin.H{"removed": true})
}

func (s *Server) ListResalePrices(c *gin.Context) {
	resp, err := s.pricingSvc.ListForUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp, nil)
}

func (s *Server) ResolveEffectivePrice(c *gin.Context) {
	resp, err := s.pricingSvc.ResolveEffectivePrice(c.Request.Context(), c.Param("id"), c.Param("productId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}
