package server

import (
	"github.com/gin-gonic/gin"
	commissiondomain "github.com/hubln/hubln/internal/commission/domain"
)

type previewChainRequest struct {
	BuyerID   string `json:"buyer_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// PreviewCommissionChain computes the commission breakdown for a hypothetical
// purchase without persisting anything. Backs the commission report view.
func (s *Server) PreviewCommissionChain(c *gin.Context) {
	var req previewChainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	chain, err := s.commissionSvc.CalculateChain(c.Request.Context(), commissiondomain.CalculateRequest{
		BuyerID:   req.BuyerID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, chain)
}

func (s *Server) ListCommissions(c *gin.Context) {
	resp, err := s.commissionSvc.ListForUser(c.Request.Context(), c.Param("id"), c.Query("status"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp, nil)
}

func (s *Server) CommissionSummary(c *gin.Context) {
	resp, err := s.commissionSvc.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}
