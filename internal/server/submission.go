package server

import (
	"github.com/gin-gonic/gin"
	submissiondomain "github.com/hubln/hubln/internal/submission/domain"
	"github.com/hubln/hubln/pkg/db/pagination"
)

type createSubmissionRequest struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (s *Server) CreateSubmission(c *gin.Context) {
	var req createSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.submissionSvc.Create(c.Request.Context(), submissiondomain.CreateRequest{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

func (s *Server) GetSubmission(c *gin.Context) {
	resp, err := s.submissionSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

func (s *Server) ListSubmissions(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Paid string `form:"paid"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	paid, err := parseOptionalBool(query.Paid)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.submissionSvc.ListByUser(c.Request.Context(), submissiondomain.ListRequest{
		UserID: c.Param("id"),
		Paid:   paid,
		Page:   query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp.Submissions, &resp.PageInfo)
}
