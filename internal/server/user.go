package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	userdomain "github.com/hubln/hubln/internal/user/domain"
)

type registerUserRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	ReferredBy *string `json:"referred_by,omitempty"`
}

func (s *Server) RegisterUser(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.userSvc.Register(c.Request.Context(), userdomain.RegisterRequest{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(req.Email),
		ReferredBy: req.ReferredBy,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

func (s *Server) GetUser(c *gin.Context) {
	resp, err := s.userSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

func (s *Server) ApproveUser(c *gin.Context) {
	resp, err := s.userSvc.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

func (s *Server) ListUsers(c *gin.Context) {
	var query struct {
		ReferredBy string `form:"referred_by"`
		Approved   string `form:"approved"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	approved, err := parseOptionalBool(query.Approved)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.userSvc.List(c.Request.Context(), userdomain.ListRequest{
		ReferredBy: strings.TrimSpace(query.ReferredBy),
		Approved:   approved,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp.Users, &resp.PageInfo)
}
