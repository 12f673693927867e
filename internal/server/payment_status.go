package server

import (
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) CheckPaymentStatus(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	result, err := s.statusSvc.Check(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, result)
}

// StartPaymentPolling kicks off the server-side fallback for sessions that
// cannot receive the broadcast (for example, a payment initiated right before
// a page navigation).
func (s *Server) StartPaymentPolling(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		AbortWithError(c, invalidRequestError())
		return
	}

	task := s.poller.Start(c.Request.Context(), id)
	respondData(c, gin.H{
		"payment_id": id,
		"attempts":   task.Attempts(),
		"paid":       task.Paid(),
	})
}
