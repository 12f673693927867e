package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	commissiondomain "github.com/hubln/hubln/internal/commission/domain"
	paymentdomain "github.com/hubln/hubln/internal/payment/domain"
	pricingdomain "github.com/hubln/hubln/internal/pricing/domain"
	productdomain "github.com/hubln/hubln/internal/product/domain"
	submissiondomain "github.com/hubln/hubln/internal/submission/domain"
	subscriptiondomain "github.com/hubln/hubln/internal/subscription/domain"
	userdomain "github.com/hubln/hubln/internal/user/domain"
	"github.com/hubln/hubln/pkg/db/pagination"
)

func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func respondList(c *gin.Context, data any, pageInfo *pagination.PageInfo) {
	if pageInfo == nil {
		c.JSON(http.StatusOK, gin.H{"data": data})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": data, "page_info": pageInfo})
}

func AbortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error()})
}

func invalidRequestError() error {
	return errors.New("invalid_request")
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, userdomain.ErrNotFound),
		errors.Is(err, productdomain.ErrNotFound),
		errors.Is(err, pricingdomain.ErrProductNotFound),
		errors.Is(err, commissiondomain.ErrProductNotFound),
		errors.Is(err, commissiondomain.ErrBuyerNotFound),
		errors.Is(err, submissiondomain.ErrNotFound),
		errors.Is(err, submissiondomain.ErrUserNotFound),
		errors.Is(err, submissiondomain.ErrProductNotFound),
		errors.Is(err, subscriptiondomain.ErrNotFound),
		errors.Is(err, paymentdomain.ErrRecordNotFound),
		errors.Is(err, paymentdomain.ErrProviderNotFound):
		return http.StatusNotFound

	case errors.Is(err, paymentdomain.ErrInvalidSignature):
		return http.StatusUnauthorized

	case errors.Is(err, userdomain.ErrEmailTaken),
		errors.Is(err, subscriptiondomain.ErrAlreadyOnTrial):
		return http.StatusConflict

	case errors.Is(err, paymentdomain.ErrInvalidPayload),
		errors.Is(err, paymentdomain.ErrInvalidEvent),
		errors.Is(err, paymentdomain.ErrInvalidProvider),
		errors.Is(err, userdomain.ErrInvalidName),
		errors.Is(err, userdomain.ErrInvalidEmail),
		errors.Is(err, userdomain.ErrInvalidReferrer),
		errors.Is(err, userdomain.ErrInvalidID),
		errors.Is(err, productdomain.ErrInvalidName),
		errors.Is(err, productdomain.ErrInvalidPrice),
		errors.Is(err, productdomain.ErrInvalidID),
		errors.Is(err, pricingdomain.ErrInvalidID),
		errors.Is(err, pricingdomain.ErrInvalidPrice),
		errors.Is(err, commissiondomain.ErrInvalidID),
		errors.Is(err, commissiondomain.ErrInvalidQuantity),
		errors.Is(err, commissiondomain.ErrInvalidPrice),
		errors.Is(err, submissiondomain.ErrInvalidID),
		errors.Is(err, submissiondomain.ErrInvalidQuantity),
		errors.Is(err, subscriptiondomain.ErrInvalidID),
		errors.Is(err, subscriptiondomain.ErrInvalidBilling):
		return http.StatusBadRequest

	default:
		if err != nil && err.Error() == "invalid_request" {
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	}
}
