package migration

import (
	"errors"

	commissiondomain "github.com/hubln/hubln/internal/commission/domain"
	paymentdomain "github.com/hubln/hubln/internal/payment/domain"
	pricingdomain "github.com/hubln/hubln/internal/pricing/domain"
	productdomain "github.com/hubln/hubln/internal/product/domain"
	submissiondomain "github.com/hubln/hubln/internal/submission/domain"
	subscriptiondomain "github.com/hubln/hubln/internal/subscription/domain"
	userdomain "github.com/hubln/hubln/internal/user/domain"
	"gorm.io/gorm"
)

// Run brings the schema up to date for every persisted model. It is
// applied at startup and by test fixtures against fresh databases.
func Run(db *gorm.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	return db.AutoMigrate(
		&userdomain.User{},
		&productdomain.Product{},
		&pricingdomain.UserProductPrice{},
		&submissiondomain.Submission{},
		&commissiondomain.Earning{},
		&subscriptiondomain.Subscription{},
		&paymentdomain.EventRecord{},
	)
}
