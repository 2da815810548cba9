package purchase

import (
	"context"
	"time"

	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

// ListFilter narrows the owner purchase listing. Zero values are ignored.
type ListFilter struct {
	Status        string
	CustomerEmail string
	From          *time.Time
	To            *time.Time
}

// Repository is the persistence port of the purchase ledger.
// Getters return (nil, nil) when no row matches.
type Repository interface {
	// -------- Catalogue --------
	GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	GetTenantByID(ctx context.Context, id string) (*models.Tenant, error)
	GetActivePackage(ctx context.Context, tenantID, packageID string) (*models.ServicePackage, error)

	// -------- Coupons --------
	GetActiveCoupon(ctx context.Context, tenantID, code string) (*models.Coupon, error)

	// IncrementCouponUsage adds one use to the coupon unless its cap has
	// been reached, in which case coupon_usage_limit_reached is returned.
	IncrementCouponUsage(ctx context.Context, couponID string) error

	// -------- Purchases --------
	CreatePurchase(ctx context.Context, p *models.Purchase) error
	GetPurchase(ctx context.Context, tenantID, purchaseID string) (*models.Purchase, error)
	UpdatePurchase(ctx context.Context, p *models.Purchase) error
	ListPurchasesByCustomer(ctx context.Context, tenantID, email string) ([]models.Purchase, error)
	ListPurchases(ctx context.Context, tenantID string, f ListFilter) ([]models.Purchase, error)

	// -------- Appointments --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	// Transaction runs fn against a repository bound to one database
	// transaction. Returning an error rolls everything back.
	Transaction(ctx context.Context, fn func(tx Repository) error) error
}
