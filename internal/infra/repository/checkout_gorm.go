package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/inkless-booking/internal/domain/purchase"
	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

type CheckoutGormRepository struct {
	db *gorm.DB
}

func NewCheckoutGormRepository(db *gorm.DB) *CheckoutGormRepository {
	return &CheckoutGormRepository{db: db}
}

// --------------------------------------------------
// Tenant / package
// --------------------------------------------------

func (r *CheckoutGormRepository) GetTenantBySlug(
	ctx context.Context,
	slug string,
) (*models.Tenant, error) {
	return firstOrNil[models.Tenant](
		r.db.WithContext(ctx).Where("slug = ?", strings.ToLower(slug)),
	)
}

func (r *CheckoutGormRepository) GetTenantByID(
	ctx context.Context,
	id string,
) (*models.Tenant, error) {
	return firstOrNil[models.Tenant](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *CheckoutGormRepository) GetActivePackage(
	ctx context.Context,
	tenantID string,
	packageID string,
) (*models.ServicePackage, error) {
	return firstOrNil[models.ServicePackage](
		r.db.WithContext(ctx).
			Where("id = ? AND tenant_id = ? AND is_active = ?", packageID, tenantID, true),
	)
}

// --------------------------------------------------
// Coupon
// --------------------------------------------------

func (r *CheckoutGormRepository) GetActiveCoupon(
	ctx context.Context,
	tenantID string,
	code string,
) (*models.Coupon, error) {
	return firstOrNil[models.Coupon](
		r.db.WithContext(ctx).
			Where("tenant_id = ? AND code = ? AND is_active = ?", tenantID, code, true),
	)
}

func (r *CheckoutGormRepository) IncrementCouponUsage(
	ctx context.Context,
	couponID string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("id = ? AND (max_uses IS NULL OR uses_count < max_uses)", couponID).
		UpdateColumn("uses_count", gorm.Expr("uses_count + ?", 1))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("coupon_usage_limit_reached")
	}
	return nil
}

// --------------------------------------------------
// Purchase
// --------------------------------------------------

func (r *CheckoutGormRepository) CreatePurchase(
	ctx context.Context,
	p *models.Purchase,
) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *CheckoutGormRepository) GetPurchase(
	ctx context.Context,
	tenantID string,
	purchaseID string,
) (*models.Purchase, error) {
	return firstOrNil[models.Purchase](
		r.db.WithContext(ctx).
			Where("id = ? AND tenant_id = ?", purchaseID, tenantID),
	)
}

func (r *CheckoutGormRepository) UpdatePurchase(
	ctx context.Context,
	p *models.Purchase,
) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *CheckoutGormRepository) ListPurchasesByCustomer(
	ctx context.Context,
	tenantID string,
	email string,
) ([]models.Purchase, error) {

	var out []models.Purchase
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND LOWER(customer_email) = ?", tenantID, strings.ToLower(strings.TrimSpace(email))).
		Order("created_at DESC").
		Find(&out).Error

	return out, err
}

func (r *CheckoutGormRepository) ListPurchases(
	ctx context.Context,
	tenantID string,
	f domain.ListFilter,
) ([]models.Purchase, error) {

	q := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.CustomerEmail != "" {
		q = q.Where("LOWER(customer_email) = ?", strings.ToLower(f.CustomerEmail))
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var out []models.Purchase
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

// --------------------------------------------------
// Appointment placeholder
// --------------------------------------------------

func (r *CheckoutGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *CheckoutGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&CheckoutGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Repository = (*CheckoutGormRepository)(nil)
