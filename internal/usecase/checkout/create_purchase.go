package checkout

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/inkless-booking/internal/audit"
	"github.com/BruksfildServices01/inkless-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/inkless-booking/internal/domain/pricing"
	domain "github.com/BruksfildServices01/inkless-booking/internal/domain/purchase"
	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
	"github.com/BruksfildServices01/inkless-booking/internal/payment"
)

// IdempotencyStore remembers the purchase created for a client supplied key.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) (purchaseID string, reserved bool, err error)
	Complete(ctx context.Context, key, purchaseID string) error
	Release(ctx context.Context, key string) error
}

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreatePurchaseInput struct {
	TenantSlug string
	PackageID  string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	PaymentMethod string
	CouponCode    string

	IdempotencyKey string
}

type CreatePurchaseResult struct {
	Purchase *models.Purchase
	Quote    pricing.Quote
	Handoff  *payment.Handoff

	// Replayed is set when the purchase was created by an earlier request
	// with the same idempotency key.
	Replayed bool
}

// ======================================================
// USE CASE
// ======================================================

type CreatePurchase struct {
	repo     domain.Repository
	calc     pricing.Calculator
	audit    *audit.Dispatcher
	log      *zap.Logger
	idem     IdempotencyStore
	payments *payment.Registry

	validityDays int
	now          func() time.Time
}

func NewCreatePurchase(
	repo domain.Repository,
	calc pricing.Calculator,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *CreatePurchase {
	if log == nil {
		log = zap.NewNop()
	}
	return &CreatePurchase{
		repo:  repo,
		calc:  calc,
		audit: audit,
		log:   log,
		now:   time.Now,
	}
}

func (uc *CreatePurchase) WithIdempotency(store IdempotencyStore) *CreatePurchase {
	uc.idem = store
	return uc
}

func (uc *CreatePurchase) WithPayments(reg *payment.Registry) *CreatePurchase {
	uc.payments = reg
	return uc
}

// WithValidityDays makes new purchases expire after days. Zero disables
// expiry.
func (uc *CreatePurchase) WithValidityDays(days int) *CreatePurchase {
	uc.validityDays = days
	return uc
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreatePurchase) Execute(
	ctx context.Context,
	in CreatePurchaseInput,
) (_ *CreatePurchaseResult, err error) {

	// --------------------------------------------------
	// Tenant and input
	// --------------------------------------------------
	tenant, err := uc.repo.GetTenantBySlug(ctx, in.TenantSlug)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, httperr.ErrNotFound("tenant_not_found")
	}

	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerEmail = strings.ToLower(strings.TrimSpace(in.CustomerEmail))
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	if in.CustomerName == "" || in.CustomerEmail == "" || in.CustomerPhone == "" {
		return nil, httperr.ErrBusiness("invalid_customer")
	}
	if !domain.ValidPaymentMethod(in.PaymentMethod) {
		return nil, httperr.ErrBusiness("invalid_payment_method")
	}

	// --------------------------------------------------
	// Idempotency
	// --------------------------------------------------
	idemKey := ""
	if uc.idem != nil && strings.TrimSpace(in.IdempotencyKey) != "" {
		idemKey = tenant.ID + ":" + strings.TrimSpace(in.IdempotencyKey)

		var (
			existingID string
			reserved   bool
		)
		existingID, reserved, err = uc.idem.Reserve(ctx, idemKey)
		if err != nil {
			return nil, err
		}
		if !reserved {
			return uc.replay(ctx, tenant.ID, existingID)
		}

		defer func() {
			if err != nil {
				if rerr := uc.idem.Release(context.WithoutCancel(ctx), idemKey); rerr != nil {
					uc.log.Warn("idempotency release failed", zap.Error(rerr))
				}
			}
		}()
	}

	// --------------------------------------------------
	// Package and coupon
	// --------------------------------------------------
	pkg, err := uc.repo.GetActivePackage(ctx, tenant.ID, in.PackageID)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, httperr.ErrNotFound("package_not_found")
	}

	now := uc.now()

	var coupon *models.Coupon
	if strings.TrimSpace(in.CouponCode) != "" {
		coupon, err = pricing.ResolveCoupon(ctx, uc.repo, tenant.ID, in.CouponCode, now)
		if err != nil {
			return nil, err
		}
	}

	quote := uc.calc.Quote(pkg.Price, coupon)

	p := &models.Purchase{
		TenantID:          tenant.ID,
		PackageID:         pkg.ID,
		CustomerName:      in.CustomerName,
		CustomerEmail:     in.CustomerEmail,
		CustomerPhone:     in.CustomerPhone,
		AmountPaid:        quote.FinalPrice,
		SessionsTotal:     pkg.SessionsIncluded,
		SessionsRemaining: pkg.SessionsIncluded,
		PaymentMethod:     in.PaymentMethod,
		PaymentStatus:     string(domain.PaymentCompleted),
		DiscountAmount:    quote.DiscountAmount,
		Status:            string(domain.StatusActive),
	}
	if coupon != nil {
		code := coupon.Code
		p.CouponCode = &code
		p.AffiliateID = coupon.AffiliateID
		p.CommissionAmount = pricing.Commission(quote.FinalPrice, coupon)
	}
	if uc.validityDays > 0 {
		exp := now.AddDate(0, 0, uc.validityDays)
		p.ExpiresAt = &exp
	}

	// --------------------------------------------------
	// Coupon usage + purchase + placeholder, atomically
	// --------------------------------------------------
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if coupon != nil {
			if err := tx.IncrementCouponUsage(ctx, coupon.ID); err != nil {
				return err
			}
		}

		if err := tx.CreatePurchase(ctx, p); err != nil {
			return err
		}

		return tx.CreateAppointment(ctx, &models.Appointment{
			TenantID:   tenant.ID,
			PurchaseID: p.ID,
			Duration:   int(appointment.SessionLength / time.Minute),
			Status:     string(appointment.InitialStatus()),
		})
	})
	if err != nil {
		return nil, err
	}

	result := &CreatePurchaseResult{Purchase: p, Quote: quote}

	// --------------------------------------------------
	// Payment handoff (best effort)
	// --------------------------------------------------
	result.Handoff = uc.handoff(ctx, tenant, pkg, p)

	if idemKey != "" {
		if err := uc.idem.Complete(ctx, idemKey, p.ID); err != nil {
			uc.log.Warn("idempotency complete failed", zap.String("purchase_id", p.ID), zap.Error(err))
		}
	}

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		TenantID: tenant.ID,
		Action:   "purchase_created",
		Entity:   "purchase",
		EntityID: &p.ID,
		Metadata: map[string]any{
			"package_id":      pkg.ID,
			"amount_paid":     p.AmountPaid,
			"discount_amount": p.DiscountAmount,
			"coupon_code":     p.CouponCode,
			"payment_method":  p.PaymentMethod,
		},
	})

	return result, nil
}

func (uc *CreatePurchase) replay(
	ctx context.Context,
	tenantID string,
	purchaseID string,
) (*CreatePurchaseResult, error) {

	p, err := uc.repo.GetPurchase(ctx, tenantID, purchaseID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, httperr.ErrNotFound("purchase_not_found")
	}

	return &CreatePurchaseResult{
		Purchase: p,
		Quote: pricing.Quote{
			BasePrice:      p.AmountPaid + p.DiscountAmount,
			DiscountAmount: p.DiscountAmount,
			FinalPrice:     p.AmountPaid,
		},
		Replayed: true,
	}, nil
}

func (uc *CreatePurchase) handoff(
	ctx context.Context,
	tenant *models.Tenant,
	pkg *models.ServicePackage,
	p *models.Purchase,
) *payment.Handoff {

	gw, ok := uc.payments.For(p.PaymentMethod)
	if !ok || p.AmountPaid <= 0 {
		return nil
	}

	h, err := gw.Initiate(ctx, payment.Request{
		PurchaseID:    p.ID,
		Description:   pkg.Name,
		Amount:        p.AmountPaid,
		Currency:      tenant.Currency,
		CustomerName:  p.CustomerName,
		CustomerEmail: p.CustomerEmail,
		CustomerPhone: p.CustomerPhone,
	})
	if err != nil {
		uc.log.Warn("payment handoff failed",
			zap.String("purchase_id", p.ID),
			zap.String("method", p.PaymentMethod),
			zap.Error(err),
		)
		return nil
	}

	p.TransactionID = h.Reference
	if err := uc.repo.UpdatePurchase(ctx, p); err != nil {
		uc.log.Warn("storing transaction id failed", zap.String("purchase_id", p.ID), zap.Error(err))
	}

	return h
}
