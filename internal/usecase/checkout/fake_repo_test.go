package checkout

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/inkless-booking/internal/domain/purchase"
	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

// fakeRepo is an in-memory ledger. Transactions are serialised and roll
// back every write made by fn when it fails.
type fakeRepo struct {
	txMu sync.Mutex
	mu   sync.Mutex

	tenants      []models.Tenant
	packages     []models.ServicePackage
	coupons      []models.Coupon
	purchases    []models.Purchase
	appointments []models.Appointment

	failCreatePurchase bool
	updates            int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		tenants: []models.Tenant{{ID: "tenant-1", Slug: "inklessismore", Currency: "KSh"}},
		packages: []models.ServicePackage{
			{ID: "pkg-small", TenantID: "tenant-1", Name: "Small Tattoo Package", Price: 1000000, SessionsIncluded: 3, IsActive: true},
			{ID: "pkg-cheap", TenantID: "tenant-1", Name: "Touch-up", Price: 300, SessionsIncluded: 1, IsActive: true},
			{ID: "pkg-retired", TenantID: "tenant-1", Name: "Old", Price: 500000, SessionsIncluded: 1, IsActive: false},
		},
	}
}

func (r *fakeRepo) addCoupon(c models.Coupon) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.TenantID == "" {
		c.TenantID = "tenant-1"
	}
	c.IsActive = true
	r.coupons = append(r.coupons, c)
}

func (r *fakeRepo) coupon(code string) models.Coupon {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.coupons {
		if c.Code == code {
			return c
		}
	}
	return models.Coupon{}
}

func (r *fakeRepo) GetTenantBySlug(_ context.Context, slug string) (*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tenants {
		if t.Slug == slug {
			t := t
			return &t, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) GetTenantByID(_ context.Context, id string) (*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tenants {
		if t.ID == id {
			t := t
			return &t, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) GetActivePackage(_ context.Context, tenantID, id string) (*models.ServicePackage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.packages {
		if p.ID == id && p.TenantID == tenantID && p.IsActive {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) GetActiveCoupon(_ context.Context, tenantID, code string) (*models.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.coupons {
		if c.Code == code && c.TenantID == tenantID && c.IsActive {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) IncrementCouponUsage(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.coupons {
		c := &r.coupons[i]
		if c.ID != id {
			continue
		}
		if c.MaxUses != nil && c.UsesCount >= *c.MaxUses {
			return httperr.ErrBusiness("coupon_usage_limit_reached")
		}
		c.UsesCount++
		return nil
	}
	return httperr.ErrBusiness("coupon_usage_limit_reached")
}

func (r *fakeRepo) CreatePurchase(_ context.Context, p *models.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreatePurchase {
		return errors.New("insert failed")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.purchases = append(r.purchases, *p)
	return nil
}

func (r *fakeRepo) GetPurchase(_ context.Context, tenantID, id string) (*models.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.purchases {
		if p.ID == id && p.TenantID == tenantID {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) UpdatePurchase(_ context.Context, p *models.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	for i := range r.purchases {
		if r.purchases[i].ID == p.ID {
			r.purchases[i] = *p
			return nil
		}
	}
	return errors.New("purchase missing")
}

func (r *fakeRepo) ListPurchasesByCustomer(_ context.Context, tenantID, email string) ([]models.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Purchase
	for _, p := range r.purchases {
		if p.TenantID == tenantID && p.CustomerEmail == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListPurchases(_ context.Context, tenantID string, f domain.ListFilter) ([]models.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Purchase
	for _, p := range r.purchases {
		if p.TenantID == tenantID && (f.Status == "" || p.Status == f.Status) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ap.ID == "" {
		ap.ID = uuid.NewString()
	}
	r.appointments = append(r.appointments, *ap)
	return nil
}

func (r *fakeRepo) Transaction(ctx context.Context, fn func(tx domain.Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.Lock()
	coupons := append([]models.Coupon(nil), r.coupons...)
	purchases := append([]models.Purchase(nil), r.purchases...)
	appointments := append([]models.Appointment(nil), r.appointments...)
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.coupons, r.purchases, r.appointments = coupons, purchases, appointments
		r.mu.Unlock()
		return err
	}
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// memoryIdempotency mirrors the Redis store semantics.
type memoryIdempotency struct {
	mu   sync.Mutex
	keys map[string]string
}

func newMemoryIdempotency() *memoryIdempotency {
	return &memoryIdempotency{keys: map[string]string{}}
}

func (m *memoryIdempotency) Reserve(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.keys[key]
	if !ok {
		m.keys[key] = "pending"
		return "", true, nil
	}
	if v == "pending" {
		return "", false, httperr.ErrConflict("request_in_progress")
	}
	return v, false, nil
}

func (m *memoryIdempotency) Complete(_ context.Context, key, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[key] = id
	return nil
}

func (m *memoryIdempotency) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, key)
	return nil
}
