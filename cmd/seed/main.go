package main

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/inkless-booking/internal/auth"
	"github.com/BruksfildServices01/inkless-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/inkless-booking/internal/db"
	"github.com/BruksfildServices01/inkless-booking/internal/domain/pricing"
	"github.com/BruksfildServices01/inkless-booking/internal/logger"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, "console", "inkless-seed")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		return seed(tx, cfg, log)
	}); err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}

	log.Info("seeding complete")
}

func seed(tx *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	owner, err := seedOwner(tx, cfg)
	if err != nil {
		return err
	}

	var tenant models.Tenant
	err = tx.Where("slug = ?", cfg.DefaultTenantSlug).First(&tenant).Error
	switch {
	case err == nil:
		log.Info("tenant already exists", zap.String("slug", tenant.Slug))
	case errors.Is(err, gorm.ErrRecordNotFound):
		tenant = models.Tenant{
			Name:           "Inkless Is More",
			Slug:           cfg.DefaultTenantSlug,
			OwnerID:        owner.ID,
			Email:          "info@inklessismore.ke",
			LogoURL:        "/logo.png",
			PrimaryColor:   "#D4AF37",
			AccentColor:    "#000000",
			Currency:       "KSh",
			Timezone:       "Africa/Nairobi",
			BookingEnabled: true,
		}
		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}
		log.Info("created tenant", zap.String("slug", tenant.Slug))
	default:
		return err
	}

	if err := seedPackages(tx, tenant.ID, log); err != nil {
		return err
	}
	if err := seedAvailability(tx, tenant.ID, log); err != nil {
		return err
	}
	return seedCoupons(tx, tenant.ID, log)
}

func seedOwner(tx *gorm.DB, cfg *config.Config) (*models.User, error) {
	var user models.User
	err := tx.Where("email = ?", cfg.SeedOwnerEmail).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(cfg.SeedOwnerPassword)
	if err != nil {
		return nil, err
	}
	user = models.User{
		Name:         "Inkless Owner",
		Email:        cfg.SeedOwnerEmail,
		PasswordHash: hash,
		Role:         auth.RoleOwner,
	}
	return &user, tx.Create(&user).Error
}

func int64Ptr(v int64) *int64 { return &v }

func seedPackages(tx *gorm.DB, tenantID string, log *zap.Logger) error {
	var count int64
	if err := tx.Model(&models.ServicePackage{}).Where("tenant_id = ?", tenantID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("packages already exist")
		return nil
	}

	// prices in cents
	packages := []models.ServicePackage{
		{
			Name:             "Single Session",
			Description:      "Perfect for trying out our service or for very small tattoos",
			Price:            450000,
			SessionsIncluded: 1,
			DisplayOrder:     1,
		},
		{
			Name:             "Small Tattoo Package",
			Description:      "3 sessions - Ideal for small tattoos (up to 3x3 inches)",
			Price:            1000000,
			OriginalPrice:    int64Ptr(1350000),
			SessionsIncluded: 3,
			IsPopular:        true,
			Badge:            "Most Popular",
			DisplayOrder:     2,
		},
		{
			Name:             "Medium Tattoo Package",
			Description:      "5 sessions - Best for medium-sized tattoos (3x3 to 6x6 inches)",
			Price:            1500000,
			OriginalPrice:    int64Ptr(2250000),
			SessionsIncluded: 5,
			Badge:            "Best Value",
			DisplayOrder:     3,
		},
		{
			Name:             "Laser Scar Removal",
			Description:      "Reduce the appearance of scars with advanced laser technology",
			Price:            1500000,
			OriginalPrice:    int64Ptr(5000000),
			SessionsIncluded: 1,
			Badge:            "Limited Offer",
			DisplayOrder:     4,
		},
	}

	for i := range packages {
		packages[i].TenantID = tenantID
		packages[i].IsActive = true
		if err := tx.Create(&packages[i]).Error; err != nil {
			return err
		}
		log.Info("created package", zap.String("name", packages[i].Name))
	}
	return nil
}

// seedAvailability opens Monday to Friday, 09:00 to 17:00.
func seedAvailability(tx *gorm.DB, tenantID string, log *zap.Logger) error {
	var count int64
	if err := tx.Model(&models.AvailableSlot{}).Where("tenant_id = ?", tenantID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	slots := make([]models.AvailableSlot, 0, 5)
	for day := 1; day <= 5; day++ {
		slots = append(slots, models.AvailableSlot{
			TenantID:  tenantID,
			DayOfWeek: day,
			StartTime: "09:00",
			EndTime:   "17:00",
			IsActive:  true,
		})
	}
	if err := tx.Create(&slots).Error; err != nil {
		return err
	}
	log.Info("created weekday availability")
	return nil
}

func seedCoupons(tx *gorm.DB, tenantID string, log *zap.Logger) error {
	var count int64
	if err := tx.Model(&models.Coupon{}).Where("tenant_id = ?", tenantID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	affiliate := models.Affiliate{
		TenantID:     tenantID,
		Name:         "Demo Affiliate",
		Email:        "partner@inklessismore.ke",
		BusinessName: "Nairobi Ink Studio",
		IsActive:     true,
	}
	if err := tx.Create(&affiliate).Error; err != nil {
		return err
	}

	maxAffiliate, maxWelcome := 100, 200
	coupons := []models.Coupon{
		{
			TenantID:        tenantID,
			AffiliateID:     &affiliate.ID,
			Code:            "AFFILIATE10",
			DiscountType:    pricing.TypePercentage,
			DiscountValue:   10,
			CommissionType:  pricing.TypePercentage,
			CommissionValue: 5,
			MaxUses:         &maxAffiliate,
			IsActive:        true,
		},
		{
			TenantID:        tenantID,
			Code:            "WELCOME500",
			DiscountType:    pricing.TypeFixed,
			DiscountValue:   500,
			CommissionType:  pricing.TypeFixed,
			CommissionValue: 0,
			MaxUses:         &maxWelcome,
			IsActive:        true,
		},
	}
	if err := tx.Create(&coupons).Error; err != nil {
		return err
	}
	log.Info("created demo coupons")
	return nil
}
