package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/inkless-booking/internal/domain/purchase"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

// MaintenanceGormRepository holds the bulk write of the expiry sweep.
type MaintenanceGormRepository struct {
	db *gorm.DB
}

func NewMaintenanceGormRepository(db *gorm.DB) *MaintenanceGormRepository {
	return &MaintenanceGormRepository{db: db}
}

func (r *MaintenanceGormRepository) ExpirePurchases(
	ctx context.Context,
	now time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Purchase{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?",
			string(purchase.StatusActive), now).
		Updates(map[string]any{
			"status":     string(purchase.StatusExpired),
			"updated_at": now,
		})

	return res.RowsAffected, res.Error
}
