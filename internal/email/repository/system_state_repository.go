package repository

import (
	"errors"
	"time"

	emaildomain "internmail-backend/internal/email/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// systemStateRepository implements SystemStateRepository on gorm
type systemStateRepository struct {
	db *gorm.DB
}

// NewSystemStateRepository creates a new instance of systemStateRepository
func NewSystemStateRepository(db *gorm.DB) SystemStateRepository {
	return &systemStateRepository{
		db: db,
	}
}

func (r *systemStateRepository) Get(userID string) (*emaildomain.SystemState, error) {
	var state emaildomain.SystemState
	err := r.db.Where("user_id = ?", userID).First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// First run for this user: nil watermark, zero counters
			return &emaildomain.SystemState{UserID: userID}, nil
		}
		return nil, &emaildomain.StorageError{Op: "get system state", Err: err}
	}
	return &state, nil
}

// All writes below are column-scoped so a concurrent sync and classify never
// clobber each other's columns: the watermark update touches only
// last_fetch_time, and the counters increment in the database.

func (r *systemStateRepository) SetLastFetchTime(userID string, t time.Time) error {
	if err := r.ensureRow(userID); err != nil {
		return err
	}

	err := r.db.Model(&emaildomain.SystemState{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"last_fetch_time": t,
			"last_updated":    time.Now(),
		}).Error
	if err != nil {
		return &emaildomain.StorageError{Op: "set last fetch time", Err: err}
	}
	return nil
}

func (r *systemStateRepository) IncrementProcessed(userID string) error {
	return r.increment(userID, "total_emails_processed")
}

func (r *systemStateRepository) IncrementInternshipsFound(userID string) error {
	return r.increment(userID, "total_internships_found")
}

func (r *systemStateRepository) increment(userID, column string) error {
	if err := r.ensureRow(userID); err != nil {
		return err
	}

	err := r.db.Model(&emaildomain.SystemState{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			column:         gorm.Expr(column+" + ?", 1),
			"last_updated": time.Now(),
		}).Error
	if err != nil {
		return &emaildomain.StorageError{Op: "update system state", Err: err}
	}
	return nil
}

// ensureRow inserts the per-user singleton if it does not exist yet
func (r *systemStateRepository) ensureRow(userID string) error {
	err := r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&emaildomain.SystemState{UserID: userID, LastUpdated: time.Now()}).Error
	if err != nil {
		return &emaildomain.StorageError{Op: "create system state", Err: err}
	}
	return nil
}
