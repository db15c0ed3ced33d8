package repository

import (
	"errors"
	"time"

	emaildomain "internmail-backend/internal/email/domain"
	internshipdomain "internmail-backend/internal/internship/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormInternshipRepository implements InternshipRepository using GORM
type gormInternshipRepository struct {
	db *gorm.DB
}

// NewGormInternshipRepository creates a new GORM-based InternshipRepository
func NewGormInternshipRepository(db *gorm.DB) InternshipRepository {
	return &gormInternshipRepository{db: db}
}

func (r *gormInternshipRepository) GetAll(userID string) ([]*internshipdomain.InternshipRecord, error) {
	var records []*internshipdomain.InternshipRecord
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, &emaildomain.StorageError{Op: "list internships", Err: err}
	}
	return records, nil
}

func (r *gormInternshipRepository) FindByID(userID, id string) (*internshipdomain.InternshipRecord, error) {
	var record internshipdomain.InternshipRecord
	err := r.db.Where("user_id = ? AND id = ?", userID, id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, &emaildomain.StorageError{Op: "find internship", Err: err}
	}
	return &record, nil
}

func (r *gormInternshipRepository) FindByEmailID(userID, emailID string) (*internshipdomain.InternshipRecord, error) {
	var record internshipdomain.InternshipRecord
	err := r.db.Where("user_id = ? AND email_id = ?", userID, emailID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, &emaildomain.StorageError{Op: "find internship by email", Err: err}
	}
	return &record, nil
}

func (r *gormInternshipRepository) Create(record *internshipdomain.InternshipRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()
	if err := r.db.Create(record).Error; err != nil {
		return &emaildomain.StorageError{Op: "create internship", Err: err}
	}
	return nil
}

func (r *gormInternshipRepository) Update(record *internshipdomain.InternshipRecord) error {
	record.UpdatedAt = time.Now()
	if err := r.db.Save(record).Error; err != nil {
		return &emaildomain.StorageError{Op: "update internship", Err: err}
	}
	return nil
}

func (r *gormInternshipRepository) Delete(userID, id string) error {
	err := r.db.Where("user_id = ? AND id = ?", userID, id).
		Delete(&internshipdomain.InternshipRecord{}).Error
	if err != nil {
		return &emaildomain.StorageError{Op: "delete internship", Err: err}
	}
	return nil
}

func (r *gormInternshipRepository) ClearAll(userID string) error {
	err := r.db.Where("user_id = ?", userID).
		Delete(&internshipdomain.InternshipRecord{}).Error
	if err != nil {
		return &emaildomain.StorageError{Op: "clear internships", Err: err}
	}
	return nil
}
