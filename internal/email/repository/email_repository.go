package repository

import (
	"errors"
	"time"

	emaildomain "internmail-backend/internal/email/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// emailRepository implements EmailRepository on gorm
type emailRepository struct {
	db *gorm.DB
}

// NewEmailRepository creates a new instance of emailRepository
func NewEmailRepository(db *gorm.DB) EmailRepository {
	return &emailRepository{
		db: db,
	}
}

func (r *emailRepository) GetAll(userID string) ([]*emaildomain.EmailSnapshot, error) {
	var snapshots []*emaildomain.EmailSnapshot
	if err := r.db.Where("user_id = ?", userID).Find(&snapshots).Error; err != nil {
		return nil, &emaildomain.StorageError{Op: "get all emails", Err: err}
	}
	return snapshots, nil
}

func (r *emailRepository) GetByID(userID, id string) (*emaildomain.EmailSnapshot, error) {
	var snapshot emaildomain.EmailSnapshot
	err := r.db.Where("user_id = ? AND id = ?", userID, id).First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, emaildomain.ErrNotFound
		}
		return nil, &emaildomain.StorageError{Op: "get email", Err: err}
	}
	return &snapshot, nil
}

func (r *emailRepository) CreateIfAbsent(snapshot *emaildomain.EmailSnapshot) (bool, error) {
	snapshot.LastUpdated = time.Now()
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(snapshot)
	if result.Error != nil {
		return false, &emaildomain.StorageError{Op: "create email snapshot", Err: result.Error}
	}
	return result.RowsAffected > 0, nil
}

func (r *emailRepository) SaveAIResults(userID, id string, results emaildomain.AIResult) error {
	var snapshot emaildomain.EmailSnapshot
	err := r.db.Where("user_id = ? AND id = ?", userID, id).First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Unknown id: merging results for a message we never snapshotted
			// is a silent no-op
			return nil
		}
		return &emaildomain.StorageError{Op: "save ai results", Err: err}
	}

	snapshot.AIResults = &results
	snapshot.Processed = true
	snapshot.IsInternship = results.Category == emaildomain.CategoryInternship
	snapshot.LastUpdated = time.Now()

	if err := r.db.Save(&snapshot).Error; err != nil {
		return &emaildomain.StorageError{Op: "save ai results", Err: err}
	}
	return nil
}

func (r *emailRepository) UpdateBodies(userID, id, textBody, htmlBody string) error {
	err := r.db.Model(&emaildomain.EmailSnapshot{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(map[string]interface{}{
			"text_body":    textBody,
			"html_body":    htmlBody,
			"last_updated": time.Now(),
		}).Error
	if err != nil {
		return &emaildomain.StorageError{Op: "update email bodies", Err: err}
	}
	return nil
}

func (r *emailRepository) KnownIDs(userID string) (map[string]struct{}, error) {
	var ids []string
	err := r.db.Model(&emaildomain.EmailSnapshot{}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, &emaildomain.StorageError{Op: "list known ids", Err: err}
	}

	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}
	return known, nil
}
