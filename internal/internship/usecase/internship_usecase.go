package usecase

import (
	"errors"
	"time"

	internshipdomain "internmail-backend/internal/internship/domain"
	"internmail-backend/internal/internship/repository"
)

// ErrNotFound is returned for update/delete against an unknown record id
var ErrNotFound = errors.New("internship not found")

// internshipUsecase implements InternshipUsecase
type internshipUsecase struct {
	repo          repository.InternshipRepository
	dedupeByEmail bool
}

// NewInternshipUsecase creates a new instance of internshipUsecase.
// dedupeByEmail selects the extraction behavior: upsert-by-emailId when
// true, create-always when false.
func NewInternshipUsecase(repo repository.InternshipRepository, dedupeByEmail bool) InternshipUsecase {
	return &internshipUsecase{
		repo:          repo,
		dedupeByEmail: dedupeByEmail,
	}
}

func (u *internshipUsecase) List(userID string) ([]*internshipdomain.InternshipRecord, error) {
	return u.repo.GetAll(userID)
}

func (u *internshipUsecase) Create(userID string, req CreateRequest) (*internshipdomain.InternshipRecord, error) {
	status := internshipdomain.Status(req.Status)
	if !status.Valid() {
		status = internshipdomain.StatusReceived
	}

	record := &internshipdomain.InternshipRecord{
		UserID:   userID,
		EmailID:  req.EmailID,
		Company:  req.Company,
		Position: req.Position,
		Status:   status,
		Date:     req.Date,
		Notes:    req.Notes,
	}
	if record.Date == "" {
		record.Date = time.Now().Format("2006-01-02")
	}

	if err := u.repo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (u *internshipUsecase) Update(userID, id string, req UpdateRequest) (*internshipdomain.InternshipRecord, error) {
	record, err := u.repo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}

	if req.Company != nil {
		record.Company = *req.Company
	}
	if req.Position != nil {
		record.Position = *req.Position
	}
	if req.Status != nil {
		status := internshipdomain.Status(*req.Status)
		if status.Valid() {
			record.Status = status
		}
	}
	if req.Date != nil {
		record.Date = *req.Date
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}

	if err := u.repo.Update(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (u *internshipUsecase) Delete(userID, id string) error {
	record, err := u.repo.FindByID(userID, id)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrNotFound
	}
	return u.repo.Delete(userID, id)
}

func (u *internshipUsecase) ClearAll(userID string) error {
	return u.repo.ClearAll(userID)
}

func (u *internshipUsecase) RecordExtraction(userID, emailID string, ext Extraction) (*internshipdomain.InternshipRecord, error) {
	status := internshipdomain.Status(ext.Status)
	if !status.Valid() {
		status = internshipdomain.StatusReceived
	}
	date := ext.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	if u.dedupeByEmail && emailID != "" {
		existing, err := u.repo.FindByEmailID(userID, emailID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			existing.Company = ext.Company
			existing.Position = ext.Position
			existing.Status = status
			existing.Date = date
			existing.Notes = ext.Notes
			if err := u.repo.Update(existing); err != nil {
				return nil, err
			}
			return existing, nil
		}
	}

	record := &internshipdomain.InternshipRecord{
		UserID:   userID,
		EmailID:  emailID,
		Company:  ext.Company,
		Position: ext.Position,
		Status:   status,
		Date:     date,
		Notes:    ext.Notes,
	}
	if err := u.repo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}
