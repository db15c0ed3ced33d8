package usecase

import (
	internshipdomain "internmail-backend/internal/internship/domain"
)

// CreateRequest is a manual tracker entry. No email link is required; the
// tracker exists independently of the AI pipeline.
type CreateRequest struct {
	EmailID  string `json:"emailId"`
	Company  string `json:"company" binding:"required"`
	Position string `json:"position" binding:"required"`
	Status   string `json:"status"`
	Date     string `json:"date"`
	Notes    string `json:"notes"`
}

// UpdateRequest patches an existing record; nil fields are left untouched
type UpdateRequest struct {
	Company  *string `json:"company"`
	Position *string `json:"position"`
	Status   *string `json:"status"`
	Date     *string `json:"date"`
	Notes    *string `json:"notes"`
}

// Extraction carries the structured fields pulled out of an
// internship-classified email
type Extraction struct {
	Company  string `json:"company"`
	Position string `json:"position"`
	Status   string `json:"status"`
	Date     string `json:"date"`
	Notes    string `json:"notes"`
}

// InternshipUsecase is the tracker contract
type InternshipUsecase interface {
	List(userID string) ([]*internshipdomain.InternshipRecord, error)
	Create(userID string, req CreateRequest) (*internshipdomain.InternshipRecord, error)
	Update(userID, id string, req UpdateRequest) (*internshipdomain.InternshipRecord, error)
	Delete(userID, id string) error
	ClearAll(userID string) error
	// RecordExtraction persists an AI extraction linked to its source email.
	// Depending on configuration it either always creates a new record or
	// upserts the record already linked to the email.
	RecordExtraction(userID, emailID string, ext Extraction) (*internshipdomain.InternshipRecord, error)
}
