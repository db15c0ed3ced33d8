package repository

import (
	internshipdomain "internmail-backend/internal/internship/domain"
)

// InternshipRepository owns the internship_records collection
type InternshipRepository interface {
	// GetAll returns every record for the user, newest first
	GetAll(userID string) ([]*internshipdomain.InternshipRecord, error)
	// FindByID returns nil (no error) when the id is unknown
	FindByID(userID, id string) (*internshipdomain.InternshipRecord, error)
	// FindByEmailID returns the first record linked to emailID, or nil
	FindByEmailID(userID, emailID string) (*internshipdomain.InternshipRecord, error)
	// Create inserts the record, assigning id and timestamps
	Create(record *internshipdomain.InternshipRecord) error
	// Update saves changes to an existing record
	Update(record *internshipdomain.InternshipRecord) error
	// Delete removes one record by id
	Delete(userID, id string) error
	// ClearAll removes every record for the user. Irreversible.
	ClearAll(userID string) error
}
