package domain

import "time"

// Status represents where an application stands. Progression is
// caller-controlled; no transition order is enforced.
type Status string

const (
	StatusReceived     Status = "Received"
	StatusInterviewing Status = "Interviewing"
	StatusRejected     Status = "Rejected"
	StatusOffer        Status = "Offer"
	StatusApplied      Status = "Applied"
	StatusAnnouncement Status = "Announcement"
)

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusReceived, StatusInterviewing, StatusRejected, StatusOffer, StatusApplied, StatusAnnouncement:
		return true
	}
	return false
}

// InternshipRecord is one identified application event. EmailID is a weak
// reference to the originating snapshot; manual entries leave it empty, and
// several records may point at the same email.
type InternshipRecord struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"-" gorm:"index;not null"`
	EmailID   string    `json:"emailId,omitempty" gorm:"index"`
	Company   string    `json:"company"`
	Position  string    `json:"position"`
	Status    Status    `json:"status"`
	Date      string    `json:"date"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (InternshipRecord) TableName() string {
	return "internship_records"
}
