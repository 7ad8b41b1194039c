package tracker

import "time"

// Status is the stage of a tracked application.
type Status string

const (
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"
	StatusWithdrawn Status = "Withdrawn"
)

// Statuses lists every valid status in pipeline order.
var Statuses = []Status{StatusApplied, StatusInterview, StatusOffer, StatusRejected, StatusWithdrawn}

// DateLayout is the calendar date format of Entry.Date.
const DateLayout = "2006-01-02"

// Entry is one job application recorded for a client.
type Entry struct {
	ID        string
	ClientID  string
	Date      string `validate:"required,datetime=2006-01-02"`
	URL       string `validate:"omitempty,url,max=2048"`
	Platform  string `validate:"max=100"`
	Company   string `validate:"max=200"`
	Role      string `validate:"max=200"`
	Status    Status `validate:"required,oneof=Applied Interview Offer Rejected Withdrawn"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
