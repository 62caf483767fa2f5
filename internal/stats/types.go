package stats

import "time"

// Campaign is the in-memory record the aggregator and filter engine work on.
// Numeric fields default to zero when the source row is missing data.
type Campaign struct {
	ID              string
	Name            string
	Organizer       string
	Description     string
	Category        string
	TargetAmount    float64
	CollectedAmount float64
	StartDate       *time.Time
	EndDate         *time.Time
	IsActive        bool
	CreatedAt       time.Time
}

// Donation carries the joined campaign/user display fields so that reports can
// be computed without touching storage. CampaignID and UserID are empty when
// the referenced row has been deleted.
type Donation struct {
	ID           string
	Amount       float64
	CampaignID   string
	CampaignName string
	UserID       string
	UserName     string
	PaymentID    string
	Message      string
	CreatedAt    time.Time
}

type User struct {
	ID            string
	Name          string
	Email         string
	IsActive      bool
	IsAdmin       bool
	CreatedAt     time.Time
	DonationCount int
	TotalDonated  float64
}
