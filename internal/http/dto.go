package httpapi

import (
	"encoding/json"
	"time"

	"crowdspark-backend-go/internal/models"
	"crowdspark-backend-go/internal/stats"
)

type UserDTO struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	IsActive      bool      `json:"isActive"`
	IsAdmin       bool      `json:"isAdmin"`
	CreatedAt     time.Time `json:"createdAt"`
	DonationCount int       `json:"donationCount"`
	TotalDonated  float64   `json:"totalDonated"`
}

type CampaignDTO struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Organizer       string    `json:"organizer"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	TargetAmount    float64   `json:"targetAmount"`
	CollectedAmount float64   `json:"collectedAmount"`
	StartDate       *string   `json:"startDate"`
	EndDate         *string   `json:"endDate"`
	IsActive        bool      `json:"isActive"`
	Images          []string  `json:"images"`
	Progress        float64   `json:"progress"`
	CreatedAt       time.Time `json:"createdAt"`
}

type DonationRefDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DonationDTO struct {
	ID        string          `json:"id"`
	Amount    float64         `json:"amount"`
	Campaign  *DonationRefDTO `json:"campaign"`
	User      *DonationRefDTO `json:"user"`
	Message   string          `json:"message,omitempty"`
	PaymentID string          `json:"paymentId"`
	CreatedAt time.Time       `json:"createdAt"`
}

func userDTO(u stats.User) UserDTO {
	return UserDTO{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		IsActive:      u.IsActive,
		IsAdmin:       u.IsAdmin,
		CreatedAt:     u.CreatedAt,
		DonationCount: u.DonationCount,
		TotalDonated:  u.TotalDonated,
	}
}

func campaignDTO(c stats.Campaign, images []string) CampaignDTO {
	return CampaignDTO{
		ID:              c.ID,
		Name:            c.Name,
		Organizer:       c.Organizer,
		Description:     c.Description,
		Category:        c.Category,
		TargetAmount:    c.TargetAmount,
		CollectedAmount: c.CollectedAmount,
		StartDate:       formatDate(c.StartDate),
		EndDate:         formatDate(c.EndDate),
		IsActive:        c.IsActive,
		Images:          images,
		Progress:        stats.Progress(c.CollectedAmount, c.TargetAmount),
		CreatedAt:       c.CreatedAt,
	}
}

func campaignModelDTO(c models.Campaign) CampaignDTO {
	return campaignDTO(stats.Campaign{
		ID:              c.ID,
		Name:            c.Name,
		Organizer:       c.Organizer,
		Description:     c.Description,
		Category:        c.Category,
		TargetAmount:    c.TargetAmount,
		CollectedAmount: c.CollectedAmount,
		StartDate:       c.StartDate,
		EndDate:         c.EndDate,
		IsActive:        c.IsActive,
		CreatedAt:       c.CreatedAt,
	}, decodeImages(c.Images))
}

func donationDTO(d stats.Donation) DonationDTO {
	dto := DonationDTO{
		ID:        d.ID,
		Amount:    d.Amount,
		Message:   d.Message,
		PaymentID: d.PaymentID,
		CreatedAt: d.CreatedAt,
	}
	if d.CampaignID != "" {
		dto.Campaign = &DonationRefDTO{ID: d.CampaignID, Name: d.CampaignName}
	}
	if d.UserID != "" {
		dto.User = &DonationRefDTO{ID: d.UserID, Name: d.UserName}
	}
	return dto
}

func donationDTOs(donations []stats.Donation) []DonationDTO {
	items := make([]DonationDTO, 0, len(donations))
	for _, d := range donations {
		items = append(items, donationDTO(d))
	}
	return items
}

func decodeImages(raw []byte) []string {
	images := []string{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &images)
	}
	return images
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("2006-01-02")
	return &formatted
}

func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &parsed
}
