package services

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"crowdspark-backend-go/internal/stats"
)

// LoadCampaigns fetches every campaign as an in-memory record for the
// aggregator and filter engine, newest first.
func LoadCampaigns(ctx context.Context, db *sqlx.DB) ([]stats.Campaign, error) {
	rows := []struct {
		ID              string     `db:"id"`
		Name            string     `db:"name"`
		Organizer       string     `db:"organizer"`
		Description     string     `db:"description"`
		Category        string     `db:"category"`
		TargetAmount    float64    `db:"target_amount"`
		CollectedAmount float64    `db:"collected_amount"`
		StartDate       *time.Time `db:"start_date"`
		EndDate         *time.Time `db:"end_date"`
		IsActive        bool       `db:"is_active"`
		CreatedAt       time.Time  `db:"created_at"`
	}{}
	if err := db.SelectContext(ctx, &rows, `
SELECT id, name, organizer, description, category, target_amount, collected_amount,
       start_date, end_date, is_active, created_at
FROM campaigns
ORDER BY created_at DESC
`); err != nil {
		return nil, err
	}
	items := make([]stats.Campaign, 0, len(rows))
	for _, row := range rows {
		items = append(items, stats.Campaign{
			ID:              row.ID,
			Name:            row.Name,
			Organizer:       row.Organizer,
			Description:     row.Description,
			Category:        row.Category,
			TargetAmount:    row.TargetAmount,
			CollectedAmount: row.CollectedAmount,
			StartDate:       row.StartDate,
			EndDate:         row.EndDate,
			IsActive:        row.IsActive,
			CreatedAt:       row.CreatedAt,
		})
	}
	return items, nil
}

// LoadDonations fetches donations joined with their campaign and donor names.
// Deleted references come back as empty strings, which downstream code treats
// as "unavailable" rather than an error.
func LoadDonations(ctx context.Context, db *sqlx.DB, userID string) ([]stats.Donation, error) {
	query := `
SELECT d.id, d.amount, d.message, d.payment_id, d.created_at,
       COALESCE(d.campaign_id::text, '') AS campaign_id,
       COALESCE(c.name, '') AS campaign_name,
       COALESCE(d.user_id::text, '') AS user_id,
       COALESCE(u.name, '') AS user_name
FROM donations d
LEFT JOIN campaigns c ON c.id = d.campaign_id
LEFT JOIN users u ON u.id = d.user_id
`
	args := []interface{}{}
	if userID != "" {
		query += `WHERE d.user_id = $1
`
		args = append(args, userID)
	}
	query += `ORDER BY d.created_at DESC`

	rows := []struct {
		ID           string    `db:"id"`
		Amount       float64   `db:"amount"`
		Message      *string   `db:"message"`
		PaymentID    string    `db:"payment_id"`
		CreatedAt    time.Time `db:"created_at"`
		CampaignID   string    `db:"campaign_id"`
		CampaignName string    `db:"campaign_name"`
		UserID       string    `db:"user_id"`
		UserName     string    `db:"user_name"`
	}{}
	if err := db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	items := make([]stats.Donation, 0, len(rows))
	for _, row := range rows {
		message := ""
		if row.Message != nil {
			message = *row.Message
		}
		items = append(items, stats.Donation{
			ID:           row.ID,
			Amount:       row.Amount,
			CampaignID:   row.CampaignID,
			CampaignName: row.CampaignName,
			UserID:       row.UserID,
			UserName:     row.UserName,
			PaymentID:    row.PaymentID,
			Message:      message,
			CreatedAt:    row.CreatedAt,
		})
	}
	return items, nil
}

// LoadUsers fetches users with their donation totals joined in, newest first.
func LoadUsers(ctx context.Context, db *sqlx.DB) ([]stats.User, error) {
	rows := []struct {
		ID            string    `db:"id"`
		Name          string    `db:"name"`
		Email         string    `db:"email"`
		IsActive      bool      `db:"is_active"`
		IsAdmin       bool      `db:"is_admin"`
		CreatedAt     time.Time `db:"created_at"`
		DonationCount int       `db:"donation_count"`
		TotalDonated  float64   `db:"total_donated"`
	}{}
	if err := db.SelectContext(ctx, &rows, `
SELECT u.id, u.name, u.email, u.is_active, u.is_admin, u.created_at,
       COUNT(d.id) AS donation_count,
       COALESCE(SUM(d.amount), 0) AS total_donated
FROM users u
LEFT JOIN donations d ON d.user_id = u.id
GROUP BY u.id
ORDER BY u.created_at DESC
`); err != nil {
		return nil, err
	}
	items := make([]stats.User, 0, len(rows))
	for _, row := range rows {
		items = append(items, stats.User{
			ID:            row.ID,
			Name:          row.Name,
			Email:         row.Email,
			IsActive:      row.IsActive,
			IsAdmin:       row.IsAdmin,
			CreatedAt:     row.CreatedAt,
			DonationCount: row.DonationCount,
			TotalDonated:  row.TotalDonated,
		})
	}
	return items, nil
}

// LoadCampaignsAndDonations fetches both collections concurrently. Either
// query failing fails the pair; the aggregator never sees partial data.
func LoadCampaignsAndDonations(ctx context.Context, db *sqlx.DB) ([]stats.Campaign, []stats.Donation, error) {
	var (
		campaigns []stats.Campaign
		donations []stats.Donation
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		campaigns, err = LoadCampaigns(ctx, db)
		return err
	})
	g.Go(func() error {
		var err error
		donations, err = LoadDonations(ctx, db, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return campaigns, donations, nil
}
