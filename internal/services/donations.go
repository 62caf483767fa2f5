package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"crowdspark-backend-go/internal/models"
	"crowdspark-backend-go/internal/stats"
)

const maxDonationMessageLength = 500

// NewDonation is a confirmed payment waiting to be recorded.
type NewDonation struct {
	Amount     float64
	CampaignID string
	UserID     string
	Message    string
	PaymentID  string
}

// CreateDonation validates and records a donation, bumping the campaign's
// collected amount in the same transaction.
func CreateDonation(ctx context.Context, db *sqlx.DB, d NewDonation) (stats.Donation, error) {
	if d.Amount <= 0 {
		return stats.Donation{}, ErrBadRequest("Donation amount must be positive")
	}
	if d.CampaignID == "" {
		return stats.Donation{}, ErrBadRequest("Campaign is required")
	}
	if len(d.Message) > maxDonationMessageLength {
		return stats.Donation{}, ErrBadRequest("Message is too long")
	}

	var campaignName string
	if err := db.GetContext(ctx, &campaignName, `SELECT name FROM campaigns WHERE id = $1`, d.CampaignID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return stats.Donation{}, ErrNotFound("Campaign not found")
		}
		return stats.Donation{}, err
	}

	now := time.Now().UTC()
	var message *string
	if trimmed := strings.TrimSpace(d.Message); trimmed != "" {
		message = &trimmed
	}
	row := models.Donation{
		ID:         uuid.NewString(),
		Amount:     d.Amount,
		CampaignID: &d.CampaignID,
		Message:    message,
		PaymentID:  d.PaymentID,
		CreatedAt:  now,
	}
	if d.UserID != "" {
		row.UserID = &d.UserID
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return stats.Donation{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.NamedExecContext(ctx, `
INSERT INTO donations (id, amount, campaign_id, user_id, message, payment_id, created_at)
VALUES (:id, :amount, :campaign_id, :user_id, :message, :payment_id, :created_at)
`, row); err != nil {
		return stats.Donation{}, err
	}
	if _, err := tx.ExecContext(ctx, `
UPDATE campaigns SET collected_amount = collected_amount + $1, updated_at = $2 WHERE id = $3
`, d.Amount, now, d.CampaignID); err != nil {
		return stats.Donation{}, err
	}
	if err := tx.Commit(); err != nil {
		return stats.Donation{}, err
	}

	recordedMessage := ""
	if message != nil {
		recordedMessage = *message
	}
	return stats.Donation{
		ID:           row.ID,
		Amount:       d.Amount,
		CampaignID:   d.CampaignID,
		CampaignName: campaignName,
		UserID:       d.UserID,
		PaymentID:    d.PaymentID,
		Message:      recordedMessage,
		CreatedAt:    now,
	}, nil
}
