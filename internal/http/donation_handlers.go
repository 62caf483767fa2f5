package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"crowdspark-backend-go/internal/services"
	"crowdspark-backend-go/internal/stats"
)

// ListDonations returns every donation with campaign and donor references
// joined in. Optional filter parameters: search (campaign/donor/payment id),
// campaign, period (7d/30d/90d/week/month/year), from/to.
func (s *Server) ListDonations(w http.ResponseWriter, r *http.Request) {
	donations, err := services.LoadDonations(r.Context(), s.DB, "")
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	filtered := stats.FilterDonations(donations, stats.DonationFilter{
		Search:     r.URL.Query().Get("search"),
		CampaignID: r.URL.Query().Get("campaign"),
		Period:     r.URL.Query().Get("period"),
		Range:      queryRange(r),
	}, time.Now().UTC())
	WriteJSON(w, http.StatusOK, donationDTOs(filtered))
}

func (s *Server) ListDonationsByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID != CurrentUserID(r) && !CurrentIsAdmin(r) {
		WriteError(w, http.StatusForbidden, "Not allowed")
		return
	}
	donations, err := services.LoadDonations(r.Context(), s.DB, userID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	filtered := stats.FilterDonations(donations, stats.DonationFilter{
		Search: r.URL.Query().Get("search"),
		Period: r.URL.Query().Get("period"),
		Range:  queryRange(r),
	}, time.Now().UTC())
	WriteJSON(w, http.StatusOK, donationDTOs(filtered))
}

type CreateDonationRequest struct {
	Amount     float64 `json:"amount"`
	CampaignID string  `json:"campaignId"`
	Message    string  `json:"message"`
	PaymentID  string  `json:"paymentId"`
}

// CreateDonation records a confirmed donation and pushes the event to the
// live dashboard.
func (s *Server) CreateDonation(w http.ResponseWriter, r *http.Request) {
	var req CreateDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	donation, err := services.CreateDonation(r.Context(), s.DB, services.NewDonation{
		Amount:     req.Amount,
		CampaignID: req.CampaignID,
		UserID:     CurrentUserID(r),
		Message:    req.Message,
		PaymentID:  req.PaymentID,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if s.Live != nil {
		s.Live.BroadcastDonation(services.DonationEvent{
			DonationID:   donation.ID,
			CampaignID:   donation.CampaignID,
			CampaignName: donation.CampaignName,
			Amount:       donation.Amount,
			CreatedAt:    donation.CreatedAt,
		})
	}
	WriteJSON(w, http.StatusCreated, donationDTO(donation))
}
