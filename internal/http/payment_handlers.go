package httpapi

import (
	"encoding/json"
	"net/http"
)

type PaymentIntentRequest struct {
	Amount     float64 `json:"amount"`
	CampaignID string  `json:"campaignId"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

func (s *Server) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req PaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.Amount <= 0 {
		WriteError(w, http.StatusBadRequest, "Donation amount must be positive")
		return
	}
	clientSecret, err := s.Payments.CreateIntent(r.Context(), req.Amount, req.CampaignID)
	if err != nil {
		s.Log.Error().Err(err).Msg("payment intent creation failed")
		WriteError(w, http.StatusBadGateway, "Payment provider unavailable")
		return
	}
	WriteJSON(w, http.StatusOK, PaymentIntentResponse{ClientSecret: clientSecret})
}
