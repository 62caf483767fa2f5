package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"crowdspark-backend-go/internal/models"
	"crowdspark-backend-go/internal/services"
	"crowdspark-backend-go/internal/stats"
)

// ListCampaigns returns all campaigns, optionally narrowed by the filter
// engine (search over name/organizer/description, status, category, date
// range). No parameters means the full collection.
func (s *Server) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := services.LoadCampaigns(r.Context(), s.DB)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	filtered := stats.FilterCampaigns(campaigns, stats.CampaignFilter{
		Search: r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
		Range:  queryRange(r),
	})
	if category := r.URL.Query().Get("category"); category != "" {
		narrowed := make([]stats.Campaign, 0, len(filtered))
		for _, c := range filtered {
			if strings.EqualFold(c.Category, category) {
				narrowed = append(narrowed, c)
			}
		}
		filtered = narrowed
	}
	images, err := s.campaignImageMap(r)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]CampaignDTO, 0, len(filtered))
	for _, c := range filtered {
		items = append(items, campaignDTO(c, images[c.ID]))
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) GetCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignId")
	var campaign models.Campaign
	if err := s.DB.GetContext(r.Context(), &campaign, `SELECT * FROM campaigns WHERE id = $1`, campaignID); err != nil {
		WriteError(w, http.StatusNotFound, "Campaign not found")
		return
	}
	WriteJSON(w, http.StatusOK, campaignModelDTO(campaign))
}

type CampaignRequest struct {
	Name            string   `json:"name"`
	Organizer       string   `json:"organizer"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	TargetAmount    float64  `json:"targetAmount"`
	CollectedAmount *float64 `json:"collectedAmount"`
	StartDate       string   `json:"startDate"`
	EndDate         string   `json:"endDate"`
	IsActive        *bool    `json:"isActive"`
	Images          []string `json:"images"`
}

func (req CampaignRequest) validate() string {
	if strings.TrimSpace(req.Name) == "" {
		return "Campaign name is required"
	}
	if strings.TrimSpace(req.Organizer) == "" {
		return "Organizer is required"
	}
	if strings.TrimSpace(req.Category) == "" {
		return "Category is required"
	}
	if req.TargetAmount < 0 {
		return "Target amount cannot be negative"
	}
	if req.CollectedAmount != nil && *req.CollectedAmount < 0 {
		return "Collected amount cannot be negative"
	}
	return ""
}

func (s *Server) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req CampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if msg := req.validate(); msg != "" {
		WriteError(w, http.StatusBadRequest, msg)
		return
	}
	campaignID := uuid.NewString()
	now := time.Now().UTC()
	images, _ := json.Marshal(normalizeImages(req.Images))
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	collected := 0.0
	if req.CollectedAmount != nil {
		collected = *req.CollectedAmount
	}
	_, err := s.DB.Exec(`
INSERT INTO campaigns (id, name, organizer, description, category, target_amount, collected_amount,
                       start_date, end_date, is_active, images, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$12)
`, campaignID, strings.TrimSpace(req.Name), strings.TrimSpace(req.Organizer), req.Description,
		strings.TrimSpace(req.Category), req.TargetAmount, collected,
		parseDate(req.StartDate), parseDate(req.EndDate), isActive, images, now)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	var campaign models.Campaign
	if err := s.DB.Get(&campaign, `SELECT * FROM campaigns WHERE id = $1`, campaignID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusCreated, campaignModelDTO(campaign))
}

func (s *Server) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignId")
	var req CampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if msg := req.validate(); msg != "" {
		WriteError(w, http.StatusBadRequest, msg)
		return
	}
	images, _ := json.Marshal(normalizeImages(req.Images))
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	result, err := s.DB.Exec(`
UPDATE campaigns SET
  name = $1, organizer = $2, description = $3, category = $4,
  target_amount = $5,
  collected_amount = COALESCE($6, collected_amount),
  start_date = $7, end_date = $8, is_active = $9, images = $10, updated_at = $11
WHERE id = $12
`, strings.TrimSpace(req.Name), strings.TrimSpace(req.Organizer), req.Description,
		strings.TrimSpace(req.Category), req.TargetAmount, req.CollectedAmount,
		parseDate(req.StartDate), parseDate(req.EndDate), isActive, images, time.Now().UTC(), campaignID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "Campaign not found")
		return
	}
	var campaign models.Campaign
	if err := s.DB.Get(&campaign, `SELECT * FROM campaigns WHERE id = $1`, campaignID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, campaignModelDTO(campaign))
}

func (s *Server) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignId")
	result, err := s.DB.Exec(`DELETE FROM campaigns WHERE id = $1`, campaignID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "Campaign not found")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Campaign deleted successfully"})
}

func (s *Server) campaignImageMap(r *http.Request) (map[string][]string, error) {
	rows := []struct {
		ID     string `db:"id"`
		Images []byte `db:"images"`
	}{}
	if err := s.DB.SelectContext(r.Context(), &rows, `SELECT id, images FROM campaigns`); err != nil {
		return nil, err
	}
	images := make(map[string][]string, len(rows))
	for _, row := range rows {
		images[row.ID] = decodeImages(row.Images)
	}
	return images, nil
}

func normalizeImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, image := range images {
		if trimmed := strings.TrimSpace(image); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
