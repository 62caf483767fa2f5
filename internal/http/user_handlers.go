package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"crowdspark-backend-go/internal/services"
	"crowdspark-backend-go/internal/stats"
)

func (s *Server) buildUserDTO(r *http.Request, userID string) (UserDTO, error) {
	row := struct {
		ID            string    `db:"id"`
		Name          string    `db:"name"`
		Email         string    `db:"email"`
		IsActive      bool      `db:"is_active"`
		IsAdmin       bool      `db:"is_admin"`
		CreatedAt     time.Time `db:"created_at"`
		DonationCount int       `db:"donation_count"`
		TotalDonated  float64   `db:"total_donated"`
	}{}
	err := s.DB.GetContext(r.Context(), &row, `
SELECT u.id, u.name, u.email, u.is_active, u.is_admin, u.created_at,
       COUNT(d.id) AS donation_count,
       COALESCE(SUM(d.amount), 0) AS total_donated
FROM users u
LEFT JOIN donations d ON d.user_id = u.id
WHERE u.id = $1
GROUP BY u.id
`, userID)
	if err != nil {
		return UserDTO{}, err
	}
	return userDTO(stats.User{
		ID:            row.ID,
		Name:          row.Name,
		Email:         row.Email,
		IsActive:      row.IsActive,
		IsAdmin:       row.IsAdmin,
		CreatedAt:     row.CreatedAt,
		DonationCount: row.DonationCount,
		TotalDonated:  row.TotalDonated,
	}), nil
}

// ListUsers returns every user with donation totals joined in. The optional
// search/status/from/to query parameters run the same filter engine the
// dashboards use.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := services.LoadUsers(r.Context(), s.DB)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	filtered := stats.FilterUsers(users, stats.UserFilter{
		Search: r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
		Range:  queryRange(r),
	})
	items := make([]UserDTO, 0, len(filtered))
	for _, u := range filtered {
		items = append(items, userDTO(u))
	}
	WriteJSON(w, http.StatusOK, items)
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	IsActive *bool   `json:"isActive"`
	IsAdmin  *bool   `json:"isAdmin"`
}

func (s *Server) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			WriteError(w, http.StatusBadRequest, "Email cannot be empty")
			return
		}
		req.Email = &email
	}
	result, err := s.DB.Exec(`
UPDATE users SET
  name = COALESCE($1, name),
  email = COALESCE($2, email),
  is_active = COALESCE($3, is_active),
  is_admin = COALESCE($4, is_admin),
  updated_at = $5
WHERE id = $6
`, req.Name, req.Email, req.IsActive, req.IsAdmin, time.Now().UTC(), userID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	user, err := s.buildUserDTO(r, userID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" {
		WriteError(w, http.StatusBadRequest, "Name and email are required")
		return
	}
	userID := CurrentUserID(r)
	var taken bool
	if err := s.DB.Get(&taken, `SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = $1 AND id <> $2)`, email, userID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if taken {
		WriteError(w, http.StatusBadRequest, "Email is already in use")
		return
	}
	_, err := s.DB.Exec(`UPDATE users SET name = $1, email = $2, updated_at = $3 WHERE id = $4`,
		name, email, time.Now().UTC(), userID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	user, err := s.buildUserDTO(r, userID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (s *Server) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if len(req.NewPassword) < 6 {
		WriteError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}
	userID := CurrentUserID(r)
	var currentHash string
	if err := s.DB.Get(&currentHash, `SELECT password_hash FROM users WHERE id = $1`, userID); err != nil {
		WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if !s.Tokens.VerifyPassword(req.OldPassword, currentHash) {
		WriteError(w, http.StatusBadRequest, "Current password is incorrect")
		return
	}
	hash, err := s.Tokens.HashPassword(req.NewPassword)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	_, err = s.DB.Exec(`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		hash, time.Now().UTC(), userID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

func (s *Server) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == CurrentUserID(r) {
		WriteError(w, http.StatusBadRequest, "Cannot delete your own account")
		return
	}
	result, err := s.DB.Exec(`DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// queryRange parses optional from/to date bounds (YYYY-MM-DD, half open).
func queryRange(r *http.Request) stats.DateRange {
	return stats.DateRange{
		From: parseDate(r.URL.Query().Get("from")),
		To:   parseDate(r.URL.Query().Get("to")),
	}
}
