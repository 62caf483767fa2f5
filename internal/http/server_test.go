package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crowdspark-backend-go/internal/services"
	"crowdspark-backend-go/internal/stats"
)

type stubPayments struct {
	clientSecret string
	err          error
	gotAmount    float64
	gotCampaign  string
}

func (s *stubPayments) CreateIntent(ctx context.Context, amount float64, campaignID string) (string, error) {
	s.gotAmount = amount
	s.gotCampaign = campaignID
	return s.clientSecret, s.err
}

func testServer(payments services.PaymentIntentCreator) *Server {
	return &Server{
		Tokens: services.TokenService{
			Secret:      []byte("test-secret"),
			Issuer:      "crowdspark",
			TokenTTL:    time.Hour,
			RememberTTL: 24 * time.Hour,
		},
		Payments: payments,
		Log:      zerolog.Nop(),
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	return payload.Message
}

func TestCreatePaymentIntent(t *testing.T) {
	payments := &stubPayments{clientSecret: "pi_123_secret"}
	s := testServer(payments)

	body := strings.NewReader(`{"amount": 25.5, "campaignId": "c1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/payments/create-payment-intent", body)
	rec := httptest.NewRecorder()
	s.CreatePaymentIntent(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp PaymentIntentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "pi_123_secret", resp.ClientSecret)
	assert.Equal(t, 25.5, payments.gotAmount)
	assert.Equal(t, "c1", payments.gotCampaign)
}

func TestCreatePaymentIntentRejectsNonPositiveAmount(t *testing.T) {
	s := testServer(&stubPayments{})
	req := httptest.NewRequest(http.MethodPost, "/api/payments/create-payment-intent",
		strings.NewReader(`{"amount": 0}`))
	rec := httptest.NewRecorder()
	s.CreatePaymentIntent(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Donation amount must be positive", decodeError(t, rec))
}

func TestCreatePaymentIntentProviderFailure(t *testing.T) {
	s := testServer(&stubPayments{err: errors.New("stripe down")})
	req := httptest.NewRequest(http.MethodPost, "/api/payments/create-payment-intent",
		strings.NewReader(`{"amount": 10}`))
	rec := httptest.NewRecorder()
	s.CreatePaymentIntent(rec, req)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "Payment provider unavailable", decodeError(t, rec))
}

func TestWithAuthRejectsMissingAndBadTokens(t *testing.T) {
	s := testServer(nil)
	handler := WithAuth(s.Tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "missing header")

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "garbage token")
}

func TestWithAuthPopulatesIdentity(t *testing.T) {
	s := testServer(nil)
	signed, _, err := s.Tokens.CreateToken("user-7", "jane@example.com", true, false)
	require.NoError(t, err)

	var gotUser string
	var gotAdmin bool
	handler := WithAuth(s.Tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = CurrentUserID(r)
		gotAdmin = CurrentIsAdmin(r)
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "user-7", gotUser)
	assert.True(t, gotAdmin)
}

func TestRequireAdmin(t *testing.T) {
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), ctxIsAdmin, true))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "trace-42")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "trace-42", seen, "caller-supplied id is kept")
}

func TestWriteCSVHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteCSV(rec, "report-2026-08-30.csv", []byte("a,b\n"))
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="report-2026-08-30.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "a,b\n", rec.Body.String())
}

func TestDonationDTONullableRefs(t *testing.T) {
	withRefs := donationDTO(stats.Donation{
		ID: "d1", Amount: 50, CampaignID: "c1", CampaignName: "Water",
		UserID: "u1", UserName: "Jane", PaymentID: "pi_1",
	})
	require.NotNil(t, withRefs.Campaign)
	assert.Equal(t, "Water", withRefs.Campaign.Name)
	require.NotNil(t, withRefs.User)
	assert.Equal(t, "Jane", withRefs.User.Name)

	orphan := donationDTO(stats.Donation{ID: "d2", Amount: 25})
	assert.Nil(t, orphan.Campaign, "deleted campaign serializes as null")
	assert.Nil(t, orphan.User)
}

func TestCampaignDTOProgress(t *testing.T) {
	dto := campaignDTO(stats.Campaign{TargetAmount: 1000, CollectedAmount: 1500}, nil)
	assert.Equal(t, 150.0, dto.Progress, "raw progress is not clamped in payloads")

	zero := campaignDTO(stats.Campaign{}, nil)
	assert.Equal(t, 0.0, zero.Progress)
	assert.Nil(t, zero.StartDate)
}

func TestDecodeImages(t *testing.T) {
	assert.Equal(t, []string{"a.png", "b.png"}, decodeImages([]byte(`["a.png","b.png"]`)))
	assert.Equal(t, []string{}, decodeImages(nil), "missing column yields an empty list")
	assert.Equal(t, []string{}, decodeImages([]byte(`not-json`)))
}
