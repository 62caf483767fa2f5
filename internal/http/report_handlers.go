package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"crowdspark-backend-go/internal/export"
	"crowdspark-backend-go/internal/services"
	"crowdspark-backend-go/internal/stats"
)

const topCampaignLimit = 5

type RangeBreakdown struct {
	Small  int `json:"small"`
	Medium int `json:"medium"`
	Large  int `json:"large"`
}

type AdminReportResponse struct {
	TotalUsers          int                  `json:"totalUsers"`
	TotalCampaigns      int                  `json:"totalCampaigns"`
	TotalDonations      int                  `json:"totalDonations"`
	TotalAmount         float64              `json:"totalAmount"`
	AverageDonation     float64              `json:"averageDonation"`
	SuccessfulCampaigns int                  `json:"successfulCampaigns"`
	ActiveCampaigns     int                  `json:"activeCampaigns"`
	RecentGrowth        float64              `json:"recentGrowth"`
	TopCampaigns        []stats.CampaignRank `json:"topCampaigns"`
	MonthlyData         []stats.MonthBucket  `json:"monthlyData"`
	DonationsByRange    RangeBreakdown       `json:"donationsByRange"`
	LastFiveDonations   []DonationDTO        `json:"lastFiveDonations"`
}

type UserReportResponse struct {
	TotalDonations     int                  `json:"totalDonations"`
	TotalAmount        float64              `json:"totalAmount"`
	AverageDonation    float64              `json:"averageDonation"`
	MonthlyDonations   int                  `json:"monthlyDonations"`
	DonationStreak     int                  `json:"donationStreak"`
	ImpactScore        int                  `json:"impactScore"`
	CampaignsSupported int                  `json:"campaignsSupported"`
	MonthlyTrend       float64              `json:"monthlyTrend"`
	TopCampaigns       []stats.CampaignRank `json:"topCampaigns"`
	LastFiveDonations  []DonationDTO        `json:"lastFiveDonations"`
}

// AdminReports assembles the platform-wide summary. Growth and the monthly
// histogram always cover the full donation history; the headline totals honor
// the optional period/from/to filter, mirroring the dashboard behavior.
func (s *Server) AdminReports(w http.ResponseWriter, r *http.Request) {
	report, err := s.buildAdminReport(r)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

func (s *Server) buildAdminReport(r *http.Request) (AdminReportResponse, error) {
	now := time.Now().UTC()
	campaigns, donations, err := services.LoadCampaignsAndDonations(r.Context(), s.DB)
	if err != nil {
		return AdminReportResponse{}, err
	}
	var totalUsers int
	if err := s.DB.GetContext(r.Context(), &totalUsers, `SELECT COUNT(*) FROM users`); err != nil {
		return AdminReportResponse{}, err
	}

	filtered := stats.FilterDonations(donations, stats.DonationFilter{
		Period: r.URL.Query().Get("period"),
		Range:  queryRange(r),
	}, now)

	summary := stats.SummarizeDonations(filtered, now)
	campaignSummary := stats.SummarizeCampaigns(campaigns)
	running := 0
	for _, c := range campaigns {
		if stats.IsRunning(c, now) {
			running++
		}
	}
	lastFive := filtered
	if len(lastFive) > 5 {
		lastFive = lastFive[:5]
	}
	return AdminReportResponse{
		TotalUsers:          totalUsers,
		TotalCampaigns:      campaignSummary.Total,
		TotalDonations:      summary.Total,
		TotalAmount:         summary.TotalAmount,
		AverageDonation:     summary.Average,
		SuccessfulCampaigns: campaignSummary.Completed,
		ActiveCampaigns:     running,
		RecentGrowth:        stats.Trend(donations, now),
		TopCampaigns:        stats.TopCampaigns(campaigns, filtered, topCampaignLimit),
		MonthlyData:         stats.MonthlyBuckets(donations, now, 6),
		DonationsByRange:    RangeBreakdown{Small: summary.Small, Medium: summary.Medium, Large: summary.Large},
		LastFiveDonations:   donationDTOs(lastFive),
	}, nil
}

// ExportAdminReport serves the admin summary as a CSV download.
func (s *Server) ExportAdminReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.buildAdminReport(r)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	pairs := [][2]string{
		{"Metric", "Value"},
		{"Total Users", fmt.Sprintf("%d", report.TotalUsers)},
		{"Total Campaigns", fmt.Sprintf("%d", report.TotalCampaigns)},
		{"Total Donations", fmt.Sprintf("%d", report.TotalDonations)},
		{"Total Amount", export.Amount(report.TotalAmount)},
		{"Average Donation", export.Amount(report.AverageDonation)},
		{"Successful Campaigns", fmt.Sprintf("%d", report.SuccessfulCampaigns)},
		{"Active Campaigns", fmt.Sprintf("%d", report.ActiveCampaigns)},
		{"Recent Growth (%)", fmt.Sprintf("%.1f", report.RecentGrowth)},
		{"", ""},
		{"Top Campaigns", ""},
	}
	for _, rank := range report.TopCampaigns {
		pairs = append(pairs, [2]string{rank.Name, export.Currency(rank.Amount)})
	}
	pairs = append(pairs, [2]string{"", ""}, [2]string{"Monthly Data", ""})
	for _, bucket := range report.MonthlyData {
		pairs = append(pairs, [2]string{bucket.Month, export.Currency(bucket.Amount)})
	}
	now := time.Now().UTC()
	WriteCSV(w, export.Filename("admin-report", now), export.KeyValueRows(pairs))
}

// UserReports assembles the per-user summary. Users may only read their own
// report unless they are administrators.
func (s *Server) UserReports(w http.ResponseWriter, r *http.Request) {
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
	now := time.Now().UTC()
	summary := stats.SummarizeDonations(donations, now)
	lastFive := donations
	if len(lastFive) > 5 {
		lastFive = lastFive[:5]
	}
	WriteJSON(w, http.StatusOK, UserReportResponse{
		TotalDonations:     summary.Total,
		TotalAmount:        summary.TotalAmount,
		AverageDonation:    summary.Average,
		MonthlyDonations:   stats.MonthlyDonationCount(donations, now),
		DonationStreak:     stats.DonationStreak(donations),
		ImpactScore:        stats.ImpactScore(summary.TotalAmount, summary.Total),
		CampaignsSupported: stats.CampaignsSupported(donations),
		MonthlyTrend:       stats.MonthlyTrend(donations, now),
		TopCampaigns:       stats.RankDonatedCampaigns(donations, topCampaignLimit),
		LastFiveDonations:  donationDTOs(lastFive),
	})
}

// ExportUserReport serves a user's donation history as a CSV download,
// honoring the same filter parameters as the donation listing.
func (s *Server) ExportUserReport(w http.ResponseWriter, r *http.Request) {
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
	now := time.Now().UTC()
	filtered := stats.FilterDonations(donations, stats.DonationFilter{
		Search: r.URL.Query().Get("search"),
		Period: r.URL.Query().Get("period"),
		Range:  queryRange(r),
	}, now)
	columns := []export.Column[stats.Donation]{
		{Header: "Campaign", Value: func(d stats.Donation) string { return d.CampaignName }},
		{Header: "Amount", Value: func(d stats.Donation) string { return export.Amount(d.Amount) }},
		{Header: "Payment ID", Value: func(d stats.Donation) string { return d.PaymentID }},
		{Header: "Date", Value: func(d stats.Donation) string { return export.Timestamp(d.CreatedAt) }},
		{Header: "Message", Value: func(d stats.Donation) string { return d.Message }},
	}
	WriteCSV(w, export.Filename("donations", now), export.Rows(filtered, columns))
}
