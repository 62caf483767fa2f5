package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func donationAt(amount float64, campaign string, at time.Time) Donation {
	return Donation{
		ID:           "d-" + campaign,
		Amount:       amount,
		CampaignID:   "c-" + campaign,
		CampaignName: campaign,
		CreatedAt:    at,
	}
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 50.0, Progress(500, 1000))
	assert.Equal(t, 0.0, Progress(0, 0), "zero target must not divide")
	assert.Equal(t, 150.0, Progress(1500, 1000), "raw progress may exceed 100")
}

func TestClampedProgressBounds(t *testing.T) {
	assert.Equal(t, 100.0, ClampedProgress(1500, 1000))
	assert.Equal(t, 0.0, ClampedProgress(-10, 1000))
	assert.Equal(t, 0.0, ClampedProgress(500, 0))
}

func TestIsCompletedZeroTarget(t *testing.T) {
	// A zero-target campaign counts as completed only once money arrived.
	assert.False(t, IsCompleted(Campaign{TargetAmount: 0, CollectedAmount: 0}))
	assert.True(t, IsCompleted(Campaign{TargetAmount: 0, CollectedAmount: 10}))
	assert.True(t, IsCompleted(Campaign{TargetAmount: 100, CollectedAmount: 100}))
	assert.False(t, IsCompleted(Campaign{TargetAmount: 100, CollectedAmount: 99}))
}

func TestIsRunning(t *testing.T) {
	past := testNow.AddDate(0, 0, -1)
	future := testNow.AddDate(0, 0, 1)
	assert.True(t, IsRunning(Campaign{IsActive: true, EndDate: &future}, testNow))
	assert.False(t, IsRunning(Campaign{IsActive: true, EndDate: &past}, testNow))
	assert.True(t, IsRunning(Campaign{IsActive: true}, testNow), "missing end date never expires")
	assert.False(t, IsRunning(Campaign{IsActive: false, EndDate: &future}, testNow))
}

func TestSummarizeCampaigns(t *testing.T) {
	campaigns := []Campaign{
		{IsActive: true, TargetAmount: 1000, CollectedAmount: 500},
		{IsActive: false, TargetAmount: 200, CollectedAmount: 300},
		{IsActive: true, TargetAmount: 0, CollectedAmount: 0},
	}
	s := SummarizeCampaigns(campaigns)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Active)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 1200.0, s.TotalTarget)
	assert.Equal(t, 800.0, s.TotalCollected)
	assert.InDelta(t, 50.0, s.AverageProgress, 0.001)
}

func TestSummarizeCampaignsEmpty(t *testing.T) {
	s := SummarizeCampaigns(nil)
	assert.Equal(t, CampaignSummary{}, s)
}

func TestSummarizeDonations(t *testing.T) {
	donations := []Donation{
		donationAt(25, "Water", testNow.AddDate(0, 0, -2)),
		donationAt(200, "Water", testNow.AddDate(0, 0, -20)),
		donationAt(500, "School", testNow.AddDate(0, 0, -1)),
	}
	s := SummarizeDonations(donations, testNow)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 725.0, s.TotalAmount)
	assert.InDelta(t, 725.0/3, s.Average, 0.001)
	assert.Equal(t, 2, s.Recent)
	assert.Equal(t, "School", s.TopCampaign)
	assert.Equal(t, 1, s.Small)
	assert.Equal(t, 1, s.Medium)
	assert.Equal(t, 1, s.Large)
}

func TestSummarizeDonationsEmpty(t *testing.T) {
	s := SummarizeDonations(nil, testNow)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0.0, s.Average, "average is 0 when count is 0")
}

func TestTrend(t *testing.T) {
	donations := []Donation{
		donationAt(300, "A", testNow.AddDate(0, 0, -5)),
		donationAt(100, "A", testNow.AddDate(0, 0, -45)),
	}
	assert.InDelta(t, 200.0, Trend(donations, testNow), 0.001)
}

func TestTrendSilentPreviousWindow(t *testing.T) {
	recentOnly := []Donation{donationAt(50, "A", testNow.AddDate(0, 0, -3))}
	assert.Equal(t, 100.0, Trend(recentOnly, testNow))
	assert.Equal(t, 0.0, Trend(nil, testNow))
}

func TestMonthlyBuckets(t *testing.T) {
	donations := []Donation{
		donationAt(100, "A", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)),
		donationAt(50, "A", time.Date(2026, 7, 31, 23, 59, 59, 0, time.UTC)),
		donationAt(25, "A", time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)),
	}
	buckets := MonthlyBuckets(donations, testNow, 6)
	require.Len(t, buckets, 6)
	assert.Equal(t, "Mar", buckets[0].Month)
	assert.Equal(t, "Aug", buckets[5].Month)
	assert.Equal(t, 100.0, buckets[5].Amount, "month boundary is inclusive at the start")
	assert.Equal(t, 50.0, buckets[4].Amount)
	assert.Equal(t, 0.0, buckets[0].Amount, "February falls outside the window")
}

func TestTopCampaignsRanking(t *testing.T) {
	campaigns := make([]Campaign, 7)
	donations := []Donation{}
	names := []string{"A", "B", "C", "D", "E", "F", "G"}
	amounts := []float64{10, 70, 40, 70, 90, 5, 60}
	for i, name := range names {
		campaigns[i] = Campaign{ID: "c-" + name, Name: name, TargetAmount: 100}
		donations = append(donations, donationAt(amounts[i], name, testNow))
	}
	ranks := TopCampaigns(campaigns, donations, 5)
	require.Len(t, ranks, 5)
	got := make([]string, len(ranks))
	for i, rank := range ranks {
		got[i] = rank.Name
	}
	// B and D tie at 70; B entered first and must stay ahead.
	assert.Equal(t, []string{"E", "B", "D", "G", "C"}, got)
	assert.Equal(t, 90.0, ranks[0].Amount)
	assert.Equal(t, 1, ranks[0].DonationCount)
	assert.Equal(t, 90.0, ranks[0].Progress)
}

func TestRankDonatedCampaignsSkipsDeleted(t *testing.T) {
	donations := []Donation{
		{Amount: 50, CreatedAt: testNow},
		donationAt(100, "Alive", testNow),
		donationAt(20, "Alive", testNow),
	}
	ranks := RankDonatedCampaigns(donations, 5)
	require.Len(t, ranks, 1)
	assert.Equal(t, "Alive", ranks[0].Name)
	assert.Equal(t, 120.0, ranks[0].Amount)
	assert.Equal(t, 2, ranks[0].DonationCount)
}

func TestAggregatorIdempotence(t *testing.T) {
	donations := []Donation{
		donationAt(25, "Water", testNow.AddDate(0, 0, -2)),
		donationAt(200, "Water", testNow.AddDate(0, 0, -20)),
	}
	first := SummarizeDonations(donations, testNow)
	second := SummarizeDonations(donations, testNow)
	assert.Equal(t, first, second)
	assert.Equal(t, MonthlyBuckets(donations, testNow, 6), MonthlyBuckets(donations, testNow, 6))
}

func TestBackersAndCampaignsSupported(t *testing.T) {
	donations := []Donation{
		{UserID: "u1", CampaignID: "c1", Amount: 10},
		{UserID: "u1", CampaignID: "c2", Amount: 10},
		{UserID: "u2", CampaignID: "c1", Amount: 10},
		{Amount: 10},
	}
	assert.Equal(t, 2, Backers(donations))
	assert.Equal(t, 2, CampaignsSupported(donations))
}

func TestDonationStreakCap(t *testing.T) {
	donations := make([]Donation, 10)
	assert.Equal(t, 7, DonationStreak(donations))
	assert.Equal(t, 3, DonationStreak(donations[:3]))
}

func TestImpactScore(t *testing.T) {
	assert.Equal(t, 15, ImpactScore(1000, 1), "amount capped at 100 points")
	assert.Equal(t, 150, ImpactScore(100000, 100), "both components capped")
	assert.Equal(t, 0, ImpactScore(0, 0))
	assert.Equal(t, 11, ImpactScore(100, 2))
}

func TestMonthlyTrend(t *testing.T) {
	donations := []Donation{
		donationAt(150, "A", time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)),
		donationAt(100, "A", time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC)),
	}
	assert.InDelta(t, 50.0, MonthlyTrend(donations, testNow), 0.001)
}
