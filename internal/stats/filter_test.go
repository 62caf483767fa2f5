package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterCampaignsEmptyPredicatesReturnAll(t *testing.T) {
	src := []Campaign{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}
	out := FilterCampaigns(src, CampaignFilter{})
	assert.Equal(t, src, out)
}

func TestFilterCampaignsSearchCaseInsensitive(t *testing.T) {
	src := []Campaign{
		{ID: "1", Name: "Clean Water", Organizer: "jane DOE"},
		{ID: "2", Name: "Jane's Bakery", Organizer: "Bob"},
		{ID: "3", Name: "School Fund", Organizer: "Carol", Description: "books"},
	}
	out := FilterCampaigns(src, CampaignFilter{Search: "Jane"})
	require.Len(t, out, 2)
	assert.Equal(t, "1", out[0].ID, "matches organizer case-insensitively")
	assert.Equal(t, "2", out[1].ID, "matches name")

	out = FilterCampaigns(src, CampaignFilter{Search: "books"})
	require.Len(t, out, 1)
	assert.Equal(t, "3", out[0].ID)
}

func TestFilterCampaignsStatus(t *testing.T) {
	src := []Campaign{
		{ID: "active", IsActive: true, TargetAmount: 100},
		{ID: "inactive", IsActive: false, TargetAmount: 100},
		{ID: "completed", IsActive: true, TargetAmount: 100, CollectedAmount: 100},
	}
	assert.Len(t, FilterCampaigns(src, CampaignFilter{Status: StatusActive}), 2)
	assert.Len(t, FilterCampaigns(src, CampaignFilter{Status: StatusInactive}), 1)

	completed := FilterCampaigns(src, CampaignFilter{Status: StatusCompleted})
	require.Len(t, completed, 1)
	assert.Equal(t, "completed", completed[0].ID)

	ongoing := FilterCampaigns(src, CampaignFilter{Status: StatusOngoing})
	require.Len(t, ongoing, 1)
	assert.Equal(t, "active", ongoing[0].ID)
}

func TestFilterCampaignsPredicatesCompose(t *testing.T) {
	from := testNow.AddDate(0, 0, -10)
	src := []Campaign{
		{ID: "1", Name: "Water", IsActive: true, CreatedAt: testNow.AddDate(0, 0, -5)},
		{ID: "2", Name: "Water", IsActive: false, CreatedAt: testNow.AddDate(0, 0, -5)},
		{ID: "3", Name: "Water", IsActive: true, CreatedAt: testNow.AddDate(0, 0, -30)},
	}
	out := FilterCampaigns(src, CampaignFilter{
		Search: "water",
		Status: StatusActive,
		Range:  DateRange{From: &from},
	})
	require.Len(t, out, 1)
	assert.Equal(t, "1", out[0].ID)
}

func TestFilterDonationsPeriod(t *testing.T) {
	src := []Donation{donationAt(100, "Water", testNow.AddDate(0, 0, -2))}

	weekly := FilterDonations(src, DonationFilter{Period: Period7Days}, testNow)
	assert.Len(t, weekly, 1, "a two day old donation falls inside the last 7 days")

	yesterday := testNow.AddDate(0, 0, -1)
	daily := FilterDonations(src, DonationFilter{Range: DateRange{From: &yesterday}}, testNow)
	assert.Empty(t, daily, "and outside the last day")
}

func TestFilterDonationsRangeHalfOpen(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	src := []Donation{
		donationAt(1, "A", from),
		donationAt(2, "B", to.Add(-time.Second)),
		donationAt(3, "C", to),
	}
	out := FilterDonations(src, DonationFilter{Range: DateRange{From: &from, To: &to}}, testNow)
	require.Len(t, out, 2)
	assert.Equal(t, 1.0, out[0].Amount, "the From bound is inclusive")
	assert.Equal(t, 2.0, out[1].Amount, "the To bound is exclusive")
}

func TestFilterDonationsByCampaign(t *testing.T) {
	src := []Donation{
		donationAt(10, "Water", testNow),
		donationAt(20, "School", testNow),
	}
	out := FilterDonations(src, DonationFilter{CampaignID: "c-Water"}, testNow)
	require.Len(t, out, 1)
	assert.Equal(t, 10.0, out[0].Amount)
}

func TestFilterDonationsSubsetAndOrder(t *testing.T) {
	src := []Donation{
		donationAt(10, "Zebra Relief", testNow),
		donationAt(20, "Water", testNow),
		donationAt(30, "Zoo Renovation", testNow),
	}
	out := FilterDonations(src, DonationFilter{Search: "z"}, testNow)
	require.Len(t, out, 2)
	assert.Equal(t, 10.0, out[0].Amount, "input order preserved")
	assert.Equal(t, 30.0, out[1].Amount)
	assert.Len(t, src, 3, "source is not mutated")
}

func TestFilterDonationsSearchSkipsEmptyFields(t *testing.T) {
	src := []Donation{{Amount: 10, CreatedAt: testNow}}
	out := FilterDonations(src, DonationFilter{Search: "anything"}, testNow)
	assert.Empty(t, out)
}

func TestFilterUsers(t *testing.T) {
	src := []User{
		{ID: "1", Name: "Jane Doe", Email: "jane@example.com", IsActive: true},
		{ID: "2", Name: "Bob", Email: "bob@example.com", IsActive: false},
	}
	active := FilterUsers(src, UserFilter{Status: StatusActive})
	require.Len(t, active, 1)
	assert.Equal(t, "1", active[0].ID)

	byEmail := FilterUsers(src, UserFilter{Search: "BOB@"})
	require.Len(t, byEmail, 1)
	assert.Equal(t, "2", byEmail[0].ID)
}

func TestPeriodStart(t *testing.T) {
	cases := map[string]time.Time{
		Period7Days:  testNow.AddDate(0, 0, -7),
		PeriodWeek:   testNow.AddDate(0, 0, -7),
		Period30Days: testNow.AddDate(0, 0, -30),
		Period90Days: testNow.AddDate(0, 0, -90),
		PeriodMonth:  testNow.AddDate(0, -1, 0),
		PeriodYear:   testNow.AddDate(-1, 0, 0),
	}
	for period, want := range cases {
		got, ok := periodStart(period, testNow)
		require.True(t, ok, period)
		assert.Equal(t, want, got, period)
	}
	_, ok := periodStart("fortnight", testNow)
	assert.False(t, ok)
}
