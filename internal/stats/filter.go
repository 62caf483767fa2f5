package stats

import (
	"strings"
	"time"
)

// Campaign status filter values.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusCompleted = "completed"
	StatusOngoing   = "ongoing"
)

// Relative period filter values, resolved against the caller's reference time.
const (
	PeriodWeek   = "week"
	PeriodMonth  = "month"
	PeriodYear   = "year"
	Period7Days  = "7d"
	Period30Days = "30d"
	Period90Days = "90d"
)

// DateRange is half open: a timestamp matches when From <= t < To. A nil
// bound leaves that side unconstrained.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (r DateRange) active() bool {
	return r.From != nil || r.To != nil
}

func (r DateRange) contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && !t.Before(*r.To) {
		return false
	}
	return true
}

type CampaignFilter struct {
	Search string
	Status string
	Range  DateRange
}

type DonationFilter struct {
	Search     string
	CampaignID string
	Period     string
	Range      DateRange
}

type UserFilter struct {
	Search string
	Status string
	Range  DateRange
}

// FilterCampaigns returns the campaigns matching every active predicate,
// preserving input order. The source slice is never mutated.
func FilterCampaigns(src []Campaign, f CampaignFilter) []Campaign {
	out := make([]Campaign, 0, len(src))
	for _, c := range src {
		if f.Search != "" && !matchesSearch(f.Search, c.Name, c.Organizer, c.Description) {
			continue
		}
		if f.Status != "" && !matchesCampaignStatus(c, f.Status) {
			continue
		}
		if f.Range.active() && !f.Range.contains(c.CreatedAt) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// FilterDonations returns the donations matching every active predicate. The
// relative Period predicate is resolved against now.
func FilterDonations(src []Donation, f DonationFilter, now time.Time) []Donation {
	rng := f.Range
	if !rng.active() && f.Period != "" {
		if from, ok := periodStart(f.Period, now); ok {
			rng = DateRange{From: &from}
		}
	}
	out := make([]Donation, 0, len(src))
	for _, d := range src {
		if f.Search != "" && !matchesSearch(f.Search, d.CampaignName, d.UserName, d.PaymentID) {
			continue
		}
		if f.CampaignID != "" && d.CampaignID != f.CampaignID {
			continue
		}
		if rng.active() && !rng.contains(d.CreatedAt) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// FilterUsers returns the users matching every active predicate.
func FilterUsers(src []User, f UserFilter) []User {
	out := make([]User, 0, len(src))
	for _, u := range src {
		if f.Search != "" && !matchesSearch(f.Search, u.Name, u.Email) {
			continue
		}
		if f.Status == StatusActive && !u.IsActive {
			continue
		}
		if f.Status == StatusInactive && u.IsActive {
			continue
		}
		if f.Range.active() && !f.Range.contains(u.CreatedAt) {
			continue
		}
		out = append(out, u)
	}
	return out
}

func matchesCampaignStatus(c Campaign, status string) bool {
	switch status {
	case StatusActive:
		return c.IsActive
	case StatusInactive:
		return !c.IsActive
	case StatusCompleted:
		return IsCompleted(c)
	case StatusOngoing:
		return IsOngoing(c)
	default:
		return false
	}
}

func matchesSearch(term string, fields ...string) bool {
	term = strings.ToLower(term)
	for _, field := range fields {
		if field == "" {
			continue
		}
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func periodStart(period string, now time.Time) (time.Time, bool) {
	switch period {
	case Period7Days, PeriodWeek:
		return now.AddDate(0, 0, -7), true
	case Period30Days:
		return now.AddDate(0, 0, -30), true
	case Period90Days:
		return now.AddDate(0, 0, -90), true
	case PeriodMonth:
		return now.AddDate(0, -1, 0), true
	case PeriodYear:
		return now.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}
