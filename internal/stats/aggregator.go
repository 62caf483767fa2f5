package stats

import (
	"math"
	"sort"
	"time"
)

// CampaignSummary is the fixed-shape dashboard view of a campaign collection.
type CampaignSummary struct {
	Total           int     `json:"total"`
	Active          int     `json:"active"`
	Completed       int     `json:"completed"`
	TotalTarget     float64 `json:"totalTarget"`
	TotalCollected  float64 `json:"totalCollected"`
	AverageProgress float64 `json:"averageProgress"`
}

// DonationSummary is the fixed-shape dashboard view of a donation collection.
// Small/Medium/Large split donations at $50 and $200.
type DonationSummary struct {
	Total       int     `json:"total"`
	TotalAmount float64 `json:"totalAmount"`
	Average     float64 `json:"average"`
	Recent      int     `json:"recent"`
	TopCampaign string  `json:"topCampaign"`
	Small       int     `json:"small"`
	Medium      int     `json:"medium"`
	Large       int     `json:"large"`
}

// CampaignRank is one entry of a top-N ranking by donated amount.
type CampaignRank struct {
	ID            string  `json:"id,omitempty"`
	Name          string  `json:"name"`
	Amount        float64 `json:"amount"`
	DonationCount int     `json:"donationsCount"`
	Progress      float64 `json:"progress"`
}

// MonthBucket reports donations whose timestamp falls in [Start, Start+1month).
type MonthBucket struct {
	Month  string  `json:"month"`
	Count  int     `json:"donations"`
	Amount float64 `json:"amount"`
}

// Progress returns collected/target as a percentage. The raw value may exceed
// 100 for overfunded campaigns; a zero target yields 0 rather than dividing.
func Progress(collected, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return collected / target * 100
}

// ClampedProgress bounds Progress to [0, 100] for display.
func ClampedProgress(collected, target float64) float64 {
	p := Progress(collected, target)
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// IsCompleted reports whether a campaign reached its target. Campaigns with a
// zero target only count once they have collected anything at all.
func IsCompleted(c Campaign) bool {
	if c.TargetAmount <= 0 {
		return c.CollectedAmount > 0
	}
	return c.CollectedAmount >= c.TargetAmount
}

// IsOngoing reports an active campaign that has not completed yet.
func IsOngoing(c Campaign) bool {
	return c.IsActive && !IsCompleted(c)
}

// IsRunning reports an active campaign whose end date has not passed. A
// missing end date never expires.
func IsRunning(c Campaign, now time.Time) bool {
	if !c.IsActive {
		return false
	}
	return c.EndDate == nil || c.EndDate.After(now)
}

func SummarizeCampaigns(campaigns []Campaign) CampaignSummary {
	s := CampaignSummary{Total: len(campaigns)}
	var progressSum float64
	for _, c := range campaigns {
		if c.IsActive {
			s.Active++
		}
		if IsCompleted(c) {
			s.Completed++
		}
		s.TotalTarget += c.TargetAmount
		s.TotalCollected += c.CollectedAmount
		progressSum += ClampedProgress(c.CollectedAmount, c.TargetAmount)
	}
	if s.Total > 0 {
		s.AverageProgress = progressSum / float64(s.Total)
	}
	return s
}

func SummarizeDonations(donations []Donation, now time.Time) DonationSummary {
	s := DonationSummary{Total: len(donations)}
	weekAgo := now.AddDate(0, 0, -7)
	byCampaign := map[string]float64{}
	for _, d := range donations {
		s.TotalAmount += d.Amount
		if d.CreatedAt.After(weekAgo) {
			s.Recent++
		}
		if d.CampaignName != "" {
			byCampaign[d.CampaignName] += d.Amount
		}
		switch {
		case d.Amount < 50:
			s.Small++
		case d.Amount <= 200:
			s.Medium++
		default:
			s.Large++
		}
	}
	if s.Total > 0 {
		s.Average = s.TotalAmount / float64(s.Total)
	}
	best := math.Inf(-1)
	names := make([]string, 0, len(byCampaign))
	for name := range byCampaign {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if byCampaign[name] > best {
			best = byCampaign[name]
			s.TopCampaign = name
		}
	}
	return s
}

// Trend compares the donation volume of the trailing 30 days against the 30
// days before that. A silent previous window with recent activity reads as
// +100% rather than a division by zero.
func Trend(donations []Donation, now time.Time) float64 {
	recentStart := now.AddDate(0, 0, -30)
	previousStart := now.AddDate(0, 0, -60)
	var recent, previous float64
	for _, d := range donations {
		switch {
		case !d.CreatedAt.Before(recentStart):
			recent += d.Amount
		case !d.CreatedAt.Before(previousStart):
			previous += d.Amount
		}
	}
	return windowChange(recent, previous)
}

// MonthlyTrend compares the calendar month containing now with the month
// before it, using the same zero-previous rule as Trend.
func MonthlyTrend(donations []Donation, now time.Time) float64 {
	thisMonth := startOfMonth(now)
	lastMonth := thisMonth.AddDate(0, -1, 0)
	var current, previous float64
	for _, d := range donations {
		switch {
		case !d.CreatedAt.Before(thisMonth):
			current += d.Amount
		case !d.CreatedAt.Before(lastMonth):
			previous += d.Amount
		}
	}
	return windowChange(current, previous)
}

func windowChange(recent, previous float64) float64 {
	if previous == 0 {
		if recent > 0 {
			return 100
		}
		return 0
	}
	return (recent - previous) / previous * 100
}

// MonthlyBuckets partitions donations into the trailing `months` calendar
// months, oldest first. Each donation is counted in the bucket whose range
// [monthStart, nextMonthStart) contains its timestamp.
func MonthlyBuckets(donations []Donation, now time.Time, months int) []MonthBucket {
	if months <= 0 {
		return []MonthBucket{}
	}
	buckets := make([]MonthBucket, 0, months)
	for i := months - 1; i >= 0; i-- {
		start := startOfMonth(now).AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)
		bucket := MonthBucket{Month: start.Format("Jan")}
		for _, d := range donations {
			if !d.CreatedAt.Before(start) && d.CreatedAt.Before(end) {
				bucket.Count++
				bucket.Amount += d.Amount
			}
		}
		buckets = append(buckets, bucket)
	}
	return buckets
}

// TopCampaigns ranks campaigns by the amount donated to them within the given
// donation collection, descending, ties keeping campaign input order.
func TopCampaigns(campaigns []Campaign, donations []Donation, n int) []CampaignRank {
	ranks := make([]CampaignRank, 0, len(campaigns))
	for _, c := range campaigns {
		rank := CampaignRank{ID: c.ID, Name: c.Name}
		if rank.Name == "" {
			rank.Name = "Untitled"
		}
		for _, d := range donations {
			if d.CampaignID == c.ID {
				rank.Amount += d.Amount
				rank.DonationCount++
			}
		}
		rank.Progress = Progress(rank.Amount, c.TargetAmount)
		ranks = append(ranks, rank)
	}
	return topN(ranks, n)
}

// RankDonatedCampaigns builds a top-N ranking from donations alone, grouping
// by the referenced campaign. Donations whose campaign is gone are skipped.
func RankDonatedCampaigns(donations []Donation, n int) []CampaignRank {
	order := []string{}
	byID := map[string]*CampaignRank{}
	for _, d := range donations {
		if d.CampaignID == "" {
			continue
		}
		rank, ok := byID[d.CampaignID]
		if !ok {
			name := d.CampaignName
			if name == "" {
				name = "Unknown"
			}
			rank = &CampaignRank{ID: d.CampaignID, Name: name}
			byID[d.CampaignID] = rank
			order = append(order, d.CampaignID)
		}
		rank.Amount += d.Amount
		rank.DonationCount++
	}
	ranks := make([]CampaignRank, 0, len(order))
	for _, id := range order {
		ranks = append(ranks, *byID[id])
	}
	return topN(ranks, n)
}

func topN(ranks []CampaignRank, n int) []CampaignRank {
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Amount > ranks[j].Amount
	})
	if n >= 0 && len(ranks) > n {
		ranks = ranks[:n]
	}
	return ranks
}

// Backers counts distinct donor users in a donation collection.
func Backers(donations []Donation) int {
	seen := map[string]bool{}
	for _, d := range donations {
		if d.UserID != "" {
			seen[d.UserID] = true
		}
	}
	return len(seen)
}

// CampaignsSupported counts distinct campaigns a donation collection touches.
func CampaignsSupported(donations []Donation) int {
	seen := map[string]bool{}
	for _, d := range donations {
		if d.CampaignID != "" {
			seen[d.CampaignID] = true
		}
	}
	return len(seen)
}

// MonthlyDonationCount counts donations made in the calendar month of now.
func MonthlyDonationCount(donations []Donation, now time.Time) int {
	thisMonth := startOfMonth(now)
	count := 0
	for _, d := range donations {
		if !d.CreatedAt.Before(thisMonth) {
			count++
		}
	}
	return count
}

// DonationStreak is capped at 7 for display.
func DonationStreak(donations []Donation) int {
	if len(donations) > 7 {
		return 7
	}
	return len(donations)
}

// ImpactScore scores a donor: $100 donated is worth 100 points (capped), each
// donation adds 5 points of consistency bonus up to 50.
func ImpactScore(totalAmount float64, totalDonations int) int {
	base := totalAmount / 100
	if base > 100 {
		base = 100
	}
	bonus := float64(totalDonations * 5)
	if bonus > 50 {
		bonus = 50
	}
	return int(math.Round(base + bonus))
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
