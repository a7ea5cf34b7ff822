package loyalty

import "github.com/dmitrijs2005/pchela/internal/profiles"

// PointsPerDiscount is how many points earn one discount.
const PointsPerDiscount = 10

// HistoryLine is one numbered order history entry.
type HistoryLine struct {
	Number int
	Text   string
}

// Summary is the derived loyalty view of a profile.
type Summary struct {
	DiscountsEarned int
	PointsToNext    int
	ProgressPercent int
	History         []HistoryLine
}

// Summarize derives discount progress and numbers the history, newest entry
// carrying the profile's TotalOrders.
func Summarize(p profiles.Profile) Summary {
	points := max(p.Points, 0)
	rem := points % PointsPerDiscount

	s := Summary{
		DiscountsEarned: points / PointsPerDiscount,
		PointsToNext:    PointsPerDiscount - rem,
		ProgressPercent: rem * 100 / PointsPerDiscount,
	}
	for i, entry := range p.OrderHistory {
		s.History = append(s.History, HistoryLine{Number: p.TotalOrders - i, Text: entry})
	}
	return s
}
