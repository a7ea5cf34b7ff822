package cli

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/pchela/internal/loyalty"
	"github.com/dmitrijs2005/pchela/internal/profiles"
)

const dateLayout = "02.01.2006"

// writeProfile renders the profile card.
func writeProfile(w io.Writer, p profiles.Profile, s loyalty.Summary) {
	fmt.Fprintf(w, "%s\n", p.Username)
	fmt.Fprintf(w, "  Points:          %d\n", p.Points)
	fmt.Fprintf(w, "  Orders:          %d\n", p.TotalOrders)
	fmt.Fprintf(w, "  Discounts:       %d\n", s.DiscountsEarned)
	fmt.Fprintf(w, "  Next discount:   %d points %s\n", s.PointsToNext, progressBar(s.ProgressPercent))
	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(w, "  Member since:    %s\n", p.CreatedAt.Local().Format(dateLayout))
	}

	if p.HasCurrentOrder() {
		fmt.Fprintf(w, "  Current order:   %s\n", p.CurrentOrder)
	} else {
		fmt.Fprintf(w, "  Current order:   none\n")
	}

	if len(s.History) == 0 {
		fmt.Fprintf(w, "  No orders yet\n")
		return
	}
	fmt.Fprintf(w, "  History:\n")
	for _, h := range s.History {
		fmt.Fprintf(w, "    #%d %s\n", h.Number, h.Text)
	}
}

// progressBar draws ten cells, one per point towards the next discount.
func progressBar(percent int) string {
	filled := max(0, min(10, percent/10))
	bar := make([]rune, 10)
	for i := range bar {
		if i < filled {
			bar[i] = '#'
		} else {
			bar[i] = '.'
		}
	}
	return "[" + string(bar) + "]"
}
