package grpc

import (
	"time"

	"github.com/dmitrijs2005/pchela/internal/loyalty"
	"github.com/dmitrijs2005/pchela/internal/profiles"
	"google.golang.org/protobuf/types/known/structpb"
)

func profileToMap(p profiles.Profile) map[string]any {
	history := make([]any, 0, len(p.OrderHistory))
	for _, h := range p.OrderHistory {
		history = append(history, h)
	}
	return map[string]any{
		"id":              p.ID,
		"username":        p.Username,
		"points":          p.Points,
		"total_orders":    p.TotalOrders,
		"current_order":   p.CurrentOrder,
		"order_history":   history,
		"created_at":      formatTime(p.CreatedAt),
		"last_order_date": formatTime(p.LastOrderDate),
	}
}

func summaryToMap(s loyalty.Summary) map[string]any {
	history := make([]any, 0, len(s.History))
	for _, h := range s.History {
		history = append(history, map[string]any{"number": h.Number, "text": h.Text})
	}
	return map[string]any{
		"discounts_earned": s.DiscountsEarned,
		"points_to_next":   s.PointsToNext,
		"progress_percent": s.ProgressPercent,
		"history":          history,
	}
}

func itemToMap(it loyalty.Item) map[string]any {
	return map[string]any{"id": it.ID, "name": it.Name, "points": it.Points}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func stringField(in *structpb.Struct, name string) string {
	return in.GetFields()[name].GetStringValue()
}

func stringListField(in *structpb.Struct, name string) []string {
	values := in.GetFields()[name].GetListValue().GetValues()
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.GetStringValue())
	}
	return out
}
