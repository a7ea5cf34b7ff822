package profiles

import (
	"encoding/json"
	"strings"
)

// HistorySeparator joins order history entries in the stored form.
const HistorySeparator = "|||"

// OrderHistory lists order records most-recent-first. It is stored as a
// single string joined by HistorySeparator.
type OrderHistory []string

// Prepend returns a new history with entry in front.
func (h OrderHistory) Prepend(entry string) OrderHistory {
	out := make(OrderHistory, 0, len(h)+1)
	out = append(out, entry)
	return append(out, h...)
}

func (h OrderHistory) String() string {
	return strings.Join(h, HistorySeparator)
}

func (h OrderHistory) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON accepts the joined string form; empty parts are dropped.
// A JSON array of strings is accepted as well.
func (h *OrderHistory) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*h = nil
		return nil
	}

	if len(b) > 0 && b[0] == '[' {
		var list []string
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		*h = compact(list)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*h = ParseHistory(s)
	return nil
}

// ParseHistory splits a joined history string.
func ParseHistory(s string) OrderHistory {
	if s == "" {
		return nil
	}
	return compact(strings.Split(s, HistorySeparator))
}

func compact(parts []string) OrderHistory {
	var out OrderHistory
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
