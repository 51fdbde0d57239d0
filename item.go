package tabstrip

// Item is a single navigation tab. ID must be unique and stable across
// re-renders; order is significant.
type Item struct {
	ID    string
	Label string
}

// normalizeItems returns a copy of items with empty IDs and duplicate IDs
// removed (the first occurrence wins) and blank labels replaced by the ID.
// The IDs that were dropped are returned so the caller can report them.
func normalizeItems(items []Item) ([]Item, []string) {
	out := make([]Item, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	var dropped []string
	for _, item := range items {
		if item.ID == "" {
			dropped = append(dropped, item.ID)
			continue
		}
		if _, dup := seen[item.ID]; dup {
			dropped = append(dropped, item.ID)
			continue
		}
		seen[item.ID] = struct{}{}
		if item.Label == "" {
			item.Label = item.ID
		}
		out = append(out, item)
	}
	return out, dropped
}

func indexOf(items []Item, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func labels(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Label
	}
	return out
}
