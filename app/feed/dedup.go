package feed

// Deduper computes the new-items delta against already-stored titles.
type Deduper struct{}

func NewDeduper() *Deduper {
	return &Deduper{}
}

// Run returns only items whose title is absent from the stored set.
// The set is built once per run; membership checks are O(1).
func (d *Deduper) Run(items []Item, storedTitles map[string]struct{}) []Item {
	fresh := make([]Item, 0, len(items))
	for _, item := range items {
		if _, exists := storedTitles[item.Title]; exists {
			continue
		}
		fresh = append(fresh, item)
	}
	return fresh
}
