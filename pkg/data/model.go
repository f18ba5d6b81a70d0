package data

// SummaryRecord is the lightweight list-view representation of an item.
type SummaryRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Subtitle string `json:"subtitle,omitempty"`
}

// CategoryItems is the normalized result of a list-all query.
type CategoryItems struct {
	Category string          `json:"category"` // category key, e.g. "film"
	Label    string          `json:"label"`    // display label, e.g. "Films"
	Items    []SummaryRecord `json:"items"`
}

func (c *CategoryItems) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

// Find returns the record with the given id, or nil.
func (c *CategoryItems) Find(id string) *SummaryRecord {
	if c == nil {
		return nil
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i]
		}
	}
	return nil
}

type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ItemDetail is the normalized result of a get-by-id query.
type ItemDetail struct {
	Category string  `json:"category"`
	Label    string  `json:"label"`
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Fields   []Field `json:"fields"`
}

// Value returns the value of the field with the given label.
func (d *ItemDetail) Value(label string) (string, bool) {
	if d == nil {
		return "", false
	}
	for _, f := range d.Fields {
		if f.Label == label {
			return f.Value, true
		}
	}
	return "", false
}
