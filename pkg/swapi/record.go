package swapi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kerbaras/starwarspedia/pkg/data"
)

type dialect int

const (
	dialectREST dialect = iota
	dialectGraphQL
)

func (f FieldSpec) key(d dialect) string {
	if d == dialectGraphQL {
		return f.GraphQL
	}
	return f.REST
}

// record is a raw SWAPI object decoded from either wire dialect.
type record map[string]any

// id returns the GraphQL id, or the trailing segment of the REST resource url.
func (r record) id() string {
	if id, ok := r["id"]; ok && id != nil {
		return formatValue(id)
	}
	u, _ := r["url"].(string)
	u = strings.TrimRight(u, "/")
	if i := strings.LastIndex(u, "/"); i >= 0 {
		return u[i+1:]
	}
	return u
}

func (r record) title(c Category, d dialect) string {
	info := c.info()
	key := info.titleREST
	if d == dialectGraphQL {
		key = info.titleGraphQL
	}
	return formatValue(r[key])
}

func (r record) ToSummary(c Category, d dialect) data.SummaryRecord {
	sub := c.info().subtitle
	subtitle := ""
	if v, ok := r[sub.key(d)]; ok && v != nil {
		subtitle = formatValue(v)
		if sub.Format != "" {
			subtitle = fmt.Sprintf(sub.Format, subtitle)
		}
	}
	return data.SummaryRecord{
		ID:       r.id(),
		Name:     r.title(c, d),
		Subtitle: subtitle,
	}
}

func (r record) ToDetail(c Category, d dialect) *data.ItemDetail {
	detail := &data.ItemDetail{
		Category: c.Key(),
		Label:    c.Label(),
		ID:       r.id(),
		Name:     r.title(c, d),
	}
	for _, f := range c.info().fields {
		v, ok := r[f.key(d)]
		if !ok {
			continue
		}
		detail.Fields = append(detail.Fields, data.Field{Label: f.Label, Value: formatValue(v)})
	}
	return detail
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "unknown"
	case string:
		return strings.ReplaceAll(val, "\r\n", "\n")
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, formatValue(item))
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		if name, ok := val["name"]; ok {
			return formatValue(name)
		}
		if title, ok := val["title"]; ok {
			return formatValue(title)
		}
		return ""
	default:
		return fmt.Sprint(val)
	}
}
