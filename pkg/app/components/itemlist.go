package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kerbaras/starwarspedia/pkg/app/styles"
	"github.com/kerbaras/starwarspedia/pkg/data"
)

// ItemList is a selectable, filterable list of summary records. Only the
// rows that fit in Height are rendered.
type ItemList struct {
	Items         []data.SummaryRecord
	SelectedIndex int
	Width         int
	Height        int

	filter  string
	visible []int
}

func NewItemList() *ItemList {
	return &ItemList{
		Items:  []data.SummaryRecord{},
		Width:  80,
		Height: 20,
	}
}

func (l *ItemList) SetItems(items []data.SummaryRecord) {
	l.Items = items
	l.applyFilter()
}

// SetFilter keeps only records whose name or subtitle contains text,
// case-insensitively.
func (l *ItemList) SetFilter(text string) {
	l.filter = strings.ToLower(strings.TrimSpace(text))
	l.applyFilter()
}

func (l *ItemList) Filter() string { return l.filter }

func (l *ItemList) applyFilter() {
	l.visible = l.visible[:0]
	for i, item := range l.Items {
		if l.filter == "" ||
			strings.Contains(strings.ToLower(item.Name), l.filter) ||
			strings.Contains(strings.ToLower(item.Subtitle), l.filter) {
			l.visible = append(l.visible, i)
		}
	}
	l.clamp()
}

func (l *ItemList) clamp() {
	if l.SelectedIndex >= len(l.visible) {
		l.SelectedIndex = len(l.visible) - 1
	}
	if l.SelectedIndex < 0 {
		l.SelectedIndex = 0
	}
}

func (l *ItemList) Len() int { return len(l.visible) }

func (l *ItemList) Next() {
	if len(l.visible) == 0 {
		return
	}
	l.SelectedIndex++
	if l.SelectedIndex >= len(l.visible) {
		l.SelectedIndex = 0
	}
}

func (l *ItemList) Prev() {
	if len(l.visible) == 0 {
		return
	}
	l.SelectedIndex--
	if l.SelectedIndex < 0 {
		l.SelectedIndex = len(l.visible) - 1
	}
}

// Select moves the selection to n, clamped to the visible rows.
func (l *ItemList) Select(n int) {
	l.SelectedIndex = n
	l.clamp()
}

func (l *ItemList) Selected() *data.SummaryRecord {
	if len(l.visible) == 0 {
		return nil
	}
	return &l.Items[l.visible[l.SelectedIndex]]
}

// window returns the range of visible rows that keeps the selection on screen.
func (l *ItemList) window() (int, int) {
	rows := max(l.Height, 1)
	start := 0
	if l.SelectedIndex >= rows {
		start = l.SelectedIndex - rows + 1
	}
	end := min(start+rows, len(l.visible))
	return start, end
}

// View renders the list. reveal in [0, 1] drives the slide-in: rows start
// pushed down and settle into place as reveal reaches 1.
func (l *ItemList) View(reveal float64) string {
	if len(l.visible) == 0 {
		msg := "Nothing here"
		if l.filter != "" {
			msg = fmt.Sprintf("No match for %q", l.filter)
		}
		return lipgloss.Place(l.Width, min(l.Height, 5), lipgloss.Center, lipgloss.Center, styles.MutedStyle.Render(msg))
	}

	var b strings.Builder
	offset := int(float64(min(l.Height, 6)) * (1 - reveal))
	b.WriteString(strings.Repeat("\n", max(offset, 0)))

	start, end := l.window()
	for i := start; i < end; i++ {
		item := l.Items[l.visible[i]]
		if i == l.SelectedIndex {
			b.WriteString(styles.SelectedStyle.Render("> " + item.Name))
		} else {
			b.WriteString("  " + styles.TextStyle.Render(item.Name))
		}
		if item.Subtitle != "" {
			b.WriteString(styles.MutedStyle.Render("  " + item.Subtitle))
		}
		b.WriteString("\n")
	}
	if len(l.visible) > end-start {
		b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("%d-%d of %d", start+1, end, len(l.visible))))
		b.WriteString("\n")
	}
	return b.String()
}
