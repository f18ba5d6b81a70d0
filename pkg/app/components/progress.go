package components

import (
	"fmt"
	"strings"

	"github.com/kerbaras/starwarspedia/pkg/app/styles"
	"github.com/kerbaras/starwarspedia/pkg/services"
)

// ProgressTracker shows the latest state of each running export.
type ProgressTracker struct {
	exports map[string]*services.ExportProgress
	width   int
}

func NewProgressTracker(width int) *ProgressTracker {
	return &ProgressTracker{
		exports: make(map[string]*services.ExportProgress),
		width:   width,
	}
}

func (p *ProgressTracker) SetWidth(width int) { p.width = width }

// Update records progress. Per-item errors are shown without replacing the
// export's overall progress.
func (p *ProgressTracker) Update(progress services.ExportProgress) {
	if progress.Status == "error" && progress.Item != "" {
		if cur, ok := p.exports[progress.Category]; ok {
			cur.Current = progress.Current
			cur.Error = progress.Error
			return
		}
	}
	prog := progress
	p.exports[progress.Category] = &prog
}

func (p *ProgressTracker) Remove(category string) {
	delete(p.exports, category)
}

func (p *ProgressTracker) Clear() {
	p.exports = make(map[string]*services.ExportProgress)
}

func (p *ProgressTracker) HasActive() bool {
	for _, prog := range p.exports {
		if prog.Status != "complete" && prog.Status != "error" {
			return true
		}
	}
	return false
}

func (p *ProgressTracker) View() string {
	if len(p.exports) == 0 {
		return ""
	}

	var b strings.Builder
	for category, progress := range p.exports {
		b.WriteString(styles.TextStyle.Render(fmt.Sprintf("Export %s", category)))
		b.WriteString("\n")

		statusText := progress.Status
		if progress.Total > 0 && progress.Status != "complete" {
			percentage := float64(progress.Current) / float64(progress.Total) * 100
			statusText = fmt.Sprintf("%s (%d/%d items - %.0f%%)",
				progress.Status, progress.Current, progress.Total, percentage)
			b.WriteString(renderProgressBar(progress.Current, progress.Total, p.width-4))
			b.WriteString("\n")
		}
		if progress.Path != "" {
			statusText = fmt.Sprintf("%s: %s", statusText, progress.Path)
		}
		b.WriteString(styles.StatusStyle(progress.Status).Render(statusText))
		b.WriteString("\n")

		if progress.Error != nil {
			b.WriteString(styles.StatusError.Render(fmt.Sprintf("Error: %s", progress.Error)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderProgressBar(current, total, width int) string {
	if total == 0 || width <= 0 {
		return ""
	}

	filled := int(float64(current) / float64(total) * float64(width))
	filled = min(max(filled, 0), width)

	return styles.ProgressBarStyle.Render(strings.Repeat("█", filled)) +
		styles.ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// SimpleProgress renders a simple progress bar
func SimpleProgress(current, total, width int) string {
	return renderProgressBar(current, total, width)
}
