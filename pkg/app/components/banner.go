package components

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kerbaras/starwarspedia/pkg/app/styles"
	"github.com/kerbaras/starwarspedia/pkg/services"
)

// BannerExpiredMsg is sent when a banner message may have reached its
// auto-hide deadline.
type BannerExpiredMsg struct {
	Banner *Banner
	Seq    int
}

// Banner renders a StatusMessage and slides it in when a new message shows.
type Banner struct {
	status  *services.StatusMessage
	slide   *Animation
	seenSeq int
	Width   int
}

func NewBanner(status *services.StatusMessage) *Banner {
	return &Banner{
		status: status,
		slide:  SlideInAnimation(services.AnimationDuration),
		Width:  80,
	}
}

func (b *Banner) Status() *services.StatusMessage { return b.status }

// Sync starts the slide-in for a newly shown message and schedules its
// expiry check.
func (b *Banner) Sync(now time.Time) tea.Cmd {
	seq := b.status.Seq()
	if seq == b.seenSeq || !b.status.Visible() {
		return nil
	}
	b.seenSeq = seq
	b.slide.Start(now)

	remaining := b.status.Remaining()
	if remaining <= 0 {
		return nil
	}
	return tea.Tick(remaining, func(time.Time) tea.Msg {
		return BannerExpiredMsg{Banner: b, Seq: seq}
	})
}

// HandleExpired hides the message if msg still refers to it.
func (b *Banner) HandleExpired(msg BannerExpiredMsg) bool {
	if msg.Banner != b {
		return false
	}
	return b.status.Expire(msg.Seq)
}

func (b *Banner) Dismiss() bool { return b.status.Dismiss() }

func (b *Banner) Animating(now time.Time) bool { return b.slide.Active(now) }

func (b *Banner) View(now time.Time) string {
	if !b.status.Visible() {
		return ""
	}
	text := b.status.Text()
	if b.status.Dismissible() {
		text += "  (x to dismiss)"
	}
	_, frac := b.slide.At(now)
	shift := int(float64(b.Width/4) * (1 - frac))
	return strings.Repeat(" ", shift) + styles.BannerStyle.Render(text)
}
