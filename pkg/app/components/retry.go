package components

import (
	"time"

	"github.com/kerbaras/starwarspedia/pkg/app/styles"
)

// RetryButton is the retry control shown after a failed load.
type RetryButton struct {
	anim *Animation
	seen int
}

func NewRetryButton() *RetryButton {
	return &RetryButton{anim: RetryAnimation()}
}

// Sync restarts the attention animation when attention has been bumped.
func (r *RetryButton) Sync(attention int, now time.Time) bool {
	if attention == r.seen {
		return false
	}
	r.seen = attention
	r.anim.Start(now)
	return true
}

func (r *RetryButton) Animating(now time.Time) bool { return r.anim.Active(now) }

func (r *RetryButton) View(now time.Time) string {
	const label = "↻ Retry (r)"
	phase, frac := r.anim.At(now)
	switch {
	case phase == "fade" && frac < 0.5:
		return styles.RetryFadeStyle.Render(label)
	case phase == "pulse" && r.anim.Active(now) && frac < 0.5:
		return styles.RetryPulseStyle.Render(label)
	}
	return styles.RetryStyle.Render(label)
}
