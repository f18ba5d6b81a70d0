package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	FadeInDuration  = 300 * time.Millisecond
	PulseDuration   = time.Second
	PulseRepeat     = 3
	SlideInDuration = 400 * time.Millisecond

	// FrameInterval is how often running animations are redrawn.
	FrameInterval = 50 * time.Millisecond
)

// Phase is one step of an animation, played Repeat times back to back.
type Phase struct {
	Name     string
	Duration time.Duration
	Repeat   int
}

func (p Phase) total() time.Duration {
	return p.Duration * time.Duration(max(p.Repeat, 1))
}

// Animation plays phases in order from a start time. It holds no timers;
// callers ask where it is at a given instant.
type Animation struct {
	phases  []Phase
	start   time.Time
	running bool
}

func NewAnimation(phases ...Phase) *Animation {
	return &Animation{phases: phases}
}

// RetryAnimation fades the retry control in, then pulses it.
func RetryAnimation() *Animation {
	return NewAnimation(
		Phase{Name: "fade", Duration: FadeInDuration, Repeat: 1},
		Phase{Name: "pulse", Duration: PulseDuration, Repeat: PulseRepeat},
	)
}

func SlideInAnimation(d time.Duration) *Animation {
	return NewAnimation(Phase{Name: "slide", Duration: d, Repeat: 1})
}

func (a *Animation) Start(now time.Time) {
	a.start = now
	a.running = true
}

func (a *Animation) Stop() { a.running = false }

func (a *Animation) Duration() time.Duration {
	var d time.Duration
	for _, p := range a.phases {
		d += p.total()
	}
	return d
}

// Active reports whether the animation is still playing at now.
func (a *Animation) Active(now time.Time) bool {
	return a.running && now.Sub(a.start) < a.Duration()
}

// At returns the phase playing at now and the progress through the current
// repetition of it, in [0, 1]. A finished or stopped animation reports its
// last phase at 1.
func (a *Animation) At(now time.Time) (string, float64) {
	if len(a.phases) == 0 {
		return "", 1
	}
	last := a.phases[len(a.phases)-1]
	if !a.Active(now) {
		return last.Name, 1
	}
	elapsed := now.Sub(a.start)
	for _, p := range a.phases {
		if elapsed < p.total() {
			within := elapsed % p.Duration
			return p.Name, float64(within) / float64(p.Duration)
		}
		elapsed -= p.total()
	}
	return last.Name, 1
}

// FrameMsg asks the screens to redraw running animations.
type FrameMsg time.Time

func Frame() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg { return FrameMsg(t) })
}
