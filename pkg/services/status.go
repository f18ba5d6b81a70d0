package services

import "time"

const (
	HideDelay         = 5000 * time.Millisecond
	AnimationDuration = 300 * time.Millisecond
)

// StatusMessage is the state of the status banner. Dismissible messages
// expire HideDelay after being shown.
type StatusMessage struct {
	now         func() time.Time
	text        string
	visible     bool
	dismissible bool
	expiresAt   time.Time
	seq         int
}

func NewStatusMessage(now func() time.Time) *StatusMessage {
	if now == nil {
		now = time.Now
	}
	return &StatusMessage{now: now}
}

func (s *StatusMessage) Show(text string) {
	s.show(text, true)
	s.expiresAt = s.now().Add(HideDelay)
}

func (s *StatusMessage) ShowPersistent(text string) {
	s.show(text, false)
	s.expiresAt = time.Time{}
}

func (s *StatusMessage) show(text string, dismissible bool) {
	s.text = text
	s.visible = true
	s.dismissible = dismissible
	s.seq++
}

// Dismiss hides a dismissible message. It reports whether anything was hidden.
func (s *StatusMessage) Dismiss() bool {
	if !s.Visible() || !s.dismissible {
		return false
	}
	s.Hide()
	return true
}

func (s *StatusMessage) Hide() {
	s.visible = false
	s.expiresAt = time.Time{}
}

func (s *StatusMessage) Visible() bool {
	if !s.visible {
		return false
	}
	if !s.expiresAt.IsZero() && !s.now().Before(s.expiresAt) {
		s.Hide()
		return false
	}
	return true
}

func (s *StatusMessage) Text() string { return s.text }

func (s *StatusMessage) Dismissible() bool { return s.dismissible }

// Seq increases every time a message is shown, so a scheduled expiry can
// tell whether it still refers to the current message.
func (s *StatusMessage) Seq() int { return s.seq }

// Expire hides the message if seq is still current and its deadline passed.
func (s *StatusMessage) Expire(seq int) bool {
	if seq != s.seq {
		return false
	}
	wasVisible := s.visible
	return wasVisible && !s.Visible()
}

// Remaining is the time left before a dismissible message hides itself.
func (s *StatusMessage) Remaining() time.Duration {
	if !s.Visible() || s.expiresAt.IsZero() {
		return 0
	}
	return s.expiresAt.Sub(s.now())
}
