package data

import (
	"encoding/json"
	"fmt"
	"time"
)

type SnapshotKind string

const (
	SnapshotCategory SnapshotKind = "category"
	SnapshotItem     SnapshotKind = "item"
)

// Snapshot is the saved presentation state of one screen, keyed by the
// screen's host lifecycle key. Exactly one of Items and Detail is set.
type Snapshot struct {
	Host    string         `json:"host"`
	Kind    SnapshotKind   `json:"kind"`
	Items   *CategoryItems `json:"items,omitempty"`
	Detail  *ItemDetail    `json:"detail,omitempty"`
	Scroll  int            `json:"scroll,omitempty"`
	SavedAt time.Time      `json:"saved_at"`
}

func NewCategorySnapshot(host string, items *CategoryItems, scroll int) *Snapshot {
	return &Snapshot{
		Host:    host,
		Kind:    SnapshotCategory,
		Items:   items,
		Scroll:  clampScroll(scroll),
		SavedAt: time.Now().UTC(),
	}
}

func NewItemSnapshot(host string, detail *ItemDetail, scroll int) *Snapshot {
	return &Snapshot{
		Host:    host,
		Kind:    SnapshotItem,
		Detail:  detail,
		Scroll:  clampScroll(scroll),
		SavedAt: time.Now().UTC(),
	}
}

// HasPayload reports whether the snapshot carries loaded data.
func (s *Snapshot) HasPayload() bool {
	if s == nil {
		return false
	}
	switch s.Kind {
	case SnapshotCategory:
		return s.Items != nil
	case SnapshotItem:
		return s.Detail != nil
	}
	return false
}

// Encode serializes the snapshot into an opaque byte payload.
func (s *Snapshot) Encode() ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("nil snapshot")
	}
	return json.Marshal(s)
}

// DecodeSnapshot restores a snapshot produced by Encode. A missing scroll
// offset decodes as 0 and negative offsets are clamped to 0.
func DecodeSnapshot(b []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	switch s.Kind {
	case SnapshotCategory, SnapshotItem:
	default:
		return nil, fmt.Errorf("unknown snapshot kind %q", s.Kind)
	}
	s.Scroll = clampScroll(s.Scroll)
	return &s, nil
}

func clampScroll(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
