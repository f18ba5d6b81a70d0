package screens

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/kerbaras/starwarspedia/pkg/data"
	"github.com/kerbaras/starwarspedia/pkg/loader"
	"github.com/kerbaras/starwarspedia/pkg/services"
	"github.com/kerbaras/starwarspedia/pkg/swapi"
)

// Deps are the collaborators shared by every screen.
type Deps struct {
	Loader       *loader.Loader
	Source       services.Source
	Connectivity services.Connectivity
	NewExporter  func() *services.Exporter // nil disables export
	Now          func() time.Time
	Log          *zap.Logger
}

func (d *Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d *Deps) log() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

// SnapshotStore persists screen snapshots across runs.
type SnapshotStore interface {
	SaveSnapshot(s *data.Snapshot) error
}

func CategoryHostKey(c swapi.Category) string {
	return "category/" + c.Key()
}

func ItemHostKey(c swapi.Category, id string) string {
	return "item/" + c.Key() + "/" + id
}

// DeliverMsg carries a loader delivery onto the program's event loop.
type DeliverMsg func()

// Executor returns a loader executor that posts deliveries to the program.
// Replays are executed from inside Update, so the post must not block the
// event loop.
func Executor(send func(tea.Msg)) loader.Executor {
	return func(fn func()) { go send(DeliverMsg(fn)) }
}

type OpenItemMsg struct {
	Category swapi.Category
	ID       string
}

type CloseItemMsg struct{}
