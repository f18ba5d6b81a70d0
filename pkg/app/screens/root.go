package screens

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/kerbaras/starwarspedia/pkg/app/components"
	"github.com/kerbaras/starwarspedia/pkg/app/styles"
	"github.com/kerbaras/starwarspedia/pkg/data"
	"github.com/kerbaras/starwarspedia/pkg/swapi"
)

// RootScreen hosts one category tab at a time and an optional item screen
// on top of it. Leaving a tab detaches its screen and stashes its snapshot;
// coming back builds a new screen from that snapshot.
type RootScreen struct {
	deps  *Deps
	store SnapshotStore

	categories []swapi.Category
	active     int
	tab        *CategoryScreen
	item       *ItemScreen
	snapshots  map[string]*data.Snapshot

	loading  map[string]bool
	spinner  spinner.Model
	spinning bool
	framing  bool

	width  int
	height int
}

// NewRootScreen builds the root screen. store may be nil; restored seeds the
// snapshot memory, usually from the previous run.
func NewRootScreen(deps *Deps, store SnapshotStore, restored []*data.Snapshot) *RootScreen {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	r := &RootScreen{
		deps:       deps,
		store:      store,
		categories: swapi.Categories,
		snapshots:  make(map[string]*data.Snapshot),
		loading:    make(map[string]bool),
		spinner:    s,
	}
	for _, snap := range restored {
		if snap.HasPayload() {
			r.snapshots[snap.Host] = snap
		}
	}
	return r
}

func (r *RootScreen) Init() tea.Cmd {
	return r.openTab(r.active)
}

func (r *RootScreen) onLoading(hostKey string) func(bool) {
	return func(loading bool) {
		if loading {
			r.loading[hostKey] = true
		} else {
			delete(r.loading, hostKey)
		}
	}
}

// spin starts the spinner tick chain if something is loading and the chain
// is not already running.
func (r *RootScreen) spin() tea.Cmd {
	if len(r.loading) == 0 || r.spinning {
		return nil
	}
	r.spinning = true
	return r.spinner.Tick
}

// frame starts the animation frame chain if a screen is animating and the
// chain is not already running. Only FrameMsg re-arms it.
func (r *RootScreen) frame() tea.Cmd {
	if r.framing || !r.animating() {
		return nil
	}
	r.framing = true
	return components.Frame()
}

func (r *RootScreen) openTab(i int) tea.Cmd {
	if r.tab != nil {
		r.stash(r.tab.Snapshot())
		r.tab.Detach()
		delete(r.loading, CategoryHostKey(r.tab.Category()))
	}
	r.active = i
	category := r.categories[i]
	hostKey := CategoryHostKey(category)
	r.tab = NewCategoryScreen(r.deps, category, r.snapshots[hostKey], r.onLoading(hostKey))
	r.deps.log().Debug("open tab", zap.String("category", category.Key()))

	cmds := []tea.Cmd{r.tab.Init(), r.spin()}
	if r.width > 0 {
		r.tab.Update(r.innerSize())
	}
	return tea.Batch(append(cmds, r.frame())...)
}

func (r *RootScreen) openItem(msg OpenItemMsg) tea.Cmd {
	hostKey := ItemHostKey(msg.Category, msg.ID)
	r.item = NewItemScreen(r.deps, msg.Category, msg.ID, r.snapshots[hostKey], r.onLoading(hostKey))
	cmd := r.item.Init()
	if r.width > 0 {
		r.item.Update(r.innerSize())
	}
	return tea.Batch(cmd, r.spin(), r.frame())
}

func (r *RootScreen) closeItem() {
	if r.item == nil {
		return
	}
	hostKey := r.item.host.Key()
	r.item.Close()
	delete(r.snapshots, hostKey)
	delete(r.loading, hostKey)
	r.item = nil
}

// innerSize is the space left to a screen below the tab row.
func (r *RootScreen) innerSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: r.width, Height: r.height - 2}
}

func (r *RootScreen) stash(snap *data.Snapshot) {
	if snap != nil {
		r.snapshots[snap.Host] = snap
	}
}

// quit saves every snapshot, shuts the loader down and exits.
func (r *RootScreen) quit() tea.Cmd {
	if r.tab != nil {
		r.stash(r.tab.Snapshot())
		r.tab.Detach()
	}
	if r.item != nil {
		r.stash(r.item.Snapshot())
		r.item.Detach()
	}
	if r.store != nil {
		for _, snap := range r.snapshots {
			if err := r.store.SaveSnapshot(snap); err != nil {
				r.deps.log().Warn("save snapshot", zap.String("host", snap.Host), zap.Error(err))
			}
		}
	}
	if r.deps.Loader != nil {
		r.deps.Loader.Close()
	}
	return tea.Quit
}

func (r *RootScreen) sync() tea.Cmd {
	cmds := []tea.Cmd{r.tab.Sync()}
	if r.item != nil {
		cmds = append(cmds, r.item.Sync())
	}
	cmds = append(cmds, r.spin(), r.frame())
	return tea.Batch(cmds...)
}

func (r *RootScreen) animating() bool {
	return r.tab.Animating() || (r.item != nil && r.item.Animating())
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		r.tab.Update(r.innerSize())
		if r.item != nil {
			r.item.Update(r.innerSize())
		}
		return r, nil

	case DeliverMsg:
		msg()
		return r, r.sync()

	case spinner.TickMsg:
		if len(r.loading) == 0 {
			r.spinning = false
			return r, nil
		}
		var cmd tea.Cmd
		r.spinner, cmd = r.spinner.Update(msg)
		return r, cmd

	case components.FrameMsg:
		if r.animating() {
			return r, components.Frame()
		}
		r.framing = false
		return r, nil

	case components.BannerExpiredMsg:
		r.tab.Update(msg)
		if r.item != nil {
			r.item.Update(msg)
		}
		return r, nil

	case OpenItemMsg:
		r.closeItem()
		return r, r.openItem(msg)

	case CloseItemMsg:
		r.closeItem()
		return r, nil

	case tea.KeyMsg:
		if key.Matches(msg, Keys.Quit) && !r.tab.Filtering() {
			return r, r.quit()
		}
		if r.item != nil {
			_, cmd := r.item.Update(msg)
			return r, tea.Batch(cmd, r.spin(), r.frame())
		}
		if !r.tab.Filtering() {
			switch {
			case key.Matches(msg, Keys.NextTab):
				return r, r.openTab((r.active + 1) % len(r.categories))
			case key.Matches(msg, Keys.PrevTab):
				return r, r.openTab((r.active + len(r.categories) - 1) % len(r.categories))
			case key.Matches(msg, Keys.TabIndex):
				if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(r.categories) && n-1 != r.active {
					return r, r.openTab(n - 1)
				}
				return r, nil
			}
		}
	}

	if r.item != nil {
		_, cmd := r.item.Update(msg)
		return r, tea.Batch(cmd, r.frame())
	}
	_, cmd := r.tab.Update(msg)
	return r, tea.Batch(cmd, r.spin(), r.frame())
}

func (r *RootScreen) View() string {
	status := ""
	if len(r.loading) > 0 {
		status = " " + r.spinner.View()
	}

	if r.item != nil {
		return fmt.Sprintf("%s%s\n\n%s", styles.MutedStyle.Render(r.tab.Category().Label()), status, r.item.View())
	}
	return fmt.Sprintf("%s%s\n\n%s", r.renderTabs(), status, r.tab.View())
}

func (r *RootScreen) renderTabs() string {
	tabs := make([]string, len(r.categories))
	for i, c := range r.categories {
		if i == r.active {
			tabs[i] = styles.ActiveTabStyle.Render(c.Label())
		} else {
			tabs[i] = styles.InactiveTabStyle.Render(c.Label())
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// Tab returns the active category screen.
func (r *RootScreen) Tab() *CategoryScreen { return r.tab }

// Item returns the open item screen, or nil.
func (r *RootScreen) Item() *ItemScreen { return r.item }

// Snapshot returns the stashed snapshot for a host key.
func (r *RootScreen) Snapshot(hostKey string) *data.Snapshot { return r.snapshots[hostKey] }

func (r *RootScreen) LoadingCount() int { return len(r.loading) }
