package screens

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/kerbaras/starwarspedia/pkg/app/components"
	"github.com/kerbaras/starwarspedia/pkg/app/styles"
	"github.com/kerbaras/starwarspedia/pkg/data"
	"github.com/kerbaras/starwarspedia/pkg/loader"
	"github.com/kerbaras/starwarspedia/pkg/services"
	"github.com/kerbaras/starwarspedia/pkg/swapi"
)

// CategoryScreen lists every record of one category.
type CategoryScreen struct {
	deps     *Deps
	category swapi.Category
	host     *loader.Host
	ctrl     *services.Controller[data.CategoryItems]
	restored *data.Snapshot

	list      *components.ItemList
	banner    *components.Banner
	retry     *components.RetryButton
	slide     *components.Animation
	filter    textinput.Model
	filtering bool
	progress  *components.ProgressTracker
	exporting bool
	// cancelExport stops the running export, if any.
	cancelExport context.CancelFunc
	help      help.Model

	shown  *data.CategoryItems
	width  int
	height int
}

func NewCategoryScreen(deps *Deps, category swapi.Category, snapshot *data.Snapshot, onLoading func(bool)) *CategoryScreen {
	host := deps.Loader.Attach(CategoryHostKey(category))
	status := services.NewStatusMessage(deps.Now)
	ctrl := services.NewCategoryController(deps.Source, host, category, deps.Connectivity, services.WithStatus(status))
	if onLoading != nil {
		ctrl.OnLoading(onLoading)
	}

	ti := textinput.New()
	ti.Placeholder = "Filter " + category.Label() + "..."
	ti.CharLimit = 50
	ti.Width = 40

	return &CategoryScreen{
		deps:     deps,
		category: category,
		host:     host,
		ctrl:     ctrl,
		restored: snapshot,
		list:     components.NewItemList(),
		banner:   components.NewBanner(status),
		retry:    components.NewRetryButton(),
		slide:    components.SlideInAnimation(components.SlideInDuration),
		filter:   ti,
		progress: components.NewProgressTracker(76),
		help:     help.New(),
	}
}

func (s *CategoryScreen) Init() tea.Cmd {
	var items *data.CategoryItems
	scroll := 0
	if s.restored != nil && s.restored.Kind == data.SnapshotCategory {
		items, scroll = s.restored.Items, s.restored.Scroll
	}
	s.ctrl.Start(items, scroll)
	return s.Sync()
}

// Sync brings the view in line with the controller after a state change and
// returns the banner's expiry timer, if any. Animation frames are driven by
// the root screen.
func (s *CategoryScreen) Sync() tea.Cmd {
	now := s.deps.now()
	if items := s.ctrl.Data(); s.ctrl.State() == services.Loaded && items != s.shown {
		s.shown = items
		s.list.SetItems(items.Items)
		s.list.Select(s.ctrl.Scroll())
		s.slide.Start(now)
	}
	s.retry.Sync(s.ctrl.RetryAttention(), now)

	return s.banner.Sync(now)
}

func (s *CategoryScreen) Animating() bool {
	now := s.deps.now()
	return s.slide.Active(now) || s.retry.Animating(now) || s.banner.Animating(now)
}

func (s *CategoryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.list.Width = msg.Width - 4
		s.list.Height = max(msg.Height-12, 3)
		s.banner.Width = msg.Width
		s.progress.SetWidth(msg.Width - 4)
		s.help.Width = msg.Width

	case tea.KeyMsg:
		if s.filtering {
			return s, s.updateFilter(msg)
		}
		switch {
		case key.Matches(msg, Keys.Up):
			s.list.Prev()
			s.ctrl.SetScroll(s.list.SelectedIndex)
		case key.Matches(msg, Keys.Down):
			s.list.Next()
			s.ctrl.SetScroll(s.list.SelectedIndex)
		case key.Matches(msg, Keys.Open):
			if selected := s.list.Selected(); selected != nil {
				category, id := s.category, selected.ID
				return s, func() tea.Msg { return OpenItemMsg{Category: category, ID: id} }
			}
		case key.Matches(msg, Keys.Retry):
			if s.ctrl.Retry() {
				return s, s.Sync()
			}
		case key.Matches(msg, Keys.Dismiss):
			s.banner.Dismiss()
		case key.Matches(msg, Keys.Export):
			return s, s.startExport()
		case key.Matches(msg, Keys.Filter):
			if s.ctrl.State() == services.Loaded {
				s.filtering = true
				s.filter.Focus()
				return s, textinput.Blink
			}
		}

	case components.BannerExpiredMsg:
		s.banner.HandleExpired(msg)

	case exportProgressMsg:
		s.progress.Update(msg.progress)
		return s, listenForProgress(msg.ch)

	case exportDoneMsg:
		s.exporting = false
		if s.cancelExport != nil {
			s.cancelExport()
			s.cancelExport = nil
		}
		if msg.err != nil {
			s.deps.log().Warn("export failed", zap.String("category", msg.category.Key()), zap.Error(msg.err))
			s.banner.Status().Show(fmt.Sprintf("Export failed: %s", msg.err))
		} else {
			s.banner.Status().Show("Saved " + msg.path)
		}
		return s, s.Sync()
	}

	return s, nil
}

func (s *CategoryScreen) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		s.filtering = false
		s.filter.Blur()
		return nil
	case "esc":
		s.filtering = false
		s.filter.Blur()
		s.filter.SetValue("")
		s.list.SetFilter("")
		return nil
	}
	var cmd tea.Cmd
	s.filter, cmd = s.filter.Update(msg)
	s.list.SetFilter(s.filter.Value())
	s.ctrl.SetScroll(s.list.SelectedIndex)
	return cmd
}

func (s *CategoryScreen) View() string {
	now := s.deps.now()
	title := s.ctrl.Title()
	if title == "" {
		title = s.category.Label()
	}
	header := styles.TitleStyle.Render(title)

	var body string
	switch s.ctrl.State() {
	case services.Loading, services.NotLoaded:
		body = styles.StatusLoading.Render(fmt.Sprintf("Loading %s...", s.category.Label()))
	case services.Loaded:
		_, reveal := s.slide.At(now)
		body = s.list.View(reveal)
	case services.Error:
		body = s.retry.View(now)
	}

	var filter string
	if s.filtering || s.list.Filter() != "" {
		filter = styles.FocusedInputStyle.Render(s.filter.View()) + "\n"
	}

	bindings := Keys.CategoryHelp()
	if s.banner.Status().Visible() && s.banner.Status().Dismissible() {
		bindings = append(bindings, Keys.Dismiss)
	}
	hints := s.help.ShortHelpView(bindings)

	return fmt.Sprintf("%s\n%s%s\n%s\n%s\n%s",
		header, filter, body, s.progress.View(), s.banner.View(now), styles.HelpStyle.Render(hints))
}

// Snapshot returns the screen's saved state, or nil if nothing is loaded.
func (s *CategoryScreen) Snapshot() *data.Snapshot {
	items, scroll := s.ctrl.SaveState()
	if items == nil {
		return nil
	}
	return data.NewCategorySnapshot(s.host.Key(), items, scroll)
}

func (s *CategoryScreen) Category() swapi.Category { return s.category }

func (s *CategoryScreen) Controller() *services.Controller[data.CategoryItems] { return s.ctrl }

func (s *CategoryScreen) Loading() bool { return s.ctrl.State() == services.Loading }

func (s *CategoryScreen) Filtering() bool { return s.filtering }

// Detach releases the screen; loads it started keep running for the next
// instance of the same category. A running export is cancelled.
func (s *CategoryScreen) Detach() {
	if s.cancelExport != nil {
		s.cancelExport()
		s.cancelExport = nil
	}
	s.host.Detach()
}

type exportProgressMsg struct {
	progress services.ExportProgress
	ch       <-chan services.ExportProgress
}

type exportDoneMsg struct {
	category swapi.Category
	path     string
	err      error
}

func (s *CategoryScreen) startExport() tea.Cmd {
	if s.exporting || s.deps.NewExporter == nil {
		return nil
	}
	s.exporting = true
	s.progress.Remove(s.category.Key())
	s.banner.Status().ShowPersistent("Exporting " + s.category.Label() + "...")

	ctx, cancel := context.WithCancel(context.Background())
	s.cancelExport = cancel

	exporter := s.deps.NewExporter()
	category := s.category
	run := func() tea.Msg {
		path, err := exporter.Export(ctx, category)
		exporter.Close()
		return exportDoneMsg{category: category, path: path, err: err}
	}
	return tea.Batch(run, listenForProgress(exporter.GetProgressChannel()), s.Sync())
}

func listenForProgress(ch <-chan services.ExportProgress) tea.Cmd {
	return func() tea.Msg {
		progress, ok := <-ch
		if !ok {
			return nil
		}
		return exportProgressMsg{progress: progress, ch: ch}
	}
}
