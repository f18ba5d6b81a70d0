package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kerbaras/starwarspedia/pkg/app/components"
	"github.com/kerbaras/starwarspedia/pkg/app/styles"
	"github.com/kerbaras/starwarspedia/pkg/data"
	"github.com/kerbaras/starwarspedia/pkg/loader"
	"github.com/kerbaras/starwarspedia/pkg/services"
	"github.com/kerbaras/starwarspedia/pkg/swapi"
)

// ItemScreen shows every field of one record.
type ItemScreen struct {
	deps     *Deps
	category swapi.Category
	id       string
	host     *loader.Host
	ctrl     *services.Controller[data.ItemDetail]
	restored *data.Snapshot

	viewport viewport.Model
	banner   *components.Banner
	retry    *components.RetryButton
	fade     *components.Animation
	help     help.Model

	shown *data.ItemDetail
}

func NewItemScreen(deps *Deps, category swapi.Category, id string, snapshot *data.Snapshot, onLoading func(bool)) *ItemScreen {
	host := deps.Loader.Attach(ItemHostKey(category, id))
	status := services.NewStatusMessage(deps.Now)
	ctrl := services.NewItemController(deps.Source, host, category, id, deps.Connectivity, services.WithStatus(status))
	if onLoading != nil {
		ctrl.OnLoading(onLoading)
	}

	return &ItemScreen{
		deps:     deps,
		category: category,
		id:       id,
		host:     host,
		ctrl:     ctrl,
		restored: snapshot,
		viewport: viewport.New(76, 16),
		banner:   components.NewBanner(status),
		retry:    components.NewRetryButton(),
		fade:     components.SlideInAnimation(components.FadeInDuration),
		help:     help.New(),
	}
}

func (s *ItemScreen) Init() tea.Cmd {
	var detail *data.ItemDetail
	scroll := 0
	if s.restored != nil && s.restored.Kind == data.SnapshotItem {
		detail, scroll = s.restored.Detail, s.restored.Scroll
	}
	s.ctrl.Start(detail, scroll)
	return s.Sync()
}

func (s *ItemScreen) Sync() tea.Cmd {
	now := s.deps.now()
	if detail := s.ctrl.Data(); s.ctrl.State() == services.Loaded && detail != s.shown {
		s.shown = detail
		s.viewport.SetContent(renderFields(detail))
		s.viewport.SetYOffset(s.ctrl.Scroll())
		s.fade.Start(now)
	}
	s.retry.Sync(s.ctrl.RetryAttention(), now)

	return s.banner.Sync(now)
}

func (s *ItemScreen) Animating() bool {
	now := s.deps.now()
	return s.fade.Active(now) || s.retry.Animating(now) || s.banner.Animating(now)
}

func renderFields(d *data.ItemDetail) string {
	width := 0
	for _, f := range d.Fields {
		width = max(width, lipgloss.Width(f.Label))
	}

	var b strings.Builder
	for _, f := range d.Fields {
		label := styles.LabelStyle.Width(width + 2).Render(f.Label + ":")
		// multi-line values (opening crawls) are indented under the label
		lines := strings.Split(f.Value, "\n")
		b.WriteString(label + styles.TextStyle.Render(lines[0]) + "\n")
		for _, line := range lines[1:] {
			b.WriteString(strings.Repeat(" ", width+2) + styles.TextStyle.Render(line) + "\n")
		}
	}
	return b.String()
}

func (s *ItemScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.viewport.Width = msg.Width - 4
		s.viewport.Height = max(msg.Height-10, 3)
		s.banner.Width = msg.Width
		s.help.Width = msg.Width
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, Keys.Back):
			return s, func() tea.Msg { return CloseItemMsg{} }
		case key.Matches(msg, Keys.Retry):
			if s.ctrl.Retry() {
				return s, s.Sync()
			}
			return s, nil
		case key.Matches(msg, Keys.Dismiss):
			s.banner.Dismiss()
			return s, nil
		}

	case components.BannerExpiredMsg:
		s.banner.HandleExpired(msg)
		return s, nil

	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	s.ctrl.SetScroll(s.viewport.YOffset)
	return s, cmd
}

func (s *ItemScreen) View() string {
	now := s.deps.now()
	title := s.ctrl.Title()
	if title == "" {
		title = fmt.Sprintf("%s #%s", s.category.Label(), s.id)
	}
	header := styles.TitleStyle.Render(title) + "\n" + styles.SubtitleStyle.Render(s.category.Label())

	var body string
	switch s.ctrl.State() {
	case services.Loading, services.NotLoaded:
		body = styles.StatusLoading.Render("Loading...")
	case services.Loaded:
		body = s.viewport.View()
		if s.fade.Active(now) {
			if _, frac := s.fade.At(now); frac < 0.5 {
				body = styles.MutedStyle.Render(body)
			}
		}
	case services.Error:
		body = s.retry.View(now)
	}

	return fmt.Sprintf("%s\n\n%s\n%s\n%s",
		header, body, s.banner.View(now), styles.HelpStyle.Render(s.help.ShortHelpView(Keys.ItemHelp())))
}

func (s *ItemScreen) Snapshot() *data.Snapshot {
	detail, scroll := s.ctrl.SaveState()
	if detail == nil {
		return nil
	}
	return data.NewItemSnapshot(s.host.Key(), detail, scroll)
}

func (s *ItemScreen) Controller() *services.Controller[data.ItemDetail] { return s.ctrl }

func (s *ItemScreen) Loading() bool { return s.ctrl.State() == services.Loading }

func (s *ItemScreen) Detach() { s.host.Detach() }

// Close is called when the user leaves the item for good.
func (s *ItemScreen) Close() { s.host.Finish() }
