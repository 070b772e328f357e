package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/GefSum/internal/catalog"
	"github.com/yildizm/GefSum/internal/emoji"
	"github.com/yildizm/GefSum/internal/formatter"
	"github.com/yildizm/GefSum/internal/model"
	"github.com/yildizm/GefSum/internal/parser"
	"github.com/yildizm/GefSum/internal/ui/components"
)

// ViewState represents the screens of the browser
type ViewState int

const (
	ViewLoading ViewState = iota
	ViewList
	ViewDetail
	ViewHelp
)

// Options configures the browser
type Options struct {
	Workers int
	Parser  parser.Options
	Plot    formatter.PlotOptions
	Theme   string
}

// BrowserModel lists parsed GEF files and shows the profile of the selected one
type BrowserModel struct {
	ctx            context.Context
	investigations []model.Investigation
	opts           Options
	styles         *Styles

	width    int
	height   int
	ready    bool
	quitting bool

	view      ViewState
	previous  ViewState
	searching bool

	spinner *components.Spinner
	list    *components.List
	results []catalog.Result
	elapsed time.Duration
	err     error
}

// NewBrowserModel creates a browser for the given investigations
func NewBrowserModel(ctx context.Context, investigations []model.Investigation, opts Options) *BrowserModel {
	SetThemeByName(opts.Theme)
	return &BrowserModel{
		ctx:            ctx,
		investigations: investigations,
		opts:           opts,
		styles:         GetStyles(),
		view:           ViewLoading,
		spinner:        components.NewSpinner(fmt.Sprintf("Parsing %d GEF files...", len(investigations))),
		list:           components.NewList("GEF files", 60, 20),
	}
}

// Init starts parsing and the spinner
func (m *BrowserModel) Init() tea.Cmd {
	return tea.Batch(
		CreateLoadCommand(m.ctx, m.investigations, m.opts.Workers, m.opts.Parser),
		tick(),
	)
}

// Update handles messages and navigation
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.Width = max(msg.Width-4, 20)
		m.list.Height = max(msg.Height-4, 6)
		m.ready = true
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tickMsg:
		if m.view != ViewLoading {
			return m, nil
		}
		m.spinner.Tick()
		return m, tick()
	case loadCompleteMsg:
		m.results = msg.results
		m.elapsed = msg.elapsed
		m.list.SetItems(listItems(msg.results))
		m.view = ViewList
	case loadErrorMsg:
		m.err = msg.err
		m.view = ViewList
	}
	return m, nil
}

func (m *BrowserModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "q":
		return m.quit()
	case "esc":
		switch {
		case m.view == ViewHelp:
			m.view = m.previous
		case m.view == ViewDetail:
			m.view = ViewList
		case m.list.Search() != "":
			m.list.SetSearch("")
		}
	case "?", "h":
		if m.view != ViewLoading && m.view != ViewHelp {
			m.previous = m.view
			m.view = ViewHelp
		}
	case "up", "k":
		if m.view == ViewList {
			m.list.MoveUp()
		}
	case "down", "j":
		if m.view == ViewList {
			m.list.MoveDown()
		}
	case "enter", " ":
		if _, ok := m.list.SelectedItem(); ok && m.view == ViewList {
			m.view = ViewDetail
		}
	case "/":
		if m.view == ViewList {
			m.searching = true
		}
	}
	return m, nil
}

func (m *BrowserModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
	case tea.KeyEsc:
		m.searching = false
		m.list.SetSearch("")
	case tea.KeyBackspace:
		if q := []rune(m.list.Search()); len(q) > 0 {
			m.list.SetSearch(string(q[:len(q)-1]))
		}
	case tea.KeyRunes, tea.KeySpace:
		m.list.SetSearch(m.list.Search() + string(msg.Runes))
	}
	return m, nil
}

func (m *BrowserModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// Selected returns the result under the cursor
func (m *BrowserModel) Selected() (catalog.Result, bool) {
	item, ok := m.list.SelectedItem()
	if !ok {
		return catalog.Result{}, false
	}
	return m.results[item.Index], true
}

// View renders the current screen
func (m *BrowserModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.view {
	case ViewLoading:
		content = m.spinner.Render()
	case ViewList:
		content = m.renderList()
	case ViewDetail:
		content = m.renderDetail()
	case ViewHelp:
		content = m.renderHelp()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *BrowserModel) renderList() string {
	if m.err != nil {
		return m.styles.Error.Render(emoji.GetEmoji("error") + " " + m.err.Error())
	}

	failed := 0
	for _, r := range m.results {
		if r.Err != nil {
			failed++
		}
	}
	status := fmt.Sprintf("%s %d files • %d failed • %s", emoji.GetEmoji("statistics"),
		len(m.results), failed, m.elapsed.Round(time.Millisecond))

	footer := "↑↓ Navigate • Enter Open • / Search • ? Help • q Quit"
	if m.searching {
		footer = "Type to filter • Enter Apply • Esc Clear"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.list.Render(),
		m.styles.Muted.Render(status),
		m.styles.Muted.Render(footer),
	)
}

func (m *BrowserModel) renderDetail() string {
	result, ok := m.Selected()
	if !ok {
		return m.styles.Muted.Render("nothing selected")
	}

	width := max(min(m.width-4, 100), 40)
	if result.Err != nil {
		box := components.NewSummaryBox(emoji.GetEmoji("error")+" "+filepath.Base(result.Investigation.Filename), width)
		box.AddLine(result.Err.Error())
		return lipgloss.JoinVertical(lipgloss.Left, box.Render(), m.styles.Muted.Render("Esc Back • q Quit"))
	}

	summaryWidth := min(width/2, 48)
	box := components.NewSummaryBox(recordTitle(result.Record), summaryWidth)
	for _, fact := range formatter.Summarize(result.Record) {
		if fact.Label == "File" {
			continue
		}
		box.AddKeyValue(fact.Label, fact.Value)
	}

	var profile string
	plotHeight := max(m.height-6, 8)
	switch r := result.Record.(type) {
	case *model.CPT:
		chart := &components.CPTChart{
			CPT:          r,
			QCMax:        m.opts.Plot.QCMax,
			RfMax:        m.opts.Plot.RfMax,
			MinElevation: m.opts.Plot.MinElevation,
			Width:        width - summaryWidth - 2,
			Height:       plotHeight,
		}
		profile = chart.Render()
	case *model.Borehole:
		column := &components.LayerColumn{
			Layers:       r.Layers,
			MinElevation: m.opts.Plot.MinElevation,
			Height:       plotHeight,
		}
		profile = column.Render()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, box.Render(), "  ", profile),
		"",
		m.styles.Muted.Render("Esc Back • ? Help • q Quit"),
	)
}

func (m *BrowserModel) renderHelp() string {
	lines := []string{
		m.styles.Header.Render(emoji.GetEmoji("help") + " Help"),
		"",
		m.styles.Header.Render(emoji.GetEmoji("target") + " Navigation"),
		"  ↑/k ↓/j   Move selection",
		"  Enter     Show profile",
		"  /         Search by name or file",
		"  Esc       Back / clear search",
		"",
		m.styles.Header.Render(emoji.GetEmoji("door") + " Exit"),
		"  q         Quit",
		"  Ctrl+C    Force quit",
	}
	return m.styles.Box.Render(strings.Join(lines, "\n"))
}

func recordTitle(record model.Record) string {
	name := record.Info().Name
	if name == "" {
		name = filepath.Base(record.Info().Filename)
	}
	return fmt.Sprintf("%s %s", emoji.GetEmoji(kindKey(record.Kind())), name)
}

func kindKey(kind model.Kind) string {
	if kind == model.KindBorehole {
		return "borehole"
	}
	return "cpt"
}

func listItems(results []catalog.Result) []components.ListItem {
	items := make([]components.ListItem, 0, len(results))
	for i, r := range results {
		item := components.ListItem{
			ID:    r.Investigation.Filename,
			Title: filepath.Base(r.Investigation.Filename),
			Icon:  emoji.GetEmoji(kindKey(r.Investigation.Kind)),
			Index: i,
		}
		if r.Err != nil {
			item.Status = "error"
			item.Description = r.Err.Error()
		} else {
			item.Status = "success"
			item.Icon = emoji.GetEmoji(kindKey(r.Record.Kind()))
			if name := r.Record.Info().Name; name != "" {
				item.Title = name
			}
			item.Description = listDescription(r.Record)
		}
		items = append(items, item)
	}
	return items
}

func listDescription(record model.Record) string {
	length, err := record.Length()
	if err != nil {
		return "empty"
	}
	switch r := record.(type) {
	case *model.CPT:
		return fmt.Sprintf("%.2f m, %d samples", length, r.Len())
	case *model.Borehole:
		return fmt.Sprintf("%.2f m, %d layers", length, len(r.Layers))
	}
	return fmt.Sprintf("%.2f m", length)
}

// Run runs the interactive browser until the user quits
func Run(ctx context.Context, investigations []model.Investigation, opts Options) error {
	m := NewBrowserModel(ctx, investigations, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
