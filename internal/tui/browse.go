// Package tui implements the interactive table screens: a filterable,
// paginated view over one resource with status toggling and deletion
// behind a confirmation overlay.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sh-bo/dms-cli/internal/api"
	"github.com/sh-bo/dms-cli/internal/gateway"
	"github.com/sh-bo/dms-cli/internal/list"
)

// errorBannerTTL is how long a transient error stays on screen.
const errorBannerTTL = 4 * time.Second

// Column describes one table column.
type Column struct {
	Title string
	Width int
}

// Screen binds a browse model to one resource: how to fetch it, how to
// render a row, and which mutations it supports.
type Screen[T api.Entity] struct {
	Title   string
	Columns []Column
	Row     func(T) []string

	Fetch func(ctx context.Context) ([]T, error)

	Controller *list.Controller[T]
	Gate       *gateway.Gate[T]

	// ToggleLabel names the status toggle in the confirmation prompt
	// ("deactivate"/"activate", "reject"/"approve"). Empty disables
	// toggling for this screen.
	ToggleLabel func(T) string
	CanDelete   bool
}

type browseMode int

const (
	modeNormal browseMode = iota
	modeSearch
	modeConfirm
)

type fetchedMsg[T api.Entity] struct {
	requestID uint64
	items     []T
	err       error
}

type mutatedMsg[T api.Entity] struct {
	mutationID uint64
	outcome    *gateway.Outcome[T]
	err        error
}

type clearErrMsg struct{ id uint64 }

// Model is the Bubble Tea model for a browse screen.
type Model[T api.Entity] struct {
	screen   Screen[T]
	mode     browseMode
	loading  bool
	mutating bool

	search textinput.Model
	spin   spinner.Model
	cursor int // index into the visible page

	requestID  uint64 // monotonic; stale fetch responses are dropped
	mutationID uint64 // counted separately so a refresh cannot orphan a mutation
	errID      uint64 // ties a banner to its clear timer
	errMsg     string

	width  int
	height int
}

// NewModel builds a browse model over the given screen.
func NewModel[T api.Entity](screen Screen[T]) Model[T] {
	search := textinput.New()
	search.Placeholder = "search"
	search.Prompt = "/ "
	search.CharLimit = 64

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model[T]{
		screen:    screen,
		search:    search,
		spin:      spin,
		loading:   true,
		requestID: 1,
	}
}

// Init implements tea.Model.
func (m Model[T]) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(m.requestID), m.spin.Tick)
}

// Update implements tea.Model.
func (m Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case fetchedMsg[T]:
		if msg.requestID != m.requestID {
			return m, nil // stale
		}
		m.loading = false
		if msg.err != nil {
			return m.showError(msg.err)
		}
		m.screen.Controller.SetItems(msg.items)
		m.clampCursor()
		return m, nil

	case mutatedMsg[T]:
		if msg.mutationID != m.mutationID {
			return m, nil
		}
		m.mutating = false
		if msg.err != nil {
			return m.showError(msg.err)
		}
		// The command only ran the remote call; the collection is
		// reconciled here, on the goroutine that owns the controller.
		m.screen.Gate.Apply(msg.outcome)
		m.clampCursor()
		return m, nil

	case clearErrMsg:
		if msg.id == m.errID {
			m.errMsg = ""
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model[T]) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeConfirm:
		return m.handleConfirmKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m Model[T]) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit

	case "/":
		m.mode = modeSearch
		m.search.Focus()
		return m, textinput.Blink

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.screen.Controller.VisiblePage())-1 {
			m.cursor++
		}
		return m, nil

	case "left", "[", "h":
		m.screen.Controller.PrevPage()
		m.clampCursor()
		return m, nil

	case "right", "]", "l":
		m.screen.Controller.NextPage()
		m.clampCursor()
		return m, nil

	case "r":
		m.loading = true
		m.requestID++
		return m, m.fetchCmd(m.requestID)

	case "t":
		if m.screen.ToggleLabel == nil {
			return m, nil
		}
		if item, ok := m.selected(); ok {
			m.screen.Gate.Request(gateway.KindToggleStatus, item)
			m.mode = modeConfirm
		}
		return m, nil

	case "d":
		if !m.screen.CanDelete {
			return m, nil
		}
		if item, ok := m.selected(); ok {
			m.screen.Gate.Request(gateway.KindDelete, item)
			m.mode = modeConfirm
		}
		return m, nil
	}

	return m, nil
}

func (m Model[T]) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.mode = modeNormal
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	// Search changes invalidate the page position; the controller
	// resets to page 1 itself.
	m.screen.Controller.SetSearchTerm(m.search.Value())
	m.cursor = 0
	return m, cmd
}

func (m Model[T]) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.mode = modeNormal
		if m.mutating {
			// The previous mutation is still in flight; the gate
			// refuses to stack another one.
			m.screen.Gate.Cancel()
			return m.showError(gateway.ErrBusy)
		}
		m.mutating = true
		m.mutationID++
		mutID := m.mutationID
		gate := m.screen.Gate
		return m, func() tea.Msg {
			outcome, err := gate.Execute(context.Background())
			return mutatedMsg[T]{mutationID: mutID, outcome: outcome, err: err}
		}

	case "n", "esc", "q":
		m.screen.Gate.Cancel()
		m.mode = modeNormal
		return m, nil
	}
	return m, nil
}

// fetchCmd fetches the collection, tagging the response so stale
// replies can be dropped.
func (m Model[T]) fetchCmd(reqID uint64) tea.Cmd {
	fetch := m.screen.Fetch
	return func() tea.Msg {
		items, err := fetch(context.Background())
		return fetchedMsg[T]{requestID: reqID, items: items, err: err}
	}
}

// showError surfaces a transient banner and schedules its removal.
// The screen stays usable; no error here is fatal.
func (m Model[T]) showError(err error) (tea.Model, tea.Cmd) {
	m.errMsg = err.Error()
	m.errID++
	id := m.errID
	return m, tea.Tick(errorBannerTTL, func(time.Time) tea.Msg {
		return clearErrMsg{id: id}
	})
}

func (m Model[T]) selected() (T, bool) {
	page := m.screen.Controller.VisiblePage()
	if m.cursor < 0 || m.cursor >= len(page) {
		var zero T
		return zero, false
	}
	return page[m.cursor], true
}

func (m *Model[T]) clampCursor() {
	n := len(m.screen.Controller.VisiblePage())
	if n == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View implements tea.Model.
func (m Model[T]) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.screen.Title))
	if m.loading {
		b.WriteString(" " + m.spin.View() + dimStyle.Render(" loading"))
	} else if m.mutating {
		b.WriteString(" " + m.spin.View() + dimStyle.Render(" saving"))
	}
	b.WriteString("\n")

	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	b.WriteString(m.viewTable())
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render("error: " + m.errMsg))
		b.WriteString("\n")
	}

	if m.mode == modeConfirm {
		b.WriteString(m.viewConfirm())
		b.WriteString("\n")
	} else {
		b.WriteString(m.viewFooter())
	}

	return b.String()
}

func (m Model[T]) viewTable() string {
	var b strings.Builder

	var header []string
	for _, col := range m.screen.Columns {
		header = append(header, pad(col.Title, col.Width))
	}
	b.WriteString(headerStyle.Render(strings.Join(header, "  ")))
	b.WriteString("\n")

	page := m.screen.Controller.VisiblePage()
	if len(page) == 0 {
		b.WriteString(dimStyle.Render("no records"))
		return b.String()
	}

	for i, item := range page {
		cells := m.screen.Row(item)
		var row []string
		for j, col := range m.screen.Columns {
			cell := ""
			if j < len(cells) {
				cell = cells[j]
			}
			row = append(row, pad(cell, col.Width))
		}
		line := strings.Join(row, "  ")

		style := normalStyle
		if !item.ActiveFlag() {
			style = inactiveStyle
		}
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(style.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model[T]) viewConfirm() string {
	p := m.screen.Gate.Pending()
	if p == nil {
		return ""
	}
	verb := p.Kind.String()
	if p.Kind == gateway.KindToggleStatus && m.screen.ToggleLabel != nil {
		verb = m.screen.ToggleLabel(p.Target)
	}
	return confirmStyle.Render(fmt.Sprintf("%s record %d? (y/n)", verb, p.Target.EntityID()))
}

func (m Model[T]) viewFooter() string {
	ctl := m.screen.Controller
	pages := ctl.TotalPages()
	pos := dimStyle.Render(fmt.Sprintf("%d records", ctl.FilteredCount()))
	if pages > 1 {
		pos = dimStyle.Render(fmt.Sprintf("page %d/%d · %d records", ctl.Page(), pages, ctl.FilteredCount()))
	}

	keys := "/ search · ←/→ page · r refresh"
	if m.screen.ToggleLabel != nil {
		keys += " · t toggle"
	}
	if m.screen.CanDelete {
		keys += " · d delete"
	}
	keys += " · q quit"
	return pos + "\n" + dimStyle.Render(keys)
}
