// Package ui renders the inventory table and the chat transcript as a
// Bubble Tea program. All gateway work runs inside commands; results come
// back as typed messages, so every state change is applied from Update.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"stocklab.io/inventory-chat/internal/core"
	"stocklab.io/inventory-chat/internal/state"
)

const lowStockThreshold = 10

type focusArea int

const (
	focusChat focusArea = iota
	focusTable
	focusForm
)

type (
	refreshedMsg struct{ err error }
	queryDoneMsg struct{}
	createDoneMsg struct{ err error }
)

type Model struct {
	session      *state.State
	synchronizer *core.Synchronizer
	chat         *core.ChatService
	log          *zap.Logger
	apiBase      string

	productTable table.Model
	chatInput    textinput.Model
	form         []textinput.Model
	formFocus    int
	spin         spinner.Model

	focus  focusArea
	status string
	width  int
	height int
}

func New(session *state.State, sync *core.Synchronizer, chat *core.ChatService, apiBase string, log *zap.Logger) Model {
	in := textinput.New()
	in.Placeholder = "Ask: 'Which items are low on stock?'"
	in.Prompt = "You> "
	in.CharLimit = 0
	in.Width = 48
	in.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

	m := Model{
		session:      session,
		synchronizer: sync,
		chat:         chat,
		log:          log,
		apiBase:      apiBase,
		chatInput:    in,
		form:         newFormInputs(),
		spin:         s,
		focus:        focusChat,
	}
	m.productTable = table.New(
		table.WithColumns(m.columns()),
		table.WithRows(nil),
		table.WithHeight(14),
	)
	return m
}

func newFormInputs() []textinput.Model {
	labels := []struct{ placeholder, prompt string }{
		{"Product Name", "Name> "},
		{"0", "Qty> "},
		{"0.00", "Price> "},
		{"Supplier ID", "Supplier> "},
	}
	inputs := make([]textinput.Model, len(labels))
	for i, l := range labels {
		in := textinput.New()
		in.Placeholder = l.placeholder
		in.Prompt = l.prompt
		in.Width = 24
		inputs[i] = in
	}
	return inputs
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.refreshCmd())
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{err: m.synchronizer.Refresh(context.Background())}
	}
}

func (m Model) sendCmd(text string) tea.Cmd {
	return func() tea.Msg {
		m.chat.Send(context.Background(), text)
		return queryDoneMsg{}
	}
}

func (m Model) createCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.synchronizer.CreateProduct(context.Background())
		return createDoneMsg{err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.chatInput.Width = maxInt(msg.Width/2-10, 20)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case refreshedMsg:
		if msg.err != nil {
			m.log.Warn("refresh failed", zap.Error(msg.err))
			m.status = "Failed to fetch data from " + m.apiBase
		} else {
			m.status = ""
		}
		m.syncTable()
		return m, nil

	case queryDoneMsg:
		m.syncTable()
		return m, nil

	case createDoneMsg:
		if msg.err != nil {
			if errors.Is(msg.err, core.ErrDraftIncomplete) {
				m.status = "Please fill all fields and ensure a Supplier is selected."
			} else {
				m.log.Warn("create failed", zap.Error(msg.err))
				m.status = "Failed to create product. Ensure the Supplier ID exists."
			}
			return m, nil
		}
		m.status = ""
		m.focus = focusChat
		m.chatInput.Focus()
		m.loadFormFromDraft()
		m.syncTable()
		return m, nil
	}

	return m.updateComponents(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.session.FormOpen() {
			m.closeForm()
			return m, nil
		}
		return m, tea.Quit

	case "tab":
		if m.focus == focusForm {
			m.formFocus = (m.formFocus + 1) % len(m.form)
			m.focusFormField()
			return m, nil
		}
		m.toggleFocus()
		return m, nil

	case "ctrl+n":
		if m.session.FormOpen() {
			m.closeForm()
		} else {
			m.openForm()
		}
		return m, nil

	case "ctrl+l":
		m.chat.Clear()
		return m, nil

	case "enter":
		switch m.focus {
		case focusForm:
			m.storeDraftFromForm()
			return m, m.createCmd()
		case focusChat:
			if m.session.Pending() {
				return m, nil
			}
			text := strings.TrimSpace(m.chatInput.Value())
			if text == "" {
				return m, nil
			}
			m.chatInput.SetValue("")
			m.syncTable()
			return m, m.sendCmd(text)
		}
		return m, nil
	}

	if m.focus == focusTable {
		if key, ok := sortKeyForDigit(msg.String()); ok {
			m.session.ToggleSort(key)
			m.syncTable()
			return m, nil
		}
	}

	return m.updateComponents(msg)
}

func sortKeyForDigit(s string) (state.SortKey, bool) {
	switch s {
	case "1":
		return state.SortByID, true
	case "2":
		return state.SortByName, true
	case "3":
		return state.SortByQuantity, true
	case "4":
		return state.SortByPrice, true
	}
	return "", false
}

func (m *Model) toggleFocus() {
	if m.focus == focusChat {
		m.focus = focusTable
		m.chatInput.Blur()
		m.productTable.Focus()
	} else {
		m.focus = focusChat
		m.productTable.Blur()
		m.chatInput.Focus()
	}
}

func (m *Model) openForm() {
	m.session.SetFormOpen(true)
	m.loadFormFromDraft()
	m.focus = focusForm
	m.formFocus = 0
	m.chatInput.Blur()
	m.productTable.Blur()
	m.focusFormField()
}

func (m *Model) closeForm() {
	m.storeDraftFromForm()
	m.session.SetFormOpen(false)
	m.focus = focusChat
	m.chatInput.Focus()
}

func (m *Model) focusFormField() {
	for i := range m.form {
		if i == m.formFocus {
			m.form[i].Focus()
		} else {
			m.form[i].Blur()
		}
	}
}

func (m *Model) loadFormFromDraft() {
	draft := m.session.Draft()
	m.form[0].SetValue(draft.Name)
	m.form[1].SetValue(draft.Quantity)
	m.form[2].SetValue(draft.Price)
	m.form[3].SetValue(draft.SupplierID)
}

func (m *Model) storeDraftFromForm() {
	m.session.SetDraft(state.DraftProduct{
		Name:       strings.TrimSpace(m.form[0].Value()),
		Quantity:   strings.TrimSpace(m.form[1].Value()),
		Price:      strings.TrimSpace(m.form[2].Value()),
		SupplierID: strings.TrimSpace(m.form[3].Value()),
	})
}

func (m Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch m.focus {
	case focusChat:
		m.chatInput, cmd = m.chatInput.Update(msg)
		cmds = append(cmds, cmd)
	case focusTable:
		m.productTable, cmd = m.productTable.Update(msg)
		cmds = append(cmds, cmd)
	case focusForm:
		m.form[m.formFocus], cmd = m.form[m.formFocus].Update(msg)
		cmds = append(cmds, cmd)
	}

	m.spin, cmd = m.spin.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// syncTable recomputes the sorted view from the session. The table widget is
// a render target, never the source of truth.
func (m *Model) syncTable() {
	m.productTable.SetColumns(m.columns())
	m.productTable.SetRows(m.rows())
}

func (m Model) columns() []table.Column {
	cfg := m.session.Sort()
	marker := func(key state.SortKey) string {
		if cfg.Key != key {
			return ""
		}
		if cfg.Direction == state.Ascending {
			return " ▲"
		}
		return " ▼"
	}
	return []table.Column{
		{Title: "ID" + marker(state.SortByID), Width: 6},
		{Title: "Product Name" + marker(state.SortByName), Width: 22},
		{Title: "Quantity" + marker(state.SortByQuantity), Width: 12},
		{Title: "Price" + marker(state.SortByPrice), Width: 10},
	}
}

func (m Model) rows() []table.Row {
	view := core.SortedView(m.session.Products(), m.session.Sort())
	rows := make([]table.Row, 0, len(view))
	for _, p := range view {
		qty := fmt.Sprintf("%d units", p.Quantity)
		if p.Quantity < lowStockThreshold {
			qty += " ⚠"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("#%d", p.ID),
			p.Name,
			qty,
			"$" + p.Price.String(),
		})
	}
	return rows
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
