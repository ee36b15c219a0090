package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stocklab.io/inventory-chat/internal/state"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	userStyle   = lipgloss.NewStyle().Bold(true)
	botStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	alertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	formLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	emptyStyle  = lipgloss.NewStyle().Faint(true).Italic(true)
)

func (m Model) View() string {
	left := m.inventoryView()
	right := m.chatView()

	body := lipgloss.JoinHorizontal(lipgloss.Top, panelStyle.Render(left), panelStyle.Render(right))

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(alertStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(faintStyle.Render("tab: switch focus · ctrl+n: add product · ctrl+l: clear chat · 1-4: sort (table) · esc: quit"))
	return b.String()
}

func (m Model) inventoryView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📦 Live Inventory"))
	b.WriteString("\n\n")

	if m.session.FormOpen() {
		b.WriteString(m.formView())
		b.WriteString("\n")
	}

	if len(m.session.Products()) == 0 {
		b.WriteString(m.productTable.View())
		b.WriteString("\n")
		b.WriteString(emptyStyle.Render("No products found"))
	} else {
		b.WriteString(m.productTable.View())
	}
	return b.String()
}

func (m Model) formView() string {
	var b strings.Builder
	b.WriteString(formLabel.Render("Add New Item"))
	b.WriteString("\n")

	if len(m.session.Suppliers()) == 0 {
		b.WriteString(alertStyle.Render("Warning: No suppliers found."))
		b.WriteString("\n")
	}

	for i := range m.form {
		b.WriteString(m.form[i].View())
		b.WriteString("\n")
	}

	for _, s := range m.session.Suppliers() {
		b.WriteString(faintStyle.Render(fmt.Sprintf("  %s (ID: %d)", s.Name, s.ID)))
		b.WriteString("\n")
	}
	b.WriteString(faintStyle.Render("enter: save · esc: cancel"))
	return b.String()
}

func (m Model) chatView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("🤖 AI Assistant"))
	b.WriteString("\n\n")

	wrap := lipgloss.NewStyle().Width(maxInt(m.width/2-8, 40))
	for _, msg := range m.session.Messages() {
		if msg.Role == state.RoleUser {
			b.WriteString(wrap.Render(userStyle.Render("You: ") + msg.Text))
		} else {
			b.WriteString(wrap.Render(botStyle.Render("Bot: ") + msg.Text))
		}
		b.WriteString("\n\n")
	}

	if m.session.Pending() {
		b.WriteString(botStyle.Render("Bot: ") + m.spin.View() + "thinking")
		b.WriteString("\n\n")
	}

	b.WriteString(m.chatInput.View())
	return b.String()
}
