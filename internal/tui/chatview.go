package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/severinoia/central/internal/ai"
	"github.com/severinoia/central/internal/chat"
	"github.com/severinoia/central/internal/model"
)

const welcomeMessage = "Olá! Sou o Severino. Como posso ajudar hoje?"

type chatModel struct {
	deps   Deps
	width  int
	height int

	tabs     []model.ChatTab
	activeID string

	vp      viewport.Model
	input   textarea.Model
	spin    spinner.Model
	waiting bool
}

func newChatModel(deps Deps) chatModel {
	ta := textarea.New()
	ta.Placeholder = "Ask something..."
	ta.SetHeight(3)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Points

	return chatModel{
		deps:  deps,
		vp:    viewport.New(80, 20),
		input: ta,
		spin:  sp,
	}
}

func (m chatModel) Init() tea.Cmd {
	return m.refresh()
}

func (m *chatModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.vp.Width = w - 4
	m.vp.Height = max(h-7, 3)
	m.input.SetWidth(w - 4)
}

func (m chatModel) inputFocused() bool {
	return m.input.Focused()
}

type chatTabsMsg struct {
	tabs   []model.ChatTab
	active model.ChatTab
	err    error
}

func (m chatModel) refresh() tea.Cmd {
	return func() tea.Msg {
		tabs, err := m.deps.Chat.Tabs()
		if err != nil {
			return chatTabsMsg{err: err}
		}
		active, err := m.deps.Chat.ActiveTab()
		if err != nil {
			return chatTabsMsg{err: err}
		}

		// First visit to a tab plays the welcome message once.
		if !active.Initialized {
			if _, err := m.deps.Chat.AppendMessage(active.ID, model.ChatRoleAssistant, welcomeMessage); err == nil {
				_ = m.deps.Chat.MarkInitialized(active.ID)
				active, _ = m.deps.Chat.ActiveTab()
				tabs, _ = m.deps.Chat.Tabs()
			}
		}
		return chatTabsMsg{tabs: tabs, active: active}
	}
}

func (m chatModel) update(msg tea.Msg) (chatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case chatTabsMsg:
		if msg.err != nil {
			return m, statusCmd("Loading chat failed: "+msg.err.Error(), true)
		}
		m.tabs = msg.tabs
		m.activeID = msg.active.ID
		m.renderTranscript(msg.active)
		return m, nil

	case chatReplyMsg:
		m.waiting = false
		if msg.err != nil {
			text := "Chat failed: " + msg.err.Error()
			if errors.Is(msg.err, ai.ErrTimeout) {
				text = "The assistant timed out, try again"
			}
			return m, statusCmd(text, true)
		}
		if _, err := m.deps.Chat.AppendMessage(msg.tabID, model.ChatRoleAssistant, msg.reply); err != nil {
			return m, statusCmd("Saving reply failed: "+err.Error(), true)
		}
		return m, m.refresh()

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			if m.input.Focused() {
				m.input.Blur()
			} else {
				m.input.Focus()
			}
			return m, nil
		case "ctrl+t":
			if _, err := m.deps.Chat.AddTab(""); err != nil {
				return m, statusCmd("Opening tab failed: "+err.Error(), true)
			}
			return m, m.refresh()
		case "ctrl+w":
			if err := m.deps.Chat.RemoveTab(m.activeID); err != nil {
				if errors.Is(err, chat.ErrLastTab) {
					return m, statusCmd("The last tab stays open", false)
				}
				return m, statusCmd("Closing tab failed: "+err.Error(), true)
			}
			return m, m.refresh()
		case "ctrl+right":
			return m, m.switchTab(1)
		case "ctrl+left":
			return m, m.switchTab(-1)
		case "ctrl+l":
			if err := m.deps.Chat.ClearMessages(m.activeID); err != nil {
				return m, statusCmd("Clearing chat failed: "+err.Error(), true)
			}
			return m, m.refresh()
		case "enter":
			if m.input.Focused() && !m.waiting {
				text := strings.TrimSpace(m.input.Value())
				if text == "" {
					return m, nil
				}
				m.input.Reset()
				m.waiting = true
				return m, tea.Batch(m.spin.Tick, m.sendCmd(m.activeID, text))
			}
		}

		if m.input.Focused() {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m chatModel) switchTab(offset int) tea.Cmd {
	for i, tab := range m.tabs {
		if tab.ID == m.activeID {
			next := (i + offset + len(m.tabs)) % len(m.tabs)
			if err := m.deps.Chat.SetActive(m.tabs[next].ID); err != nil {
				return statusCmd("Switching tab failed: "+err.Error(), true)
			}
			return m.refresh()
		}
	}
	return nil
}

func (m chatModel) sendCmd(tabID, text string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.deps.Chat.AppendMessage(tabID, model.ChatRoleUser, text); err != nil {
			return chatReplyMsg{tabID: tabID, err: err}
		}

		tab, err := m.deps.Chat.ActiveTab()
		if err != nil {
			return chatReplyMsg{tabID: tabID, err: err}
		}

		reply, err := m.deps.AI.Complete(context.Background(), tab.Messages)
		return chatReplyMsg{tabID: tabID, reply: reply, err: err}
	}
}

func (m *chatModel) renderTranscript(tab model.ChatTab) {
	var b strings.Builder
	for _, msg := range tab.Messages {
		prefix := "you"
		if msg.Role == model.ChatRoleAssistant {
			prefix = "severino"
		}
		b.WriteString(prefix + ": " + msg.Content + "\n\n")
	}
	m.vp.SetContent(b.String())
	m.vp.GotoBottom()
}

func (m chatModel) view(st styles) string {
	var tabRow []string
	for _, tab := range m.tabs {
		label := truncate(tab.Title, 16)
		if tab.ID == m.activeID {
			tabRow = append(tabRow, st.activeTab.Render(label))
		} else {
			tabRow = append(tabRow, st.inactiveTab.Render(label))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, tabRow...)

	body := m.vp.View()
	if m.waiting {
		body += "\n" + st.warning.Render(m.spin.View()+" thinking...")
	}

	hint := st.muted.Render("enter send · ctrl+t new tab · ctrl+w close · ctrl+l clear · ctrl+←/→ switch")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		st.panel.Render(body),
		m.input.View(),
		hint,
	)
}
