// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Focus targets in the explore view
const (
	focusInput = iota
	focusVersions
)

// Model represents the explore application state
type Model struct {
	ready bool

	commandInput    textinput.Model
	versionsList    list.Model
	diagramViewport viewport.Model

	session *Session

	// State
	focusIndex int
	showHelp   bool
	output     string // last multi-line command output, shown instead of the diagram
	status     string
	statusErr  bool

	// Styling
	styles          *Styles
	glamourRenderer *glamour.TermRenderer

	// Dimensions
	width  int
	height int
}

// Styles holds all the styling for the application
type Styles struct {
	BorderFocused  lipgloss.Style
	BorderBlurred  lipgloss.Style
	Title          lipgloss.Style
	InputPrompt    lipgloss.Style
	HelpKey        lipgloss.Style
	HelpDesc       lipgloss.Style
	SuccessMessage lipgloss.Style
	ErrorMessage   lipgloss.Style
}

// NewStyles creates styles from a color scheme
func NewStyles(scheme *ColorScheme) *Styles {
	return &Styles{
		BorderFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(scheme.BorderFocus).
			Bold(true),
		BorderBlurred: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(scheme.Border),
		Title: lipgloss.NewStyle().
			Foreground(scheme.Primary).
			Padding(0, 1).
			Bold(true),
		InputPrompt: lipgloss.NewStyle().
			Foreground(scheme.Accent).
			Bold(true),
		HelpKey: lipgloss.NewStyle().
			Foreground(scheme.TextMuted).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(scheme.TextMuted),
		SuccessMessage: lipgloss.NewStyle().
			Foreground(scheme.Success).
			Bold(true),
		ErrorMessage: lipgloss.NewStyle().
			Foreground(scheme.Error).
			Bold(true),
	}
}

// versionItem represents a version in the versions list
type versionItem struct {
	version Version
	current bool
}

func (i versionItem) FilterValue() string { return i.version.Label }
func (i versionItem) Title() string {
	marker := "  "
	if i.current {
		marker = "● "
	}
	return fmt.Sprintf("%s#%d %s", marker, i.version.ID, i.version.Label)
}
func (i versionItem) Description() string {
	return fmt.Sprintf("   %d keys, height %d", i.version.Tree.Size(), i.version.Tree.Height())
}

// InitialModel creates the initial model around a session
func InitialModel(session *Session) Model {
	ti := textinput.New()
	ti.Placeholder = "insert 5 3 8, delete 3, range a z, undo ..."
	ti.Prompt = "› "
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = 50

	versionsList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	versionsList.SetShowTitle(false) // Completely disable built-in title rendering
	versionsList.SetShowHelp(false)
	versionsList.SetFilteringEnabled(false)

	diagramViewport := viewport.New(0, 0)

	glamourRenderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(72),
	)

	styles := NewStyles(GetColorScheme())
	ti.PromptStyle = styles.InputPrompt

	m := Model{
		commandInput:    ti,
		versionsList:    versionsList,
		diagramViewport: diagramViewport,
		session:         session,
		focusIndex:      focusInput,
		styles:          styles,
		glamourRenderer: glamourRenderer,
		status:          "type help for the command list",
	}
	m.refresh()
	return m
}

// Init is called when the program starts
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles all the I/O
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "f1":
			m.showHelp = !m.showHelp
			m.refreshViewport()
			return m, nil
		case "ctrl+y":
			m.copyKeys()
			return m, nil
		case "tab":
			if m.focusIndex == focusInput {
				m.focusIndex = focusVersions
				m.commandInput.Blur()
			} else {
				m.focusIndex = focusInput
				m.commandInput.Focus()
			}
			return m, nil
		case "pgup", "pgdown":
			m.diagramViewport, cmd = m.diagramViewport.Update(msg)
			return m, cmd
		}

		if m.focusIndex == focusVersions {
			return m.updateVersions(msg)
		}
		return m.updateInput(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.ready = true

	case tea.MouseMsg:
		m.diagramViewport, cmd = m.diagramViewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// updateInput handles key events while the command input has focus
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "enter" {
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		return m, cmd
	}

	line := strings.TrimSpace(m.commandInput.Value())
	m.commandInput.SetValue("")
	if line == "" {
		return m, nil
	}

	out, err := m.session.Execute(line)
	m.showHelp = false
	m.output = ""
	switch {
	case err != nil:
		m.setStatus(err.Error(), true)
	case strings.Contains(out, "\n") || isListing(line):
		m.output = out
		m.setStatus(fmt.Sprintf("%s: %d lines", line, strings.Count(out, "\n")+1), false)
	default:
		m.setStatus(out, false)
	}
	m.refresh()
	return m, nil
}

// isListing reports whether a command prints keys rather than a summary.
func isListing(line string) bool {
	name, _, _ := strings.Cut(strings.ToLower(line), " ")
	switch name {
	case "list", "range", "versions", "help":
		return true
	}
	return false
}

// updateVersions handles key events while the versions list has focus
func (m Model) updateVersions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		if item, ok := m.versionsList.SelectedItem().(versionItem); ok {
			if err := m.session.Checkout(item.version.ID); err != nil {
				m.setStatus(err.Error(), true)
			} else {
				m.output = ""
				m.setStatus(m.session.describeCurrent(), false)
			}
			m.refresh()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.versionsList, cmd = m.versionsList.Update(msg)
	return m, cmd
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// refresh rebuilds the versions list and the viewport from the session
func (m *Model) refresh() {
	versions := m.session.Versions()
	cursor := m.session.Cursor()

	items := make([]list.Item, len(versions))
	// newest first
	for i, v := range versions {
		items[len(versions)-1-i] = versionItem{version: v, current: i == cursor}
	}
	m.versionsList.SetItems(items)
	m.versionsList.Select(len(versions) - 1 - cursor)

	m.refreshViewport()
}

func (m *Model) refreshViewport() {
	switch {
	case m.showHelp:
		guide := usageMarkdown()
		if rendered, err := m.glamourRenderer.Render(guide); err == nil {
			m.diagramViewport.SetContent(rendered)
		} else {
			m.diagramViewport.SetContent(guide)
		}
	case m.output != "":
		m.diagramViewport.SetContent(m.output)
	default:
		m.diagramViewport.SetContent(m.session.Render())
	}
	m.diagramViewport.GotoTop()
}

func (m *Model) copyKeys() {
	keys := m.session.Tree().Ascending()
	if err := copyToClipboard(strings.Join(keys, "\n")); err != nil {
		m.setStatus(fmt.Sprintf("copy failed: %v", err), true)
		return
	}
	m.setStatus(fmt.Sprintf("📋 Copied %d keys to clipboard", len(keys)), false)
}

// View renders the explore screen
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	// Ensure we have minimum dimensions
	if m.width < 40 || m.height < 12 {
		return "Terminal too small. Please resize your terminal."
	}

	inputHeight := 3
	listHeight := m.height - inputHeight - 8
	leftWidth := (m.width * 4 / 10) - 1
	rightWidth := m.width - leftWidth - 3

	var inputStyle, listStyle lipgloss.Style
	inputTitle, listTitle := " ⌨ Command ", " 🕘 Versions "
	if m.focusIndex == focusInput {
		inputStyle, listStyle = m.styles.BorderFocused, m.styles.BorderBlurred
		inputTitle = " ⌨ Command (Active) "
	} else {
		inputStyle, listStyle = m.styles.BorderBlurred, m.styles.BorderFocused
		listTitle = " 🕘 Versions (Active) "
	}

	inputBox := inputStyle.
		Width(leftWidth).
		Height(inputHeight).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Width(leftWidth-4).Render(inputTitle),
			m.commandInput.View(),
		))

	listBox := listStyle.
		Width(leftWidth).
		Height(listHeight).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Width(leftWidth-4).Render(listTitle),
			m.versionsList.View(),
		))

	current := m.session.Current()
	diagramTitle := fmt.Sprintf(" 🌳 Version #%d · %s order · %d keys ", current.ID, m.session.Order().Name(), current.Tree.Size())
	if m.showHelp {
		diagramTitle = " 📖 Guide "
	}
	diagramBox := m.styles.BorderBlurred.
		Width(rightWidth).
		Height(listHeight + inputHeight + 2).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Width(rightWidth-4).Render(diagramTitle),
			m.diagramViewport.View(),
		))

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, inputBox, listBox),
		diagramBox,
	)

	statusStyle := m.styles.SuccessMessage
	if m.statusErr {
		statusStyle = m.styles.ErrorMessage
	}
	status := lipgloss.NewStyle().Padding(0, 2).Render(statusStyle.Render(m.status))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		main,
		status,
		m.renderKeyHelp(),
	)
}

func (m *Model) updateLayout() {
	inputHeight := 3
	listHeight := m.height - inputHeight - 8
	leftWidth := (m.width * 4 / 10) - 1
	rightWidth := m.width - leftWidth - 3

	m.commandInput.Width = leftWidth - 6
	m.versionsList.SetSize(leftWidth-2, listHeight-2)
	m.diagramViewport.Width = rightWidth - 2
	m.diagramViewport.Height = listHeight + inputHeight
}

// renderKeyHelp renders the key help footer
func (m Model) renderKeyHelp() string {
	entries := []struct{ key, desc string }{
		{"enter", "run / check out"},
		{"tab", "switch focus"},
		{"pgup/pgdown", "scroll diagram"},
		{"ctrl+y", "copy keys"},
		{"f1", "guide"},
		{"esc", "quit"},
	}

	var helpEntries []string
	for _, e := range entries {
		helpEntries = append(helpEntries,
			fmt.Sprintf("%s %s",
				m.styles.HelpKey.Render(e.key),
				m.styles.HelpDesc.Render(e.desc)))
	}

	return lipgloss.NewStyle().
		Padding(1, 0, 0, 2).
		Render(strings.Join(helpEntries, " • "))
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// runExplore starts the Bubble Tea application
func runExplore(session *Session) error {
	InitializeColors()

	program := tea.NewProgram(
		InitialModel(session),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := program.Run()
	return err
}
