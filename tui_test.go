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
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sendKey(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func runLine(t *testing.T, m Model, line string) Model {
	t.Helper()
	m.commandInput.SetValue(line)
	return sendKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := InitialModel(newTestSession(t, "natural", 64))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

func TestExploreRunsCommands(t *testing.T) {
	m := newTestModel(t)

	m = runLine(t, m, "insert 5 3 8")
	assert.Equal(t, "inserted 3, replaced 0, size 3", m.status)
	assert.False(t, m.statusErr)
	assert.Empty(t, m.commandInput.Value())
	assert.Len(t, m.versionsList.Items(), 2)

	m = runLine(t, m, "list")
	assert.Equal(t, "3\n5\n8", m.output)

	m = runLine(t, m, "bogus")
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "unknown command")

	view := m.View()
	assert.Contains(t, view, "Version #1")
	assert.Contains(t, view, "natural order")
}

func TestExploreChecksOutVersions(t *testing.T) {
	m := newTestModel(t)
	m = runLine(t, m, "insert a")
	m = runLine(t, m, "insert b")
	require.Equal(t, 2, m.session.Current().ID)

	m = sendKey(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusVersions, m.focusIndex)

	// newest first: move to the version holding only "a"
	m = sendKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = sendKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, 1, m.session.Current().ID)
	assert.Equal(t, []string{"a"}, m.session.Tree().Ascending())
	assert.Len(t, m.versionsList.Items(), 3)
}

func TestExploreToggleGuide(t *testing.T) {
	m := newTestModel(t)

	m = sendKey(t, m, tea.KeyMsg{Type: tea.KeyF1})
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Guide")

	m = sendKey(t, m, tea.KeyMsg{Type: tea.KeyF1})
	assert.False(t, m.showHelp)
}

func TestExploreTinyTerminal(t *testing.T) {
	m := InitialModel(newTestSession(t, "natural", 64))
	assert.Equal(t, "Initializing...", m.View())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	assert.Equal(t, "Terminal too small. Please resize your terminal.", next.(Model).View())
}
