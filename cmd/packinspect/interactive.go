package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/packedints/packed"
	"github.com/wippyai/packedints/snapshot"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	widthStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	rawStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	value    *packed.Value[string]
	savePath string
	status   string
	input    textinput.Model
	selected int
	strict   bool
	state    modelState
}

type modelState int

const (
	stateSelectField modelState = iota
	stateEditValue
)

type savedMsg struct {
	err  error
	path string
}

func newInteractiveModel(v *packed.Value[string], savePath string, strict bool) *interactiveModel {
	return &interactiveModel{
		value:    v,
		savePath: savePath,
		strict:   strict,
		state:    stateSelectField,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) fieldName(i int) string {
	return m.value.Type().Schema().At(i).ID
}

func (m *interactiveModel) fieldCount() int {
	return m.value.Type().Schema().Len()
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateEditValue {
			return m.updateEdit(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < m.fieldCount()-1 {
				m.selected++
			}

		case "enter":
			m.startEdit()
			return m, textinput.Blink

		case "r":
			m.value.Reset()
			m.status = "reset all fields"
			m.err = nil

		case "s":
			if m.savePath == "" {
				m.err = fmt.Errorf("no -save path given")
				return m, nil
			}
			return m, m.save
		}

	case savedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.status = "saved " + msg.path
		}
	}

	return m, nil
}

func (m *interactiveModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.state = stateSelectField
		return m, nil

	case "enter":
		m.commit()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) startEdit() {
	name := m.fieldName(m.selected)
	_, bits := m.value.Type().FieldAt(m.selected)

	ti := textinput.New()
	ti.Prompt = name + " = "
	ti.Placeholder = fmt.Sprintf("0..%d", uint64(1)<<bits-1)
	ti.SetValue(strconv.FormatUint(uint64(m.value.Get(name)), 10))
	ti.Width = 20
	ti.Focus()

	m.input = ti
	m.state = stateEditValue
	m.status = ""
	m.err = nil
}

func (m *interactiveModel) commit() {
	name := m.fieldName(m.selected)
	as, err := parseAssignments(name + "=" + m.input.Value())
	if err == nil {
		_, err = apply(m.value, as, m.strict)
	}
	if err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("%s = %d", name, m.value.Get(name))
	m.state = stateSelectField
}

func (m *interactiveModel) save() tea.Msg {
	return savedMsg{path: m.savePath, err: snapshot.Save(m.savePath, m.value)}
}

func (m *interactiveModel) View() string {
	var b strings.Builder
	t := m.value.Type()

	b.WriteString(titleStyle.Render("Packed Inspector"))
	b.WriteString(" ")
	b.WriteString(t.Schema().String())
	b.WriteString("\n\n")

	for i := 0; i < m.fieldCount(); i++ {
		name := m.fieldName(i)
		off, bits := t.FieldAt(i)
		line := fmt.Sprintf("%s %s @%-3d %d",
			fieldStyle.Render(fmt.Sprintf("%-12s", name)),
			widthStyle.Render(fmt.Sprintf("%2d bits", bits)),
			off,
			m.value.Get(name))
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	data := m.value.Data()
	b.WriteString("\n")
	b.WriteString(rawStyle.Render("raw " + data.String()))
	if data.IsWord() {
		b.WriteString(rawStyle.Render(fmt.Sprintf("  word %#x", data.Word())))
	}
	b.WriteString("\n\n")

	if m.state == stateEditValue {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	} else if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n\n")
	}

	if m.state == stateEditValue {
		b.WriteString(helpStyle.Render("enter apply • esc back"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓ select • enter edit • r reset • s save • q quit"))
	}

	return b.String()
}

func runInteractive(v *packed.Value[string], savePath string, strict bool) error {
	p := tea.NewProgram(newInteractiveModel(v, savePath, strict), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
