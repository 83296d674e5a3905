package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"genexpr/internal/geneval"
	"genexpr/internal/genevalyaml"
	"genexpr/internal/genexprparse"
)

type browseState int

const (
	stateTargetList browseState = iota
	stateProperties
	stateEvalInput
	stateEvalResult
)

var (
	browseStyleBase = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	browseStyleTitle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("99")).
				Padding(0, 1)

	browseStyleHelp = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241")).
				Padding(0, 1)

	browseStyleOK = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Padding(0, 1)

	browseStyleErr = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Padding(0, 1)
)

// browseModel is a bubbletea model for interactively walking a fixture's
// targets, their declared properties, and ad hoc expression evaluation
// against the same loaded host.
type browseModel struct {
	fixture genevalyaml.Fixture
	host    *genevalyaml.Host

	targetNames []string
	table       table.Model
	input       textinput.Model

	state      browseState
	selected   string
	resultText string
	resultErr  error
}

func newBrowseModel(fixture genevalyaml.Fixture) browseModel {
	names := make([]string, 0, len(fixture.Targets))
	for name := range fixture.Targets {
		names = append(names, name)
	}
	sort.Strings(names)

	columns := []table.Column{
		{Title: "TARGET", Width: 24},
		{Title: "TYPE", Width: 18},
	}
	rows := make([]table.Row, len(names))
	for i, name := range names {
		rows[i] = table.Row{name, fixture.Targets[name].Type}
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("99"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)

	in := textinput.New()
	in.Placeholder = "$<TARGET_PROPERTY:" + firstOr(names, "target") + ",PROP>"

	return browseModel{
		fixture:     fixture,
		host:        genevalyaml.NewHost(fixture),
		targetNames: names,
		table:       t,
		input:       in,
		state:       stateTargetList,
	}
}

func firstOr(names []string, fallback string) string {
	if len(names) == 0 {
		return fallback
	}
	return names[0]
}

func (m browseModel) Init() tea.Cmd { return nil }

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateTargetList:
		return m.updateTargetList(msg)
	case stateProperties:
		return m.updateProperties(msg)
	case stateEvalInput:
		return m.updateEvalInput(msg)
	case stateEvalResult:
		return m.updateEvalResult(msg)
	}
	return m, nil
}

func (m browseModel) updateTargetList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if idx := m.table.Cursor(); idx >= 0 && idx < len(m.targetNames) {
				m.selected = m.targetNames[idx]
				m.state = stateProperties
			}
			return m, nil
		case "e":
			m.state = stateEvalInput
			m.input.Focus()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m browseModel) updateProperties(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.state = stateTargetList
			return m, nil
		}
	}
	return m, nil
}

func (m browseModel) updateEvalInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "ctrl+c":
			m.state = stateTargetList
			m.input.Blur()
			return m, nil
		case "enter":
			m.resultText, m.resultErr = m.evaluate(m.input.Value())
			m.state = stateEvalResult
			m.input.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m browseModel) updateEvalResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "enter":
			m.state = stateTargetList
			return m, nil
		}
	}
	return m, nil
}

// evaluate parses and runs expr against a fresh context over m.host, the
// same as the eval command's non-interactive path.
func (m browseModel) evaluate(expr string) (string, error) {
	root, err := genexprparse.Parse(expr)
	if err != nil {
		return "", err
	}
	sink := newConsoleSink()
	ctx, err := m.host.NewContext(sink)
	if err != nil {
		return "", err
	}
	ctx.Quiet = true
	result := geneval.Evaluate(root, ctx, nil)
	if ctx.HadError {
		return "", fmt.Errorf("evaluation failed (see backtrace: %s)", strings.Join(ctx.Backtrace, " -> "))
	}
	return result, nil
}

func (m browseModel) View() string {
	title := browseStyleTitle.Render("genexpr browse — " + m.fixture.Config)

	switch m.state {
	case stateProperties:
		tgt := m.fixture.Targets[m.selected]
		names := make([]string, 0, len(tgt.Properties))
		for name := range tgt.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		var b strings.Builder
		for _, name := range names {
			fmt.Fprintf(&b, "%s = %s\n", name, tgt.Properties[name])
		}
		body := browseStyleBase.Render(m.selected + "\n\n" + b.String())
		help := browseStyleHelp.Render("esc  back    q  quit")
		return title + "\n" + body + "\n" + help

	case stateEvalInput:
		body := browseStyleBase.Render("Expression:\n" + m.input.View())
		help := browseStyleHelp.Render("enter  evaluate    esc  cancel")
		return title + "\n" + body + "\n" + help

	case stateEvalResult:
		var rendered string
		if m.resultErr != nil {
			rendered = browseStyleErr.Render(m.resultErr.Error())
		} else {
			rendered = browseStyleOK.Render(m.resultText)
		}
		help := browseStyleHelp.Render("enter / esc  back    q  quit")
		return title + "\n" + rendered + "\n" + help

	default:
		tableView := browseStyleBase.Render(m.table.View())
		help := browseStyleHelp.Render("↑/↓  navigate    enter  properties    e  evaluate    q  quit")
		return title + "\n" + tableView + "\n" + help
	}
}
