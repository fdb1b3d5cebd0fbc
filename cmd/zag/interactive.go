package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fbkclanna/zag/internal/deps"
	"github.com/fbkclanna/zag/internal/manifest"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle     = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

var errAborted = errors.New("user aborted")

// --- inputModel: bubbletea model for text input with validation ---

type inputModel struct {
	textInput textinput.Model
	title     string
	validate  func(string) error
	errMsg    string
	done      bool
	aborted   bool
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			if m.validate != nil {
				if err := m.validate(m.textInput.Value()); err != nil {
					m.errMsg = err.Error()
					return m, nil
				}
			}
			m.done = true
			return m, tea.Quit
		}
	}
	m.errMsg = ""
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n")
	b.WriteString(m.textInput.View() + "\n")
	if m.errMsg != "" {
		b.WriteString(errStyle.Render(m.errMsg) + "\n")
	}
	return b.String()
}

// --- confirmModel: bubbletea model for yes/no confirmation ---

type confirmModel struct {
	title   string
	value   bool
	done    bool
	aborted bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		case "y", "Y":
			m.value = true
			m.done = true
			return m, tea.Quit
		case "n", "N":
			m.value = false
			m.done = true
			return m, tea.Quit
		case "left", "right", "tab", "h", "l":
			m.value = !m.value
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	yes, no := " Yes ", " No "
	if m.value {
		yes = selectedStyle.Render(yes)
	} else {
		no = selectedStyle.Render(no)
	}
	return fmt.Sprintf("%s %s / %s\n", titleStyle.Render(m.title), yes, no)
}

// --- prompt helpers ---

func promptInput(title, placeholder string, validate func(string) error) (string, error) {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	result, err := tea.NewProgram(inputModel{textInput: ti, title: title, validate: validate}).Run()
	if err != nil {
		return "", err
	}
	rm := result.(inputModel)
	if rm.aborted {
		return "", errAborted
	}
	return strings.TrimSpace(rm.textInput.Value()), nil
}

func promptConfirm(title string, def bool) (bool, error) {
	result, err := tea.NewProgram(confirmModel{title: title, value: def}).Run()
	if err != nil {
		return false, err
	}
	rm := result.(confirmModel)
	if rm.aborted {
		return false, errAborted
	}
	return rm.value, nil
}

// dependencyInput is what the interactive add collects.
type dependencyInput struct {
	repo    string
	version string
	entry   string
}

// repoValidator accepts URLs deps.Add can derive a fresh name from. With an
// explicit name only the URL itself is checked.
func repoValidator(existing *manifest.Manifest, explicitName string) func(string) error {
	return func(s string) error {
		u, err := deps.ParseRepository(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		name := explicitName
		if name == "" {
			if name, err = deps.DeriveName(u); err != nil {
				return err
			}
		}
		if _, ok := existing.Get(name); ok {
			return fmt.Errorf("dependency %q is already in the manifest", name)
		}
		return nil
	}
}

func requiredValidator(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// promptDependency asks for repository, version and entry until the user
// confirms the values.
func promptDependency(out io.Writer, existing *manifest.Manifest, explicitName string) (dependencyInput, error) {
	for {
		var in dependencyInput
		var err error

		in.repo, err = promptInput("Repository URL", "https://github.com/org/lib", repoValidator(existing, explicitName))
		if err != nil {
			return in, err
		}
		in.version, err = promptInput("Version (tag, branch or commit)", "v1.0.0", requiredValidator("version"))
		if err != nil {
			return in, err
		}
		in.entry, err = promptInput("Entry file (optional)", "src/main.zig", nil)
		if err != nil {
			return in, err
		}

		printSummary(out, in)
		ok, err := promptConfirm("Add this dependency?", true)
		if err != nil {
			return in, err
		}
		if ok {
			return in, nil
		}
	}
}

func printSummary(out io.Writer, in dependencyInput) {
	_, _ = fmt.Fprintln(out, hintStyle.Render("  "+describeInput(in)))
}

func describeInput(in dependencyInput) string {
	s := in.repo + " @ " + in.version
	if in.entry != "" {
		s += " (entry " + in.entry + ")"
	}
	return s
}
