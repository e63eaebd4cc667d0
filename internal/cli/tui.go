package cli

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/wopp/pkg/errors"
	"github.com/matzehuels/wopp/pkg/requirements"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listCheckedStyle  = lipgloss.NewStyle().Foreground(colorGreen)
)

// interactive reports whether the terminal can host prompts and spinners.
func (c *CLI) interactive() bool {
	if c.Interactive != nil {
		return c.Interactive()
	}
	return isTerminal(os.Stdin) && isTerminal(os.Stderr)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// chooser selects how several matching requirements files are narrowed
// down: everything with --all, a bubbletea list on a terminal, otherwise a
// numbered line prompt read from stdin.
func (c *CLI) chooser(all bool) requirements.Chooser {
	switch {
	case all:
		return requirements.AllChooser{}
	case c.interactive():
		return requirements.ChooserFunc(chooseWithList)
	default:
		return promptChooser{in: stdin, out: stderr}
	}
}

// =============================================================================
// fileListModel - Interactive requirements file selection
// =============================================================================

// fileListModel is the bubbletea model for picking requirements files.
// Options[0] is the ALL entry.
type fileListModel struct {
	Options   []string
	Cursor    int
	Checked   map[int]bool
	Confirmed bool
}

func newFileListModel(options []string) fileListModel {
	return fileListModel{Options: options, Checked: make(map[int]bool)}
}

func (m fileListModel) Init() tea.Cmd {
	return nil
}

func (m fileListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case " ", "x":
		m.Checked[m.Cursor] = !m.Checked[m.Cursor]
	case "enter":
		m.Confirmed = true
		return m, tea.Quit
	}
	return m, nil
}

func (m fileListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Requirements Files"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  ⏎ confirm  q quit"))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		box := "[ ]"
		if m.Checked[i] {
			box = listCheckedStyle.Render("[x]")
		}
		label := opt
		if i > 0 {
			label = displayPath(opt)
		}

		line := fmt.Sprintf("%s%s %d. %s", cursor, box, i+1, label)
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("  nothing checked selects ALL"))
	b.WriteString("\n")
	return b.String()
}

// Choices returns the 1-based indices of the checked options.
func (m fileListModel) Choices() []int {
	var out []int
	for i := range m.Options {
		if m.Checked[i] {
			out = append(out, i+1)
		}
	}
	return out
}

func chooseWithList(ctx context.Context, options []string) ([]int, error) {
	p := tea.NewProgram(newFileListModel(options),
		tea.WithContext(ctx),
		tea.WithInput(stdin),
		tea.WithOutput(stderr),
	)
	final, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "file selection")
	}
	m := final.(fileListModel)
	if !m.Confirmed {
		return nil, errors.New(errors.ErrCodeInvalidInput, "file selection cancelled")
	}
	return m.Choices(), nil
}

// =============================================================================
// promptChooser - Numbered line prompt
// =============================================================================

// promptChooser lists the options and reads a comma-separated selection
// such as "1,3". A blank answer or end of input selects ALL; other read
// errors are returned.
type promptChooser struct {
	in  io.Reader
	out io.Writer
}

func (p promptChooser) Choose(ctx context.Context, options []string) ([]int, error) {
	fmt.Fprintln(p.out, "Multiple requirements files found:")
	for i, opt := range options {
		label := opt
		if i > 0 {
			label = displayPath(opt)
		}
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, label)
	}
	fmt.Fprintf(p.out, "Choose files (e.g. 1,3) [1]: ")

	type answer struct {
		line string
		err  error
	}
	ch := make(chan answer, 1)
	go func() {
		line, err := bufio.NewReader(p.in).ReadString('\n')
		ch <- answer{line, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case a := <-ch:
		switch {
		case a.err != nil && !stderrors.Is(a.err, io.EOF):
			return nil, errors.Wrap(errors.ErrCodeInternal, a.err, "read file selection")
		case strings.TrimSpace(a.line) == "":
			return nil, nil
		}
		return parseChoices(a.line, len(options))
	}
}

// parseChoices parses a comma-separated list of 1-based choices.
func parseChoices(s string, n int) ([]int, error) {
	var out []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.Atoi(field)
		if err != nil || v < 1 || v > n {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"invalid choice %q (choose from 1 to %d)", field, n)
		}
		out = append(out, v)
	}
	return out, nil
}

// displayPath shortens path relative to the working directory when possible.
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
