package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lucidshield/sentinel/internal/recognizer"
	"github.com/lucidshield/sentinel/pkg/sentinel"
)

// View states.
const (
	stateInput = iota
	stateReview
	stateMasked
)

// Lipgloss color mapping per entity kind.
func kindColor(kind recognizer.Kind) lipgloss.Color {
	switch kind {
	case recognizer.KindPerson:
		return lipgloss.Color("5") // magenta
	case recognizer.KindPhone, recognizer.KindIP:
		return lipgloss.Color("3") // yellow
	case recognizer.KindEmail, recognizer.KindURL, recognizer.KindDomain:
		return lipgloss.Color("6") // cyan
	case recognizer.KindFinancial, recognizer.KindCreditCard, recognizer.KindCustom:
		return lipgloss.Color("1") // red
	case recognizer.KindIBAN, recognizer.KindSaudiID, recognizer.KindSSN:
		return lipgloss.Color("2") // green
	default:
		return lipgloss.Color("3")
	}
}

// Styles.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("7")).
			Background(lipgloss.Color("5")).
			Padding(0, 1)

	headerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("5")).
			Padding(0, 1).
			Width(45)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("8"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)

	approvedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2"))

	skippedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Strikethrough(true)
)

type model struct {
	state    int
	textarea textarea.Model

	rec        *sentinel.Recognizer
	detections []sentinel.Detection
	cursor     int
	scanTime   time.Duration

	masked *sentinel.MaskResult

	width, height int
}

func initialModel() model {
	ta := textarea.New()
	ta.Placeholder = "Paste or type text here..."
	ta.ShowLineNumbers = false
	ta.SetHeight(12)
	ta.SetWidth(70)
	ta.Focus()
	ta.CharLimit = 0

	return model{
		state:    stateInput,
		textarea: ta,
		rec:      sentinel.NewRecognizer(),
	}
}

func (m model) Init() tea.Cmd {
	return textarea.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textarea.SetWidth(min(msg.Width-4, 80))

	case tea.KeyMsg:
		switch m.state {
		case stateInput:
			switch msg.Type {
			case tea.KeyCtrlC:
				return m, tea.Quit
			case tea.KeyCtrlD:
				return m.doScan()
			}
		case stateReview:
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "up", "k":
				if m.cursor > 0 {
					m.cursor--
				}
			case "down", "j":
				if m.cursor < len(m.detections)-1 {
					m.cursor++
				}
			case " ":
				if m.cursor < len(m.detections) {
					m.detections[m.cursor].Approved = !m.detections[m.cursor].Approved
				}
			case "a":
				for i := range m.detections {
					m.detections[i].Approved = true
				}
			case "n":
				for i := range m.detections {
					m.detections[i].Approved = false
				}
			case "enter", "m":
				return m.doMask()
			case "esc":
				m.state = stateInput
				m.textarea.Focus()
				return m, textarea.Blink
			}
			return m, nil
		case stateMasked:
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "r":
				m.state = stateReview
				return m, nil
			case "n":
				m.textarea.Reset()
				m.textarea.Focus()
				m.state = stateInput
				m.detections = nil
				m.masked = nil
				return m, textarea.Blink
			}
			return m, nil
		}
	}

	if m.state == stateInput {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m model) doScan() (tea.Model, tea.Cmd) {
	text := m.textarea.Value()
	if strings.TrimSpace(text) == "" {
		return m, nil
	}

	start := time.Now()
	detections := m.rec.Extract(text)
	m.scanTime = time.Since(start)

	m.detections = detections
	m.cursor = 0
	m.state = stateReview
	m.textarea.Blur()

	return m, nil
}

func (m model) doMask() (tea.Model, tea.Cmd) {
	text := m.textarea.Value()
	result := sentinel.ApplyMasking(text, m.detections)
	m.masked = &result
	m.state = stateMasked
	return m, nil
}

func (m model) View() string {
	switch m.state {
	case stateInput:
		return m.viewInput()
	case stateReview:
		return m.viewReview()
	case stateMasked:
		return m.viewMasked()
	}
	return ""
}

func (m model) viewInput() string {
	header := headerBoxStyle.Render(titleStyle.Render("sentinel") + " — PII Detector")
	help := helpStyle.Render("  Ctrl+D scan  •  Ctrl+C quit")
	return fmt.Sprintf("\n%s\n\n%s\n\n%s\n", header, m.textarea.View(), help)
}

func (m model) viewReview() string {
	text := m.textarea.Value()
	ms := m.scanTime.Milliseconds()

	header := headerBoxStyle.Render(fmt.Sprintf("%s — %d detections (%dms)",
		titleStyle.Render("sentinel"), len(m.detections), ms))

	var b strings.Builder
	b.WriteString("\n" + header + "\n\n")

	b.WriteString(sectionStyle.Render("─── ANNOTATED ───") + "\n")
	b.WriteString(renderAnnotated(text, m.detections))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("─── DETECTIONS ───") + "\n")
	if len(m.detections) == 0 {
		b.WriteString(dimStyle.Render("  (none found)") + "\n")
	}
	for i, d := range m.detections {
		cursor := "  "
		if i == m.cursor {
			cursor = activeStyle.Render("▸ ")
		}
		status := approvedStyle.Render("[x]")
		text := d.Text
		if !d.Approved {
			status = dimStyle.Render("[ ]")
			text = skippedStyle.Render(text)
		}
		clr := kindColor(d.Kind)
		kindStyled := lipgloss.NewStyle().Foreground(clr).Render(string(d.Kind))
		b.WriteString(fmt.Sprintf("%s%s %-12s %s (%d%%)\n", cursor, status, kindStyled, text, d.Confidence))
	}
	b.WriteString("\n")

	help := helpStyle.Render("  ↑↓ select  •  space toggle  •  a/n all/none  •  enter mask  •  esc back  •  q quit")
	b.WriteString(help + "\n")

	return b.String()
}

func renderAnnotated(text string, detections []sentinel.Detection) string {
	sorted := make([]sentinel.Detection, len(detections))
	copy(sorted, detections)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var b strings.Builder
	pos := 0
	for _, d := range sorted {
		if d.Start < pos {
			continue
		}
		if d.Start > pos {
			b.WriteString(text[pos:d.Start])
		}
		clr := kindColor(d.Kind)
		style := lipgloss.NewStyle().Foreground(clr).Bold(true)
		if !d.Approved {
			style = style.Strikethrough(true)
		}
		b.WriteString(style.Render(text[d.Start:d.End]))
		b.WriteString(dimStyle.Render("⟨" + string(d.Kind) + "⟩"))
		pos = d.End
	}
	if pos < len(text) {
		b.WriteString(text[pos:])
	}
	return b.String()
}

func (m model) viewMasked() string {
	if m.masked == nil {
		return ""
	}

	var b strings.Builder
	header := headerBoxStyle.Render(titleStyle.Render("sentinel") + " — Masked")
	b.WriteString("\n" + header + "\n\n")

	b.WriteString(sectionStyle.Render("─── REDACTED ───") + "\n")
	b.WriteString(m.masked.RedactedText)
	b.WriteString("\n\n")

	if len(m.masked.Mappings) > 0 {
		b.WriteString(sectionStyle.Render("─── MAPPINGS ───") + "\n")
		for _, mp := range m.masked.Mappings {
			clr := kindColor(recognizer.Kind(mp.Kind))
			tokenStyled := lipgloss.NewStyle().Foreground(clr).Bold(true).Render(mp.Placeholder)
			b.WriteString(fmt.Sprintf("  %s  %s\n", tokenStyled, strings.Join(mp.Originals, ", ")))
		}
		b.WriteString("\n")
	}

	help := helpStyle.Render("  r review  •  n new scan  •  q quit")
	b.WriteString(help + "\n")

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
