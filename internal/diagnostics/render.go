package diagnostics

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const reportWidth = 70

var (
	colorOK    = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#3fb950"}
	colorWarn  = lipgloss.AdaptiveColor{Light: "#9a6700", Dark: "#d29922"}
	colorFail  = lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f85149"}
	colorTitle = lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#58a6ff"}
	colorMuted = lipgloss.AdaptiveColor{Light: "#656d76", Dark: "#7d8590"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorTitle).
			Width(reportWidth).
			Align(lipgloss.Center).
			Border(lipgloss.DoubleBorder(), true, false)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1).
			Width(reportWidth).
			Border(lipgloss.NormalBorder(), false, false, true, false)

	labelStyle  = lipgloss.NewStyle().Bold(true)
	detailStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

var statusText = map[Status]struct {
	mark, word string
	color      lipgloss.AdaptiveColor
}{
	StatusOK:      {"✓", "INSTALLED", colorOK},
	StatusWarning: {"⚠", "WARNING", colorWarn},
	StatusFailed:  {"✗", "NOT FOUND", colorFail},
}

func header(text string) string {
	return headerStyle.Render(text)
}

func section(text string) string {
	return sectionStyle.Render(text)
}

func resultLine(res Result) string {
	st := statusText[res.Status]
	colored := lipgloss.NewStyle().Foreground(st.color)
	line := fmt.Sprintf("%s %s: %s", colored.Render(st.mark), res.Name, colored.Render(st.word))
	if res.Detail != "" {
		line += " " + detailStyle.Render("- "+res.Detail)
	}
	return line
}

// Render formats r as a coloured terminal report. Colours are dropped
// automatically when the output is not a terminal.
func Render(r Report) string {
	var b strings.Builder
	write := func(s string) {
		b.WriteString(s)
		b.WriteString("\n")
	}

	write(header("EDUMERGE DEPENDENCY DIAGNOSTIC TOOL"))
	write(section("System Information"))
	for _, line := range r.System {
		write(line)
	}

	for _, name := range Sections {
		write(section(name))
		for _, res := range r.Results {
			if res.Section == name {
				write(resultLine(res))
			}
		}
	}

	write("")
	write(header("DIAGNOSTIC SUMMARY"))
	for _, name := range []string{SectionFormats, SectionTemp, SectionResources} {
		passed, total := r.Passed(name)
		write(fmt.Sprintf("%s %d/%d", labelStyle.Render(name+":"), passed, total))
	}
	poppler := lipgloss.NewStyle().Foreground(colorFail).Render("✗ Not Found")
	if r.PopplerFound() {
		poppler = lipgloss.NewStyle().Foreground(colorOK).Render("✓ Found")
	}
	write(fmt.Sprintf("%s %s", labelStyle.Render("System Tools (Poppler):"), poppler))
	write("")

	if r.OK() {
		write(lipgloss.NewStyle().Bold(true).Foreground(colorOK).Render("✓ ALL REQUIRED CHECKS PASSED"))
		if !r.PopplerFound() {
			write(lipgloss.NewStyle().Foreground(colorWarn).Render("Note: PDF pages will be shown as extracted text."))
		}
	} else {
		write(lipgloss.NewStyle().Bold(true).Foreground(colorFail).Render("✗ REQUIRED CHECKS FAILED"))
	}

	if hints := installHints(r); len(hints) > 0 {
		write("")
		write(header("INSTALLATION INSTRUCTIONS"))
		for _, h := range hints {
			write(h)
		}
	}
	return b.String()
}

func installHints(r Report) []string {
	var hints []string
	if !r.PopplerFound() {
		hints = append(hints, labelStyle.Render("Install Poppler (for PDF image rendering):"))
		switch runtime.GOOS {
		case "windows":
			hints = append(hints,
				"  1. Download from: https://github.com/oschwartz10612/poppler-windows/releases/",
				`  2. Extract to C:\poppler and add C:\poppler\Library\bin to PATH`,
			)
		case "darwin":
			hints = append(hints, "  brew install poppler")
		default:
			hints = append(hints,
				"  Ubuntu/Debian: sudo apt-get install poppler-utils",
				"  Fedora: sudo dnf install poppler-utils",
				"  Arch: sudo pacman -S poppler",
			)
		}
	}

	var missing []string
	for _, res := range r.Results {
		if res.Section == SectionResources && res.Status == StatusFailed {
			missing = append(missing, "  • "+res.Name)
		}
	}
	if len(missing) > 0 {
		hints = append(hints, lipgloss.NewStyle().Foreground(colorWarn).Render("Missing resource files:"))
		hints = append(hints, missing...)
		hints = append(hints, "These are optional. The app works without icons and images.")
	}
	return hints
}
