package tui

import "github.com/charmbracelet/lipgloss"

type palette struct {
	primary   lipgloss.Color
	secondary lipgloss.Color
	dim       lipgloss.Color
	highlight lipgloss.Color
	border    lipgloss.Color
	errorFg   lipgloss.Color
	text      lipgloss.Color
}

var (
	darkPalette = palette{
		primary:   lipgloss.Color("12"),  // bright blue
		secondary: lipgloss.Color("10"),  // bright green
		dim:       lipgloss.Color("240"), // gray
		highlight: lipgloss.Color("11"),  // bright yellow
		border:    lipgloss.Color("238"), // dark gray
		errorFg:   lipgloss.Color("9"),
		text:      lipgloss.Color("252"),
	}
	lightPalette = palette{
		primary:   lipgloss.Color("4"),
		secondary: lipgloss.Color("2"),
		dim:       lipgloss.Color("245"),
		highlight: lipgloss.Color("5"),
		border:    lipgloss.Color("250"),
		errorFg:   lipgloss.Color("1"),
		text:      lipgloss.Color("235"),
	}
)

type styles struct {
	input       lipgloss.Style
	inputPrompt lipgloss.Style
	tabActive   lipgloss.Style
	tabInactive lipgloss.Style
	panel       lipgloss.Style
	label       lipgloss.Style
	value       lipgloss.Style
	iso         lipgloss.Style
	dim         lipgloss.Style
	err         lipgloss.Style
	selected    lipgloss.Style
	normal      lipgloss.Style
	statusBar   lipgloss.Style
}

func newStyles(dark bool) styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	return styles{
		input: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),
		inputPrompt: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),
		tabActive: lipgloss.NewStyle().
			Foreground(p.highlight).
			Bold(true).
			Underline(true).
			Padding(0, 1),
		tabInactive: lipgloss.NewStyle().
			Foreground(p.dim).
			Padding(0, 1),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border),
		label: lipgloss.NewStyle().
			Foreground(p.primary).
			Width(10),
		value: lipgloss.NewStyle().
			Foreground(p.text),
		iso: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		dim: lipgloss.NewStyle().
			Foreground(p.dim),
		err: lipgloss.NewStyle().
			Foreground(p.errorFg),
		selected: lipgloss.NewStyle().
			Foreground(p.highlight).
			Bold(true),
		normal: lipgloss.NewStyle().
			Foreground(p.text),
		statusBar: lipgloss.NewStyle().
			Foreground(p.dim).
			Padding(0, 1),
	}
}
