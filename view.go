package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/LFroesch/odyssey/internal/listing"
	"github.com/LFroesch/odyssey/internal/utils"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			Background(lipgloss.Color("235"))
	branchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Background(lipgloss.Color("235"))
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("240"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("160")).
			Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	previewStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(lipgloss.Color("240")).
			PaddingLeft(1)
)

func (m *model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.width < minTerminalWidth || m.height < minTerminalHeight {
		return fmt.Sprintf("Terminal too small (%dx%d)", m.width, m.height)
	}

	listWidth := m.width / 2
	previewWidth := m.width - listWidth

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(listWidth).Height(m.listHeight()).Render(m.renderListing(listWidth)),
		previewStyle.Width(previewWidth-2).Height(m.listHeight()).Render(m.renderPreview(previewWidth-3)),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderStatusBar(),
	)
}

func (m *model) renderHeader() string {
	title := " " + m.session.Dir()
	var branch string
	if m.gitBranch != "" {
		branch = " " + m.gitBranch + " "
	}
	titleWidth := m.width - runewidth.StringWidth(branch)
	title = runewidth.Truncate(title, titleWidth, "~")
	return headerStyle.Width(titleWidth).Render(title) + branchStyle.Render(branch)
}

func (m *model) renderListing(width int) string {
	l := m.session.Listing()
	sel := m.session.Selection()
	if l.Len() == 0 {
		return dimStyle.Render("  (empty)")
	}

	end := sel.Offset() + m.listHeight()
	if end > l.Len() {
		end = l.Len()
	}

	rows := make([]string, 0, end-sel.Offset())
	for i := sel.Offset(); i < end; i++ {
		rows = append(rows, m.renderRow(i, l.Entries[i], width))
	}
	return strings.Join(rows, "\n")
}

func (m *model) renderRow(i int, e listing.Entry, width int) string {
	sel := m.session.Selection()

	marker := "  "
	if sel.Tagged(i) {
		marker = "* "
	}
	if m.gitModified[m.session.Listing().Path(i)] {
		marker = marker[:1] + "M"
	}

	name := e.Name
	if e.IsDir() {
		name += "/"
	}
	size := e.SizeLabel
	nameWidth := width - runewidth.StringWidth(marker) - runewidth.StringWidth(size) - 2
	if nameWidth < 1 {
		nameWidth = 1
	}
	name = runewidth.Truncate(name, nameWidth, "~")
	pad := nameWidth - runewidth.StringWidth(name) + 1
	line := marker + name + strings.Repeat(" ", pad) + size + " "

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.ColorFor(m.config.Colors, e.Name, e.IsDir())))
	if e.IsDir() || sel.Tagged(i) {
		style = style.Bold(true)
	}
	if i == sel.Primary() {
		style = style.Reverse(true)
	}
	return style.Render(line)
}

func (m *model) renderPreview(width int) string {
	if width < 1 {
		return ""
	}
	m.loadPreview()
	p := m.preview

	switch {
	case p.Path == "":
		return ""
	case p.Err != nil:
		return errorStyle.Render(p.Err.Error())
	case p.Binary:
		return dimStyle.Render("binary file")
	case p.IsDir && len(p.Lines) == 0:
		return dimStyle.Render("(empty)")
	}

	lines := m.highlighted
	if len(lines) > m.listHeight() {
		lines = lines[:m.listHeight()]
	}
	clip := lipgloss.NewStyle().MaxWidth(width)
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = clip.Render(line)
	}
	return strings.Join(out, "\n")
}

// loadPreview rereads the preview when the cursor moved to another entry
func (m *model) loadPreview() {
	var path string
	if _, ok := m.session.Selected(); ok {
		path = m.session.Listing().Path(m.session.Selection().Primary())
	}
	if path == "" {
		m.preview = listing.Preview{}
		m.previewPath = ""
		m.highlighted = nil
		return
	}
	if path == m.previewPath {
		return
	}

	p, _ := m.session.Preview()
	m.preview = p
	m.previewPath = path
	m.highlighted = p.Lines
	if !p.IsDir && m.config.Highlight {
		m.highlighted = highlight(p.Path, p.Lines)
	}
}

func (m *model) renderStatusBar() string {
	if m.mode != modeNormal {
		return statusStyle.Width(m.width).Render(m.input.View())
	}

	st := m.session.Status()
	sel := m.session.Selection()

	var right []string
	if key, pending := m.resolver.Pending(); pending {
		if key == " " {
			key = "space"
		}
		right = append(right, key+"-")
	}
	if m.session.ShowHidden() {
		right = append(right, "hidden")
	}
	if n := len(sel.Targets()); n > 0 {
		right = append(right, fmt.Sprintf("%d tagged", n))
	}
	if n := m.session.Listing().Len(); n > 0 {
		right = append(right, fmt.Sprintf("%d/%d", sel.Primary()+1, n))
	}
	rightSide := strings.Join(right, " | ") + " "

	leftWidth := m.width - runewidth.StringWidth(rightSide)
	if leftWidth < 1 {
		leftWidth = 1
	}
	text := runewidth.Truncate(" "+st.Text, leftWidth, "~")

	left := statusStyle.Width(leftWidth).Render(text)
	if st.IsError {
		left = errorStyle.Width(leftWidth).Render(text)
	}
	return left + statusStyle.Render(rightSide)
}
