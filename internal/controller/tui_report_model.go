package controller

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/Nemesis2003/smartci-platform/internal/model"
)

// fileItem is one changed file row in the report browser.
type fileItem struct {
	path     string
	impacted []string
	selected []string
}

func (i fileItem) FilterValue() string { return i.path }

// reportDelegate renders one fileItem per line.
type reportDelegate struct{}

func (d reportDelegate) Height() int                             { return 1 }
func (d reportDelegate) Spacing() int                            { return 0 }
func (d reportDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d reportDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	file, ok := item.(fileItem)
	if !ok {
		return
	}

	isSelected := index == lm.Index()
	width := lm.Width() - 8

	var pathStyle, countStyle lipgloss.Style

	if isSelected {
		pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
		countStyle = pathStyle.Width(6).Align(lipgloss.Right)
	} else {
		pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true).
			Width(6).
			Align(lipgloss.Right)
	}

	line := fmt.Sprintf("%s  %s",
		countStyle.Render(fmt.Sprintf("%d", len(file.impacted))),
		pathStyle.Render(truncateToWidth(file.path, width)),
	)
	_, _ = fmt.Fprint(w, line)
}

// reportModel browses one analysis report: changed files with their
// impacted callables, plus the selection outcome in the footer.
type reportModel struct {
	width    int
	height   int
	fileList list.Model
	report   m.AnalysisReport
}

func newReportModel(report m.AnalysisReport) reportModel {
	fileList := list.New([]list.Item{}, reportDelegate{}, 80, 20)
	fileList.SetShowPagination(false)
	fileList.SetShowFilter(true)
	fileList.SetShowHelp(false)
	fileList.SetShowTitle(false)
	fileList.SetShowStatusBar(false)
	fileList.FilterInput.Placeholder = "Filter by path…"

	paths := make([]string, 0, len(report.ChangedFiles))
	for _, fc := range report.ChangedFiles {
		paths = append(paths, string(fc.Path))
	}

	sort.Strings(paths)

	items := make([]list.Item, 0, len(paths))
	for _, path := range paths {
		items = append(items, fileItem{
			path:     path,
			impacted: report.Impacted[m.Path(path)],
		})
	}

	fileList.SetItems(items)

	return reportModel{fileList: fileList, report: report, width: 80, height: 20}
}

func (rm reportModel) Init() tea.Cmd {
	return nil
}

func (rm reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.width = msg.Width
		rm.height = msg.Height
		rm.fileList.SetWidth(rm.width)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return rm, tea.Quit
		default:
			rm.fileList, cmd = rm.fileList.Update(msg)
			return rm, cmd
		}
	}

	return rm, cmd
}

func (rm reportModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	title := titleStyle.Render("Smart CI Analysis Report")

	summary := summaryStyle.Render(fmt.Sprintf(
		"Mode: %s   Files: %s   Selected: %s",
		accentStyle.Render(string(rm.report.Mode)),
		accentStyle.Render(fmt.Sprintf("%d", len(rm.report.ChangedFiles))),
		accentStyle.Render(selectionSummary(rm.report.Selection)),
	))

	table := rm.renderTable()

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(rm.width)

	footer := footerStyle.Render("↑/k up • ↓/j down • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		table,
		footer,
	)
}

func (rm reportModel) renderTable() string {
	listHeight := rm.height - 9
	if listHeight < 5 {
		listHeight = 5
	}

	listWidth := rm.width - 6

	rm.fileList.SetHeight(listHeight)
	rm.fileList.SetWidth(listWidth)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8")).
		Width(listWidth)

	headers := headerStyle.Render(fmt.Sprintf("%6s  %s", "Units", "Changed File"))

	tableContainer := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1).
		Padding(0, 1)

	return tableContainer.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			headers,
			rm.fileList.View(),
		),
	)
}

// needsPagination reports whether the list is taller than one screen and the
// interactive program is worth starting.
func (rm reportModel) needsPagination() bool {
	return len(rm.fileList.Items()) > rm.height-9
}

func selectionSummary(selection m.Selection) string {
	switch {
	case selection.IsRunAll():
		return "ALL"
	case selection.IsRunNone():
		return "none"
	default:
		return fmt.Sprintf("%d entries", len(selection.Entries))
	}
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	if width <= 1 {
		return ellipsis
	}

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	var b strings.Builder

	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		b.WriteRune(r)
		currentWidth += rWidth
	}

	return b.String() + ellipsis
}
