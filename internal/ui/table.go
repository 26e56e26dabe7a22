package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"branchscope/pkg/models"
)

// Visualizer renders branch comparison results
type Visualizer struct {
	useColor bool
}

// NewVisualizer creates a new visualizer
func NewVisualizer(useColor bool) *Visualizer {
	return &Visualizer{useColor: useColor}
}

// DisplaySummaryTable renders the ahead/behind summary of a comparison
func (v *Visualizer) DisplaySummaryTable(comparison *models.Comparison) string {
	var buf strings.Builder

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Branch", "Role", "Unique Commits"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	ahead := fmt.Sprintf("%d", comparison.AheadCount())
	behind := fmt.Sprintf("%d", comparison.BehindCount())
	if v.useColor {
		if comparison.AheadCount() > 0 {
			ahead = color.GreenString("+%d", comparison.AheadCount())
		}
		if comparison.BehindCount() > 0 {
			behind = color.RedString("+%d", comparison.BehindCount())
		}
	}

	table.Append([]string{comparison.Source, "source", ahead})
	table.Append([]string{comparison.Target, "target", behind})
	table.Render()

	return buf.String()
}

// DisplayCommitList renders the commits unique to one side
func (v *Visualizer) DisplayCommitList(title string, commits []models.Commit, limit int) string {
	var buf strings.Builder

	heading := title
	if v.useColor {
		heading = color.New(color.Bold).Sprint(title)
	}
	buf.WriteString(heading + "\n")

	if len(commits) == 0 {
		buf.WriteString("  (none)\n")
		return buf.String()
	}

	shown := commits
	if limit > 0 && len(commits) > limit {
		shown = commits[:limit]
	}

	for _, commit := range shown {
		buf.WriteString("  " + FormatCommitLine(commit) + "\n")
	}
	if len(shown) < len(commits) {
		buf.WriteString(fmt.Sprintf("  ... %d more commits ...\n", len(commits)-len(shown)))
	}

	return buf.String()
}
