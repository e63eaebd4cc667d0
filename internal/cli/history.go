package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/matzehuels/wopp/pkg/integrations/pypi"
)

// printHistory renders the release history of info as a table. n follows
// pypi.PackageInfo.History: positive for the most recent releases,
// negative for the oldest.
func printHistory(info *pypi.PackageInfo, n int) {
	releases := info.History(n)
	if len(releases) == 0 {
		printWarning("No releases published for %s", info.Name)
		return
	}

	fmt.Fprintln(stdout, historyTable(releases).Render())
	printDetail("%d of %d releases", len(releases), len(info.Releases))
}

func historyTable(releases []pypi.Release) *table.Table {
	rows := make([][]string, 0, len(releases))
	for _, r := range releases {
		rows = append(rows, []string{
			r.Version,
			releaseDate(r),
			releaseAge(r),
			check(r.HasSdist()),
			check(r.HasWheel()),
			humanize.Bytes(uint64(releaseSize(r))),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Version", "Released", "Age", "SDIST", "BDIST", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if row >= 0 && row < len(releases) && releases[row].Yanked() {
				return cell.Foreground(colorDim).Strikethrough(true)
			}
			if col == 0 {
				return cell.Foreground(colorCyan)
			}
			return cell
		})
}

func releaseDate(r pypi.Release) string {
	if r.UploadTime.IsZero() {
		return "-"
	}
	return r.UploadTime.Format("2006-01-02")
}

func releaseAge(r pypi.Release) string {
	if r.UploadTime.IsZero() {
		return "-"
	}
	return humanize.Time(r.UploadTime)
}

func releaseSize(r pypi.Release) int64 {
	var total int64
	for _, f := range r.Files {
		total += max(f.Size, 0)
	}
	return total
}

func check(ok bool) string {
	if ok {
		return StyleSuccess.Render(iconSuccess)
	}
	return ""
}
