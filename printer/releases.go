package printer

import (
	"github.com/blang/semver"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/rodaine/table"

	"github.com/ytaudiobar/release-tools/models"
)

// Table prints one row per processed release, marking the newest
// included version, the one Sparkle will offer to up-to-date users.
func Table(summaries []models.ReleaseSummary) {

	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New("Tag", "Version", "Build", "Asset", "Size", "Signed", "Status")
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)

	newest := latest(summaries)
	for _, s := range summaries {
		status := string(s.Status)
		if s.Included() && s.Version == newest {
			status = status + " (latest)"
		}

		size := ""
		if s.AssetSize > 0 {
			size = humanize.Bytes(uint64(s.AssetSize))
		}

		signed := ""
		if s.Signed {
			signed = "yes"
		} else if s.Included() {
			signed = "no"
		}

		tbl.AddRow(s.Tag, s.Version, s.Build, s.AssetName, size, signed, status)
	}

	tbl.Print()
}

// latest returns the highest version among the included rows. Versions
// that do not parse as semver are skipped.
func latest(summaries []models.ReleaseSummary) string {
	var newest semver.Version
	found := ""

	for _, s := range summaries {
		if !s.Included() {
			continue
		}
		v, err := semver.Make(s.Version)
		if err != nil {
			continue
		}
		if found == "" || v.GT(newest) {
			newest = v
			found = s.Version
		}
	}
	return found
}
