package models

// ReleaseStatus describes what the generator did with one GitHub release.
type ReleaseStatus string

const (
	StatusIncluded   ReleaseStatus = "included"
	StatusDraft      ReleaseStatus = "draft"
	StatusPrerelease ReleaseStatus = "prerelease"
	StatusNoAsset    ReleaseStatus = "no update asset"
)

// ReleaseSummary is one row of the post-run report table.
type ReleaseSummary struct {
	Tag       string
	Version   string
	Build     string
	AssetName string
	AssetSize int64
	Signed    bool
	Status    ReleaseStatus
}

// Included reports whether the release produced a feed item.
func (s ReleaseSummary) Included() bool {
	return s.Status == StatusIncluded
}
