package appcast

import (
	"strings"

	"github.com/google/go-github/v52/github"
)

// pubDateFormat is the RFC 822 date layout Sparkle expects, always UTC.
const pubDateFormat = "Mon, 02 Jan 2006 15:04:05 +0000"

// noReleaseNotes fills the description of releases without a body.
const noReleaseNotes = "No release notes provided."

// enclosureType is the MIME type advertised for update packages.
const enclosureType = "application/octet-stream"

// ParseVersion turns a release tag into the displayed version by
// stripping a single leading v: v1.0.2 becomes 1.0.2.
func ParseVersion(tag string) string {
	return strings.TrimPrefix(tag, "v")
}

// BuildNumber returns the last dot-separated component of the version,
// the part that grows with every release: v1.0.8 becomes 8.
func BuildNumber(tag string) string {
	parts := strings.Split(ParseVersion(tag), ".")
	return parts[len(parts)-1]
}

// FindUpdateAsset returns the first asset whose name ends in ext, or nil
// when the release ships none.
func FindUpdateAsset(assets []*github.ReleaseAsset, ext string) *github.ReleaseAsset {
	for _, asset := range assets {
		if strings.HasSuffix(asset.GetName(), ext) {
			return asset
		}
	}
	return nil
}

// NewItem builds the feed item for a release and its update asset. An
// empty signature leaves the enclosure without a sparkle:edSignature
// attribute, which Sparkle accepts for unsigned feeds.
func NewItem(release *github.RepositoryRelease, asset *github.ReleaseAsset, signature, minimumSystemVersion string) Item {
	version := ParseVersion(release.GetTagName())

	body := release.GetBody()
	if body == "" {
		body = noReleaseNotes
	}

	return Item{
		Title:       "Version " + version,
		PubDate:     release.GetPublishedAt().UTC().Format(pubDateFormat),
		Link:        release.GetHTMLURL(),
		Description: Description{Text: body},
		Enclosure: Enclosure{
			URL:                asset.GetBrowserDownloadURL(),
			Length:             int64(asset.GetSize()),
			Type:               enclosureType,
			Version:            BuildNumber(release.GetTagName()),
			ShortVersionString: version,
			EdSignature:        signature,
		},
		MinimumSystemVersion: minimumSystemVersion,
	}
}
