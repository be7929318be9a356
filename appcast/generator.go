package appcast

import (
	"context"

	"github.com/google/go-github/v52/github"

	"github.com/ytaudiobar/release-tools/config"
	"github.com/ytaudiobar/release-tools/log"
	"github.com/ytaudiobar/release-tools/models"
)

// Signer signs one update package, given its download URL.
type Signer interface {
	Sign(ctx context.Context, url string) (string, error)
}

// Generator turns GitHub releases into a Sparkle appcast feed.
type Generator struct {
	Config *config.Config

	// Signer may be nil, in which case enclosures stay unsigned.
	Signer Signer
}

// Generate builds the feed from releases, keeping their order, and
// reports what happened to each one. Drafts and prereleases never make
// it into the feed, nor do releases without an update asset. A signing
// failure only costs the item its signature attribute.
func (g *Generator) Generate(ctx context.Context, releases []*github.RepositoryRelease) (*Feed, []models.ReleaseSummary) {
	feed := NewFeed(g.Config)

	summaries := make([]models.ReleaseSummary, 0, len(releases))
	for _, release := range releases {
		l := log.G(ctx).WithField("tag", release.GetTagName())

		summary := models.ReleaseSummary{
			Tag:     release.GetTagName(),
			Version: ParseVersion(release.GetTagName()),
			Build:   BuildNumber(release.GetTagName()),
		}

		if release.GetDraft() {
			l.Debug("Skipping draft")
			summary.Status = models.StatusDraft
			summaries = append(summaries, summary)
			continue
		}
		if release.GetPrerelease() {
			l.Debug("Skipping prerelease")
			summary.Status = models.StatusPrerelease
			summaries = append(summaries, summary)
			continue
		}

		asset := FindUpdateAsset(release.Assets, g.Config.AssetExtension)
		if asset == nil {
			l.Debugf("No %s asset, skipping", g.Config.AssetExtension)
			summary.Status = models.StatusNoAsset
			summaries = append(summaries, summary)
			continue
		}
		summary.AssetName = asset.GetName()
		summary.AssetSize = int64(asset.GetSize())

		var signature string
		if g.Signer != nil {
			sig, err := g.Signer.Sign(log.WithLogger(ctx, l), asset.GetBrowserDownloadURL())
			if err != nil {
				l.Warnf("Signing failed: %v", err)
			} else {
				signature = sig
				summary.Signed = true
				l.Infof("Signed %s", summary.Version)
			}
		}

		feed.Channel.Items = append(feed.Channel.Items, NewItem(release, asset, signature, g.Config.MinimumSystemVersion))
		summary.Status = models.StatusIncluded
		summaries = append(summaries, summary)
	}

	return feed, summaries
}
