package appcast

import (
	"encoding/xml"

	"github.com/google/renameio/v2"

	"github.com/ytaudiobar/release-tools/config"
)

const (
	sparkleNS = "http://www.andymatuschak.org/xml-namespaces/sparkle"
	dcNS      = "http://purl.org/dc/elements/1.1/"
)

// Feed is the rss root element of a Sparkle appcast. The namespace
// declarations are plain attributes so the marshaled document carries
// the sparkle: prefix exactly as Sparkle's feed parser expects it.
type Feed struct {
	XMLName   xml.Name `xml:"rss"`
	Version   string   `xml:"version,attr"`
	SparkleNS string   `xml:"xmlns:sparkle,attr"`
	DCNS      string   `xml:"xmlns:dc,attr"`
	Channel   Channel  `xml:"channel"`
}

type Channel struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Language    string `xml:"language"`
	Link        string `xml:"link"`
	Items       []Item `xml:"item"`
}

type Item struct {
	Title                string      `xml:"title"`
	PubDate              string      `xml:"pubDate"`
	Link                 string      `xml:"link"`
	Description          Description `xml:"description"`
	Enclosure            Enclosure   `xml:"enclosure"`
	MinimumSystemVersion string      `xml:"sparkle:minimumSystemVersion"`
}

// Description holds the release notes as a CDATA section, so the HTML
// Sparkle renders survives unescaped. The encoder splits any ]]> inside
// the text across two sections, keeping the document well formed.
type Description struct {
	Text string `xml:",cdata"`
}

type Enclosure struct {
	URL                string `xml:"url,attr"`
	Length             int64  `xml:"length,attr"`
	Type               string `xml:"type,attr"`
	Version            string `xml:"sparkle:version,attr"`
	ShortVersionString string `xml:"sparkle:shortVersionString,attr"`
	EdSignature        string `xml:"sparkle:edSignature,attr,omitempty"`
}

// NewFeed returns an empty feed carrying the channel metadata from cfg.
func NewFeed(cfg *config.Config) *Feed {
	return &Feed{
		Version:   "2.0",
		SparkleNS: sparkleNS,
		DCNS:      dcNS,
		Channel: Channel{
			Title:       cfg.Channel.Title,
			Description: cfg.Channel.Description,
			Language:    cfg.Channel.Language,
			Link:        cfg.Channel.Link,
		},
	}
}

// Encode renders the feed as an indented XML document with the usual
// declaration on top.
func (f *Feed) Encode() ([]byte, error) {
	body, err := xml.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, err
	}
	out := append([]byte(xml.Header), body...)
	return append(out, '\n'), nil
}

// WriteFile writes the encoded feed to path. The write goes through a
// temporary file and a rename, so readers never observe a partial feed.
func (f *Feed) WriteFile(path string) error {
	data, err := f.Encode()
	if err != nil {
		return err
	}
	return renameio.WriteFile(path, data, 0o644)
}
