package sidecar

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/movietools/movie-renamer/internal/model"
)

// NFOCreator generates movie.nfo sidecar files.
//
// The NFO format is the XML metadata convention shared by Kodi,
// Jellyfin and Emby. Dropping a movie.nfo next to the video file lets
// those managers import the library without re-scraping, which matters
// when titles were resolved for a specific language and region.
//
// Example:
//
//	creator := NewNFOCreator()
//	content := creator.CreateNFO(item)
//	os.WriteFile("/movies/Origen (2010)/movie.nfo", []byte(content), 0644)
type NFOCreator struct{}

// NewNFOCreator creates a new NFOCreator.
func NewNFOCreator() *NFOCreator {
	return &NFOCreator{}
}

// nfoMovie is the serialized document layout. Field order follows the
// Kodi wiki examples; empty optional elements are omitted.
type nfoMovie struct {
	XMLName       xml.Name      `xml:"movie"`
	Title         string        `xml:"title"`
	OriginalTitle string        `xml:"originaltitle,omitempty"`
	Year          string        `xml:"year,omitempty"`
	Premiered     string        `xml:"premiered,omitempty"`
	Plot          string        `xml:"plot,omitempty"`
	UniqueIDs     []nfoUniqueID `xml:"uniqueid"`
	Set           *nfoSet       `xml:"set,omitempty"`
	FileInfo      *nfoFileInfo  `xml:"fileinfo,omitempty"`
}

type nfoUniqueID struct {
	Type    string `xml:"type,attr"`
	Default bool   `xml:"default,attr,omitempty"`
	Value   string `xml:",chardata"`
}

type nfoSet struct {
	Name string `xml:"name"`
}

type nfoFileInfo struct {
	StreamDetails nfoStreamDetails `xml:"streamdetails"`
}

type nfoStreamDetails struct {
	Video *nfoVideo `xml:"video,omitempty"`
	Audio *nfoAudio `xml:"audio,omitempty"`
}

type nfoVideo struct {
	Codec   string `xml:"codec,omitempty"`
	Width   int    `xml:"width,omitempty"`
	Height  int    `xml:"height,omitempty"`
	HDRType string `xml:"hdrtype,omitempty"`
}

type nfoAudio struct {
	Codec string `xml:"codec,omitempty"`
}

// CreateNFO generates the movie.nfo document for an item.
//
// The returned string always starts with the XML declaration and ends
// with a newline, ready to be written to disk. Metadata that was never
// resolved (no collection, no media probe) simply leaves its elements
// out.
func (c *NFOCreator) CreateNFO(item *model.Item) string {
	movie := item.Movie
	doc := nfoMovie{
		Title:         movie.Title,
		OriginalTitle: movie.OriginalTitle,
		Year:          movie.Year(),
		Premiered:     movie.ReleaseDate,
		Plot:          movie.Overview,
	}

	if movie.TMDBID != 0 {
		doc.UniqueIDs = append(doc.UniqueIDs, nfoUniqueID{Type: "tmdb", Value: strconv.Itoa(movie.TMDBID)})
	}
	if movie.IMDBID != "" {
		doc.UniqueIDs = append(doc.UniqueIDs, nfoUniqueID{Type: "imdb", Default: true, Value: movie.IMDBID})
	}

	if movie.InCollection() && movie.CollectionName != "" {
		doc.Set = &nfoSet{Name: movie.DisplayCollectionName()}
	}

	if media := item.Media; media != nil {
		details := nfoStreamDetails{}
		if media.Width > 0 || media.VideoCodec != "" {
			details.Video = &nfoVideo{
				Codec:   strings.ToLower(media.VideoCodec),
				Width:   media.Width,
				Height:  media.Height,
				HDRType: hdrType(media.HDR),
			}
		}
		if media.AudioCodec != "" {
			details.Audio = &nfoAudio{Codec: strings.ToLower(media.AudioCodec)}
		}
		if details.Video != nil || details.Audio != nil {
			doc.FileInfo = &nfoFileInfo{StreamDetails: details}
		}
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		// Marshaling a plain struct only fails on invalid XML names,
		// which these fixed tags never have.
		return ""
	}
	return xml.Header + string(out) + "\n"
}

// hdrType maps display labels to the lowercase identifiers Kodi
// understands.
func hdrType(label string) string {
	switch label {
	case "Dolby Vision":
		return "dolbyvision"
	case "HDR10", "HDR10+":
		// Kodi has no hdr10plus identifier; the HDR10 base layer applies.
		return "hdr10"
	case "HLG":
		return "hlg"
	case "HDR":
		return "hdr10"
	default:
		return ""
	}
}
