package model

import (
	"fmt"
	"math"
)

// MediaInfo holds the technical characteristics of one video file, as
// extracted by the probe layer.
type MediaInfo struct {
	// Width and Height are the coded video dimensions in pixels.
	Width  int
	Height int

	// VideoCodec is the display label for the video codec, e.g.
	// "x265" or "AV1". Empty when the probe could not identify it.
	VideoCodec string

	// AudioCodec is the display label for the primary audio track,
	// e.g. "DDP 5.1" or "DTS-HD MA".
	AudioCodec string

	// BitDepth is the video bit depth (8, 10, 12). Zero when unknown.
	BitDepth int

	// FrameRate is the average frame rate. Zero when unknown.
	FrameRate float64

	// BitrateBPS is the overall container bitrate in bits per second.
	BitrateBPS int64

	// HDR is the HDR label ("HDR10", "Dolby Vision", "HLG", ...),
	// empty for SDR.
	HDR string

	// Source is the media source label ("BluRay", "WEB-DL", "BDRemux"...),
	// taken from the filename or deduced from height and bitrate.
	Source string
}

// FPS returns the frame rate as a display string, rounded to the
// nearest integer ("24", "60"), or an empty string when unknown.
func (i *MediaInfo) FPS() string {
	if i.FrameRate <= 0 {
		return ""
	}
	return fmt.Sprintf("%d", int(math.Round(i.FrameRate)))
}

// Resolution returns the conventional resolution label for the video
// dimensions ("2160p", "1080p", "720p", ...), matching the tier whose
// dimensions the frame reaches within a 5% tolerance. Empty when the
// dimensions are unknown.
func (i *MediaInfo) Resolution() string {
	if i.Width <= 0 && i.Height <= 0 {
		return ""
	}
	tiers := []struct {
		label  string
		width  int
		height int
	}{
		{"2160p", 3840, 2160},
		{"1440p", 2560, 1440},
		{"1080p", 1920, 1080},
		{"720p", 1280, 720},
	}
	// ~5% tolerance so cropped or anamorphic encodes still classify,
	// e.g. 1792x1080 is 1080p and 3840x1600 is 2160p.
	const tolerance = 0.95
	for _, tier := range tiers {
		if float64(i.Width) >= float64(tier.width)*tolerance ||
			float64(i.Height) >= float64(tier.height)*tolerance {
			return tier.label
		}
	}
	return fmt.Sprintf("%dp", i.Height)
}
