package probe

import (
	"errors"
	"strings"

	"github.com/movietools/movie-renamer/internal/model"
)

// ErrNoVideoStream is returned when a probed file carries no usable
// video stream.
var ErrNoVideoStream = errors.New("no video stream found")

// Source deduction thresholds. A file that clears the UHD height
// threshold with a very high bitrate is almost certainly an untouched
// disc remux; lower bitrates at the same height are rips.
const (
	uhdHeightThreshold   = 2100
	uhdRemuxBitrateMbps  = 40
	bdRemuxBitrateMbps   = 25
	bdRipBitrateMbps     = 10
	defaultDeducedSource = "WEB-DL"
)

// MediaInfo converts a probe Result into the domain MediaInfo,
// deriving the display labels the destination template consumes.
// Source is left empty here; the scanner fills it from the filename,
// falling back to DeduceSource.
func MediaInfo(r *Result) (*model.MediaInfo, error) {
	if r.Video == nil {
		return nil, ErrNoVideoStream
	}

	info := &model.MediaInfo{
		Width:      r.Video.Width,
		Height:     r.Video.Height,
		VideoCodec: videoCodecLabel(r.Video),
		BitDepth:   r.Video.BitDepth,
		FrameRate:  parseFrameRate(r.Video.AvgFrameRate),
		BitrateBPS: r.OverallBitRate(),
		HDR:        hdrLabel(r.Video),
	}
	if audio := r.PrimaryAudio(); audio != nil {
		info.AudioCodec = audioCodecLabel(audio)
	}
	return info, nil
}

// videoCodecLabel prefers the encoder tag over the raw codec name so
// x264/x265 encodes keep their conventional label instead of the generic
// AVC/HEVC one.
func videoCodecLabel(v *VideoStream) string {
	encoder := strings.ToLower(v.Encoder)
	switch {
	case strings.Contains(encoder, "x264"):
		return "x264"
	case strings.Contains(encoder, "x265"):
		return "x265"
	}
	switch v.Codec {
	case "h264":
		return "AVC"
	case "hevc":
		return "HEVC"
	case "":
		return ""
	default:
		return strings.ToUpper(v.Codec)
	}
}

// audioCodecLabel maps ffprobe codec names onto the compact labels used
// in release names, dropping hyphens the way the scene does ("E-AC-3"
// becomes "EAC3").
func audioCodecLabel(a *AudioStream) string {
	switch a.Codec {
	case "truehd":
		return "TrueHD"
	case "dts":
		if strings.Contains(a.Profile, "MA") {
			return "DTSHD MA"
		}
		return "DTS"
	case "":
		return ""
	default:
		return strings.ToUpper(strings.ReplaceAll(a.Codec, "-", ""))
	}
}

// hdrLabel classifies the HDR format of a video stream. Dolby Vision
// wins over the base layer it is carried on, then HDR10+ dynamic
// metadata over its HDR10 base; PQ transfer means HDR10; HLG has its
// own transfer function; wide-gamut 10-bit video with no recognizable
// transfer is labeled plain "HDR". SDR is an empty string.
func hdrLabel(v *VideoStream) string {
	if v.HasDolbyVision {
		return "Dolby Vision"
	}
	if v.HasHDR10Plus {
		return "HDR10+"
	}
	switch v.ColorTransfer {
	case "smpte2084":
		return "HDR10"
	case "arib-std-b67":
		return "HLG"
	}
	if v.BitDepth >= 10 && strings.Contains(v.ColorPrimaries, "2020") {
		return "HDR"
	}
	return ""
}

// DeduceSource guesses the media source from resolution and bitrate
// when the filename names none. Returns an empty string when the probe
// did not yield enough information to guess.
func DeduceSource(info *model.MediaInfo) string {
	if info == nil || info.Height <= 0 || info.BitrateBPS <= 0 {
		return ""
	}
	mbps := float64(info.BitrateBPS) / 1_000_000

	switch {
	case info.Height >= uhdHeightThreshold && mbps > uhdRemuxBitrateMbps:
		return "UHD BDRemux"
	case info.Height >= uhdHeightThreshold:
		return "UHDRip"
	case info.Height >= 1080 && mbps > bdRemuxBitrateMbps:
		return "BDRemux"
	case info.Height >= 1080 && mbps > bdRipBitrateMbps:
		return "BDRip"
	default:
		return defaultDeducedSource
	}
}
