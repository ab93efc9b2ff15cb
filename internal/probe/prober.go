package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Prober runs ffprobe against media files. The zero value is not
// usable; call NewProber.
type Prober struct {
	binary string
}

// NewProber returns a Prober using "ffprobe" from PATH.
func NewProber() *Prober {
	return &Prober{binary: "ffprobe"}
}

// NewProberWithBinary returns a Prober using an explicit ffprobe path.
func NewProberWithBinary(path string) *Prober {
	return &Prober{binary: path}
}

// Probe runs a single ffprobe JSON call against path and returns the
// parsed result.
func (p *Prober) Probe(ctx context.Context, path string) (*Result, error) {
	cmd := exec.CommandContext(ctx, p.binary,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}

	return ParseJSON(out)
}

// ParseJSON converts raw ffprobe JSON output into a Result.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*Result, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	return buildResult(&raw), nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Filename   string            `json:"filename"`
	FormatName string            `json:"format_name"`
	Duration   string            `json:"duration"`
	Size       string            `json:"size"`
	BitRate    string            `json:"bit_rate"`
	Tags       map[string]string `json:"tags"`
}

type ffprobeStream struct {
	Index             int               `json:"index"`
	CodecName         string            `json:"codec_name"`
	CodecType         string            `json:"codec_type"`
	Profile           string            `json:"profile"`
	PixFmt            string            `json:"pix_fmt"`
	Width             int               `json:"width"`
	Height            int               `json:"height"`
	BitRate           string            `json:"bit_rate"`
	BitsPerRawSample  string            `json:"bits_per_raw_sample"`
	ColorTransfer     string            `json:"color_transfer"`
	ColorPrimaries    string            `json:"color_primaries"`
	AvgFrameRate      string            `json:"avg_frame_rate"`
	Channels          int               `json:"channels"`
	ChannelLayout     string            `json:"channel_layout"`
	Disposition       map[string]int    `json:"disposition"`
	Tags              map[string]string `json:"tags"`
	SideDataList      []ffprobeSideData `json:"side_data_list"`
}

type ffprobeSideData struct {
	SideDataType string `json:"side_data_type"`
}

// --- Conversion from wire types to domain types ---

func buildResult(raw *ffprobeOutput) *Result {
	r := &Result{
		Format: FormatInfo{
			Filename:   raw.Format.Filename,
			FormatName: raw.Format.FormatName,
			Duration:   parseFloat(raw.Format.Duration),
			Size:       parseInt64(raw.Format.Size),
			BitRate:    parseInt64(raw.Format.BitRate),
			Tags:       raw.Format.Tags,
		},
	}

	for i := range raw.Streams {
		s := &raw.Streams[i]
		switch s.CodecType {
		case "video":
			vs := convertVideo(s)
			if !vs.IsAttachedPic && r.Video == nil {
				r.Video = &vs
			}
		case "audio":
			r.Audio = append(r.Audio, convertAudio(s))
		}
	}
	return r
}

func convertVideo(s *ffprobeStream) VideoStream {
	vs := VideoStream{
		Index:          s.Index,
		Codec:          s.CodecName,
		Profile:        s.Profile,
		PixFmt:         s.PixFmt,
		Width:          s.Width,
		Height:         s.Height,
		BitRate:        parseInt64(s.BitRate),
		BitDepth:       parseInt(s.BitsPerRawSample),
		ColorTransfer:  s.ColorTransfer,
		ColorPrimaries: s.ColorPrimaries,
		AvgFrameRate:   s.AvgFrameRate,
		IsAttachedPic:  s.Disposition["attached_pic"] == 1,
		Encoder:        s.Tags["ENCODER"],
	}
	if vs.Encoder == "" {
		vs.Encoder = s.Tags["encoder"]
	}
	for _, sd := range s.SideDataList {
		sdType := strings.ToLower(sd.SideDataType)
		if strings.Contains(sdType, "dovi") || strings.Contains(sdType, "dolby vision") {
			vs.HasDolbyVision = true
		}
		// ffprobe reports HDR10+ dynamic metadata as
		// "HDR Dynamic Metadata SMPTE2094-40 (HDR10+)".
		if strings.Contains(sdType, "hdr10+") || strings.Contains(sdType, "2094") {
			vs.HasHDR10Plus = true
		}
	}
	if vs.BitDepth == 0 {
		vs.BitDepth = bitDepthFromPixFmt(s.PixFmt)
	}
	return vs
}

func convertAudio(s *ffprobeStream) AudioStream {
	return AudioStream{
		Index:         s.Index,
		Codec:         s.CodecName,
		Profile:       s.Profile,
		Channels:      s.Channels,
		ChannelLayout: s.ChannelLayout,
		Language:      s.Tags["language"],
		IsDefault:     s.Disposition["default"] == 1,
	}
}

// bitDepthFromPixFmt infers the bit depth from pixel format names like
// yuv420p10le. A recognizable 8-bit format reports 8; an unknown format
// reports 0 so the field stays absent downstream.
func bitDepthFromPixFmt(pixFmt string) int {
	switch {
	case pixFmt == "":
		return 0
	case strings.Contains(pixFmt, "p16"):
		return 16
	case strings.Contains(pixFmt, "p12"):
		return 12
	case strings.Contains(pixFmt, "p10"):
		return 10
	default:
		return 8
	}
}

// --- Numeric parsing helpers (ffprobe returns numbers as strings) ---

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

// parseFrameRate parses ffprobe's fractional frame rates ("24000/1001")
// as well as plain decimals.
func parseFrameRate(s string) float64 {
	text := strings.TrimSpace(s)
	if text == "" {
		return 0
	}
	if num, den, ok := strings.Cut(text, "/"); ok {
		n := parseFloat(num)
		d := parseFloat(den)
		if d == 0 {
			return 0
		}
		return n / d
	}
	return parseFloat(text)
}
