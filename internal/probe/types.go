package probe

// FormatInfo holds container-level metadata from ffprobe's format section.
type FormatInfo struct {
	Filename   string
	FormatName string
	Duration   float64
	Size       int64
	BitRate    int64
	Tags       map[string]string
}

// VideoStream holds the parsed properties of a single video stream.
type VideoStream struct {
	Index          int
	Codec          string
	Profile        string
	PixFmt         string
	Width          int
	Height         int
	BitRate        int64
	BitDepth       int
	ColorTransfer  string
	ColorPrimaries string
	AvgFrameRate   string
	IsAttachedPic  bool
	Encoder        string
	HasDolbyVision bool
	HasHDR10Plus   bool
}

// AudioStream holds the parsed properties of a single audio stream.
type AudioStream struct {
	Index         int
	Codec         string
	Profile       string
	Channels      int
	ChannelLayout string
	Language      string
	IsDefault     bool
}

// Result is the fully parsed output of a single ffprobe JSON call.
// Video is the first non-attached-pic video stream (nil if none).
type Result struct {
	Format FormatInfo
	Video  *VideoStream
	Audio  []AudioStream
}

// OverallBitRate returns the container bitrate in bits per second,
// preferring the video stream value when the container does not report
// one.
func (r *Result) OverallBitRate() int64 {
	if r.Format.BitRate > 0 {
		return r.Format.BitRate
	}
	if r.Video != nil {
		return r.Video.BitRate
	}
	return 0
}

// PrimaryAudio returns the default audio stream, or the first one when
// no stream carries the default disposition. Nil when the file has no
// audio.
func (r *Result) PrimaryAudio() *AudioStream {
	for i := range r.Audio {
		if r.Audio[i].IsDefault {
			return &r.Audio[i]
		}
	}
	if len(r.Audio) > 0 {
		return &r.Audio[0]
	}
	return nil
}
