// Package probe extracts technical media information from video files
// using ffprobe.
//
// A single ffprobe JSON call per file yields the container format and
// all streams; the package parses that output into a Result and derives
// the display-oriented MediaInfo the renamer feeds into destination
// templates:
//
//	prober := probe.NewProber()
//	result, err := prober.Probe(ctx, "/downloads/movie.mkv")
//	if err != nil {
//	    return err
//	}
//	info, err := probe.MediaInfo(result)
//	// info.VideoCodec == "x265", info.HDR == "HDR10", ...
//
// # Derived Labels
//
// The conversion applies the project's labeling conventions: encoder
// tags containing x264/x265 win over the generic AVC/HEVC codec name,
// audio codecs lose their hyphens ("E-AC-3" becomes "EAC3"), and HDR
// classification checks Dolby Vision side data, then the PQ and HLG
// transfer functions, then wide-gamut 10-bit video.
//
// # Testing
//
// ParseJSON is exported so the parsing and derivation logic can be
// tested against canned ffprobe output without the binary installed.
package probe
