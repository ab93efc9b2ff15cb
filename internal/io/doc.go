// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Atomic file copies and moves (never exposing partial files)
//   - Directory creation
//   - Source/destination overlap classification
//   - Poster resizing and format conversion
//
// # File Operations
//
// AtomicCopy stages data in a temporary file next to the destination,
// fsyncs it, and renames it into place. AtomicMove prefers a plain
// rename and degrades to copy-plus-delete across filesystems:
//
//	err := ioutils.AtomicMove("/downloads/movie.mkv", "/movies/Inception (2010)/Inception (2010).mkv")
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/movies/Inception (2010)")
//
// # Overlap Classification
//
// When the output directory contains a source directory (or vice
// versa), a recursive scan can chase its own output. ClassifyOverlap
// reports the relationship so the caller can scan before acting:
//
//	switch ioutils.ClassifyOverlap(srcDir, outDir) {
//	case ioutils.OverlapDestWithinSrc:
//	    // collect all files up front
//	}
//
// # Image Processing
//
// The ImageService handles poster manipulation:
//
//	svc := ioutils.NewImageService()
//
//	// Resize poster to fit within 1000x1500
//	resized, _ := svc.ResizeImage(imageData, 1000, 1500)
//
//	// Convert to JPEG
//	jpeg, _ := svc.ConvertToJPEG(pngData)
package ioutils
