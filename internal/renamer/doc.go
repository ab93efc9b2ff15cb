// Package renamer coordinates the movie rename pipeline.
//
// The Manager wires the other packages together: filename parsing
// (scan), catalog resolution (tmdb), stream probing (probe),
// destination rendering (template) and the atomic file actions
// (ioutils). Files are processed concurrently with a bounded worker
// pool, and every step reports through a ProgressEvent callback so
// both the CLI and the TUI can render the same run.
//
// # Running a Batch
//
//	manager, err := renamer.NewManager(settings, func(e renamer.ProgressEvent) {
//	    fmt.Println(e.Message)
//	})
//	if err != nil {
//	    log.Fatal(err) // bad template or preset
//	}
//
//	if err := manager.Initialize(ctx); err != nil {
//	    log.Fatal(err) // no files found
//	}
//	if err := manager.Start(ctx); err != nil {
//	    log.Fatal(err) // cancelled
//	}
//
//	for _, o := range manager.Outcomes() {
//	    fmt.Println(o.Action, o.SourcePath, "->", o.DestPath)
//	}
//
// # Degraded Mode
//
// Without a TMDB API key the Manager still runs: metadata comes from
// the filename alone, so templates that only use TITLE, YEAR and the
// media fields keep working. Per-file failures (unresolvable titles,
// unreadable streams) are recorded in Outcomes and never abort the
// batch.
package renamer
