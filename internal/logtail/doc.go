// Package logtail reads the end of the hnsearch log file and renders its JSON
// records as short human-readable lines.
//
// Read keeps a ring buffer of the last maxLines lines, so memory stays
// bounded by the request rather than by the file size. Format turns one slog
// JSON record into "time LEVEL msg key=value" with attributes sorted by key.
//
//	lines, err := logtail.Read(cfg.LogFile, 50)
//	for _, line := range lines {
//		fmt.Println(logtail.Format(line))
//	}
package logtail
