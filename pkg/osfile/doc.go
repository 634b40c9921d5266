// Package osfile parses line-oriented system identification files.
//
// The primary consumer is the environment prober, which reads
// /etc/os-release (with the /usr/lib/os-release fallback) to classify the
// host distribution. The parser is configurable via functional options for
// delimiter, value trimming, and size limits:
//
//	parser := osfile.NewParser(
//	    osfile.WithKVDelimiter("="),
//	    osfile.WithVTrimChars(`"'`),
//	)
//	fields, err := parser.GetMap("/etc/os-release")
package osfile
