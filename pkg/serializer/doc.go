// Package serializer provides utilities for serializing data to various
// formats.
//
// The package supports three output formats:
//   - JSON: machine-readable structured data with proper indentation
//   - YAML: human-readable configuration format (the default)
//   - Table: flattened field/value pairs for terminal viewing
//
// Usage:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer w.Close()
//	if err := w.Serialize(profile); err != nil {
//	    return err
//	}
package serializer
