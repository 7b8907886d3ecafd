// Package format names the document formats snapshots, diffs and record
// declarations are read and written in.
//
// JSON is accepted wherever YAML is, since every JSON document is a YAML
// document; the distinction matters for output.
package format
