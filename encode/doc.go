// Package encode writes snapshots and diffs, either as JSON or YAML
// documents or, for diffs, as one line per change for people to read.
//
// Colors are optional and come from a Colors table; see NewColors.
package encode
