// Package schema declares record types in YAML or JSON documents.
//
// A schema names a set of record types. Each record lists its fields, with
// an optional kind constraint and a mandatory flag, and its invariants,
// which are boolean expressions over the record's fields (unset fields
// are nil):
//
//	name: cluster
//	records:
//	- name: node
//	  fields:
//	  - name: hostname
//	    kind: String
//	    mandatory: true
//	  - name: applications
//	    kind: Set
//	  - name: primary
//	  invariants:
//	  - name: primary-runs-something
//	    expr: primary == nil || len(applications ?? []) > 0
//
// Registering a schema registers its record types with package tree, so
// that snapshots and diffs naming them can be decoded.
package schema
