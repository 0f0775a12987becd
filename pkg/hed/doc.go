// Package hed provides the HED-specific data structures behind the
// visualizer: tag-count dictionaries, tag templates, the compact/verbose
// sequence map, and a light reader for BIDS-style tabular event files
// with JSON sidecars.
//
// The package deliberately stops short of full HED validation. It
// extracts and counts annotation tags well enough to drive word-cloud
// visualization; schema-aware validation belongs to the upstream HED
// tooling. Errors raised while parsing event files or sidecars carry the
// UPSTREAM_ERROR code and wrap the causing parse error unchanged.
package hed
