// Package summary assembles computed metrics into output tables and writes
// them as CSV or xlsx files.
//
// A Table resolves its column layout from the records it holds: preferred
// columns come first, restricted to those present in at least one record,
// then every other column in first-seen order. Cells a record does not have
// are written empty, never as zeros, so a blank cell always means the source
// file did not carry that value.
package summary
