// Package pipeline orchestrates one extraction pass over a directory of raw
// performance counter exports.
//
// The pass discovers files by category, parses each with the layout its
// category calls for, computes the derived metrics and writes one summary
// table per category. Energy and branch-statistics exports from the same
// profiling run merge into a single row keyed by configuration and
// algorithm. Files that cannot be parsed are skipped with a log line;
// structural absence, such as a missing input directory or no matching
// files, completes the run cleanly with nothing written.
package pipeline
