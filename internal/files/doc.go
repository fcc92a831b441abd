// Package files provides discovery of raw performance-counter exports by
// filename pattern. Each glob in a catalog is tagged with the category of
// export it matches (energy, performance, bandwidth, IPC, cache, instruction
// breakdown, aggregated table), which downstream parsing dispatches on.
//
// Absence is not failure here: a missing input directory or a catalog with
// no matches returns an empty result and a nil error.
package files
