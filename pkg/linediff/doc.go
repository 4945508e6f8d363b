// Package linediff computes line-granular diffs with a longest common
// subsequence table.
//
// Keys decide equality and values decide what is emitted, so callers can
// align lines on a normalized form while rendering the original text.
//
// The output is deterministic. The table is walked back from the ends of both
// sequences: equal keys always match, otherwise the walk steps over a removed
// line unless dropping an added line keeps a strictly longer common
// subsequence. Within every run of edits between two matches, all removals
// are emitted before all additions.
package linediff
