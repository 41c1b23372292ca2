// Package scanner walks a music library looking for albums that still need
// splitting.
//
// An album directory is flagged when it holds .cue files or audio files that
// carry an embedded CUE sheet. Each flagged album gets a confidence score:
// one sheet per audio file is a near-certain image rip, while many audio files
// with a single stray sheet are most likely already split.
//
// Jobs turns flagged albums into planning jobs: every .cue file is planned on
// its own, and embedded sheets are used only in directories without a .cue.
package scanner
