// Package splitplan turns a parsed CUE sheet into an album split plan.
//
// A plan names the audio file to cut (or the candidates found when the
// declared file is missing), and for every track its sanitized output name,
// start offset and duration. Plans are built either from a standalone .cue
// file on disk or from a sheet embedded in the audio file's tags.
//
// Offsets are whole seconds: INDEX frames are dropped when computing starts
// and durations. The final track has no duration and runs to the end of the
// stream.
//
// Batch plans many albums concurrently. A failing album never stops the
// others; its error is reported in its Outcome.
package splitplan
