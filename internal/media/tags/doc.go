// Package tags reads CUE sheets stored in ID3v2 tags of MP3 files, where
// ffprobe does not expose user-defined text frames reliably.
package tags
