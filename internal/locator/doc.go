// Package locator finds the audio file a CUE sheet refers to when the
// declared path no longer exists.
//
// Rippers and taggers often rename the audio file without updating the sheet.
// The locator reduces file names to a characteristic token, collects files
// in the sheet's directory whose token matches the sheet or its declared data
// file (or that carry the lossless target extension), and ranks them by size
// on the assumption that the full album rip is the largest file present.
package locator
