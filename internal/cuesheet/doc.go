// Package cuesheet models the subset of the CUE grammar cuesplit needs and
// provides a line-oriented parser for it.
//
// Only FILE, TRACK, TITLE, PERFORMER and INDEX are interpreted; REM and every
// other command are skipped. Callers depend on the Parser interface so a
// stricter grammar implementation can be substituted.
//
// Index times use the mm:ss:ff layout with 75 frames per second.
package cuesheet
