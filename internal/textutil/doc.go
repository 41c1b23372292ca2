// Package textutil builds filesystem-legal output file names for split tracks.
//
// Reserved characters are swapped for their full-width lookalikes rather than
// dropped, so "AC/DC" stays readable as "AC／DC" on every filesystem.
package textutil
