// Package textenc turns raw CUE sheet bytes into text.
//
// CUE files ripped on different systems arrive in UTF-8, UTF-16 with a BOM,
// Shift-JIS, GBK, Windows code pages and more. Resolver checks byte-order marks
// and UTF-8 validity first, then asks a statistical detector for candidate
// charsets and decodes with the first one x/text knows. When nothing is
// confident enough the bytes are decoded as UTF-8 with replacement characters,
// so decoding never fails.
package textenc
