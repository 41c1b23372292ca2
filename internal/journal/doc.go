// Package journal persists the outcome of every planned album in SQLite.
//
// Each source (a .cue file or an audio file with an embedded sheet) has one
// entry holding its latest status and serialized plan. Scans consult the
// journal to skip sources that were already planned successfully; invalid and
// failed sources are planned again on the next scan.
//
// The schema is applied from embedded, versioned migrations when the store is
// opened.
package journal
