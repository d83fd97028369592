// Package document serializes a catalog to JSON and delivers it to standard
// output or to a file.
//
// The destination is validated before anything is encoded: an empty
// destination means standard output, an existing directory receives
// images_output.json, and any other path must end in .json. File writes go
// through a temp file and a rename so a failed run never leaves a truncated
// document behind.
package document
