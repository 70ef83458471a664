// Package corpus reads collector output files into profiles and writes
// match results in exportable formats.
package corpus
