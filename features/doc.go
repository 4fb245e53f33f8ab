// Package features defines the track and audio-feature records the pipeline
// consumes, plus validation and opt-in normalization of feature tables.
//
// A Vector always has Dim (12) entries, in the order listed by Names. Raw
// catalog values are used unchanged unless a Normalization is applied
// explicitly; the default is NormalizeNone.
package features
