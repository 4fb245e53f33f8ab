// Package playlist is the orchestrator of sonicpath: it validates a set of
// tracks with their audio-feature vectors, embeds the vectors, builds the
// pairwise distance matrix of the embedded points, asks the route optimizer
// for a short open path and returns the tracks in that order.
//
// Collaborators are injected: the Reducer and Optimizer through Sorter
// options, the FeatureProvider and Presenter through Run. The core never
// persists state between calls and never retries.
package playlist
