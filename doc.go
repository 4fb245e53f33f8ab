// Package sonicpath reorders a playlist so that consecutive tracks sound
// alike, turning a shuffled list into a smooth listening path.
//
// 🚀 How does it work?
//
//	Every track carries a 12-dimension audio-feature vector. sonicpath:
//		• Embeds the vectors into 2-D with a UMAP-style reducer (embed/)
//		• Builds the pairwise Euclidean distance matrix (distance/, matrix/)
//		• Searches for a short open path through the points with seeded
//		  random segment reversals (tsp/)
//		• Applies the best order to the tracks (playlist/)
//
// ✨ Around the core
//
//   - Deterministic – every random draw comes from an injected seed
//   - Pure Go – no cgo; SQLite runs on a pure-Go driver
//   - Pluggable – features come from a JSON document, the Spotify Web API
//     (spotify/) or the SQLite cache in front of either (featurecache/)
//   - Observable – slog logging and OpenTelemetry metrics (observe/)
//
// Package map:
//
//	cmd/sonicpath/   command-line entry point
//	config/          YAML configuration, environment overrides, validation
//	distance/        metrics and the pairwise distance matrix
//	embed/           kNN fuzzy graph, spectral init, SGD layout
//	featurecache/    gorm/SQLite cache and caching FeatureProvider
//	features/        track and feature types, normalization, fixtures
//	matrix/          Dense matrices, validators, column statistics, eigen
//	observe/         metrics, Prometheus provider, logger factory
//	playlist/        Sorter orchestration, providers and presenters
//	spotify/         Web API client with token refresh and rate limiting
//	tsp/             open-path segment reversal and 2-opt polish
//
// Quick ASCII example:
//
//	    (0,1)───(1,1)
//	      │       │
//	    (0,0)   (1,0)
//
//	the input order (0,0),(1,1),(0,1),(1,0) walks 1+2√2; sonicpath finds
//	the open path of length 3 around three sides of the square.
//
//	go install github.com/katalvlaran/sonicpath/cmd/sonicpath@latest
package sonicpath
