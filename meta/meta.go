// meta/meta.go
package meta

import "time"

// GO_ROUTINES defines the number of depth-charge workers.
const GO_ROUTINES = 8

// PERF_DURATION defines how long a depth-charge throughput test runs.
const PERF_DURATION = 5 * time.Second

// MAX_NUMBER_STATES caps the depth of a single depth charge.
const MAX_NUMBER_STATES = 500

// MAX_MOVES caps the length of an engine-driven match.
const MAX_MOVES = 10000

// NUM_GAMES defines the number of games per match batch.
const NUM_GAMES = 30

// OUTPUT_DIR is where experiment records are written.
const OUTPUT_DIR = "experiments"
