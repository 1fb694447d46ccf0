// meta/meta.go
package meta

// ITERATIONS defines the default number of games per batch.
const ITERATIONS = 5000

// WORKERS defines the default number of games played in parallel.
const WORKERS = 8

// DEFAULT_PROFILE defines the strategy profile used when none is given.
const DEFAULT_PROFILE = "max-fit"

const DEFAULT_MAP = "metro-city"

const DEFAULT_CARDS = "gamewright"
