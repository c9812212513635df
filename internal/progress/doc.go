package progress

// Package progress provides Channel, a single-producer/single-consumer gauge that
// keeps only the latest published value. Consumers block until the value changes
// or the producer closes the channel; intermediate values may be skipped.
