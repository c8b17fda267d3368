// Package metrics provides constants used across metric definitions.
package metrics

// Status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Skip reasons recorded by the catalog loaders.
const (
	// ReasonUnknownSubtype marks a collection row whose entity name has no decoder.
	ReasonUnknownSubtype = "unknown_subtype"
	// ReasonUnknownEntity marks a collection row whose entity id is not in the registry.
	ReasonUnknownEntity = "unknown_entity"
)

// Histogram bucket parameters.
const (
	// BucketStart100us is the starting bucket for 0.1ms histograms (0.1ms to ~400ms range).
	BucketStart100us = 0.0001
	// BucketFactor2 doubles each bucket.
	BucketFactor2 = 2.0
	// BucketCount12 gives 12 buckets.
	BucketCount12 = 12
)
