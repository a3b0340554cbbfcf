// Package batch evaluates many trips at once.
//
// Trips are scored concurrently with a bounded errgroup. Results come back
// in input order, identical (distance, purpose) queries are answered from
// an LRU memo, and a trip that fails validation yields a per-trip error
// without stopping the rest of the batch. Trip lists are usually read from
// a YAML file:
//
//	trips:
//	  - from: Home
//	    to: Office
//	    distance_km: 12
//	    purpose: daily
package batch
