// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

/*
Package cache provides a generic, thread-safe LRU cache with per-entry TTL.

The lookup service keeps remote results here: found systems for the normal
TTL, confirmed-absent answers for the absent TTL, and unavailability for a
short TTL so the key is retried soon.

# Usage Example

	c := cache.NewLRU[string, *System](1024, time.Hour)
	c.Add("sol", sys)
	c.AddWithTTL("nowhere", nil, 24*time.Hour)

	if sys, ok := c.Get("sol"); ok {
	    ...
	}

Expired entries are dropped lazily on Get or in bulk with CleanupExpired.
*/
package cache
