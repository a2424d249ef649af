// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package bodyname

import "strings"

// Compare orders sibling designators. Names starting with digits sort first,
// by digit count and then value, so "2" < "10" < "A"; everything else
// compares case-insensitively. It returns -1, 0 or +1.
func Compare(a, b string) int {
	da, db := leadingDigits(a), leadingDigits(b)
	switch {
	case da != "" && db == "":
		return -1
	case da == "" && db != "":
		return 1
	case da != "" && db != "":
		if len(da) != len(db) {
			return sign(len(da) - len(db))
		}
		if c := strings.Compare(da, db); c != 0 {
			return c
		}
		a, b = a[len(da):], b[len(db):]
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// Less is Compare(a, b) < 0, for sort.Slice.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
