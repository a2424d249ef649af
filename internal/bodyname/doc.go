// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

// Package bodyname turns the body names reported by the game into paths in a
// system's body tree ("Sol 3 a" in Sol is [Main Star, 3, a]) and orders
// sibling designators.
package bodyname
