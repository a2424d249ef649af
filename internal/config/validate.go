// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package config

import (
	"fmt"
	"os"

	"github.com/tomtom215/astrographus/internal/validation"
)

// Validate checks struct tags first, then the cross-field rules tags cannot
// express.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	if err := c.validateJournal(); err != nil {
		return err
	}

	if err := c.validateStore(); err != nil {
		return err
	}

	return c.validateLookup()
}

func (c *Config) validateJournal() error {
	info, err := os.Stat(c.Journal.Dir)
	if err != nil {
		return fmt.Errorf("JOURNAL_DIR %q is not accessible: %w", c.Journal.Dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("JOURNAL_DIR %q is not a directory", c.Journal.Dir)
	}
	return nil
}

func (c *Config) validateStore() error {
	if !c.Store.InMemory && c.Store.Path == "" {
		return fmt.Errorf("STORE_PATH is required unless STORE_IN_MEMORY=true")
	}
	return nil
}

func (c *Config) validateLookup() error {
	if !c.Lookup.Enabled {
		return nil
	}
	if c.Lookup.UnavailableTTL > c.Lookup.AbsentTTL && c.Lookup.AbsentTTL > 0 {
		return fmt.Errorf("LOOKUP_UNAVAILABLE_TTL (%s) must not exceed LOOKUP_ABSENT_TTL (%s)",
			c.Lookup.UnavailableTTL, c.Lookup.AbsentTTL)
	}
	return nil
}
