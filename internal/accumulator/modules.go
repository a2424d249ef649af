// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package accumulator

import (
	"strings"

	"github.com/tomtom215/astrographus/internal/journal"
)

// ModulesInStore is the list of modules held in storage.
type ModulesInStore struct {
	Items []journal.StoredModule `json:"items"`
}

// NewModulesInStore returns empty storage.
func NewModulesInStore() *ModulesInStore {
	return &ModulesInStore{}
}

// Apply folds one event into storage. StoredModules replaces the list;
// store, retrieve, buy and sell events adjust it.
func (m *ModulesInStore) Apply(ev *journal.Event) *ModulesInStore {
	switch p := ev.Payload.(type) {
	case *journal.StoredModules:
		return &ModulesInStore{Items: append([]journal.StoredModule(nil), p.Items...)}
	case *journal.ModuleStore:
		return m.with(journal.StoredModule{Name: strings.ToLower(p.StoredItem), Hot: p.Hot})
	case *journal.ModuleBuy:
		if p.StoredItem == "" {
			return m
		}
		return m.with(journal.StoredModule{Name: strings.ToLower(p.StoredItem)})
	case *journal.ModuleRetrieve:
		out := m.without(p.RetrievedItem)
		if p.SwapOutItem != "" {
			out = out.with(journal.StoredModule{Name: strings.ToLower(p.SwapOutItem)})
		}
		return out
	}
	return m
}

func (m *ModulesInStore) with(item journal.StoredModule) *ModulesInStore {
	items := make([]journal.StoredModule, 0, len(m.Items)+1)
	items = append(items, m.Items...)
	return &ModulesInStore{Items: append(items, item)}
}

// without removes the first stored module named item.
func (m *ModulesInStore) without(item string) *ModulesInStore {
	for i, it := range m.Items {
		if strings.EqualFold(it.Name, item) {
			items := make([]journal.StoredModule, 0, len(m.Items)-1)
			items = append(items, m.Items[:i]...)
			return &ModulesInStore{Items: append(items, m.Items[i+1:]...)}
		}
	}
	return m
}
