// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package accumulator

import (
	"sort"
	"time"

	"github.com/tomtom215/astrographus/internal/journal"
)

type MissionState string

const (
	MissionActive    MissionState = "active"
	MissionCompleted MissionState = "completed"
	MissionFailed    MissionState = "failed"
	MissionAbandoned MissionState = "abandoned"
)

// Mission is one accepted mission and how it ended.
type Mission struct {
	ID          int64                    `json:"id"`
	State       MissionState             `json:"state"`
	Accepted    *journal.MissionAccepted `json:"accepted,omitempty"`
	AcceptedAt  time.Time                `json:"accepted_at"`
	FinishedAt  time.Time                `json:"finished_at,omitempty"`
	Destination string                   `json:"destination,omitempty"`
	Reward      int64                    `json:"reward,omitempty"`
}

// MissionList is every mission seen, keyed by mission id.
type MissionList struct {
	Missions map[int64]*Mission `json:"missions"`
}

// NewMissionList returns an empty list.
func NewMissionList() *MissionList {
	return &MissionList{Missions: map[int64]*Mission{}}
}

// Active returns missions still in progress, oldest first.
func (ml *MissionList) Active() []*Mission {
	var out []*Mission
	for _, m := range ml.Missions {
		if m.State == MissionActive {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AcceptedAt.Equal(out[j].AcceptedAt) {
			return out[i].AcceptedAt.Before(out[j].AcceptedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Apply folds one mission event into the list.
func (ml *MissionList) Apply(ev *journal.Event) *MissionList {
	switch p := ev.Payload.(type) {
	case *journal.MissionAccepted:
		if _, ok := ml.Missions[p.MissionID]; ok {
			return ml
		}
		dest := p.DestinationSystem
		if p.DestinationStation != "" {
			dest += " / " + p.DestinationStation
		}
		return ml.with(&Mission{
			ID:          p.MissionID,
			State:       MissionActive,
			Accepted:    p,
			AcceptedAt:  ev.Time,
			Destination: dest,
			Reward:      p.Reward,
		})
	case *journal.MissionCompleted:
		return ml.finish(p.MissionID, MissionCompleted, ev.Time, func(m *Mission) { m.Reward = p.Reward })
	case *journal.MissionFailed:
		return ml.finish(p.MissionID, MissionFailed, ev.Time, nil)
	case *journal.MissionAbandoned:
		return ml.finish(p.MissionID, MissionAbandoned, ev.Time, nil)
	case *journal.MissionRedirected:
		m, ok := ml.Missions[p.MissionID]
		if !ok {
			return ml
		}
		c := *m
		c.Destination = p.NewDestinationSystem
		if p.NewDestinationStation != "" {
			c.Destination += " / " + p.NewDestinationStation
		}
		return ml.with(&c)
	}
	return ml
}

// finish closes a mission. Missions accepted before the history began are
// recorded without their acceptance.
func (ml *MissionList) finish(id int64, state MissionState, at time.Time, edit func(*Mission)) *MissionList {
	var c Mission
	if m, ok := ml.Missions[id]; ok {
		if m.State == state {
			return ml
		}
		c = *m
	} else {
		c = Mission{ID: id}
	}
	c.State = state
	c.FinishedAt = at
	if edit != nil {
		edit(&c)
	}
	return ml.with(&c)
}

func (ml *MissionList) with(m *Mission) *MissionList {
	out := make(map[int64]*Mission, len(ml.Missions)+1)
	for k, v := range ml.Missions {
		out[k] = v
	}
	out[m.ID] = m
	return &MissionList{Missions: out}
}
