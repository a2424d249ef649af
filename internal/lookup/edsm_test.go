// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package lookup

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/astrographus/internal/config"
	"github.com/tomtom215/astrographus/internal/journal"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*EDSMClient, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	c := NewEDSMClient(&config.LookupConfig{
		BaseURL:            srv.URL,
		Timeout:            2 * time.Second,
		Burst:              1,
		BreakerMaxFailures: 2,
		BreakerTimeout:     time.Minute,
	})
	return c, &hits
}

func TestEDSMSystem(t *testing.T) {
	tests := []struct {
		name     string
		key      SystemKey
		status   int
		body     string
		wantSys  bool
		wantErr  error
		wantName string
	}{
		{
			name:     "found by name",
			key:      SystemKey{Name: "Sol"},
			status:   http.StatusOK,
			body:     `{"name":"Sol","id64":10477373803,"coords":{"x":0,"y":0,"z":0}}`,
			wantSys:  true,
			wantName: "Sol",
		},
		{
			name:   "unknown system",
			key:    SystemKey{Name: "Nowhere"},
			status: http.StatusOK,
			body:   `[]`,
		},
		{
			name:    "server error",
			key:     SystemKey{Name: "Sol"},
			status:  http.StatusInternalServerError,
			body:    `oops`,
			wantErr: ErrUnavailable,
		},
		{
			name:    "garbage body",
			key:     SystemKey{Name: "Sol"},
			status:  http.StatusOK,
			body:    `{"name":`,
			wantErr: ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api-v1/system" {
					t.Errorf("path = %q", r.URL.Path)
				}
				if got := r.URL.Query().Get("systemName"); got != tt.key.Name {
					t.Errorf("systemName = %q, want %q", got, tt.key.Name)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			sys, err := c.System(context.Background(), tt.key)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (sys != nil) != tt.wantSys {
				t.Fatalf("sys = %+v, want present=%v", sys, tt.wantSys)
			}
			if sys == nil {
				return
			}
			if sys.Name != tt.wantName || sys.Address != 10477373803 {
				t.Errorf("sys = %+v", sys)
			}
			if sys.Coords == nil || *sys.Coords != (journal.Vec3{}) {
				t.Errorf("coords = %+v, want origin", sys.Coords)
			}
		})
	}
}

func TestEDSMQueriesByAddress(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("systemId64"); got != "42" {
			t.Errorf("systemId64 = %q, want 42", got)
		}
		if r.URL.Query().Has("systemName") {
			t.Error("systemName sent alongside address")
		}
		_, _ = w.Write([]byte(`{}`))
	})
	if _, err := c.System(context.Background(), SystemKey{Name: "X", Address: 42}); err != nil {
		t.Fatal(err)
	}
}

func TestEDSMBreakerOpens(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	for i := 0; i < 2; i++ {
		if _, err := c.System(context.Background(), SystemKey{Name: "Sol"}); !errors.Is(err, ErrUnavailable) {
			t.Fatalf("call %d: err = %v", i, err)
		}
	}
	if c.State() != gobreaker.StateOpen {
		t.Fatalf("state = %v, want open", c.State())
	}

	_, err := c.System(context.Background(), SystemKey{Name: "Sol"})
	if !errors.Is(err, ErrUnavailable) || !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("err = %v, want unavailable from open circuit", err)
	}
	if got := atomic.LoadInt32(hits); got != 2 {
		t.Errorf("server hits = %d, want 2", got)
	}
}

func TestEDSMClientErrorsDoNotTrip(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	for i := 0; i < 4; i++ {
		_, _ = c.System(context.Background(), SystemKey{Name: "Sol"})
	}
	if c.State() != gobreaker.StateClosed {
		t.Errorf("state = %v, want closed", c.State())
	}
}

const solBodies = `{
  "id64": 10477373803,
  "name": "Sol",
  "bodyCount": 2,
  "bodies": [
    {"name": "Sol", "bodyId": 0, "type": "Star", "subType": "G (White-Yellow) Star",
     "spectralClass": "G2", "luminosity": "V", "solarMasses": 1, "solarRadius": 1,
     "isMainStar": true, "belts": [{"name": "Sol A Belt", "type": "Metallic", "mass": 1, "innerRadius": 10, "outerRadius": 20}]},
    {"name": "Earth", "bodyId": 3, "type": "Planet", "subType": "Earth-like world",
     "parents": [{"Null": 2}, {"Star": 0}], "gravity": 1, "surfacePressure": 1,
     "radius": 6371, "distanceToArrival": 499, "materials": {"Iron": 18.5, "Nickel": 14}}
  ]
}`

func TestEDSMBodies(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api-system-v1/bodies" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(solBodies))
	})

	list, cached, err := c.Bodies(context.Background(), SystemKey{Name: "Sol"})
	if err != nil {
		t.Fatal(err)
	}
	if cached {
		t.Error("client reported a cached answer")
	}
	if list.System.Address != 10477373803 || list.BodyCount != 2 {
		t.Fatalf("list = %+v", list)
	}

	scans := list.Scans()
	if len(scans) != 2 {
		t.Fatalf("got %d scans", len(scans))
	}

	star := scans[0]
	if star.StarType != "G" || star.Subclass != 2 || !star.IsStar() {
		t.Errorf("star = %s%d", star.StarType, star.Subclass)
	}
	if len(star.Rings) != 1 || !star.Rings[0].IsBelt() || star.Rings[0].RingClass != "eRingClass_Metalic" {
		t.Errorf("belts = %+v", star.Rings)
	}

	earth := scans[1]
	if earth.PlanetClass != "Earthlike body" {
		t.Errorf("planet class = %q", earth.PlanetClass)
	}
	if earth.Source != journal.SourceLookup || earth.StarSystem != "Sol" {
		t.Errorf("source = %v system = %q", earth.Source, earth.StarSystem)
	}
	if len(earth.Parents) != 2 || earth.Parents[0] != (journal.ParentRef{Type: "Null", BodyID: 2}) {
		t.Errorf("parents = %+v", earth.Parents)
	}
	if math.Abs(earth.SurfaceGravity-9.80665) > 1e-9 || earth.SurfacePressure != 101325 {
		t.Errorf("gravity = %v pressure = %v", earth.SurfaceGravity, earth.SurfacePressure)
	}
	if earth.Radius != 6371000 {
		t.Errorf("radius = %v", earth.Radius)
	}
	if len(earth.Materials) != 2 || earth.Materials[0].Name != "iron" {
		t.Errorf("materials = %+v", earth.Materials)
	}
	if earth.Completeness() >= (&journal.Scan{ScanType: "NavBeaconDetail", Source: journal.SourceJournal}).Completeness() {
		t.Error("lookup scan outranks a journal scan")
	}
}

func TestEDSMBodiesAbsent(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	list, _, err := c.Bodies(context.Background(), SystemKey{Name: "Nowhere"})
	if err != nil || list != nil {
		t.Errorf("Bodies() = %+v, %v; want nil, nil", list, err)
	}
}
