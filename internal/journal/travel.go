// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package journal

// Fileheader starts every journal file. Part > 1 marks a continuation of the
// previous file after the game rolled the log.
type Fileheader struct {
	Part        int    `json:"part"`
	Language    string `json:"language"`
	GameVersion string `json:"game_version"`
	Build       string `json:"build"`
	Odyssey     bool   `json:"odyssey"`
}

// Continued is the last line of a file that the game rolled over.
type Continued struct {
	Part int `json:"part"`
}

type Shutdown struct{}

// LoadGame opens a play session and carries the absolute credit balance.
type LoadGame struct {
	Commander string `json:"commander"`
	FID       string `json:"fid"`
	Ship      string `json:"ship"`
	ShipID    int64  `json:"ship_id"`
	ShipName  string `json:"ship_name"`
	ShipIdent string `json:"ship_ident"`
	Credits   int64  `json:"credits"`
	Loan      int64  `json:"loan"`
	GameMode  string `json:"game_mode"`
	Horizons  bool   `json:"horizons"`
	Odyssey   bool   `json:"odyssey"`
}

type Commander struct {
	Name string `json:"name"`
	FID  string `json:"fid"`
}

type NewCommander struct {
	Name    string `json:"name"`
	FID     string `json:"fid"`
	Package string `json:"package"`
}

// Arrival is the shared content of Location, FSDJump and CarrierJump.
type Arrival struct {
	StarSystem    string  `json:"star_system"`
	SystemAddress int64   `json:"system_address"`
	StarPos       *Vec3   `json:"star_pos,omitempty"`
	Body          string  `json:"body,omitempty"`
	BodyID        *int    `json:"body_id,omitempty"`
	BodyType      string  `json:"body_type,omitempty"`
	Docked        bool    `json:"docked"`
	StationName   string  `json:"station_name,omitempty"`
	StationType   string  `json:"station_type,omitempty"`
	MarketID      int64   `json:"market_id,omitempty"`
	SystemFaction string  `json:"system_faction"`
	Population    int64   `json:"population"`
	JumpDist      float64 `json:"jump_dist,omitempty"`
	FuelUsed      float64 `json:"fuel_used,omitempty"`
	FuelLevel     float64 `json:"fuel_level,omitempty"`
}

type Location struct{ Arrival }
type FSDJump struct{ Arrival }
type CarrierJump struct{ Arrival }

type StartJump struct {
	JumpType      string `json:"jump_type"`
	StarSystem    string `json:"star_system,omitempty"`
	SystemAddress int64  `json:"system_address,omitempty"`
	StarClass     string `json:"star_class,omitempty"`
}

type SupercruiseEntry struct {
	StarSystem    string `json:"star_system"`
	SystemAddress int64  `json:"system_address"`
}

type SupercruiseExit struct {
	StarSystem    string `json:"star_system"`
	SystemAddress int64  `json:"system_address"`
	Body          string `json:"body"`
	BodyID        *int   `json:"body_id,omitempty"`
	BodyType      string `json:"body_type"`
}

type Docked struct {
	StationName    string  `json:"station_name"`
	StationType    string  `json:"station_type"`
	StarSystem     string  `json:"star_system"`
	SystemAddress  int64   `json:"system_address"`
	MarketID       int64   `json:"market_id"`
	StationFaction string  `json:"station_faction"`
	DistFromStarLS float64 `json:"dist_from_star_ls"`
}

type Undocked struct {
	StationName string `json:"station_name"`
	MarketID    int64  `json:"market_id"`
}

// Landing is the shared content of Touchdown and Liftoff.
type Landing struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Body             string  `json:"body"`
	BodyID           *int    `json:"body_id,omitempty"`
	StarSystem       string  `json:"star_system"`
	SystemAddress    int64   `json:"system_address"`
	PlayerControlled bool    `json:"player_controlled"`
}

type Touchdown struct{ Landing }
type Liftoff struct{ Landing }

type ApproachBody struct {
	StarSystem    string `json:"star_system"`
	SystemAddress int64  `json:"system_address"`
	Body          string `json:"body"`
	BodyID        *int   `json:"body_id,omitempty"`
}

// NavRoute carries the plotted route from the NavRoute.json side-car.
type NavRoute struct {
	Route []RouteHop `json:"route"`
}

type RouteHop struct {
	StarSystem    string `json:"star_system"`
	SystemAddress int64  `json:"system_address"`
	StarPos       *Vec3  `json:"star_pos,omitempty"`
	StarClass     string `json:"star_class"`
}

type Music struct {
	Track string `json:"track"`
}

func (*Fileheader) payloadKind() Kind       { return KindFileheader }
func (*Continued) payloadKind() Kind        { return KindContinued }
func (*Shutdown) payloadKind() Kind         { return KindShutdown }
func (*LoadGame) payloadKind() Kind         { return KindLoadGame }
func (*Commander) payloadKind() Kind        { return KindCommander }
func (*NewCommander) payloadKind() Kind     { return KindNewCommander }
func (*Location) payloadKind() Kind         { return KindLocation }
func (*FSDJump) payloadKind() Kind          { return KindFSDJump }
func (*CarrierJump) payloadKind() Kind      { return KindCarrierJump }
func (*StartJump) payloadKind() Kind        { return KindStartJump }
func (*SupercruiseEntry) payloadKind() Kind { return KindSupercruiseEntry }
func (*SupercruiseExit) payloadKind() Kind  { return KindSupercruiseExit }
func (*Docked) payloadKind() Kind           { return KindDocked }
func (*Undocked) payloadKind() Kind         { return KindUndocked }
func (*Touchdown) payloadKind() Kind        { return KindTouchdown }
func (*Liftoff) payloadKind() Kind          { return KindLiftoff }
func (*ApproachBody) payloadKind() Kind     { return KindApproachBody }
func (*NavRoute) payloadKind() Kind         { return KindNavRoute }
func (*Music) payloadKind() Kind            { return KindMusic }

// Arrived returns the shared arrival content of Location, FSDJump and
// CarrierJump payloads.
func Arrived(p Payload) (*Arrival, bool) {
	switch a := p.(type) {
	case *Location:
		return &a.Arrival, true
	case *FSDJump:
		return &a.Arrival, true
	case *CarrierJump:
		return &a.Arrival, true
	}
	return nil, false
}

func parseFileheader(f Fields) Payload {
	part := f.Int("part")
	if part == 0 {
		part = 1
	}
	return &Fileheader{
		Part:        part,
		Language:    f.Str("language"),
		GameVersion: f.Str("gameversion"),
		Build:       f.Str("build"),
		Odyssey:     f.Bool("Odyssey", "odyssey"),
	}
}

func parseContinued(f Fields) Payload {
	return &Continued{Part: f.Int("Part")}
}

func parseLoadGame(f Fields) Payload {
	return &LoadGame{
		Commander: f.Str("Commander"),
		FID:       f.Str("FID"),
		Ship:      f.Str("Ship"),
		ShipID:    f.Long("ShipID"),
		ShipName:  f.Str("ShipName"),
		ShipIdent: f.Str("ShipIdent"),
		Credits:   f.Long("Credits"),
		Loan:      f.Long("Loan"),
		GameMode:  f.Str("GameMode"),
		Horizons:  f.Bool("Horizons"),
		Odyssey:   f.Bool("Odyssey"),
	}
}

func parseArrival(f Fields) Arrival {
	return Arrival{
		StarSystem:    f.Str("StarSystem"),
		SystemAddress: f.Long("SystemAddress"),
		StarPos:       f.Vec3("StarPos"),
		Body:          f.Str("Body"),
		BodyID:        f.IntPtr("BodyID"),
		BodyType:      f.Str("BodyType"),
		Docked:        f.Bool("Docked"),
		StationName:   f.Str("StationName"),
		StationType:   f.Str("StationType"),
		MarketID:      f.Long("MarketID"),
		SystemFaction: f.Faction("SystemFaction", "Faction"),
		Population:    f.Long("Population"),
		JumpDist:      f.Float("JumpDist"),
		FuelUsed:      f.Float("FuelUsed"),
		FuelLevel:     f.Float("FuelLevel"),
	}
}

func parseLanding(f Fields) Landing {
	return Landing{
		Latitude:         f.Float("Latitude"),
		Longitude:        f.Float("Longitude"),
		Body:             f.Str("Body"),
		BodyID:           f.IntPtr("BodyID"),
		StarSystem:       f.Str("StarSystem"),
		SystemAddress:    f.Long("SystemAddress"),
		PlayerControlled: f.Bool("PlayerControlled"),
	}
}

func parseNavRoute(f Fields) Payload {
	hops := f.Objects("Route")
	out := &NavRoute{Route: make([]RouteHop, 0, len(hops))}
	for _, h := range hops {
		out.Route = append(out.Route, RouteHop{
			StarSystem:    h.Str("StarSystem"),
			SystemAddress: h.Long("SystemAddress"),
			StarPos:       h.Vec3("StarPos"),
			StarClass:     h.Str("StarClass"),
		})
	}
	return out
}

//nolint:gochecknoinits // parser registration
func init() {
	register(KindFileheader, parseFileheader)
	register(KindContinued, parseContinued)
	register(KindShutdown, func(Fields) Payload { return &Shutdown{} })
	register(KindLoadGame, parseLoadGame)
	register(KindCommander, func(f Fields) Payload {
		return &Commander{Name: f.Str("Name"), FID: f.Str("FID")}
	})
	register(KindNewCommander, func(f Fields) Payload {
		return &NewCommander{Name: f.Str("Name"), FID: f.Str("FID"), Package: f.Str("Package")}
	})
	register(KindLocation, func(f Fields) Payload { return &Location{parseArrival(f)} })
	register(KindFSDJump, func(f Fields) Payload { return &FSDJump{parseArrival(f)} })
	register(KindCarrierJump, func(f Fields) Payload { return &CarrierJump{parseArrival(f)} })
	register(KindStartJump, func(f Fields) Payload {
		return &StartJump{
			JumpType:      f.Str("JumpType"),
			StarSystem:    f.Str("StarSystem"),
			SystemAddress: f.Long("SystemAddress"),
			StarClass:     f.Str("StarClass"),
		}
	})
	register(KindSupercruiseEntry, func(f Fields) Payload {
		return &SupercruiseEntry{StarSystem: f.Str("StarSystem"), SystemAddress: f.Long("SystemAddress")}
	})
	register(KindSupercruiseExit, func(f Fields) Payload {
		return &SupercruiseExit{
			StarSystem:    f.Str("StarSystem"),
			SystemAddress: f.Long("SystemAddress"),
			Body:          f.Str("Body"),
			BodyID:        f.IntPtr("BodyID"),
			BodyType:      f.Str("BodyType"),
		}
	})
	register(KindDocked, func(f Fields) Payload {
		return &Docked{
			StationName:    f.Str("StationName"),
			StationType:    f.Str("StationType"),
			StarSystem:     f.Str("StarSystem"),
			SystemAddress:  f.Long("SystemAddress"),
			MarketID:       f.Long("MarketID"),
			StationFaction: f.Faction("StationFaction", "Faction"),
			DistFromStarLS: f.Float("DistFromStarLS"),
		}
	})
	register(KindUndocked, func(f Fields) Payload {
		return &Undocked{StationName: f.Str("StationName"), MarketID: f.Long("MarketID")}
	})
	register(KindTouchdown, func(f Fields) Payload { return &Touchdown{parseLanding(f)} })
	register(KindLiftoff, func(f Fields) Payload { return &Liftoff{parseLanding(f)} })
	register(KindApproachBody, func(f Fields) Payload {
		return &ApproachBody{
			StarSystem:    f.Str("StarSystem"),
			SystemAddress: f.Long("SystemAddress"),
			Body:          f.Str("Body"),
			BodyID:        f.IntPtr("BodyID"),
		}
	})
	register(KindNavRoute, parseNavRoute)
	register(KindMusic, func(f Fields) Payload { return &Music{Track: f.Str("MusicTrack")} })
}
