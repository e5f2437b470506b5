package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"

	"battlesim/internal/harness"
	"battlesim/internal/sim"
	"battlesim/pkg/duration"
	"battlesim/pkg/logger"

	"github.com/google/uuid"
)

// routes registers every endpoint this server exposes. Every per-run
// route uses a regexp segment (the router matches path elements as
// regular expressions, not named placeholders); handlers recover any
// path variables from the request path themselves. Longer paths are
// registered before their prefixes so the more specific regexp wins
// before the catch-all "/runs/[^/]+" ever gets a chance to match.
func (s *Server) routes() {
	s.router.HandleFunc("/runs/[^/]+/units/[^/]+", s.getRunUnit).Methods("GET")
	s.router.HandleFunc("/runs/[^/]+/rescale", s.postRunRescale).Methods("POST")
	s.router.HandleFunc("/runs/[^/]+", s.getRun).Methods("GET")
	s.router.HandleFunc("/runs", s.postRun).Methods("POST")
}

// shipInput/planetInput mirror just the fields a caller needs to set
// to describe a participant; everything else keeps sim's zero-value
// defaults (NewShip/NewPlanet are applied first, then these override).
type shipInput struct {
	Id           int    `json:"id"`
	Name         string `json:"name"`
	Owner        int    `json:"owner"`
	Hull         int    `json:"hull"`
	Mass         int    `json:"mass"`
	BeamType     int    `json:"beamType"`
	NumBeams     int    `json:"numBeams"`
	TorpedoType  int    `json:"torpedoType"`
	NumLaunchers int    `json:"numLaunchers"`
	NumBays      int    `json:"numBays"`
	Ammo         int    `json:"ammo"`
	Engine       int    `json:"engine"`
	Crew         int    `json:"crew"`
	Shield       int    `json:"shield"`
	Damage       int    `json:"damage"`
	FriendlyCode string `json:"friendlyCode"`
}

type planetInput struct {
	Owner           int    `json:"owner"`
	Defense         int    `json:"defense"`
	BaseDefense     int    `json:"baseDefense"`
	BaseBeamTech    int    `json:"baseBeamTech"`
	BaseTorpedoTech int    `json:"baseTorpedoTech"`
	BaseFighters    int    `json:"baseFighters"`
	FriendlyCode    string `json:"friendlyCode"`
}

type configInput struct {
	Mode              string `json:"mode"`
	BalancingMode     string `json:"balancingMode"`
	EngineShieldBonus int    `json:"engineShieldBonus"`
	ScottyBonus       bool   `json:"scottyBonus"`
	RandomLeftRight   bool   `json:"randomLeftRight"`
	HonorAlliances    bool   `json:"honorAlliances"`
	SeedControl       bool   `json:"seedControl"`
}

// runRequest is the POST /runs request body: a starting Setup plus the
// host configuration and how many runs to play.
type runRequest struct {
	Ships      []shipInput  `json:"ships"`
	Planet     *planetInput `json:"planet"`
	Config     configInput  `json:"config"`
	NumRuns    int          `json:"numRuns"`
	Workers    int          `json:"workers"`
}

var vcrModes = map[string]sim.VcrMode{
	"host":   sim.VcrHost,
	"nuhost": sim.VcrNuHost,
	"phost2": sim.VcrPHost2,
	"phost3": sim.VcrPHost3,
	"phost4": sim.VcrPHost4,
	"flak":   sim.VcrFLAK,
}

var balancingModes = map[string]sim.BalancingMode{
	"none":         sim.BalanceNone,
	"masterAtArms": sim.BalanceMasterAtArms,
	"360k":         sim.Balance360k,
}

func buildSetup(req runRequest) *sim.Setup {
	setup := &sim.Setup{}
	for _, si := range req.Ships {
		ship := sim.NewShip()
		ship.Id = si.Id
		ship.Name = si.Name
		ship.Owner = si.Owner
		ship.Hull = si.Hull
		ship.Mass = si.Mass
		ship.BeamType = si.BeamType
		ship.NumBeams = si.NumBeams
		ship.TorpedoType = si.TorpedoType
		ship.NumLaunchers = si.NumLaunchers
		ship.NumBays = si.NumBays
		ship.Ammo = si.Ammo
		ship.Engine = si.Engine
		if si.Crew != 0 {
			ship.Crew = si.Crew
		}
		if si.Shield != 0 {
			ship.Shield = si.Shield
		}
		ship.Damage = si.Damage
		if si.FriendlyCode != "" {
			ship.FriendlyCode = si.FriendlyCode
		}
		setup.AddShip(ship)
	}
	if req.Planet != nil {
		planet := sim.NewPlanet()
		planet.Owner = req.Planet.Owner
		planet.Defense = req.Planet.Defense
		planet.BaseDefense = req.Planet.BaseDefense
		planet.BaseBeamTech = req.Planet.BaseBeamTech
		planet.BaseTorpedoTech = req.Planet.BaseTorpedoTech
		planet.BaseFighters = req.Planet.BaseFighters
		if req.Planet.FriendlyCode != "" {
			planet.FriendlyCode = req.Planet.FriendlyCode
		}
		setup.SetPlanet(planet)
	}
	return setup
}

func buildConfiguration(in configInput) sim.Configuration {
	cfg := sim.NewConfiguration()
	if mode, ok := vcrModes[in.Mode]; ok {
		cfg.Mode = mode
	}
	if bal, ok := balancingModes[in.BalancingMode]; ok {
		cfg.BalancingMode = bal
	}
	cfg.EngineShieldBonus = in.EngineShieldBonus
	cfg.ScottyBonus = in.ScottyBonus
	cfg.RandomLeftRight = in.RandomLeftRight
	cfg.HonorAlliances = in.HonorAlliances
	cfg.SeedControl = in.SeedControl
	return cfg
}

// itemView strips the Database specimen handles out of an sim.Item so
// the response stays a small, self-contained summary instead of
// dragging a run's whole battle log along for every statistic.
type itemView struct {
	Min         int32 `json:"min"`
	Max         int32 `json:"max"`
	TotalScaled int32 `json:"totalScaled"`
}

func viewItem(it sim.Item) itemView {
	return itemView{Min: it.Min, Max: it.Max, TotalScaled: it.TotalScaled}
}

type unitResultView struct {
	NumFightsWon          int       `json:"numFightsWon"`
	NumFights             int       `json:"numFights"`
	NumCaptures           int       `json:"numCaptures"`
	NumTorpedoesFired     itemView  `json:"numTorpedoesFired"`
	NumFightersLost       itemView  `json:"numFightersLost"`
	Damage                itemView  `json:"damage"`
	Shield                itemView  `json:"shield"`
	CrewLeftOrDefenseLost itemView  `json:"crewLeftOrDefenseLost"`
	NumTorpedoHits        itemView  `json:"numTorpedoHits"`
	MinFightersAboard     itemView  `json:"minFightersAboard"`
}

func viewUnitResult(u *sim.UnitResult) unitResultView {
	if u == nil {
		return unitResultView{}
	}
	return unitResultView{
		NumFightsWon:          u.NumFightsWon,
		NumFights:             u.NumFights,
		NumCaptures:           u.NumCaptures,
		NumTorpedoesFired:     viewItem(u.NumTorpedoesFired),
		NumFightersLost:       viewItem(u.NumFightersLost),
		Damage:                viewItem(u.Damage),
		Shield:                viewItem(u.Shield),
		CrewLeftOrDefenseLost: viewItem(u.CrewLeftOrDefenseLost),
		NumTorpedoHits:        viewItem(u.NumTorpedoHits),
		MinFightersAboard:     viewItem(u.MinFightersAboard),
	}
}

type seriesResultView struct {
	RunID        string                 `json:"runId"`
	ShipResults  map[int]unitResultView `json:"shipResults"`
	PlanetResult *unitResultView        `json:"planetResult,omitempty"`
	Elapsed      duration.Duration      `json:"elapsed"`
}

func viewSeriesResult(id string, series *harness.SeriesResult) seriesResultView {
	view := seriesResultView{
		RunID:       id,
		ShipResults: make(map[int]unitResultView, len(series.ShipResults)),
		Elapsed:     series.Elapsed,
	}
	for shipId, u := range series.ShipResults {
		view.ShipResults[shipId] = viewUnitResult(u)
	}
	if series.PlanetResult != nil {
		p := viewUnitResult(series.PlanetResult)
		view.PlanetResult = &p
	}
	return view
}

// postRun plays a run series described by the request body and stores
// it under a freshly minted id, returned in the response.
func (s *Server) postRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.log.Trace(logger.Error, "server", fmt.Sprintf("Could not decode run request (err: %v)", err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.NumRuns <= 0 {
		http.Error(w, "numRuns must be positive", http.StatusBadRequest)
		return
	}

	setup := buildSetup(req)
	cfg := buildConfiguration(req.Config)

	series, err := harness.RunSeries(setup, cfg, s.list, s.hostConfig, s.engine,
		harness.Options{NumRuns: req.NumRuns, Workers: req.Workers}, s.log)
	if err != nil {
		s.log.Trace(logger.Error, "server", fmt.Sprintf("Run series failed (err: %v)", err))
		http.Error(w, "run series failed", http.StatusInternalServerError)
		return
	}

	id := uuid.New().String()
	s.runsLock.Lock()
	s.runs[id] = series
	s.runsLock.Unlock()

	s.archiveRun(id, req.NumRuns, series)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(viewSeriesResult(id, series))
}

// getRun fetches a previously completed run series by id.
func (s *Server) getRun(w http.ResponseWriter, r *http.Request) {
	id := path.Base(r.URL.Path)

	s.runsLock.Lock()
	series, ok := s.runs[id]
	s.runsLock.Unlock()

	if !ok {
		http.Error(w, "no such run", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(viewSeriesResult(id, series))
}

// runAndSlot splits a "/runs/{id}/units/{slot}" or "/runs/{id}/rescale"
// path into its run id and, for the former, the trailing slot segment.
// The router has no named placeholders, so callers recover variables
// straight from the request path.
func runAndSlot(urlPath string) (id, slot string) {
	trimmed := strings.Trim(urlPath, "/")
	parts := strings.Split(trimmed, "/")
	// parts: ["runs", "{id}", "units"|"rescale", ["{slot}"]]
	if len(parts) < 3 {
		return "", ""
	}
	id = parts[1]
	if len(parts) >= 4 {
		slot = parts[3]
	}
	return id, slot
}

// unitResultForSlot resolves "planet" or a ship id string to the
// matching UnitResult within a series, per SPEC_FULL.md §B.2's
// per-slot lookup endpoint.
func unitResultForSlot(series *harness.SeriesResult, slot string) (*sim.UnitResult, bool) {
	if slot == "planet" {
		if series.PlanetResult == nil {
			return nil, false
		}
		return series.PlanetResult, true
	}
	shipId, err := strconv.Atoi(slot)
	if err != nil {
		return nil, false
	}
	u, ok := series.ShipResults[shipId]
	return u, ok
}

// getRunUnit fetches a single ship or planet UnitResult from a stored
// run series.
func (s *Server) getRunUnit(w http.ResponseWriter, r *http.Request) {
	id, slot := runAndSlot(r.URL.Path)

	s.runsLock.Lock()
	series, ok := s.runs[id]
	s.runsLock.Unlock()

	if !ok {
		http.Error(w, "no such run", http.StatusNotFound)
		return
	}

	u, ok := unitResultForSlot(series, slot)
	if !ok {
		http.Error(w, "no such unit slot", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(viewUnitResult(u))
}

// rescaleRequest carries the old/new reference weight for the
// "rescale weights" call-in of spec.md §6: every Item's TotalScaled is
// rescaled in place to stay comparable under the new weight, across
// every ship and the planet (if any) in the stored series.
type rescaleRequest struct {
	OldWeight int32 `json:"oldWeight"`
	NewWeight int32 `json:"newWeight"`
}

// postRunRescale rescales every UnitResult in a stored run series to a
// new reference weight and returns the updated series.
func (s *Server) postRunRescale(w http.ResponseWriter, r *http.Request) {
	id, _ := runAndSlot(r.URL.Path)

	var req rescaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.log.Trace(logger.Error, "server", fmt.Sprintf("Could not decode rescale request (err: %v)", err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.OldWeight == 0 {
		http.Error(w, "oldWeight must be non-zero", http.StatusBadRequest)
		return
	}

	s.runsLock.Lock()
	series, ok := s.runs[id]
	s.runsLock.Unlock()

	if !ok {
		http.Error(w, "no such run", http.StatusNotFound)
		return
	}

	for _, u := range series.ShipResults {
		u.ChangeWeight(req.OldWeight, req.NewWeight)
	}
	if series.PlanetResult != nil {
		series.PlanetResult.ChangeWeight(req.OldWeight, req.NewWeight)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(viewSeriesResult(id, series))
}
