package routes

import (
	"fmt"

	"battlesim/internal/harness"
	"battlesim/pkg/db"
	"battlesim/pkg/duration"
	"battlesim/pkg/logger"
)

// runArchiveRecord is the shape persisted for a completed run series,
// kept separate from seriesResultView so the storage row and the API
// response can change independently of each other.
type runArchiveRecord struct {
	RunID     string            `json:"runId"`
	NumRuns   int               `json:"numRuns"`
	Elapsed   duration.Duration `json:"elapsed"`
	ShipCount int               `json:"shipCount"`
	HasPlanet bool              `json:"hasPlanet"`
}

// Convert implements db.Convertible. The archive row needs no field
// renaming or restructuring before being sent to the insertion script,
// so this just hands the record back unchanged.
func (r runArchiveRecord) Convert() interface{} { return r }

// archiveRun persists a one-line summary of a completed run series
// through the "insert_battle_run" DB script. Archiving is best effort:
// a run is already usable from s.runs once this is called, so a
// failure here is logged and swallowed rather than surfaced to the
// caller of POST /runs.
func (s *Server) archiveRun(id string, numRuns int, series *harness.SeriesResult) {
	record := runArchiveRecord{
		RunID:     id,
		NumRuns:   numRuns,
		Elapsed:   series.Elapsed,
		ShipCount: len(series.ShipResults),
		HasPlanet: series.PlanetResult != nil,
	}

	req := db.InsertReq{
		Script:     "insert_battle_run",
		Args:       []interface{}{record},
		SkipReturn: true,
	}

	if err := s.archive.InsertToDB(req); err != nil {
		s.log.Trace(logger.Warning, "routes", fmt.Sprintf("could not archive run %s (err: %v)", id, err))
	}
}
