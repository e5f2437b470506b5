package shiplist

import (
	"fmt"
	"strings"

	"battlesim/internal/sim"
	"battlesim/pkg/db"
	"battlesim/pkg/logger"
)

// Proxy :
// Read-only, database-backed implementation of sim.ShipList, following
// the teacher's proxy pattern: a thin wrapper over db.Proxy's generic
// QueryDesc/FetchFromDB machinery, hiding the table layout behind a
// typed accessor. Hull and launcher rows rarely change, so the whole
// table is cached in memory on construction rather than queried per
// lookup, the way the teacher caches technology trees.
//
// The `dbase` is the database wrapped by this proxy.
//
// The `log` notifies load failures and timing information.
type Proxy struct {
	dbase db.Proxy
	log   logger.Logger

	hulls           map[int]sim.Hull
	launchers       map[int]sim.Launcher
	engines         map[int]sim.Engine
	specialFcodes   map[string]bool
	numTorpedoTypes int
}

// NewProxy creates a Proxy on dbase and loads its hull/launcher/special
// friendly-code caches immediately. Panics if dbase is nil, matching
// the teacher's proxy construction convention.
func NewProxy(dbase *db.DB, log logger.Logger) (*Proxy, error) {
	if dbase == nil {
		panic(fmt.Errorf("cannot create ship list proxy from invalid DB"))
	}

	p := &Proxy{
		dbase:         db.NewProxy(dbase),
		log:           log,
		hulls:         make(map[int]sim.Hull),
		launchers:     make(map[int]sim.Launcher),
		engines:       make(map[int]sim.Engine),
		specialFcodes: make(map[string]bool),
	}

	if err := p.loadHulls(); err != nil {
		return nil, err
	}
	if err := p.loadLaunchers(); err != nil {
		return nil, err
	}
	if err := p.loadEngines(); err != nil {
		return nil, err
	}
	if err := p.loadSpecialFriendlyCodes(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Proxy) loadHulls() error {
	query := db.QueryDesc{
		Props: []string{"id", "mass", "num_beams", "num_launchers", "num_bays", "picture_number"},
		Table: "hulls",
	}
	rows, err := p.dbase.FetchFromDB(query)
	if err != nil {
		p.log.Trace(logger.Error, "shiplist", fmt.Sprintf("Could not fetch hulls (err: %v)", err))
		return err
	}
	if rows.Err != nil {
		p.log.Trace(logger.Error, "shiplist", fmt.Sprintf("Could not fetch hulls (err: %v)", rows.Err))
		return rows.Err
	}
	defer rows.Close()

	for rows.Next() {
		var h sim.Hull
		if err := rows.Scan(&h.Id, &h.Mass, &h.NumBeams, &h.NumLaunchers, &h.NumBays, &h.PictureNumber); err != nil {
			p.log.Trace(logger.Error, "shiplist", fmt.Sprintf("Could not scan hull row (err: %v)", err))
			return err
		}
		p.hulls[h.Id] = h
	}
	return nil
}

func (p *Proxy) loadLaunchers() error {
	query := db.QueryDesc{
		Props: []string{"id", "cost"},
		Table: "launchers",
	}
	rows, err := p.dbase.FetchFromDB(query)
	if err != nil {
		p.log.Trace(logger.Error, "shiplist", fmt.Sprintf("Could not fetch launchers (err: %v)", err))
		return err
	}
	if rows.Err != nil {
		p.log.Trace(logger.Error, "shiplist", fmt.Sprintf("Could not fetch launchers (err: %v)", rows.Err))
		return rows.Err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var l sim.Launcher
		if err := rows.Scan(&l.Id, &l.Cost); err != nil {
			p.log.Trace(logger.Error, "shiplist", fmt.Sprintf("Could not scan launcher row (err: %v)", err))
			return err
		}
		p.launchers[l.Id] = l
		count++
	}
	p.numTorpedoTypes = count
	return nil
}

func (p *Proxy) loadEngines() error {
	query := db.QueryDesc{
		Props: []string{"id", "cost_money"},
		Table: "engines",
	}
	rows, err := p.dbase.FetchFromDB(query)
	if err != nil {
		p.log.Trace(logger.Error, "shiplist", fmt.Sprintf("Could not fetch engines (err: %v)", err))
		return err
	}
	if rows.Err != nil {
		p.log.Trace(logger.Error, "shiplist", fmt.Sprintf("Could not fetch engines (err: %v)", rows.Err))
		return rows.Err
	}
	defer rows.Close()

	for rows.Next() {
		var e sim.Engine
		if err := rows.Scan(&e.Id, &e.CostMoney); err != nil {
			p.log.Trace(logger.Error, "shiplist", fmt.Sprintf("Could not scan engine row (err: %v)", err))
			return err
		}
		p.engines[e.Id] = e
	}
	return nil
}

func (p *Proxy) loadSpecialFriendlyCodes() error {
	query := db.QueryDesc{
		Props: []string{"code"},
		Table: "special_friendly_codes",
	}
	rows, err := p.dbase.FetchFromDB(query)
	if err != nil {
		p.log.Trace(logger.Error, "shiplist", fmt.Sprintf("Could not fetch special friendly codes (err: %v)", err))
		return err
	}
	if rows.Err != nil {
		p.log.Trace(logger.Error, "shiplist", fmt.Sprintf("Could not fetch special friendly codes (err: %v)", rows.Err))
		return rows.Err
	}
	defer rows.Close()

	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			p.log.Trace(logger.Error, "shiplist", fmt.Sprintf("Could not scan friendly code row (err: %v)", err))
			return err
		}
		p.specialFcodes[strings.ToUpper(code)] = true
	}
	return nil
}

// Hull implements sim.ShipList.
func (p *Proxy) Hull(id int) (sim.Hull, bool) {
	h, ok := p.hulls[id]
	return h, ok
}

// Launcher implements sim.ShipList.
func (p *Proxy) Launcher(id int) (sim.Launcher, bool) {
	l, ok := p.launchers[id]
	return l, ok
}

// Engine implements sim.ShipList.
func (p *Proxy) Engine(id int) (sim.Engine, bool) {
	e, ok := p.engines[id]
	return e, ok
}

// NumTorpedoTypes implements sim.ShipList.
func (p *Proxy) NumTorpedoTypes() int {
	return p.numTorpedoTypes
}

// IsSpecialFriendlyCode implements sim.ShipList.
func (p *Proxy) IsSpecialFriendlyCode(fc string) bool {
	return p.specialFcodes[strings.ToUpper(fc)]
}
