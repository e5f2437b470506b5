package shiplist

import (
	"fmt"

	"battlesim/pkg/db"
	"battlesim/pkg/logger"
)

// HostConfig :
// Database-backed implementation of sim.HostConfiguration, built over
// db.Proxy's generic QueryDesc/FetchFromDB machinery just like Proxy.
// Host rule options rarely change between runs of the same series, so
// every scalar, per-player, and per-experience-level value is cached
// in memory at construction the same way Proxy caches hull/launcher
// rows.
type HostConfig struct {
	dbase db.Proxy
	log   logger.Logger

	scalars     map[string]int
	flags       map[string]bool
	perPlayer   map[string]map[int]int
	perLevel    map[string]map[int]int
	raceByOwner map[int]int
}

// NewHostConfig creates a HostConfig on dbase and loads its caches.
func NewHostConfig(dbase *db.DB, log logger.Logger) (*HostConfig, error) {
	if dbase == nil {
		panic(fmt.Errorf("cannot create host configuration from invalid DB"))
	}

	c := &HostConfig{
		dbase:       db.NewProxy(dbase),
		log:         log,
		scalars:     make(map[string]int),
		flags:       make(map[string]bool),
		perPlayer:   make(map[string]map[int]int),
		perLevel:    make(map[string]map[int]int),
		raceByOwner: make(map[int]int),
	}

	if err := c.loadScalars(); err != nil {
		return nil, err
	}
	if err := c.loadPerPlayer(); err != nil {
		return nil, err
	}
	if err := c.loadPerLevel(); err != nil {
		return nil, err
	}
	if err := c.loadRaces(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *HostConfig) loadScalars() error {
	query := db.QueryDesc{
		Props: []string{"key", "int_value", "bool_value"},
		Table: "host_config_scalars",
	}
	rows, err := c.dbase.FetchFromDB(query)
	if err != nil {
		c.log.Trace(logger.Error, "shiplist", fmt.Sprintf("Could not fetch host config scalars (err: %v)", err))
		return err
	}
	if rows.Err != nil {
		c.log.Trace(logger.Error, "shiplist", fmt.Sprintf("Could not fetch host config scalars (err: %v)", rows.Err))
		return rows.Err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var intValue int
		var boolValue bool
		if err := rows.Scan(&key, &intValue, &boolValue); err != nil {
			c.log.Trace(logger.Error, "shiplist", fmt.Sprintf("Could not scan host config scalar row (err: %v)", err))
			return err
		}
		c.scalars[key] = intValue
		c.flags[key] = boolValue
	}
	return nil
}

func (c *HostConfig) loadPerPlayer() error {
	query := db.QueryDesc{
		Props: []string{"key", "player", "value"},
		Table: "host_config_per_player",
	}
	rows, err := c.dbase.FetchFromDB(query)
	if err != nil {
		c.log.Trace(logger.Error, "shiplist", fmt.Sprintf("Could not fetch per-player host config (err: %v)", err))
		return err
	}
	if rows.Err != nil {
		c.log.Trace(logger.Error, "shiplist", fmt.Sprintf("Could not fetch per-player host config (err: %v)", rows.Err))
		return rows.Err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var player, value int
		if err := rows.Scan(&key, &player, &value); err != nil {
			c.log.Trace(logger.Error, "shiplist", fmt.Sprintf("Could not scan per-player host config row (err: %v)", err))
			return err
		}
		if c.perPlayer[key] == nil {
			c.perPlayer[key] = make(map[int]int)
		}
		c.perPlayer[key][player] = value
	}
	return nil
}

func (c *HostConfig) loadPerLevel() error {
	query := db.QueryDesc{
		Props: []string{"key", "level", "value"},
		Table: "host_config_per_level",
	}
	rows, err := c.dbase.FetchFromDB(query)
	if err != nil {
		c.log.Trace(logger.Error, "shiplist", fmt.Sprintf("Could not fetch per-level host config (err: %v)", err))
		return err
	}
	if rows.Err != nil {
		c.log.Trace(logger.Error, "shiplist", fmt.Sprintf("Could not fetch per-level host config (err: %v)", rows.Err))
		return rows.Err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var level, value int
		if err := rows.Scan(&key, &level, &value); err != nil {
			c.log.Trace(logger.Error, "shiplist", fmt.Sprintf("Could not scan per-level host config row (err: %v)", err))
			return err
		}
		if c.perLevel[key] == nil {
			c.perLevel[key] = make(map[int]int)
		}
		c.perLevel[key][level] = value
	}
	return nil
}

func (c *HostConfig) loadRaces() error {
	query := db.QueryDesc{
		Props: []string{"owner", "race"},
		Table: "player_races",
	}
	rows, err := c.dbase.FetchFromDB(query)
	if err != nil {
		c.log.Trace(logger.Error, "shiplist", fmt.Sprintf("Could not fetch player races (err: %v)", err))
		return err
	}
	if rows.Err != nil {
		c.log.Trace(logger.Error, "shiplist", fmt.Sprintf("Could not fetch player races (err: %v)", rows.Err))
		return rows.Err
	}
	defer rows.Close()

	for rows.Next() {
		var owner, race int
		if err := rows.Scan(&owner, &race); err != nil {
			c.log.Trace(logger.Error, "shiplist", fmt.Sprintf("Could not scan player race row (err: %v)", err))
			return err
		}
		c.raceByOwner[owner] = race
	}
	return nil
}

func (c *HostConfig) AllowEngineShieldBonus() bool     { return c.flags["AllowEngineShieldBonus"] }
func (c *HostConfig) AllowFedCombatBonus() bool        { return c.flags["AllowFedCombatBonus"] }
func (c *HostConfig) AllowCloakedShipsAttack() bool    { return c.flags["AllowCloakedShipsAttack"] }
func (c *HostConfig) AllowPlanetAttacks() bool         { return c.flags["AllowPlanetAttacks"] }
func (c *HostConfig) AllowAlternativeCombat() bool     { return c.flags["AllowAlternativeCombat"] }
func (c *HostConfig) AllowESBonusAgainstPlanets() bool { return c.flags["AllowESBonusAgainstPlanets"] }
func (c *HostConfig) UseBaseTorpsInCombat() bool       { return c.flags["UseBaseTorpsInCombat"] }
func (c *HostConfig) PlanetsHaveTubes() bool           { return c.flags["PlanetsHaveTubes"] }

func (c *HostConfig) NumExperienceLevels() int   { return c.scalars["NumExperienceLevels"] }
func (c *HostConfig) MaximumDefenseOnBase() int  { return c.scalars["MaximumDefenseOnBase"] }
func (c *HostConfig) MaximumFightersOnBase() int { return c.scalars["MaximumFightersOnBase"] }

func (c *HostConfig) EngineShieldBonusRate(player int) int {
	return c.perPlayer["EngineShieldBonusRate"][player]
}
func (c *HostConfig) ExtraFighterBays(player int) int {
	return c.perPlayer["ExtraFighterBays"][player]
}
func (c *HostConfig) PlanetaryTorpsPerTube(player int) int {
	return c.perPlayer["PlanetaryTorpsPerTube"][player]
}

func (c *HostConfig) EModExtraFighterBays(level int) int {
	return c.perLevel["EModExtraFighterBays"][level]
}
func (c *HostConfig) EModEngineShieldBonusRate(level int) int {
	return c.perLevel["EModEngineShieldBonusRate"][level]
}
func (c *HostConfig) EModPlanetaryTorpsPerTube(level int) int {
	return c.perLevel["EModPlanetaryTorpsPerTube"][level]
}

// PlayerRaceNumber implements sim.HostConfiguration. Player 0 (no
// owner) and any player without a registered race default to 0.
func (c *HostConfig) PlayerRaceNumber(player int) int {
	return c.raceByOwner[player]
}
