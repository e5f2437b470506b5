package sim

// BalancingMode :
// Post-packing adjustment used to correct the classic left/right combat
// imbalance.
type BalancingMode int

const (
	BalanceNone BalancingMode = iota
	Balance360k
	BalanceMasterAtArms
)

// VcrMode :
// Which playback engine emulation is used to run the simulation.
type VcrMode int

const (
	VcrHost VcrMode = iota
	VcrPHost2
	VcrPHost3
	VcrPHost4
	VcrFLAK
	VcrNuHost
)

// TeamSettings :
// Read-only team/alliance-origin mapping consulted when deriving the
// default alliance matrix in LoadDefaults. Out of scope beyond this
// narrow lookup.
type TeamSettings interface {
	PlayerTeam(player int) int
	ViewpointPlayer() int
}

const maxPlayers = 12

// playerMatrix is a fixed 12x12 boolean matrix indexed by ordered
// player pairs (1-based), used for both the alliance and enemy tables.
type playerMatrix [maxPlayers + 1][maxPlayers + 1]bool

func (m *playerMatrix) clear() { *m = playerMatrix{} }

func (m playerMatrix) get(a, b int) bool {
	if a < 0 || a > maxPlayers || b < 0 || b > maxPlayers {
		return false
	}
	return m[a][b]
}

func (m *playerMatrix) set(a, b int, v bool) {
	if a < 0 || a > maxPlayers || b < 0 || b > maxPlayers {
		return
	}
	m[a][b] = v
}

// Configuration :
// Simulation-wide knobs, per SPEC_FULL.md §3.3. Default construction
// produces PHost4, no balancing, honor-alliances on, all other flags
// off — matching game::sim::Configuration::Configuration.
type Configuration struct {
	Mode                       VcrMode
	BalancingMode              BalancingMode
	EngineShieldBonus          int
	ScottyBonus                bool
	RandomLeftRight            bool
	HonorAlliances             bool
	OnlyOneSimulation          bool
	SeedControl                bool
	RandomizeFCodesOnEveryFight bool

	allianceSettings playerMatrix
	enemySettings    playerMatrix
}

// NewConfiguration returns a Configuration at its default values.
func NewConfiguration() Configuration {
	return Configuration{
		Mode:           VcrPHost4,
		HonorAlliances: true,
	}
}

// Alliance reports whether a offers an alliance to b.
func (c Configuration) Alliance(a, b int) bool { return c.allianceSettings.get(a, b) }

// SetAlliance records whether a offers an alliance to b.
func (c *Configuration) SetAlliance(a, b int, v bool) { c.allianceSettings.set(a, b, v) }

// Enemy reports whether a has explicitly marked b as an enemy.
func (c Configuration) Enemy(a, b int) bool { return c.enemySettings.get(a, b) }

// SetEnemy records whether a has explicitly marked b as an enemy.
func (c *Configuration) SetEnemy(a, b int, v bool) { c.enemySettings.set(a, b, v) }

// LoadDefaults resets the alliance/enemy matrices and the simulation
// flags, then derives the alliance matrix from the team mapping: two
// distinct players on the same nonzero team are recorded as allied.
func (c *Configuration) LoadDefaults(teams TeamSettings) {
	c.allianceSettings.clear()
	c.enemySettings.clear()
	c.HonorAlliances = true
	c.OnlyOneSimulation = false
	c.SeedControl = false
	c.RandomizeFCodesOnEveryFight = false

	for a := 1; a <= maxPlayers; a++ {
		for b := 1; b <= maxPlayers; b++ {
			if a != b && teams.PlayerTeam(a) != 0 && teams.PlayerTeam(a) == teams.PlayerTeam(b) {
				c.allianceSettings.set(a, b, true)
			}
		}
	}
}

// SetMode selects the emulated host and derives the engine-shield-bonus
// rate, the Fed Scotty-bonus eligibility, and the default random-L/R
// and balancing settings for that host family, per SPEC_FULL.md §4.3.
func (c *Configuration) SetMode(mode VcrMode, teams TeamSettings, config HostConfiguration) {
	if config.AllowEngineShieldBonus() {
		c.EngineShieldBonus = config.EngineShieldBonusRate(teams.ViewpointPlayer())
	} else {
		c.EngineShieldBonus = 0
	}
	c.ScottyBonus = config.AllowFedCombatBonus()
	c.Mode = mode

	switch mode {
	case VcrPHost2, VcrPHost3, VcrPHost4, VcrFLAK:
		c.RandomLeftRight = true
		c.BalancingMode = BalanceNone
	case VcrHost, VcrNuHost:
		c.RandomLeftRight = false
		c.BalancingMode = Balance360k
	}
}

// IsExperienceEnabled reports whether experience levels participate in
// this simulation: PHost4/FLAK with a positive experience-level count.
func (c Configuration) IsExperienceEnabled(config HostConfiguration) bool {
	switch c.Mode {
	case VcrPHost4, VcrFLAK:
		return config.NumExperienceLevels() > 0
	default:
		return false
	}
}
