package wanted

import "math"

// System is the wanted/pursuit core. It owns every pursuit entity (foot
// units, obstacles, the aerial pursuer) and is driven once per host frame
// via Update. All collaborator effects happen synchronously inside the tick;
// nothing is scheduled that could fire after ClearAll.
type System struct {
	f   Facades
	tun Tuning
	rng *Rand
	now float64 // accumulated simulation time, seconds

	// Heat accumulator.
	Level int
	Heat  float64

	// Escape evaluator.
	Escaping    bool
	EscapeTimer float64
	zoneTimer   float64

	// Pursuer registry.
	Pursuers   []Pursuer
	spawnTimer float64
	nextID     uint32
	carjacked  bool // one forced dismount per tick

	// Obstacle deployer.
	Strips     []SpikeStrip
	Blocks     []Roadblock
	Heli       *AerialPursuer
	spikeTimer float64
	blockTimer float64

	// Static sites.
	Stars []BribeStar
	Zones []EscapeZone
	Sites []RecoverySite

	// Recovery channel.
	SprayActive    bool
	SprayCooldown  float64
	sprayTimer     float64
	SprayParticles []SprayParticle

	Dialogue DialogueArbiter
}

// Layout places the static world interaction points.
type Layout struct {
	BribeStars    []Vec3
	EscapeZones   []EscapeZone
	RecoverySites []RecoverySite
}

func NewSystem(seed uint64, f Facades, lay Layout, tun Tuning) *System {
	rng := NewRand(splitmix64(seed))
	s := &System{
		f:          f,
		tun:        tun,
		rng:        rng,
		spawnTimer: tun.SpawnInterval,
		Dialogue:   DialogueArbiter{rng: rng},
	}
	for _, p := range lay.BribeStars {
		s.Stars = append(s.Stars, BribeStar{Pos: p, Active: true})
	}
	s.Zones = append(s.Zones, lay.EscapeZones...)
	s.Sites = append(s.Sites, lay.RecoverySites...)
	s.resetDeployTimers()
	return s
}

func (s *System) resetDeployTimers() {
	s.spikeTimer = s.tun.SpikeMin + s.rng.RangeF(0, s.tun.SpikeMax-s.tun.SpikeMin)
	s.blockTimer = s.tun.RoadblockMin + s.rng.RangeF(0, s.tun.RoadblockMax-s.tun.RoadblockMin)
}

// Update advances the whole subsystem by dt seconds. Order is fixed:
// heat → pursuers (dialogue inside) → obstacles → escape → recovery,
// with HUD writes after all state mutation.
func (s *System) Update(dt float64) {
	if dt <= 0 {
		return
	}
	if dt > maxTickDT {
		dt = maxTickDT
	}
	s.now += dt
	s.carjacked = false

	// Cooldowns accumulate in simulation time regardless of wanted state.
	if s.SprayCooldown > 0 {
		s.SprayCooldown = math.Max(0, s.SprayCooldown-dt)
	}

	s.updatePursuers(dt)
	s.updateObstacles(dt)
	s.updateEscape(dt)
	s.trimToCap()
	s.updateRecovery(dt)
	s.writeHUD()
}

// AddHeat raises heat and promotes the star level across any thresholds the
// new total crosses. A promotion cancels an escape in progress.
func (s *System) AddHeat(amount float64) {
	if amount <= 0 {
		return
	}
	prev := s.Level
	s.Heat += amount
	for s.Level < MaxLevel && s.Heat >= s.tun.Thresholds[s.Level] {
		s.Level++
	}
	if s.Level != prev {
		s.Escaping = false
		s.EscapeTimer = 0
		if prev == 0 {
			s.f.Audio.PlaySiren()
		}
	}
}

// SetLevel force-sets the star level, rebasing heat onto the level's
// threshold. Level 0 is a full clear.
func (s *System) SetLevel(n int) {
	if n <= 0 {
		s.ClearAll()
		return
	}
	if n > MaxLevel {
		n = MaxLevel
	}
	s.Level = n
	s.Heat = s.tun.Thresholds[n-1]
	s.Escaping = false
	s.EscapeTimer = 0
}

// ClearAll drops the wanted state to zero and synchronously evicts every
// owned entity. Safe to call when already cleared.
func (s *System) ClearAll() {
	s.Level = 0
	s.Heat = 0
	s.Escaping = false
	s.EscapeTimer = 0
	s.zoneTimer = 0

	for i := range s.Pursuers {
		s.releasePursuer(&s.Pursuers[i])
	}
	s.Pursuers = s.Pursuers[:0]

	for i := range s.Blocks {
		s.releaseRoadblock(&s.Blocks[i])
	}
	s.Blocks = s.Blocks[:0]
	s.Strips = s.Strips[:0]
	s.Heli = nil
	s.resetDeployTimers()
	s.spawnTimer = s.tun.SpawnInterval

	s.f.UI.SetEscapeTimer(0, false)
	s.f.UI.SetEdgeFlash(0)
	s.f.UI.SetWantedStars(0)
}

func (s *System) writeHUD() {
	s.f.UI.SetWantedStars(s.Level)
	s.f.UI.SetEscapeTimer(s.EscapeTimer, s.Escaping && s.Level > 0)
	s.f.UI.SetEdgeFlash(s.edgeFlashAlpha())
}

// edgeFlashAlpha is the red vignette intensity: a level-scaled pulse,
// clamped so five stars never whites out the screen.
func (s *System) edgeFlashAlpha() float64 {
	if s.Level == 0 {
		return 0
	}
	tms := s.now * 1000
	a := 0.1 * float64(s.Level) * (0.5 + 0.5*math.Sin(0.004*float64(s.Level)*tms))
	return clampF(a, 0, 0.6)
}

// HeatRadius is the per-level escape distance, 0 while cleared.
func (s *System) HeatRadius() float64 {
	return s.tun.Row(s.Level).HeatRadius
}

// Snapshot is the only state that survives a save. Everything else
// (pursuers, obstacles) respawns naturally from the restored level.
type Snapshot struct {
	Level                  int       `json:"level"`
	Heat                   float64   `json:"heat"`
	PayNSprayCooldown      float64   `json:"payNSprayCooldown"`
	BribeStarRespawnTimers []float64 `json:"bribeStarRespawnTimers"`
}

func (s *System) Snapshot() Snapshot {
	sn := Snapshot{
		Level:             s.Level,
		Heat:              s.Heat,
		PayNSprayCooldown: s.SprayCooldown,
	}
	for i := range s.Stars {
		sn.BribeStarRespawnTimers = append(sn.BribeStarRespawnTimers, s.Stars[i].RespawnTimer)
	}
	return sn
}

func (s *System) Restore(sn Snapshot) {
	s.ClearAll()
	if sn.Level > 0 {
		s.SetLevel(sn.Level)
		if sn.Heat > s.Heat {
			s.Heat = sn.Heat
		}
	}
	s.SprayCooldown = math.Max(0, sn.PayNSprayCooldown)
	for i := range s.Stars {
		if i >= len(sn.BribeStarRespawnTimers) {
			break
		}
		t := math.Max(0, sn.BribeStarRespawnTimers[i])
		s.Stars[i].RespawnTimer = t
		s.Stars[i].Active = t <= 0
	}
}
