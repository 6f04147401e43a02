package wanted

import "math"

// PursuerKind controls HP, uniform and ranged damage.
type PursuerKind int

const (
	PursuerPatrol   PursuerKind = iota // standard unit, HP 50
	PursuerTactical                    // dark uniform, HP 100, shows up at 4 stars
	PursuerElite                       // olive uniform, HP 100, shows up at 5 stars
)

func (k PursuerKind) String() string {
	switch k {
	case PursuerTactical:
		return "tactical"
	case PursuerElite:
		return "elite"
	default:
		return "patrol"
	}
}

func (k PursuerKind) hp() float64 {
	if k == PursuerPatrol {
		return 50
	}
	return 100
}

func (k PursuerKind) rangedDamage() float64 {
	switch k {
	case PursuerTactical:
		return 15
	case PursuerElite:
		return 20
	default:
		return 10
	}
}

// Pursuer is one foot officer, optionally paired with a borrowed escort
// vehicle. While riding, the unit is pinned to the vehicle and hidden.
type Pursuer struct {
	ID        uint32
	Kind      PursuerKind
	Pos       Vec3
	Facing    float64
	HP        Health
	Alive     bool
	HasRanged bool
	Hidden    bool

	ShootTimer    float64
	DialogueTimer float64
	AnimPhase     float64
	SirenTimer    float64

	Escort *Vehicle // nil once dismounted or never assigned
}

// LimbSwing is the current sinusoidal arm/leg rotation.
func (p *Pursuer) LimbSwing() float64 {
	return limbSwingAmplitude * math.Sin(p.AnimPhase)
}

func (s *System) updatePursuers(dt float64) {
	// Spawn cadence: one admission attempt per timer expiry.
	s.spawnTimer -= dt
	if s.spawnTimer <= 0 {
		s.spawnTimer = s.tun.SpawnInterval
		if s.Level > 0 && s.aliveCount() < s.tun.Row(s.Level).MaxPursuers {
			s.spawnPursuer()
		}
	}

	playerPos := s.f.Player.Position()
	for i := range s.Pursuers {
		u := &s.Pursuers[i]
		if !u.Alive {
			continue
		}
		s.updateUnit(u, playerPos, dt)
	}
	s.evictDead()
	s.trimToCap()
}

// trimToCap stands down the newest units while the registry is over budget.
// Called again late in the tick because a bribe pickup can shrink the cap
// after the registry has already updated.
func (s *System) trimToCap() {
	limit := s.tun.Row(s.Level).MaxPursuers
	for len(s.Pursuers) > limit {
		last := len(s.Pursuers) - 1
		s.releasePursuer(&s.Pursuers[last])
		s.Pursuers = s.Pursuers[:last]
	}
}

func (s *System) aliveCount() int {
	n := 0
	for i := range s.Pursuers {
		if s.Pursuers[i].Alive {
			n++
		}
	}
	return n
}

func (s *System) spawnPursuer() {
	playerPos := s.f.Player.Position()
	ang := s.rng.RangeF(0, 2*math.Pi)
	dist := s.rng.RangeF(pursuerSpawnMin, pursuerSpawnMax)
	x := playerPos.X + math.Sin(ang)*dist
	z := playerPos.Z + math.Cos(ang)*dist

	row := s.tun.Row(s.Level)
	kind := s.rollKind()
	s.nextID++
	u := Pursuer{
		ID:        s.nextID,
		Kind:      kind,
		Pos:       Vec3{X: x, Y: s.f.World.TerrainHeight(x, z), Z: z},
		HP:        NewHealth(kind.hp()),
		Alive:     true,
		HasRanged: row.Ranged,
		// Stagger initial shots and barks so squads don't act in lockstep.
		ShootTimer:    float64(len(s.Pursuers)) * 0.15,
		DialogueTimer: s.rng.RangeF(3, 9),
		SirenTimer:    0.2 + s.rng.RangeF(0, 0.75),
	}

	if row.EscortProb > 0 && s.rng.Float64() < row.EscortProb {
		if v, ok := s.f.Vehicles.Spawn(x, z, s.escortKind()); ok {
			v.Heading = math.Atan2(playerPos.X-x, playerPos.Z-z)
			v.Lightbar = true
			u.Escort = v
			u.Hidden = true
			u.Pos = v.Pos
		}
		// Spawn failure degrades to a foot unit; no retry this cycle.
	}
	s.Pursuers = append(s.Pursuers, u)
}

// rollKind weights heavier units in at high stars.
func (s *System) rollKind() PursuerKind {
	if s.Level >= 5 && s.rng.Float64() < 0.4 {
		return PursuerElite
	}
	if s.Level >= 4 && s.rng.Float64() < 0.5 {
		return PursuerTactical
	}
	return PursuerPatrol
}

func (s *System) escortKind() string {
	if s.f.Models != nil && s.f.Models.HasModel(modelPoliceCruiser) {
		return modelPoliceCruiser
	}
	return fallbackEscortKind
}

func (s *System) updateUnit(u *Pursuer, playerPos Vec3, dt float64) {
	dx := playerPos.X - u.Pos.X
	dz := playerPos.Z - u.Pos.Z
	dist := math.Hypot(dx, dz)

	if u.Escort != nil {
		s.updateEscortRide(u, playerPos, dist, dt)
		if u.Escort != nil {
			return // still riding
		}
		// Dismounted this tick; fall through to foot behavior below.
		dx = playerPos.X - u.Pos.X
		dz = playerPos.Z - u.Pos.Z
		dist = math.Hypot(dx, dz)
	}

	// Pursue on foot.
	speed := pursuerWalkSpeed
	if s.Level >= 3 {
		speed = pursuerChaseSpeed
	}
	if dist > 0.1 {
		u.Facing = math.Atan2(dx, dz)
		nx := u.Pos.X + dx/dist*speed*dt
		nz := u.Pos.Z + dz/dist*speed*dt
		if !s.f.World.CheckCollision(nx, nz, pursuerRadius) {
			u.Pos.X = nx
			u.Pos.Z = nz
			u.Pos.Y = s.f.World.TerrainHeight(nx, nz)
		}
	}
	u.AnimPhase += limbSwingRate * dt

	// Carjack: at 3+ stars a unit in arm's reach drags a driver out.
	if s.Level >= 3 && !s.carjacked && dist < carjackRange && s.f.Player.InVehicle() {
		s.f.Player.ExitVehicle()
		s.f.UI.ShowMissionText("BUSTED!", 2)
		s.carjacked = true
	}

	s.updateAttack(u, dist, dt)
	s.updateBark(u, dist, dt)
}

func (s *System) updateEscortRide(u *Pursuer, playerPos Vec3, dist float64, dt float64) {
	v := u.Escort
	v.LightbarPhase += 5 * dt
	u.SirenTimer -= dt
	if u.SirenTimer <= 0 {
		if dist < sirenAudibleDist {
			s.f.Audio.PlaySiren()
		}
		// Per-unit cadence offset keeps fleets from sounding phase-locked.
		u.SirenTimer = 1.05 + float64(u.ID%5)*0.11
	}

	if dist <= escortDismountDist {
		// Dismount: the unit becomes visible and the borrowed reference is
		// released. The vehicle stays parked under facade ownership.
		v.Speed = 0
		u.Pos = v.Pos
		u.Hidden = false
		u.Escort = nil
		return
	}

	speed := escortBaseSpeed + escortSpeedPerStar*float64(s.Level)
	if dist <= escortDriveDist {
		// Rolling to a stop at the dismount line.
		speed *= 0.4
	}
	dx := playerPos.X - v.Pos.X
	dz := playerPos.Z - v.Pos.Z
	d := math.Hypot(dx, dz)
	if d > 0.1 {
		v.Heading = math.Atan2(dx, dz)
		v.Pos.X += dx / d * speed * dt
		v.Pos.Z += dz / d * speed * dt
		v.Pos.Y = s.f.World.TerrainHeight(v.Pos.X, v.Pos.Z)
		v.Speed = speed
	}
	u.Pos = v.Pos
	u.Hidden = true
}

func (s *System) updateAttack(u *Pursuer, dist float64, dt float64) {
	u.ShootTimer -= dt
	if u.ShootTimer > 0 {
		return
	}
	switch {
	case !u.HasRanged && dist <= meleeRange:
		s.f.Player.TakeDamage(meleeDamage)
		u.ShootTimer = meleeInterval
	case u.HasRanged && dist > rangedMinDist && dist < rangedMaxDist:
		s.f.Audio.PlayGunshot(u.Kind)
		if s.rng.Float64() < rangedHitChance {
			s.f.Player.TakeDamage(u.Kind.rangedDamage())
		}
		u.ShootTimer = s.rng.RangeF(1.5, 2.5)
	}
}

func (s *System) updateBark(u *Pursuer, dist float64, dt float64) {
	u.DialogueTimer -= dt
	if u.DialogueTimer > 0 {
		return
	}
	u.DialogueTimer = s.rng.RangeF(3, 9)
	if dist >= barkRange {
		return
	}
	line := s.Dialogue.Choose(s.barkPool(dist))
	if line == "" {
		return
	}
	s.f.NPCs.ShowSubtitle("Officer", line)
	s.f.Audio.PlayAnimalese(line, barkBasePitch(u.Kind), 1.0)
}

// barkBasePitch varies the synthesized voice per uniform.
func barkBasePitch(k PursuerKind) float64 {
	switch k {
	case PursuerTactical:
		return 0.85
	case PursuerElite:
		return 0.75
	default:
		return 1.0
	}
}

// DamagePursuer applies player damage to a unit by id. Unknown or dead ids
// are ignored; the corpse is evicted on the next tick.
func (s *System) DamagePursuer(id uint32, amount float64) {
	for i := range s.Pursuers {
		u := &s.Pursuers[i]
		if u.ID != id || !u.Alive {
			continue
		}
		u.HP.Damage(amount)
		if u.HP.IsDead() {
			u.Alive = false
		}
		return
	}
}

// releasePursuer returns borrowed resources; the unit's own meshes are
// renderer-side and follow the struct out of scope.
func (s *System) releasePursuer(u *Pursuer) {
	if u.Escort != nil {
		s.f.Vehicles.Despawn(u.Escort)
		u.Escort = nil
	}
	u.Alive = false
}

func (s *System) evictDead() {
	for i := 0; i < len(s.Pursuers); {
		if !s.Pursuers[i].Alive {
			s.releasePursuer(&s.Pursuers[i])
			s.Pursuers[i] = s.Pursuers[len(s.Pursuers)-1]
			s.Pursuers = s.Pursuers[:len(s.Pursuers)-1]
		} else {
			i++
		}
	}
}
