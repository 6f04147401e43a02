package wanted

import "math"

// SpikeStrip is a one-shot tire trap laid across a road lane.
type SpikeStrip struct {
	Pos         Vec3
	Orientation float64 // 0 across north-south roads, pi/2 across east-west
	Triggered   bool
}

// Roadblock is a line of angled escort cars behind its own spike strip.
type Roadblock struct {
	Pos       Vec3
	Rotation  float64
	Cars      []*Vehicle
	StripPos  Vec3
	Triggered bool
}

// AerialPursuer is the single helicopter; it orbits the player with a
// ground-tracking spotlight and never lands or attacks.
type AerialPursuer struct {
	Pos        Vec3
	RotorPhase float64
	SpotTarget Vec3
}

func (s *System) updateObstacles(dt float64) {
	s.updateSpikeStrips(dt)
	s.updateRoadblocks(dt)
	s.updateAerial(dt)
}

func (s *System) updateSpikeStrips(dt float64) {
	playerPos := s.f.Player.Position()
	v := s.drivenVehicle()

	// The deploy timer only runs against a driving player.
	if s.Level >= 2 && v != nil {
		s.spikeTimer -= dt
		if s.spikeTimer <= 0 {
			s.spikeTimer = s.rng.RangeF(s.tun.SpikeMin, s.tun.SpikeMax)
			if len(s.Strips) < maxSpikeStrips {
				pos, orient := s.aheadOnRoad(spikeAheadMin, spikeAheadMax)
				s.Strips = append(s.Strips, SpikeStrip{Pos: pos, Orientation: orient})
			}
		}
	}
	for i := 0; i < len(s.Strips); {
		st := &s.Strips[i]
		// Strips left far behind are swept so the city doesn't litter.
		if dist2D(st.Pos, playerPos) > spikeEvictDist {
			s.Strips[i] = s.Strips[len(s.Strips)-1]
			s.Strips = s.Strips[:len(s.Strips)-1]
			continue
		}
		if !st.Triggered && v != nil && math.Abs(v.Speed) > spikeTriggerSpeed &&
			dist2D(st.Pos, v.Pos) <= spikeTriggerRadius {
			st.Triggered = true
			s.popTires(v)
		}
		i++
	}
}

func (s *System) updateRoadblocks(dt float64) {
	playerPos := s.f.Player.Position()
	v := s.drivenVehicle()

	maxBlocks := s.Level - 1
	if s.Level >= 3 && v != nil {
		s.blockTimer -= dt
		if s.blockTimer <= 0 {
			s.blockTimer = s.rng.RangeF(s.tun.RoadblockMin, s.tun.RoadblockMax)
			if len(s.Blocks) < maxBlocks {
				s.deployRoadblock()
			}
		}
	}
	for i := 0; i < len(s.Blocks); {
		b := &s.Blocks[i]
		if dist2D(b.Pos, playerPos) > spikeEvictDist {
			s.releaseRoadblock(b)
			s.Blocks[i] = s.Blocks[len(s.Blocks)-1]
			s.Blocks = s.Blocks[:len(s.Blocks)-1]
			continue
		}
		if !b.Triggered && v != nil && math.Abs(v.Speed) > blockTriggerSpeed &&
			dist2D(b.StripPos, v.Pos) < blockTriggerRadius {
			b.Triggered = true
			s.popTires(v)
		}
		i++
	}
}

func (s *System) deployRoadblock() {
	pos := s.aheadAtIntersection(blockAheadMin, blockAheadMax)
	playerPos := s.f.Player.Position()
	// Face the block back toward the incoming player.
	rot := math.Atan2(playerPos.X-pos.X, playerPos.Z-pos.Z)

	b := Roadblock{Pos: pos, Rotation: rot}
	// The damage strip lies behind the car line, so a vehicle ramming through
	// the block still rolls over it.
	b.StripPos = Vec3{
		X: pos.X - math.Sin(rot)*3.0,
		Y: pos.Y,
		Z: pos.Z - math.Cos(rot)*3.0,
	}
	spawnCar := func(cx, cz, heading float64) {
		car, ok := s.f.Vehicles.Spawn(cx, cz, s.escortKind())
		if !ok {
			return
		}
		car.Heading = heading
		car.Lightbar = true
		car.IsTraffic = false
		b.Cars = append(b.Cars, car)
	}

	// Two wing cars angled inward across the lane; a third depth car sits
	// forward at center when the response is heavy enough.
	spawnCar(pos.X+math.Cos(rot)*2.25, pos.Z-math.Sin(rot)*2.25, rot+math.Pi/2+blockWingAngle)
	spawnCar(pos.X-math.Cos(rot)*2.25, pos.Z+math.Sin(rot)*2.25, rot+math.Pi/2-blockWingAngle)
	if s.Level >= 4 {
		spawnCar(pos.X-math.Sin(rot)*4.0, pos.Z-math.Cos(rot)*4.0, rot+math.Pi/2)
	}
	if len(b.Cars) == 0 {
		return
	}
	s.Blocks = append(s.Blocks, b)
}

func (s *System) releaseRoadblock(b *Roadblock) {
	for _, c := range b.Cars {
		s.f.Vehicles.Despawn(c)
	}
	b.Cars = nil
}

func (s *System) updateAerial(dt float64) {
	if !s.tun.Row(s.Level).Aerial || s.Level < heliMinLevel {
		s.Heli = nil
		return
	}
	playerPos := s.f.Player.Position()
	if s.Heli == nil {
		s.Heli = &AerialPursuer{
			Pos: Vec3{
				X: playerPos.X + heliOrbitRadius,
				Y: s.f.World.TerrainHeight(playerPos.X, playerPos.Z) + heliAltitude,
				Z: playerPos.Z,
			},
		}
		s.f.Audio.PlaySiren()
	}

	h := s.Heli
	orbit := s.now * 1000 * heliOrbitRate
	tx := playerPos.X + math.Sin(orbit)*heliOrbitRadius
	tz := playerPos.Z + math.Cos(orbit)*heliOrbitRadius

	dx := tx - h.Pos.X
	dz := tz - h.Pos.Z
	d := math.Hypot(dx, dz)
	if d > 0.1 {
		step := math.Min(d, heliChaseSpeed*dt)
		h.Pos.X += dx / d * step
		h.Pos.Z += dz / d * step
	}
	ground := s.f.World.TerrainHeight(h.Pos.X, h.Pos.Z)
	h.Pos.Y = ground + heliAltitude + heliBobAmount*math.Sin(s.now)
	h.RotorPhase += heliRotorRate * dt
	h.SpotTarget = Vec3{
		X: playerPos.X,
		Y: s.f.World.TerrainHeight(playerPos.X, playerPos.Z),
		Z: playerPos.Z,
	}
}

// popTires blows out a vehicle's tires through its modifier. Idempotent: a
// vehicle already riding on rims is unaffected by further strips.
func (s *System) popTires(v *Vehicle) {
	if v.Mod.TiresPopped {
		return
	}
	v.Mod.TiresPopped = true
	v.Mod.MaxSpeedScale *= popMaxSpeedScale
	v.Mod.HandlingScale *= popHandlingScale
	v.Speed *= 0.5
	v.Pos.Y -= popDropHeight
	s.f.Audio.PlayCrash(0.6)
	s.f.Camera.AddShake(popCameraShake)
	s.f.UI.ShowMissionText("TIRES POPPED!", 2)
}

// drivenVehicle returns the player's vehicle, nil when on foot.
func (s *System) drivenVehicle() *Vehicle {
	if !s.f.Player.InVehicle() {
		return nil
	}
	return s.f.Player.Vehicle()
}

// aheadOnRoad picks a point the given distance along camera-forward and
// snaps it onto the nearest road centerline.
func (s *System) aheadOnRoad(minDist, maxDist float64) (Vec3, float64) {
	x, z := s.aheadPoint(minDist, maxDist)
	return s.snapToRoad(x, z)
}

// aheadAtIntersection snaps the ahead point to the nearest grid crossing.
func (s *System) aheadAtIntersection(minDist, maxDist float64) Vec3 {
	x, z := s.aheadPoint(minDist, maxDist)
	sx := s.snapAxis(x)
	sz := s.snapAxis(z)
	return Vec3{X: sx, Y: s.f.World.TerrainHeight(sx, sz), Z: sz}
}

func (s *System) aheadPoint(minDist, maxDist float64) (float64, float64) {
	fwd := s.f.Camera.Forward()
	dir := math.Atan2(fwd.X, fwd.Z)
	d := s.rng.RangeF(minDist, maxDist)
	p := s.f.Player.Position()
	return p.X + math.Sin(dir)*d, p.Z + math.Cos(dir)*d
}

// snapToRoad moves a point onto the closer of the two grid road centerlines
// through it. The returned orientation lays a strip across the lane.
func (s *System) snapToRoad(x, z float64) (Vec3, float64) {
	sx := s.snapAxis(x)
	sz := s.snapAxis(z)
	if math.Abs(sx-x) <= math.Abs(sz-z) {
		// North-south road: strip runs east-west.
		return Vec3{X: sx, Y: s.f.World.TerrainHeight(sx, z), Z: z}, 0
	}
	return Vec3{X: x, Y: s.f.World.TerrainHeight(x, sz), Z: sz}, math.Pi / 2
}

// snapAxis finds the nearest road centerline coordinate on one axis. Roads
// repeat every block, offset by half the road width.
func (s *System) snapAxis(c float64) float64 {
	b := s.f.World.BlockSize()
	half := s.f.World.RoadWidth() / 2
	return math.Round((c-half)/b)*b + half
}
