// Package sim provides headless stand-ins for the host game: a flat grid
// city, a scripted driver, and a vehicle pool. It exists so the pursuit core
// can be soak-tested and profiled without a renderer or an audio device.
package sim

import (
	"math"

	"sanclaudio/internal/wanted"
)

// GridWorld is an endless flat city: roads every BlockSize units on both
// axes, nothing to collide with.
type GridWorld struct {
	Block float64
	Road  float64
}

func NewGridWorld() *GridWorld { return &GridWorld{Block: 33, Road: 5} }

func (w *GridWorld) BlockSize() float64                       { return w.Block }
func (w *GridWorld) RoadWidth() float64                       { return w.Road }
func (w *GridWorld) CheckCollision(x, z, radius float64) bool { return false }
func (w *GridWorld) TerrainHeight(x, z float64) float64       { return 0 }

// VehiclePool hands out vehicles with monotonically increasing ids.
type VehiclePool struct {
	nextID uint32
	live   map[uint32]*wanted.Vehicle
	types  map[string]wanted.VehicleType
}

func NewVehiclePool() *VehiclePool {
	return &VehiclePool{
		live: map[uint32]*wanted.Vehicle{},
		types: map[string]wanted.VehicleType{
			"sedan":          {Height: 1.4, MaxSpeed: 38, Width: 1.9, Length: 4.4},
			"police_cruiser": {Height: 1.4, MaxSpeed: 46, Width: 2.0, Length: 4.8},
		},
	}
}

func (p *VehiclePool) Spawn(x, z float64, kind string) (*wanted.Vehicle, bool) {
	if _, ok := p.types[kind]; !ok {
		return nil, false
	}
	p.nextID++
	v := &wanted.Vehicle{
		ID:        p.nextID,
		Kind:      kind,
		Pos:       wanted.Vec3{X: x, Z: z},
		Health:    100,
		MaxHealth: 100,
		Handling:  1,
		Mod:       wanted.StockModifier(),
	}
	p.live[v.ID] = v
	return v, true
}

func (p *VehiclePool) Despawn(v *wanted.Vehicle) { delete(p.live, v.ID) }

func (p *VehiclePool) Type(kind string) (wanted.VehicleType, bool) {
	vt, ok := p.types[kind]
	return vt, ok
}

// LiveCount is read by the harness metrics.
func (p *VehiclePool) LiveCount() int { return len(p.live) }

// Driver is a scripted player that laps a rectangular circuit at a fixed
// speed, committing periodic "crimes" so the pursuit curve gets exercised.
type Driver struct {
	pool *VehiclePool

	Car   *wanted.Vehicle
	pos   wanted.Vec3
	cash  int
	angle float64

	DamageTaken float64
	Exits       int
}

func NewDriver(pool *VehiclePool, cash int) *Driver {
	d := &Driver{pool: pool, cash: cash}
	d.Car, _ = pool.Spawn(2.5, 2.5, "sedan")
	return d
}

// Advance moves the driver along its circuit. Speed respects the tire
// modifier so spike strips visibly slow the lap.
func (d *Driver) Advance(dt float64) {
	if d.Car == nil {
		return
	}
	speed := 24.0 * d.Car.Mod.MaxSpeedScale
	d.angle += 0.04 * dt
	d.Car.Heading = d.angle
	d.Car.Speed = speed
	d.Car.Pos.X += math.Sin(d.angle) * speed * dt
	d.Car.Pos.Z += math.Cos(d.angle) * speed * dt
}

func (d *Driver) Position() wanted.Vec3 {
	if d.Car != nil {
		return d.Car.Pos
	}
	return d.pos
}

func (d *Driver) InVehicle() bool           { return d.Car != nil }
func (d *Driver) Vehicle() *wanted.Vehicle  { return d.Car }
func (d *Driver) Cash() int                 { return d.cash }
func (d *Driver) IsDead() bool              { return false }
func (d *Driver) TakeDamage(amount float64) { d.DamageTaken += amount }

func (d *Driver) Spend(amount int) bool {
	if d.cash < amount {
		return false
	}
	d.cash -= amount
	return true
}

func (d *Driver) ExitVehicle() {
	d.Exits++
	if d.Car != nil {
		d.pos = d.Car.Pos
		d.Car = nil
	}
}

// Remount puts the driver back behind the wheel after a carjack, so the soak
// keeps driving instead of standing still forever.
func (d *Driver) Remount() {
	if d.Car == nil {
		d.Car, _ = d.pool.Spawn(d.pos.X, d.pos.Z, "sedan")
	}
}

// ChaseCamera looks along the driver's heading from behind.
type ChaseCamera struct {
	driver *Driver
	fov    float64
	Shake  float64
}

func NewChaseCamera(d *Driver) *ChaseCamera { return &ChaseCamera{driver: d, fov: 65} }

func (c *ChaseCamera) Forward() wanted.Vec3 {
	h := 0.0
	if c.driver.Car != nil {
		h = c.driver.Car.Heading
	}
	return wanted.Vec3{X: math.Sin(h), Z: math.Cos(h)}
}

func (c *ChaseCamera) AddShake(m float64) { c.Shake += m }
func (c *ChaseCamera) FOV() float64       { return c.fov }
func (c *ChaseCamera) SetFOV(fov float64) { c.fov = fov }

// TextSinks collect the UI and subtitle traffic the core emits.
type TextSinks struct {
	Stars     int
	EscapeS   float64
	EscapeOn  bool
	Prompt    string
	PromptOn  bool
	EdgeFlash float64

	MissionTexts int
	Subtitles    int
}

func (s *TextSinks) ShowMissionText(text string, seconds float64) { s.MissionTexts++ }
func (s *TextSinks) SetWantedStars(level int)                     { s.Stars = level }
func (s *TextSinks) SetEscapeTimer(remaining float64, visible bool) {
	s.EscapeS = remaining
	s.EscapeOn = visible
}
func (s *TextSinks) SetInteractPrompt(text string, visible bool) {
	s.Prompt = text
	s.PromptOn = visible
}
func (s *TextSinks) SetEdgeFlash(alpha float64)        { s.EdgeFlash = alpha }
func (s *TextSinks) ShowSubtitle(speaker, text string) { s.Subtitles++ }

// QueueInput feeds scripted edge-triggered actions.
type QueueInput struct {
	pending map[string]bool
}

func (in *QueueInput) Press(action string) {
	if in.pending == nil {
		in.pending = map[string]bool{}
	}
	in.pending[action] = true
}

func (in *QueueInput) JustPressed(action string) bool {
	if in.pending[action] {
		delete(in.pending, action)
		return true
	}
	return false
}

// StaticModels answers the model registry from a fixed set.
type StaticModels struct {
	IDs map[string]bool
}

func (m *StaticModels) HasModel(id string) bool { return m.IDs[id] }
