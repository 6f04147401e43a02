package wanted

import "math"

// Fake collaborators. Each records the calls a test cares about; positions
// and cash are plain fields so tests can move the world around between ticks.

type fakePlayer struct {
	pos     Vec3
	vehicle *Vehicle
	cash    int
	dead    bool

	damageTaken float64
	exitCalls   int
}

func (p *fakePlayer) Position() Vec3 {
	if p.vehicle != nil {
		return p.vehicle.Pos
	}
	return p.pos
}
func (p *fakePlayer) InVehicle() bool   { return p.vehicle != nil }
func (p *fakePlayer) Vehicle() *Vehicle { return p.vehicle }
func (p *fakePlayer) Cash() int         { return p.cash }
func (p *fakePlayer) IsDead() bool      { return p.dead }
func (p *fakePlayer) TakeDamage(n float64) {
	p.damageTaken += n
}
func (p *fakePlayer) Spend(amount int) bool {
	if p.cash < amount {
		return false
	}
	p.cash -= amount
	return true
}
func (p *fakePlayer) ExitVehicle() {
	p.exitCalls++
	if p.vehicle != nil {
		p.pos = p.vehicle.Pos
		p.vehicle = nil
	}
}

type fakeVehicles struct {
	nextID    uint32
	live      map[uint32]*Vehicle
	failSpawn bool
	spawns    int
	despawns  int
}

func newFakeVehicles() *fakeVehicles {
	return &fakeVehicles{live: map[uint32]*Vehicle{}}
}

func (f *fakeVehicles) Spawn(x, z float64, kind string) (*Vehicle, bool) {
	if f.failSpawn {
		return nil, false
	}
	f.nextID++
	f.spawns++
	v := &Vehicle{
		ID:        f.nextID,
		Kind:      kind,
		Pos:       Vec3{X: x, Z: z},
		Health:    100,
		MaxHealth: 100,
		Mod:       StockModifier(),
	}
	f.live[v.ID] = v
	return v, true
}

func (f *fakeVehicles) Despawn(v *Vehicle) {
	f.despawns++
	delete(f.live, v.ID)
}

func (f *fakeVehicles) Type(kind string) (VehicleType, bool) {
	return VehicleType{Height: 1.4, MaxSpeed: 40, Width: 2, Length: 4.5}, true
}

type fakeAudio struct {
	sirens   int
	pickups  int
	gunshots int
	crashes  int
	speech   []string
}

func (a *fakeAudio) PlayGunshot(kind PursuerKind) { a.gunshots++ }
func (a *fakeAudio) PlaySiren()                   { a.sirens++ }
func (a *fakeAudio) PlayPickup()                  { a.pickups++ }
func (a *fakeAudio) PlayCrash(intensity float64)  { a.crashes++ }
func (a *fakeAudio) PlayAnimalese(text string, basePitch, modifier float64) {
	a.speech = append(a.speech, text)
}

type fakeNPCs struct {
	subtitles []string
}

func (n *fakeNPCs) ShowSubtitle(speaker, text string) {
	n.subtitles = append(n.subtitles, text)
}

type fakeWorld struct {
	blockAll bool
}

func (w *fakeWorld) BlockSize() float64 { return 33 }
func (w *fakeWorld) RoadWidth() float64 { return 5 }
func (w *fakeWorld) CheckCollision(x, z, radius float64) bool {
	return w.blockAll
}
func (w *fakeWorld) TerrainHeight(x, z float64) float64 { return 0 }

type fakeCamera struct {
	forward Vec3
	fov     float64
	shake   float64
}

func (c *fakeCamera) Forward() Vec3      { return c.forward }
func (c *fakeCamera) AddShake(m float64) { c.shake += m }
func (c *fakeCamera) FOV() float64       { return c.fov }
func (c *fakeCamera) SetFOV(fov float64) { c.fov = fov }

type fakeUI struct {
	stars         int
	missionTexts  []string
	escapeRemain  float64
	escapeVisible bool
	prompt        string
	promptVisible bool
	edgeFlash     float64
}

func (u *fakeUI) ShowMissionText(text string, seconds float64) {
	u.missionTexts = append(u.missionTexts, text)
}
func (u *fakeUI) SetWantedStars(level int) { u.stars = level }
func (u *fakeUI) SetEscapeTimer(remaining float64, visible bool) {
	u.escapeRemain = remaining
	u.escapeVisible = visible
}
func (u *fakeUI) SetInteractPrompt(text string, visible bool) {
	u.prompt = text
	u.promptVisible = visible
}
func (u *fakeUI) SetEdgeFlash(alpha float64) { u.edgeFlash = alpha }

type fakeInput struct {
	pressed map[string]bool
}

func (in *fakeInput) JustPressed(action string) bool {
	if in.pressed[action] {
		delete(in.pressed, action)
		return true
	}
	return false
}

func (in *fakeInput) press(action string) {
	if in.pressed == nil {
		in.pressed = map[string]bool{}
	}
	in.pressed[action] = true
}

type fakeModels struct {
	ids map[string]bool
}

func (m *fakeModels) HasModel(id string) bool { return m.ids[id] }

// fixture wires a System to one instance of every fake.
type fixture struct {
	sys      *System
	player   *fakePlayer
	vehicles *fakeVehicles
	audio    *fakeAudio
	npcs     *fakeNPCs
	world    *fakeWorld
	camera   *fakeCamera
	ui       *fakeUI
	input    *fakeInput
}

func newFixture(seed uint64) *fixture {
	fx := &fixture{
		player:   &fakePlayer{cash: 500},
		vehicles: newFakeVehicles(),
		audio:    &fakeAudio{},
		npcs:     &fakeNPCs{},
		world:    &fakeWorld{},
		camera:   &fakeCamera{forward: Vec3{Z: 1}, fov: 65},
		ui:       &fakeUI{},
		input:    &fakeInput{},
	}
	lay := Layout{
		BribeStars: []Vec3{{X: 500, Z: 500}},
		EscapeZones: []EscapeZone{
			{Pos: Vec3{X: 800, Z: 800}, Radius: 5, Name: "Dockside Garage"},
		},
		RecoverySites: []RecoverySite{
			{Pos: Vec3{X: 300, Z: 300}, Name: "Pay-N-Spray"},
		},
	}
	fx.sys = NewSystem(seed, Facades{
		Player:   fx.player,
		Vehicles: fx.vehicles,
		NPCs:     fx.npcs,
		Audio:    fx.audio,
		World:    fx.world,
		Camera:   fx.camera,
		UI:       fx.ui,
		Input:    fx.input,
	}, lay, DefaultTuning())
	return fx
}

// drive puts the player in a fresh vehicle at the given position.
func (fx *fixture) drive(x, z float64, speed float64) *Vehicle {
	v, _ := fx.vehicles.Spawn(x, z, "sedan")
	v.Speed = speed
	fx.player.vehicle = v
	return v
}

// tick advances the system n times at a fixed dt.
func (fx *fixture) tick(n int, dt float64) {
	for i := 0; i < n; i++ {
		fx.sys.Update(dt)
	}
}

// nearestPursuerDist is a test-side helper for escape assertions.
func (fx *fixture) nearestPursuerDist() float64 {
	best := math.Inf(1)
	p := fx.player.Position()
	for i := range fx.sys.Pursuers {
		if d := dist2D(fx.sys.Pursuers[i].Pos, p); d < best {
			best = d
		}
	}
	return best
}
