package wanted

// Vec3 is a world-space position. The ground plane is XZ; Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// VehicleType describes the static dimensions of a vehicle kind.
type VehicleType struct {
	Height   float64
	MaxSpeed float64
	Width    float64
	Length   float64
}

// Modifier is the pursuit core's record of runtime changes applied to a
// vehicle. It replaces ad-hoc flags stuck onto vehicle objects: the facade
// applies the scales to its own physics. The zero value is NOT stock; use
// StockModifier for an unmodified vehicle.
type Modifier struct {
	TiresPopped   bool
	MaxSpeedScale float64 // 1 = stock
	HandlingScale float64 // 1 = stock
	BodyTint      uint32  // 0 = none
}

// StockModifier returns the modifier of an unmodified vehicle.
func StockModifier() Modifier {
	return Modifier{MaxSpeedScale: 1, HandlingScale: 1}
}

// Vehicle is the core's view of an entity owned by the vehicle facade.
// Escort vehicles are borrowed: the core mutates position, heading, lights
// and the modifier, and must request despawn when it evicts the owner unit.
type Vehicle struct {
	ID        uint32
	Kind      string
	Pos       Vec3
	Heading   float64
	Speed     float64
	Handling  float64
	Health    float64
	MaxHealth float64
	IsTraffic bool

	// Visual state read by the renderer. Per-vehicle fields, never shared,
	// so recoloring one vehicle cannot alias another's materials.
	BodyColor     uint32
	Emissive      float64
	Lightbar      bool
	LightbarPhase float64

	Mod Modifier
}

// Player is the host-owned player avatar.
type Player interface {
	Position() Vec3
	InVehicle() bool
	Vehicle() *Vehicle // nil when on foot
	Cash() int
	Spend(amount int) bool
	IsDead() bool
	TakeDamage(amount float64)
	ExitVehicle()
}

// Vehicles spawns and reclaims vehicle entities. Spawn reports ok=false when
// no slot or model is available; callers skip the attempt and retry later.
type Vehicles interface {
	Spawn(x, z float64, kind string) (*Vehicle, bool)
	Despawn(v *Vehicle)
	Type(kind string) (VehicleType, bool)
}

// NPCs renders speech for core-owned units. The crowd system itself stays
// host-side; the core only submits subtitles for its pursuers.
type NPCs interface {
	ShowSubtitle(speaker, text string)
}

// Audio receives cue requests. Calls are fire-and-forget.
type Audio interface {
	PlayGunshot(kind PursuerKind)
	PlaySiren()
	PlayPickup()
	PlayCrash(intensity float64)
	PlayAnimalese(text string, basePitch, modifier float64)
}

// World exposes the city grid and collision queries.
type World interface {
	BlockSize() float64
	RoadWidth() float64
	CheckCollision(x, z, radius float64) bool
	TerrainHeight(x, z float64) float64
}

// Camera exposes view direction, shake and field of view.
type Camera interface {
	Forward() Vec3 // unit vector
	AddShake(magnitude float64)
	FOV() float64
	SetFOV(fov float64)
}

// UI owns the HUD elements the core writes each tick.
type UI interface {
	ShowMissionText(text string, seconds float64)
	SetWantedStars(level int)
	SetEscapeTimer(remaining float64, visible bool)
	SetInteractPrompt(text string, visible bool)
	SetEdgeFlash(alpha float64)
}

// Input reports edge-triggered actions. Each edge is consumed exactly once.
type Input interface {
	JustPressed(action string) bool
}

// ActionInteract is the only action the core consumes.
const ActionInteract = "interact"

// Models is an optional registry of loadable vehicle models.
type Models interface {
	HasModel(id string) bool
}

// Facades bundles the external collaborators the core is driven against.
// Models may be nil; everything else is required.
type Facades struct {
	Player   Player
	Vehicles Vehicles
	NPCs     NPCs
	Audio    Audio
	World    World
	Camera   Camera
	UI       UI
	Input    Input
	Models   Models
}
