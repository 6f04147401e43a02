package wanted

// MaxLevel is the top wanted star.
const MaxLevel = 5

// Tick contract: the host clamps dt, but the core clamps again defensively.
const maxTickDT = 0.05

// Pursuer behavior.
const (
	pursuerSpawnMin    = 40.0 // spawn ring around the player
	pursuerSpawnMax    = 70.0
	pursuerWalkSpeed   = 4.0
	pursuerChaseSpeed  = 6.0 // level 3+
	pursuerRadius      = 0.4
	meleeRange         = 2.5
	meleeDamage        = 10.0
	meleeInterval      = 1.0
	rangedMinDist      = 5.0
	rangedMaxDist      = 40.0
	rangedHitChance    = 0.30
	barkRange          = 30.0
	limbSwingRate      = 6.0 // rad/s
	limbSwingAmplitude = 0.3
	carjackRange       = 3.0
	escortDriveDist    = 10.0 // drive while farther than this
	escortDismountDist = 8.0
	escortBaseSpeed    = 12.0
	escortSpeedPerStar = 3.0
	sirenAudibleDist   = 150.0
)

// Obstacles.
const (
	spikeAheadMin      = 40.0
	spikeAheadMax      = 60.0
	spikeTriggerRadius = 4.0
	spikeTriggerSpeed  = 3.0
	spikeEvictDist     = 120.0
	maxSpikeStrips     = 2

	blockAheadMin      = 60.0
	blockAheadMax      = 100.0
	blockTriggerRadius = 6.0
	blockTriggerSpeed  = 5.0
	blockWingAngle     = 0.45 // rad, escort cars angled inward

	heliMinLevel    = 3
	heliOrbitRadius = 15.0
	heliOrbitRate   = 0.0003 // rad per ms
	heliAltitude    = 40.0
	heliBobAmount   = 3.0
	heliChaseSpeed  = 30.0
	heliRotorRate   = 30.0 // rad/s
)

// Tire pop effect applied through the vehicle modifier.
const (
	popMaxSpeedScale = 0.3
	popHandlingScale = 0.5
	popDropHeight    = 0.15
	popCameraShake   = 0.4
)

// Escape, bribes and recovery.
const (
	bribePickupRadius = 4.0
	bribeHeatRefund   = 3.0
	zoneClearTime     = 15.0
	zoneAccelScale    = 2.0 // extra escape-timer drain per second inside a zone

	sprayPromptRadius = 8.0
	sprayYawRate      = 0.8
	sprayParticleCap  = 40
	sprayFOVTarget    = 45.0
	sprayFOVRestore   = 65.0
)

// Model ids tried for police vehicles, with a plain fallback when the
// registry is absent or the model is missing.
const (
	modelPoliceCruiser = "police_cruiser"
	fallbackEscortKind = "sedan"
)
