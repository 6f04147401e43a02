package wanted

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// muzzleSpawns freezes the admission timer so a test fully controls the
// registry contents.
func (fx *fixture) muzzleSpawns() {
	fx.sys.tun.SpawnInterval = 1e9
	fx.sys.spawnTimer = 1e9
}

// addPursuer injects a unit at an offset from the player.
func (fx *fixture) addPursuer(dx, dz float64, ranged bool) *Pursuer {
	fx.sys.nextID++
	p := fx.player.Position()
	fx.sys.Pursuers = append(fx.sys.Pursuers, Pursuer{
		ID:        fx.sys.nextID,
		Pos:       Vec3{X: p.X + dx, Z: p.Z + dz},
		HP:        NewHealth(50),
		Alive:     true,
		HasRanged: ranged,
		// Keep injected units quiet unless a test wants barks.
		DialogueTimer: 1e9,
	})
	return &fx.sys.Pursuers[len(fx.sys.Pursuers)-1]
}

func TestPursuerCountNeverExceedsCap(t *testing.T) {
	for level := 1; level <= 5; level++ {
		fx := newFixture(uint64(level))
		fx.sys.SetLevel(level)
		limit := fx.sys.tun.Row(level).MaxPursuers
		// Keep the player out of reach so units stay alive and chasing.
		fx.world.blockAll = true
		for i := 0; i < 2000; i++ {
			fx.sys.Update(0.05)
			require.LessOrEqual(t, len(fx.sys.Pursuers), limit, "level %d", level)
		}
	}
}

func TestCapDecreaseEvictsNewestFirst(t *testing.T) {
	fx := newFixture(20)
	fx.sys.SetLevel(2) // cap 4
	fx.muzzleSpawns()
	fx.world.blockAll = true
	for i := 0; i < 5; i++ {
		fx.addPursuer(50, float64(i), false)
	}

	fx.tick(1, 0.05)

	require.Len(t, fx.sys.Pursuers, 4)
	for i, u := range fx.sys.Pursuers {
		assert.Equal(t, uint32(i+1), u.ID, "oldest units keep their posts")
	}
}

func TestMeleeDamageOnCycle(t *testing.T) {
	fx := newFixture(21)
	fx.sys.SetLevel(1)
	fx.muzzleSpawns()
	fx.addPursuer(1.0, 0, false)

	fx.tick(1, 0.05)
	assert.Equal(t, 10.0, fx.player.damageTaken, "first swing lands immediately")

	fx.tick(19, 0.05) // 0.95 s: still inside the 1.0 s cycle
	assert.Equal(t, 10.0, fx.player.damageTaken)

	fx.tick(2, 0.05)
	assert.Equal(t, 20.0, fx.player.damageTaken)
}

func TestRangedAlwaysEmitsGunshot(t *testing.T) {
	fx := newFixture(22)
	fx.sys.SetLevel(3)
	fx.muzzleSpawns()
	fx.world.blockAll = true
	fx.addPursuer(20, 0, true)

	fx.tick(1, 0.05)
	assert.Equal(t, 1, fx.audio.gunshots)
	// A hit is probabilistic; the shot sound is not.
	assert.Contains(t, []float64{0, 10}, fx.player.damageTaken)
}

func TestRangedHoldsFireOutOfBand(t *testing.T) {
	fx := newFixture(23)
	fx.sys.SetLevel(3)
	fx.muzzleSpawns()
	fx.world.blockAll = true

	fx.addPursuer(3, 0, true)  // too close for ranged, armed so no melee
	fx.addPursuer(60, 0, true) // beyond max range

	fx.tick(1, 0.05)
	assert.Equal(t, 0, fx.audio.gunshots)
	assert.Equal(t, 0.0, fx.player.damageTaken)
}

func TestCarjackOncePerTick(t *testing.T) {
	fx := newFixture(24)
	fx.sys.SetLevel(3)
	fx.muzzleSpawns()
	fx.world.blockAll = true
	fx.drive(0, 0, 0)
	fx.addPursuer(2, 0, true)
	fx.addPursuer(-2, 0, true)

	fx.tick(1, 0.05)

	assert.Equal(t, 1, fx.player.exitCalls, "two adjacent units force one dismount")
	assert.Contains(t, fx.ui.missionTexts, "BUSTED!")
}

func TestNoCarjackBelowLevelThree(t *testing.T) {
	fx := newFixture(25)
	fx.sys.SetLevel(2)
	fx.muzzleSpawns()
	fx.world.blockAll = true
	fx.drive(0, 0, 0)
	fx.addPursuer(2, 0, false)

	fx.tick(1, 0.05)
	assert.Equal(t, 0, fx.player.exitCalls)
}

func TestFootPursuitSwingsLimbs(t *testing.T) {
	fx := newFixture(31)
	fx.sys.SetLevel(1)
	fx.muzzleSpawns()
	u := fx.addPursuer(30, 0, false)

	for i := 0; i < 40; i++ {
		fx.tick(1, 0.05)
		require.LessOrEqual(t, math.Abs(u.LimbSwing()), limbSwingAmplitude)
	}
	assert.Greater(t, u.AnimPhase, 0.0, "walking animates the limbs")
}

func TestBarkGoesThroughArbiterAndSynth(t *testing.T) {
	fx := newFixture(26)
	fx.sys.SetLevel(2)
	fx.muzzleSpawns()
	fx.world.blockAll = true
	u := fx.addPursuer(20, 0, false)
	u.DialogueTimer = 0.01

	fx.tick(1, 0.05)

	require.Len(t, fx.npcs.subtitles, 1)
	assert.Contains(t, barksChase, fx.npcs.subtitles[0])
	assert.Equal(t, fx.npcs.subtitles, fx.audio.speech)
	assert.Greater(t, u.DialogueTimer, 0.0, "timer re-armed")
}

func TestBarkSilentBeyondRange(t *testing.T) {
	fx := newFixture(27)
	fx.sys.SetLevel(2)
	fx.muzzleSpawns()
	fx.world.blockAll = true
	u := fx.addPursuer(50, 0, false)
	u.DialogueTimer = 0.01

	fx.tick(1, 0.05)
	assert.Empty(t, fx.npcs.subtitles)
}

func TestDamagePursuerKillAndEvict(t *testing.T) {
	fx := newFixture(28)
	fx.sys.SetLevel(1)
	fx.muzzleSpawns()
	fx.world.blockAll = true
	u := fx.addPursuer(40, 0, false)
	id := u.ID

	fx.sys.DamagePursuer(id, 30)
	fx.tick(1, 0.05)
	require.Len(t, fx.sys.Pursuers, 1, "wounded unit stays")
	assert.InDelta(t, 0.4, fx.sys.Pursuers[0].HP.Fraction(), 1e-9)

	fx.sys.DamagePursuer(id, 30)
	fx.tick(1, 0.05)
	assert.Empty(t, fx.sys.Pursuers, "dead unit is swept next tick")
}

func TestEscortDismountsNearPlayer(t *testing.T) {
	fx := newFixture(29)
	fx.sys.SetLevel(2)
	fx.muzzleSpawns()

	u := fx.addPursuer(60, 0, false)
	v, ok := fx.vehicles.Spawn(u.Pos.X, u.Pos.Z, "police_cruiser")
	require.True(t, ok)
	u.Escort = v
	u.Hidden = true

	// Escort closes at 12+3*2=18 m/s; 60 units down to the 8 unit dismount
	// line takes just under 3 s.
	fx.tick(70, 0.05)

	u = &fx.sys.Pursuers[0]
	assert.Nil(t, u.Escort)
	assert.False(t, u.Hidden)
	assert.LessOrEqual(t, dist2D(u.Pos, fx.player.Position()), escortDismountDist+0.5)
	assert.Greater(t, fx.audio.sirens, 0, "escort runs its siren while driving")
}

func TestKindComposition(t *testing.T) {
	fx := newFixture(30)
	fx.sys.SetLevel(2)
	for i := 0; i < 500; i++ {
		assert.Equal(t, PursuerPatrol, fx.sys.rollKind(), "low stars only field patrol units")
	}

	fx.sys.SetLevel(5)
	seen := map[PursuerKind]bool{}
	for i := 0; i < 500; i++ {
		seen[fx.sys.rollKind()] = true
	}
	assert.True(t, seen[PursuerElite])
	assert.True(t, seen[PursuerTactical])
	assert.True(t, seen[PursuerPatrol])
}
