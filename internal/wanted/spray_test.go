package wanted

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// driveToSite parks the player's vehicle on the recovery site.
func (fx *fixture) driveToSite() *Vehicle {
	site := fx.sys.Sites[0].Pos
	return fx.drive(site.X, site.Z, 0)
}

func TestSprayPromptRequiresFunds(t *testing.T) {
	fx := newFixture(80)
	fx.sys.SetLevel(4)
	fx.muzzleSpawns()
	fx.player.cash = 100
	fx.driveToSite()

	fx.tick(1, 0.05)
	assert.Equal(t, "NEED $2000", fx.ui.prompt)
	assert.True(t, fx.ui.promptVisible)

	// Pressing interact without funds changes nothing.
	fx.input.press(ActionInteract)
	fx.tick(1, 0.05)
	assert.Equal(t, 4, fx.sys.Level)
	assert.Equal(t, 100, fx.player.cash)
}

func TestSprayPromptHiddenConditions(t *testing.T) {
	fx := newFixture(81)
	fx.muzzleSpawns()
	fx.player.cash = 9999

	// Cleared: no prompt even on the site.
	fx.driveToSite()
	fx.tick(1, 0.05)
	assert.False(t, fx.ui.promptVisible)

	// Wanted but on foot: no prompt.
	fx.sys.SetLevel(2)
	fx.player.vehicle = nil
	fx.player.pos = fx.sys.Sites[0].Pos
	fx.tick(1, 0.05)
	assert.False(t, fx.ui.promptVisible)

	// Wanted and driving, but away from any site: no prompt.
	fx.drive(0, 0, 0)
	fx.tick(1, 0.05)
	assert.False(t, fx.ui.promptVisible)
}

func TestSprayCommitIsAtomic(t *testing.T) {
	fx := newFixture(82)
	fx.sys.SetLevel(4)
	fx.muzzleSpawns()
	fx.player.cash = 3000
	v := fx.driveToSite()
	v.Health = 35
	v.Mod.TiresPopped = true
	v.Mod.MaxSpeedScale = 0.3

	fx.input.press(ActionInteract)
	fx.tick(1, 0.05)

	// Everything lands in the commit tick.
	assert.Equal(t, 1000, fx.player.cash)
	assert.Equal(t, 0, fx.sys.Level)
	assert.Equal(t, v.MaxHealth, v.Health)
	assert.Equal(t, StockModifier(), v.Mod)
	assert.Equal(t, 0.5, v.Emissive)
	assert.True(t, fx.sys.SprayActive)
}

func TestSprayBoothAnimatesAndSettles(t *testing.T) {
	fx := newFixture(83)
	fx.sys.SetLevel(1)
	fx.muzzleSpawns()
	fx.player.cash = 500
	v := fx.driveToSite()
	heading := v.Heading

	fx.input.press(ActionInteract)
	fx.tick(1, 0.05)
	require.True(t, fx.sys.SprayActive)

	fx.tick(10, 0.05)
	assert.Greater(t, v.Heading, heading, "booth turntable rotates the car")
	assert.NotEmpty(t, fx.sys.SprayParticles)
	assert.LessOrEqual(t, len(fx.sys.SprayParticles), sprayParticleCap)
	assert.Less(t, fx.camera.fov, 65.0, "camera zooms in")

	// Run the booth out: 1.5 s total.
	fx.tick(30, 0.05)
	assert.False(t, fx.sys.SprayActive)
	assert.Contains(t, fx.sys.tun.SprayPalette, v.BodyColor)
	assert.Equal(t, v.BodyColor, v.Mod.BodyTint)
	assert.Equal(t, 0.0, v.Emissive)
	assert.Equal(t, 65.0, fx.camera.fov)
	assert.Empty(t, fx.sys.SprayParticles)
}

func TestSpraySettleWithoutVehicleIsNoOp(t *testing.T) {
	fx := newFixture(84)
	fx.sys.SetLevel(1)
	fx.muzzleSpawns()
	fx.player.cash = 500
	v := fx.driveToSite()
	colorBefore := v.BodyColor

	fx.input.press(ActionInteract)
	fx.tick(1, 0.05)
	require.True(t, fx.sys.SprayActive)

	fx.player.ExitVehicle()
	fx.tick(40, 0.05)

	assert.False(t, fx.sys.SprayActive)
	assert.Equal(t, colorBefore, v.BodyColor, "abandoned car keeps its paint")
	assert.Equal(t, 65.0, fx.camera.fov, "camera still restored")
}

func TestSprayCooldownBlocksReentry(t *testing.T) {
	fx := newFixture(85)
	fx.sys.SetLevel(1)
	fx.muzzleSpawns()
	fx.player.cash = 5000
	fx.driveToSite()

	fx.input.press(ActionInteract)
	fx.tick(1, 0.05)
	fx.tick(30, 0.05) // booth finishes

	cd := fx.sys.SprayCooldown
	assert.Greater(t, cd, 8.0)
	assert.LessOrEqual(t, cd, 10.0)

	// Wanted again on the site, but the cooldown gates the prompt.
	fx.sys.SetLevel(1)
	fx.input.press(ActionInteract)
	fx.tick(1, 0.05)
	assert.False(t, fx.ui.promptVisible)
	assert.Equal(t, 1, fx.sys.Level)
	fx.input.pressed = nil // drop the swallowed press

	// Cooldown drains in simulation time and the prompt returns.
	fx.tick(220, 0.05)
	assert.Equal(t, 0.0, fx.sys.SprayCooldown)
	assert.True(t, fx.ui.promptVisible)
}

func TestSprayCooldownMonotone(t *testing.T) {
	fx := newFixture(86)
	fx.sys.SprayCooldown = 3
	prev := 3.0
	for i := 0; i < 100; i++ {
		fx.tick(1, 0.05)
		require.LessOrEqual(t, fx.sys.SprayCooldown, prev)
		prev = fx.sys.SprayCooldown
	}
	assert.Equal(t, 0.0, fx.sys.SprayCooldown)
}

func TestSprayEmissionStopsNearSettle(t *testing.T) {
	fx := newFixture(87)
	fx.sys.SetLevel(1)
	fx.muzzleSpawns()
	fx.player.cash = 500
	fx.driveToSite()

	fx.input.press(ActionInteract)
	fx.tick(1, 0.05)

	// Past the emission window (timer <= 0.5) the mist only decays.
	fx.tick(21, 0.05) // timer now ~0.45
	n := len(fx.sys.SprayParticles)
	fx.tick(5, 0.05)
	assert.LessOrEqual(t, len(fx.sys.SprayParticles), n)
}
