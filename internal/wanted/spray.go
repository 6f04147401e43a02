package wanted

import (
	"fmt"
	"math"
)

// RecoverySite is a spray shop entrance. Payment clears the wanted state and
// repaints the vehicle after a short booth animation.
type RecoverySite struct {
	Pos  Vec3
	Name string
}

// SprayParticle is one paint mist puff, simulated only during the booth
// animation.
type SprayParticle struct {
	Pos  Vec3
	Vel  Vec3
	Life float64
}

func (s *System) updateRecovery(dt float64) {
	if s.SprayActive {
		s.updateSpray(dt)
		return
	}
	s.updatePrompt()
}

// updatePrompt offers payment at a site. Commit is atomic: the charge, the
// wanted clear, the repair and the booth start all land in this tick, and a
// failed charge changes nothing.
func (s *System) updatePrompt() {
	v := s.drivenVehicle()
	if s.SprayCooldown > 0 || s.Level == 0 || v == nil || !s.nearSite(v.Pos) {
		s.f.UI.SetInteractPrompt("", false)
		return
	}
	tariff := s.tun.Tariffs[s.Level]
	if s.f.Player.Cash() < tariff {
		s.f.UI.SetInteractPrompt(fmt.Sprintf("NEED $%d", tariff), true)
		return
	}
	s.f.UI.SetInteractPrompt(fmt.Sprintf("E TO PAY $%d", tariff), true)
	if !s.f.Input.JustPressed(ActionInteract) {
		return
	}
	if !s.f.Player.Spend(tariff) {
		return
	}
	s.ClearAll()
	v.Health = v.MaxHealth
	v.Mod = StockModifier()
	v.Emissive = 0.5
	v.Speed = 0
	s.SprayActive = true
	s.sprayTimer = s.tun.SprayDuration
	s.SprayCooldown = s.tun.SprayCooldown
	s.f.UI.SetInteractPrompt("", false)
}

func (s *System) nearSite(pos Vec3) bool {
	for i := range s.Sites {
		if dist2D(s.Sites[i].Pos, pos) < sprayPromptRadius {
			return true
		}
	}
	return false
}

func (s *System) updateSpray(dt float64) {
	s.sprayTimer -= dt
	v := s.drivenVehicle()

	if v != nil {
		v.Heading += sprayYawRate * dt
		// Emissive pulses against elapsed booth time, not remaining.
		t := s.tun.SprayDuration - s.sprayTimer
		v.Emissive = math.Sin(10*t)*0.2 + 0.3
	}

	s.f.Camera.SetFOV(approach(s.f.Camera.FOV(), sprayFOVTarget, 60*dt))

	if s.sprayTimer > 0.5 && v != nil {
		s.emitMist(v)
	}
	s.updateParticles(dt)

	if s.sprayTimer <= 0 {
		s.settleSpray(v)
	}
}

func (s *System) emitMist(v *Vehicle) {
	for n := 0; n < 3 && len(s.SprayParticles) < sprayParticleCap; n++ {
		ang := s.rng.RangeF(0, 2*math.Pi)
		s.SprayParticles = append(s.SprayParticles, SprayParticle{
			Pos: Vec3{
				X: v.Pos.X + math.Sin(ang)*1.2,
				Y: v.Pos.Y + s.rng.RangeF(0.2, 1.2),
				Z: v.Pos.Z + math.Cos(ang)*1.2,
			},
			Vel: Vec3{
				X: math.Sin(ang) * s.rng.RangeF(0.5, 1.5),
				Y: s.rng.RangeF(0.2, 0.8),
				Z: math.Cos(ang) * s.rng.RangeF(0.5, 1.5),
			},
			Life: s.rng.RangeF(0.4, 0.9),
		})
	}
}

func (s *System) updateParticles(dt float64) {
	for i := 0; i < len(s.SprayParticles); {
		p := &s.SprayParticles[i]
		p.Life -= dt
		if p.Life <= 0 {
			s.SprayParticles[i] = s.SprayParticles[len(s.SprayParticles)-1]
			s.SprayParticles = s.SprayParticles[:len(s.SprayParticles)-1]
			continue
		}
		p.Pos.X += p.Vel.X * dt
		p.Pos.Y += p.Vel.Y * dt
		p.Pos.Z += p.Vel.Z * dt
		i++
	}
}

// settleSpray ends the booth: the vehicle gets a random palette color and
// the camera snaps back. Losing the vehicle mid-booth skips the recolor.
func (s *System) settleSpray(v *Vehicle) {
	if v != nil {
		c := s.tun.SprayPalette[s.rng.Intn(len(s.tun.SprayPalette))]
		v.BodyColor = c
		v.Mod.BodyTint = c
		v.Emissive = 0
	}
	s.f.Camera.SetFOV(sprayFOVRestore)
	s.SprayParticles = s.SprayParticles[:0]
	s.SprayActive = false
	s.sprayTimer = 0
}
