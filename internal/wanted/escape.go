package wanted

import "fmt"

// BribeStar is a fixed pickup that knocks one star off and refunds heat.
type BribeStar struct {
	Pos          Vec3
	Active       bool
	RespawnTimer float64
}

// EscapeZone is a marked area (garage, alley) where lying low clears the
// wanted state outright after a stay.
type EscapeZone struct {
	Pos    Vec3
	Radius float64
	Name   string
}

func (s *System) updateEscape(dt float64) {
	playerPos := s.f.Player.Position()
	s.updateBribeStars(playerPos, dt)
	s.updateEscapeTimer(playerPos, dt)
	s.updateZones(playerPos, dt)
}

func (s *System) updateBribeStars(playerPos Vec3, dt float64) {
	for i := range s.Stars {
		st := &s.Stars[i]
		// Respawn ticks even while cleared so saves restore mid-countdown.
		if !st.Active {
			st.RespawnTimer -= dt
			if st.RespawnTimer <= 0 {
				st.RespawnTimer = 0
				st.Active = true
			}
			continue
		}
		if s.Level == 0 || dist2D(st.Pos, playerPos) >= bribePickupRadius {
			continue
		}
		st.Active = false
		st.RespawnTimer = s.tun.BribeRespawn
		s.f.Audio.PlayPickup()
		s.f.UI.ShowMissionText("BRIBE TAKEN", 2)

		if s.Level <= 1 {
			s.ClearAll()
			continue
		}
		s.Level--
		s.Heat -= bribeHeatRefund
		if s.Heat < 0 {
			s.Heat = 0
		}
		s.Escaping = false
		s.EscapeTimer = 0
	}
}

// updateEscapeTimer runs the lie-low countdown: it arms when every pursuer
// is beyond the level's heat radius, and any unit closing back inside the
// radius disarms it. The timer is set and decremented in the same tick, so a
// 25 second window at a fixed step clears on exactly the expected tick.
func (s *System) updateEscapeTimer(playerPos Vec3, dt float64) {
	if s.Level == 0 {
		return
	}
	radius := s.HeatRadius()
	seen := false
	outside := true
	for i := range s.Pursuers {
		u := &s.Pursuers[i]
		if !u.Alive {
			continue
		}
		seen = true
		if dist2D(u.Pos, playerPos) < radius {
			outside = false
			break
		}
	}
	if !seen || !outside {
		s.Escaping = false
		s.EscapeTimer = 0
		return
	}
	if !s.Escaping {
		s.Escaping = true
		s.EscapeTimer = s.tun.Row(s.Level).EscapeTime
	}
	s.EscapeTimer -= dt
	if s.EscapeTimer <= 0 {
		s.ClearAll()
	}
}

func (s *System) updateZones(playerPos Vec3, dt float64) {
	if s.Level == 0 {
		s.zoneTimer = 0
		return
	}
	inside := false
	for i := range s.Zones {
		z := &s.Zones[i]
		if dist2D(z.Pos, playerPos) < z.Radius {
			inside = true
			if s.zoneTimer == 0 {
				s.f.UI.ShowMissionText(fmt.Sprintf("HIDING: %s", z.Name), 2)
			}
			break
		}
	}
	if !inside {
		s.zoneTimer = 0
		return
	}
	s.zoneTimer += dt
	// Zones also speed up an escape already in progress.
	if s.Escaping {
		s.EscapeTimer -= zoneAccelScale * dt
		if s.EscapeTimer <= 0 {
			s.ClearAll()
			return
		}
	}
	if s.zoneTimer >= zoneClearTime {
		s.ClearAll()
	}
}
