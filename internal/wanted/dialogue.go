package wanted

// DialogueArbiter picks bark lines while suppressing the last three choices,
// so two units barking back to back never repeat each other.
type DialogueArbiter struct {
	recent []string
	rng    *Rand
}

// Choose returns a line from pool that was not among the last three picks.
// When the whole pool is recent, it falls back to the full pool rather than
// going silent.
func (d *DialogueArbiter) Choose(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	fresh := pool[:0:0]
	for _, line := range pool {
		if !d.isRecent(line) {
			fresh = append(fresh, line)
		}
	}
	if len(fresh) == 0 {
		fresh = pool
	}
	line := fresh[d.rng.Intn(len(fresh))]
	d.recent = append(d.recent, line)
	if len(d.recent) > 3 {
		d.recent = d.recent[len(d.recent)-3:]
	}
	return line
}

func (d *DialogueArbiter) isRecent(line string) bool {
	for _, r := range d.recent {
		if r == line {
			return true
		}
	}
	return false
}

// Bark pools, keyed off situation. Lines are short because the animalese
// synth stretches with text length.
var (
	barksPatrol = []string{
		"Stop right there!",
		"You can't run forever!",
		"Give it up!",
		"Pull over!",
	}
	barksSpotted = []string{
		"There they are!",
		"Suspect in sight!",
		"Don't move!",
		"Hands where I can see them!",
	}
	barksChase = []string{
		"Suspect fleeing on foot!",
		"They're getting away!",
		"All units, converge!",
		"Requesting backup!",
	}
	barksHighStar = []string{
		"Use of force authorized!",
		"Take the suspect down!",
		"Shoot to stop!",
		"No more warnings!",
	}
)

// barkPool maps the caller's situation to a pool: high stars dominate, then
// proximity decides between a spotted shout and a long-range chase call.
func (s *System) barkPool(dist float64) []string {
	switch {
	case s.Level >= 4:
		return barksHighStar
	case dist < 8:
		return barksSpotted
	case dist > 15:
		return barksChase
	default:
		return barksPatrol
	}
}
