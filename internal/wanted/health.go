package wanted

// Health tracks HP for a pursuer.
type Health struct {
	Current float64
	Max     float64
}

func NewHealth(max float64) Health {
	return Health{Current: max, Max: max}
}

func (h *Health) Damage(amount float64) {
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
}

func (h *Health) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	return clampF(h.Current/h.Max, 0, 1)
}

func (h *Health) IsDead() bool {
	return h.Current <= 0
}
