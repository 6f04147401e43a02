package audio

import (
	"math"
	"sync/atomic"
	"time"

	"sanclaudio/internal/wanted"
)

var sirenVariant uint64

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation — no harsh clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// makeBuf allocates a stereo float32 buffer for n samples.
func makeBuf(n int) []byte { return make([]byte, n*8) }

// genGunshot: transient crack + sub pitch-drop + noise body. Heavier kinds
// fire bigger calibers: lower sub, longer body.
func genGunshot(kind wanted.PursuerKind) []byte {
	weight := 0.0
	switch kind {
	case wanted.PursuerTactical:
		weight = 0.5
	case wanted.PursuerElite:
		weight = 1.0
	}
	dur := 0.11 + 0.05*weight
	n := int(dur * SampleRate)
	buf := makeBuf(n)
	seed := uint64(77777) ^ uint64(time.Now().UnixNano())
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		// Sharp transient (first ~1.5% of the buffer).
		crack := 0.0
		if p < 0.014 {
			crack = lcg(&seed) * (1 - p/0.014) * 0.88
		}
		// Pitched sub drop.
		subStart := 200.0 - 60.0*weight
		thumpFreq := subStart * math.Pow(0.04, p*4)
		thump := math.Sin(2*math.Pi*thumpFreq*t) * math.Exp(-p*(22-6*weight)) * (0.62 + 0.1*weight)
		// Noise body with decay.
		body := lcg(&seed) * math.Pow(1-p, 5) * 0.28
		// High-frequency ring.
		ring := math.Sin(2*math.Pi*3400*t) * math.Exp(-p*35) * 0.09
		s := crack + thump + body + ring
		putStereoF32(buf, i, softSat(s*0.82))
	}
	return buf
}

// genSiren cycles three patterns (wail, yelp, hi-lo) so a fleet never sounds
// like one looped sample.
func genSiren() []byte {
	variant := int(atomic.AddUint64(&sirenVariant, 1) % 3)
	dur := []float64{0.92, 0.86, 1.00}[variant]
	n := int(dur * SampleRate)
	buf := makeBuf(n)
	phase := 0.0
	seed := uint64(0xC0D51E7) ^ uint64(variant+1) ^ uint64(time.Now().UnixNano())
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate

		freq := 720.0
		switch variant {
		case 0:
			// Wail: smooth up/down sweep with a long crest.
			cycle := 0.74
			c := math.Mod(t, cycle) / cycle
			tri := 1.0 - math.Abs(2*c-1.0)
			shape := tri * tri * (3 - 2*tri)
			freq = 620.0 + 440.0*shape
		case 1:
			// Yelp: short urgent chirps.
			cycle := 0.22
			c := math.Mod(t, cycle) / cycle
			if c < 0.62 {
				u := c / 0.62
				freq = 820.0 + 520.0*u*u
			} else {
				u := (c - 0.62) / 0.38
				freq = 1140.0 - 300.0*u
			}
		default:
			// Hi-Lo: stepped two-tone with tiny glide.
			cycle := 0.33
			c := math.Mod(t, cycle) / cycle
			if c < 0.5 {
				freq = 980.0 - 60.0*c
			} else {
				freq = 720.0 + 90.0*(c-0.5)
			}
		}
		freq *= 1.0 + 0.006*math.Sin(2*math.Pi*(5.0+0.4*float64(variant))*t)

		phase += 2 * math.Pi * freq / SampleRate
		raw := math.Sin(phase)*0.84 +
			math.Sin(phase*2.0+0.22)*0.18 +
			math.Sin(phase*3.0+0.55)*0.07 +
			lcg(&seed)*0.012
		am := 0.90 + 0.10*math.Sin(2*math.Pi*(2.7+0.4*float64(variant))*t)
		s := softSat(raw*1.55) * 0.30 * am
		// Click-free onset/offset.
		env := clampF(t*34.0, 0, 1) * clampF((dur-t)*24.0, 0, 1)
		putStereoF32(buf, i, s*env)
	}
	return buf
}

// genPickup: ascending FM bell arpeggio for the bribe star.
func genPickup() []byte {
	freqs := []float64{523.25, 659.25, 783.99, 1046.5} // C5 E5 G5 C6
	noteLen := SampleRate * 75 / 1000
	tail := int(0.18 * SampleRate)
	total := len(freqs)*noteLen + tail
	mix := make([]float64, total)

	for fi, freq := range freqs {
		start := fi * noteLen
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.004, 0.55, 0.05, 0.35)
			s := fm(t, freq, 2.756, 5.0*env) * env * 0.38
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.09
			mix[start+j] += s
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genCrash: metal scrape + bandpassed noise body, scaled by impact.
func genCrash(intensity float64) []byte {
	dur := 0.22 + 0.3*intensity
	n := int(dur * SampleRate)
	buf := makeBuf(n)
	seed := uint64(0xCAA5) ^ uint64(time.Now().UnixNano())
	lp1, lp2 := 0.0, 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		// Initial bang.
		bang := 0.0
		if p < 0.03 {
			bang = lcg(&seed) * (1 - p/0.03) * (0.6 + 0.3*intensity)
		}
		// Bandpassed scrape body.
		raw := lcg(&seed)
		lp1 = lp1*0.72 + raw*0.28
		lp2 = lp2*0.96 + raw*0.04
		body := (lp1 - lp2) * math.Exp(-p*(7-3*intensity)) * 0.4
		// Metallic ring.
		ring := math.Sin(2*math.Pi*(1900-500*p)*t) * math.Exp(-p*18) * 0.12
		s := bang + body + ring
		putStereoF32(buf, i, softSat(s*0.8))
	}
	return buf
}

// genAnimalese renders a subtitle line as per-letter vocal blips: each letter
// maps to a pitch around basePitch, vowels ring a bit longer. The output is
// capped so long lines stay short.
func genAnimalese(text string, basePitch, modifier float64) []byte {
	if basePitch <= 0 {
		basePitch = 1.0
	}
	if modifier <= 0 {
		modifier = 1.0
	}
	const maxChars = 24
	blip := int(0.045 * SampleRate)
	gap := int(0.012 * SampleRate)

	type syl struct {
		freq float64
		long bool
	}
	var syls []syl
	for _, r := range text {
		if len(syls) >= maxChars {
			break
		}
		switch {
		case r >= 'a' && r <= 'z':
			syls = append(syls, syl{220 + 14*float64(r-'a'), isVowel(r)})
		case r >= 'A' && r <= 'Z':
			syls = append(syls, syl{220 + 14*float64(r-'A'), isVowel(r | 0x20)})
		case r == ' ':
			syls = append(syls, syl{0, false})
		}
	}
	if len(syls) == 0 {
		return nil
	}

	total := 0
	for _, sy := range syls {
		d := blip
		if sy.long {
			d += blip / 2
		}
		total += d + gap
	}
	buf := makeBuf(total)
	pos := 0
	for _, sy := range syls {
		d := blip
		if sy.long {
			d += blip / 2
		}
		if sy.freq > 0 {
			f := sy.freq * basePitch * modifier
			for j := 0; j < d; j++ {
				t := float64(j) / SampleRate
				np := float64(j) / float64(d)
				env := adsr(np, 0.08, 0.3, 0.5, 0.3)
				s := fm(t, f, 1.5, 1.8*env) * env * 0.3
				s += math.Sin(2*math.Pi*f*2*t) * env * 0.08
				putStereoF32(buf, pos+j, softSat(s))
			}
		}
		pos += d + gap
	}
	return buf
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
