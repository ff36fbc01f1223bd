package audio

import (
	"math"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)

	// FrameBytes is the size of one stereo float32 frame.
	FrameBytes = 8
)

// SoundKind identifies different sound effects.
type SoundKind int

const (
	SoundShot SoundKind = iota
	SoundHit
	SoundKill
	SoundKillHeavy
	SoundHurt
	SoundShieldBlock
	SoundDash
	SoundPickup
	SoundWave
	SoundGameOver
	SoundHighScore
	SoundMenuSelect

	SoundKindCount // must stay last
)

var soundNames = [SoundKindCount]string{
	SoundShot:        "shot",
	SoundHit:         "hit",
	SoundKill:        "kill",
	SoundKillHeavy:   "kill_heavy",
	SoundHurt:        "hurt",
	SoundShieldBlock: "shield_block",
	SoundDash:        "dash",
	SoundPickup:      "pickup",
	SoundWave:        "wave",
	SoundGameOver:    "game_over",
	SoundHighScore:   "high_score",
	SoundMenuSelect:  "menu_select",
}

func (k SoundKind) String() string {
	if k < 0 || k >= SoundKindCount {
		return "unknown"
	}
	return soundNames[k]
}

// Generate renders kind as interleaved stereo float32 LE samples.
// seed only affects the noise-based sounds.
func Generate(kind SoundKind, seed uint64) []byte {
	switch kind {
	case SoundShot:
		return genShot()
	case SoundHit:
		return genHit()
	case SoundKill:
		return genExplosionScaled(8, seed)
	case SoundKillHeavy:
		return genExplosionScaled(24, seed)
	case SoundHurt:
		return genHurt()
	case SoundShieldBlock:
		return genShieldBlock()
	case SoundDash:
		return genDash(seed)
	case SoundPickup:
		return genBonus()
	case SoundWave:
		return genArpeggio(waveNotes)
	case SoundGameOver:
		return genGameOver()
	case SoundHighScore:
		return genArpeggio(highScoreNotes)
	case SoundMenuSelect:
		return genMenuSelect()
	}
	return nil
}

// Duration reports the playback length of a rendered buffer.
func Duration(buf []byte) float64 {
	return float64(len(buf)/FrameBytes) / SampleRate
}

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

// softSat is a cubic soft clipper that keeps output inside [-1, 1].
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns the envelope level at progress in [0, 1].
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

func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg returns white noise in [-1, 1).
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func makeBuf(n int) []byte { return make([]byte, n*FrameBytes) }

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ---- Sound effects -------------------------------------------------------

// genShot: short bright FM chirp, light enough to fire every click.
func genShot() []byte {
	n := int(0.07 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.45, 0.0, 0.1)
		freq := 1800 - 1300*p
		s := fm(t, freq, 0.5, 2.2*env) * env * 0.3
		s += math.Sin(2*math.Pi*3400*t) * math.Exp(-p*35) * 0.05
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genHit: rising pop with a thin harmonic layer.
func genHit() []byte {
	n := int(0.06 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.5, 0.0, 0.1)
		freq := 480 + 720*p
		s := fm(t, freq, 2.0, 3.5*env) * env * 0.42
		s += math.Sin(2*math.Pi*freq*3*t) * env * 0.06
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genExplosionScaled adapts explosion timbre to size:
// larger blasts are deeper, longer, and rumblier; small blasts are snappier.
func genExplosionScaled(magnitude float64, seed uint64) []byte {
	norm := clampF((magnitude-3.0)/27.0, 0, 1)
	dur := 0.22 + 0.5*norm
	n := int(dur * SampleRate)
	buf := makeBuf(n)
	seed ^= uint64(magnitude * 4096)
	lp1, lp2 := 0.0, 0.0
	rumLP := 0.0
	subPhase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)

		subStart := 155.0 - 65.0*norm
		subEnd := math.Max(34.0-18.0*norm, 10)
		subFreq := subStart * math.Pow(subEnd/subStart, p*(1.6+1.5*norm))
		subPhase += 2 * math.Pi * subFreq / SampleRate
		sub := math.Sin(subPhase) * math.Exp(-p*(7.0-3.8*norm)) * (0.44 + 0.34*norm)

		crack := 0.0
		crackWin := math.Max(0.038-0.020*norm, 0.010)
		if p < crackWin {
			crack = lcg(&seed) * (1 - p/crackWin) * (0.88 - 0.28*norm)
		}

		// Bandpassed body (~120-2200 Hz).
		raw := lcg(&seed)
		lp1 = lp1*0.76 + raw*0.24
		lp2 = lp2*0.975 + raw*0.025
		body := (lp1 - lp2) * math.Exp(-p*(6.2-2.2*norm)) * (0.30 + 0.17*norm)

		rumLP = rumLP*0.95 + lcg(&seed)*0.05
		rumble := rumLP * math.Exp(-p*(3.0-1.5*norm)) * (0.06 + 0.20*norm)

		s := sub + crack + body + rumble
		putStereoF32(buf, i, softSat(s*0.8))
	}
	return buf
}

// genHurt: descending FM growl.
func genHurt() []byte {
	n := int(0.16 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.015, 0.55, 0.1, 0.25)
		freq := 320 - 220*p
		s := fm(t, freq, 1.5, 2.8*(1-p)) * env * 0.52
		s += math.Sin(2*math.Pi*freq*2*t) * env * 0.1
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genShieldBlock: metallic bell ping with an inharmonic modulator.
func genShieldBlock() []byte {
	n := int(0.22 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := math.Exp(-p * 6)
		s := fm(t, 880, 3.41, 4.0*env) * env * 0.34
		s += math.Sin(2*math.Pi*1320*t) * env * 0.08
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genDash: lowpassed noise whoosh that opens up then fades.
func genDash(seed uint64) []byte {
	n := int(0.12 * SampleRate)
	buf := makeBuf(n)
	seed |= 1
	lp := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		cut := 0.08 + 0.3*math.Sin(math.Pi*p)
		lp = lp*(1-cut) + lcg(&seed)*cut
		env := math.Sin(math.Pi*p) * 0.45
		putStereoF32(buf, i, softSat(lp*env))
	}
	return buf
}

// genBonus: ascending FM bell arpeggio.
func genBonus() []byte {
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
	return mixdown(mix)
}

var (
	waveNotes      = []float64{440, 554.37, 659.25, 880, 1108.73}
	highScoreNotes = []float64{523.25, 659.25, 783.99, 1046.5, 1318.51, 1567.98}
)

// genArpeggio: bright stacked FM notes, one every 90ms.
func genArpeggio(notes []float64) []byte {
	noteStep := int(0.09 * SampleRate)
	total := len(notes)*noteStep + int(0.25*SampleRate)
	mix := make([]float64, total)

	for fi, freq := range notes {
		start := fi * noteStep
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.003, 0.65, 0.04, 0.28)
			s := fm(t, freq, 3.5, 5.5*env) * env * 0.28
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.07
			mix[start+j] += s
		}
	}
	return mixdown(mix)
}

// genGameOver: descending minor triad with a sub octave.
func genGameOver() []byte {
	dur := 0.75
	n := int(dur * SampleRate)
	notes := []struct{ freq, onset float64 }{
		{329.63, 0.00}, // E4
		{261.63, 0.14}, // C4
		{220.00, 0.28}, // A3
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.008, 0.25, 0.3, 0.45)
			freq := note.freq * (1 - np*0.025)
			s := fm(t, freq, 2.0, 2.0*env) * env * 0.32
			s += math.Sin(2*math.Pi*freq*0.5*t) * env * 0.1
			mix[i] += s
		}
	}
	return mixdown(mix)
}

func genMenuSelect() []byte {
	n := SampleRate * 65 / 1000
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.55, 0.0, 0.1)
		freq := 1400 - 700*p
		s := fm(t, freq, 1.0, 0.6) * env * 0.38
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

func mixdown(mix []float64) []byte {
	buf := makeBuf(len(mix))
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}
