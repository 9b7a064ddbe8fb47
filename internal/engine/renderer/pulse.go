package renderer

// Pulse bounces the red channel of a colour between 0 and 1.
type Pulse struct {
	Red   float32
	Step  float32
	Green float32
	Blue  float32
	Alpha float32
}

// DefaultPulse matches the classic tutorial animation.
func DefaultPulse() Pulse {
	return Pulse{Red: 0, Step: 0.05, Green: 0.3, Blue: 0.8, Alpha: 1}
}

// Color returns the current RGBA value.
func (p *Pulse) Color() (r, g, b, a float32) {
	return p.Red, p.Green, p.Blue, p.Alpha
}

// Advance reverses direction once red leaves [0, 1], then steps.
func (p *Pulse) Advance() {
	if p.Red > 1 {
		p.Step = -abs(p.Step)
	} else if p.Red < 0 {
		p.Step = abs(p.Step)
	}
	p.Red += p.Step
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
