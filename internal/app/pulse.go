package app

// Pulse bounces a color channel between min and max by a fixed step.
//
// Bounds are checked before stepping, so the value can overshoot either
// bound by at most one step before it turns around.
type Pulse struct {
	value float32
	delta float32
	step  float32
	min   float32
	max   float32
}

// NewPulse starts at min, moving up.
func NewPulse(step, min, max float32) *Pulse {
	return &Pulse{value: min, delta: step, step: step, min: min, max: max}
}

// Next returns the value for the current frame and advances.
func (p *Pulse) Next() float32 {
	v := p.value
	if v > p.max {
		p.delta = -p.step
	} else if v < p.min {
		p.delta = p.step
	}
	p.value += p.delta
	return v
}

// Delta returns the signed step that the next frame will apply.
func (p *Pulse) Delta() float32 {
	return p.delta
}
