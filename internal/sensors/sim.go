package sensors

import (
	"math/rand"
	"sync"
)

// Simulated drivers for bench runs without attached hardware. Values follow
// bounded random walks so smoothing and change detection see realistic
// noise. Each driver is safe for concurrent use since relay commands arrive
// from API goroutines while the collector polls.

// drift moves v by at most step in either direction, staying within bounds.
func drift(v, step, min, max float64) float64 {
	v += (rand.Float64()*2 - 1) * step
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// SimClimateProbe wanders around room climate.
type SimClimateProbe struct {
	mu   sync.Mutex
	temp float64
	hum  float64
}

func NewSimClimateProbe() *SimClimateProbe {
	return &SimClimateProbe{temp: 22, hum: 55}
}

func (p *SimClimateProbe) Sense() (float64, float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.temp = drift(p.temp, 0.4, 5, 45)
	p.hum = drift(p.hum, 1.2, 20, 95)
	return p.hum, p.temp, nil
}

// SimThermometer wanders around a cool root-depth temperature.
type SimThermometer struct {
	mu   sync.Mutex
	temp float64
}

func NewSimThermometer() *SimThermometer {
	return &SimThermometer{temp: 16}
}

func (p *SimThermometer) TemperatureC() (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.temp = drift(p.temp, 0.2, 2, 35)
	return p.temp, nil
}

// SimADC wanders between the moisture probe's wet and dry endpoints on
// every channel.
type SimADC struct {
	mu  sync.Mutex
	raw float64
}

func NewSimADC() *SimADC {
	return &SimADC{raw: 2100}
}

func (a *SimADC) ReadChannel(channel int) (float64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.raw = drift(a.raw, 25, 1543, 2504)
	return a.raw, nil
}

// SimSunlightChip wanders around mild daylight. UV is reported in
// hundredths of an index point, matching the real chip.
type SimSunlightChip struct {
	mu    sync.Mutex
	vis   float64
	uvRaw float64
	ir    float64
}

func NewSimSunlightChip() *SimSunlightChip {
	return &SimSunlightChip{vis: 260, uvRaw: 180, ir: 250}
}

func (c *SimSunlightChip) Visible() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vis = drift(c.vis, 8, 0, 1000)
	return c.vis, nil
}

func (c *SimSunlightChip) UV() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uvRaw = drift(c.uvRaw, 6, 0, 1100)
	return c.uvRaw, nil
}

func (c *SimSunlightChip) IR() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ir = drift(c.ir, 10, 0, 1000)
	return c.ir, nil
}

// SimRelayLine remembers the last commanded state.
type SimRelayLine struct {
	mu sync.Mutex
	on bool
}

func NewSimRelayLine() *SimRelayLine {
	return &SimRelayLine{}
}

func (l *SimRelayLine) Set(on bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = on
	return nil
}

func (l *SimRelayLine) Get() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on, nil
}
