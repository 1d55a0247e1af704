package sensors

import "testing"

func TestDrift_StaysWithinBounds(t *testing.T) {
	t.Parallel()

	v := 10.0
	for i := 0; i < 10000; i++ {
		v = drift(v, 3, 5, 15)
		if v < 5 || v > 15 {
			t.Fatalf("drift escaped bounds at step %d: %v", i, v)
		}
	}
}

func TestSimClimateProbe_BoundedWalk(t *testing.T) {
	t.Parallel()

	p := NewSimClimateProbe()
	for i := 0; i < 1000; i++ {
		hum, temp, err := p.Sense()
		if err != nil {
			t.Fatalf("Sense: %v", err)
		}
		if temp < 5 || temp > 45 {
			t.Fatalf("temperature out of range at step %d: %v", i, temp)
		}
		if hum < 20 || hum > 95 {
			t.Fatalf("humidity out of range at step %d: %v", i, hum)
		}
	}
}

func TestSimThermometer_BoundedWalk(t *testing.T) {
	t.Parallel()

	p := NewSimThermometer()
	for i := 0; i < 1000; i++ {
		temp, err := p.TemperatureC()
		if err != nil {
			t.Fatalf("TemperatureC: %v", err)
		}
		if temp < 2 || temp > 35 {
			t.Fatalf("temperature out of range at step %d: %v", i, temp)
		}
	}
}

func TestSimADC_StaysWithinCalibrationEndpoints(t *testing.T) {
	t.Parallel()

	a := NewSimADC()
	for i := 0; i < 1000; i++ {
		raw, err := a.ReadChannel(0)
		if err != nil {
			t.Fatalf("ReadChannel: %v", err)
		}
		if raw < 1543 || raw > 2504 {
			t.Fatalf("raw out of range at step %d: %v", i, raw)
		}
	}
}

func TestSimSunlightChip_BoundedWalk(t *testing.T) {
	t.Parallel()

	c := NewSimSunlightChip()
	for i := 0; i < 1000; i++ {
		vis, err := c.Visible()
		if err != nil {
			t.Fatalf("Visible: %v", err)
		}
		uv, err := c.UV()
		if err != nil {
			t.Fatalf("UV: %v", err)
		}
		ir, err := c.IR()
		if err != nil {
			t.Fatalf("IR: %v", err)
		}
		if vis < 0 || vis > 1000 {
			t.Fatalf("visible out of range at step %d: %v", i, vis)
		}
		if uv < 0 || uv > 1100 {
			t.Fatalf("uv out of range at step %d: %v", i, uv)
		}
		if ir < 0 || ir > 1000 {
			t.Fatalf("ir out of range at step %d: %v", i, ir)
		}
	}
}

func TestSimRelayLine_RemembersCommandedState(t *testing.T) {
	t.Parallel()

	l := NewSimRelayLine()

	on, err := l.Get()
	if err != nil || on {
		t.Fatalf("fresh line must be off, got on=%v err=%v", on, err)
	}

	if err := l.Set(true); err != nil {
		t.Fatalf("Set(true): %v", err)
	}
	if on, _ := l.Get(); !on {
		t.Fatalf("line must report on after Set(true)")
	}

	if err := l.Set(false); err != nil {
		t.Fatalf("Set(false): %v", err)
	}
	if on, _ := l.Get(); on {
		t.Fatalf("line must report off after Set(false)")
	}
}
