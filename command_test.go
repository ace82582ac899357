package scout

import (
	"math"
	"testing"
	"time"
)

// quietBase returns a Base whose control loop, once started, ticks far too
// slowly to interfere with assertions.
func quietBase(t *testing.T, opts ...Option) *Base {
	t.Helper()
	opts = append([]Option{WithControlPeriod(time.Hour)}, opts...)
	b, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func TestSetMotionCommandClamping(t *testing.T) {
	tests := []struct {
		name        string
		linear      float64
		angular     float64
		wantLinear  int8
		wantAngular int8
	}{
		{"zero", 0, 0, 0, 0},
		{"in range", 0.75, 0.26175, 50, 50},
		{"max", MaxLinearVelocity, MaxAngularVelocity, 100, 100},
		{"min", MinLinearVelocity, MinAngularVelocity, -100, -100},
		{"above max saturates", 10.0, 2.0, 100, 100},
		{"below min saturates", -10.0, -2.0, -100, -100},
		{"rounds to nearest", 0.0151, 0, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := quietBase(t)
			b.SetMotionCommand(tt.linear, tt.angular, FaultClearNone)

			b.motionMu.Lock()
			gotLinear, gotAngular := b.motion.linearPercent, b.motion.angularPercent
			b.motionMu.Unlock()

			if gotLinear != tt.wantLinear {
				t.Errorf("linear percent = %d, want %d", gotLinear, tt.wantLinear)
			}
			if gotAngular != tt.wantAngular {
				t.Errorf("angular percent = %d, want %d", gotAngular, tt.wantAngular)
			}
		})
	}
}

func TestSetMotionCommandPercentLaw(t *testing.T) {
	// stored integer must equal round(clamped/max*100) for arbitrary inputs
	for _, v := range []float64{-3, -1.5, -0.333, -0.01, 0, 0.01, 0.333, 0.71, 1.5, 3} {
		b := quietBase(t)
		b.SetMotionCommand(v, 0, FaultClearNone)

		clamped := clamp(v, MinLinearVelocity, MaxLinearVelocity)
		want := int8(math.Round(clamped / MaxLinearVelocity * 100))

		b.motionMu.Lock()
		got := b.motion.linearPercent
		b.motionMu.Unlock()
		if got != want {
			t.Errorf("v=%v: stored %d, want %d", v, got, want)
		}
		if got < -100 || got > 100 {
			t.Errorf("v=%v: stored %d outside [-100,100]", v, got)
		}
	}
}

func TestSetMotionCommandStoresFaultClear(t *testing.T) {
	b := quietBase(t)
	b.SetMotionCommand(0, 0, FaultClearAll)

	b.motionMu.Lock()
	got := b.motion.faultClear
	b.motionMu.Unlock()
	if got != FaultClearAll {
		t.Errorf("fault clear = %d, want %d", got, FaultClearAll)
	}
}

func TestSetLightCommandRequestsSend(t *testing.T) {
	b := quietBase(t)
	b.SetLightCommand(LightCommand{FrontMode: LightModeBreath, RearMode: LightModeConstOn})

	b.lightMu.Lock()
	enabled, requested := b.lightCtrlEnabled, b.lightCtrlRequested
	front := b.light.FrontMode
	b.lightMu.Unlock()

	if !enabled || !requested {
		t.Errorf("enabled/requested = %v/%v, want true/true", enabled, requested)
	}
	if front != LightModeBreath {
		t.Errorf("front mode = %d, want %d", front, LightModeBreath)
	}
}

func TestDisableLightCmdControlRequestsSend(t *testing.T) {
	b := quietBase(t)
	b.SetLightCommand(LightCommand{FrontMode: LightModeConstOn})
	b.DisableLightCmdControl()

	b.lightMu.Lock()
	enabled, requested := b.lightCtrlEnabled, b.lightCtrlRequested
	b.lightMu.Unlock()

	if enabled {
		t.Error("light control still enabled after disable")
	}
	if !requested {
		t.Error("disable did not request a send")
	}
}

func TestControlLoopStartsLazily(t *testing.T) {
	b := quietBase(t)
	if b.loopStarted.Load() {
		t.Fatal("loop running before any command was set")
	}
	b.SetMotionCommand(0.1, 0, FaultClearNone)
	if !b.loopStarted.Load() {
		t.Fatal("loop not started by first SetMotionCommand")
	}
}
