package scout

import "math"

// Velocity limits of the base in physical units. Commands outside these
// bounds are saturated, never rejected.
const (
	MaxLinearVelocity  = 1.5     // m/s
	MinLinearVelocity  = -1.5    // m/s
	MaxAngularVelocity = 0.5235  // rad/s
	MinAngularVelocity = -0.5235 // rad/s
)

// FaultClearFlag selects whether a motion command also clears latched faults.
type FaultClearFlag uint8

const (
	FaultClearNone FaultClearFlag = 0x00
	FaultClearAll  FaultClearFlag = 0x01
)

// LightMode selects the behaviour of one light.
type LightMode uint8

const (
	LightModeConstOff LightMode = 0x00
	LightModeConstOn  LightMode = 0x01
	LightModeBreath   LightMode = 0x02
	LightModeCustom   LightMode = 0x03
)

// LightCommand is the user-requested light configuration. CustomValue is
// only meaningful with LightModeCustom.
type LightCommand struct {
	FrontMode        LightMode
	FrontCustomValue uint8
	RearMode         LightMode
	RearCustomValue  uint8
}

// motionCommand is the staged motion command, velocities stored as
// percentages of the maximum magnitudes.
type motionCommand struct {
	linearPercent  int8
	angularPercent int8
	faultClear     FaultClearFlag
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SetMotionCommand stages the motion command resent on every control-loop
// tick. Velocities are clamped to the base's limits. The control loop is
// started on the first call.
func (b *Base) SetMotionCommand(linear, angular float64, faultClear FaultClearFlag) {
	b.startControlLoop()

	linear = clamp(linear, MinLinearVelocity, MaxLinearVelocity)
	angular = clamp(angular, MinAngularVelocity, MaxAngularVelocity)

	b.motionMu.Lock()
	b.motion.linearPercent = int8(math.Round(linear / MaxLinearVelocity * 100))
	b.motion.angularPercent = int8(math.Round(angular / MaxAngularVelocity * 100))
	b.motion.faultClear = faultClear
	b.motionMu.Unlock()
}

// SetLightCommand stages a light command and requests one send of it on a
// subsequent control-loop tick.
func (b *Base) SetLightCommand(cmd LightCommand) {
	b.lightMu.Lock()
	b.light = cmd
	b.lightCtrlEnabled = true
	b.lightCtrlRequested = true
	b.lightMu.Unlock()
}

// DisableLightCmdControl hands light control back to the base. The next tick
// sends an explicit all-off command with control disabled.
func (b *Base) DisableLightCmdControl() {
	b.lightMu.Lock()
	b.lightCtrlEnabled = false
	b.lightCtrlRequested = true
	b.lightMu.Unlock()
}
