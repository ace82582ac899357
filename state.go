package scout

import "github.com/woodrim/go-scout/pkg/protocol"

// MotorState is the latest feedback from one motor driver.
type MotorState struct {
	Current     float64 // A
	RPM         int16
	Temperature int8 // degrees C
}

// LightState is the reported state of one light.
type LightState struct {
	Mode        uint8
	CustomValue uint8
}

// RobotState is the latest-known aggregate state of the base. Each field
// group is updated atomically as its status message arrives; groups fed by
// different message kinds may be of different recency.
type RobotState struct {
	LinearVelocity  float64 // m/s
	AngularVelocity float64 // rad/s

	ControlMode    uint8
	BaseState      uint8
	BatteryVoltage float64 // V
	FaultCode      uint16

	LightControlEnabled bool
	FrontLight          LightState
	RearLight           LightState

	MotorStates [4]MotorState
}

// GetRobotState returns a copy of the latest-known robot state.
func (b *Base) GetRobotState() RobotState {
	b.stateMu.Lock()
	defer b.stateMu.Unlock()
	return b.state
}

// applyStatus folds one decoded status message into the shared state. It is
// invoked from transport receive goroutines and serialized by the state
// mutex; only the fields owned by the message kind are touched.
func (b *Base) applyStatus(msg protocol.StatusMessage) {
	b.stateMu.Lock()
	defer b.stateMu.Unlock()
	switch m := msg.(type) {
	case protocol.MotionStatus:
		b.state.LinearVelocity = float64(m.LinearVelocity) / 1000.0
		b.state.AngularVelocity = float64(m.AngularVelocity) / 1000.0
	case protocol.LightStatus:
		b.state.LightControlEnabled = m.ControlEnable != protocol.LightControlDisable
		b.state.FrontLight = LightState{Mode: m.FrontMode, CustomValue: m.FrontCustom}
		b.state.RearLight = LightState{Mode: m.RearMode, CustomValue: m.RearCustom}
	case protocol.SystemStatus:
		b.state.ControlMode = m.ControlMode
		b.state.BaseState = m.BaseState
		b.state.BatteryVoltage = float64(m.BatteryVoltage) / 10.0
		b.state.FaultCode = m.FaultCode
	case protocol.MotorStatus:
		if m.Motor < 1 || m.Motor > len(b.state.MotorStates) {
			return
		}
		b.state.MotorStates[m.Motor-1] = MotorState{
			Current:     float64(m.Current) / 10.0,
			RPM:         m.RPM,
			Temperature: m.Temperature,
		}
	}
}
