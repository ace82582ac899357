// Package protocol implements the wire codec for the base: CAN message
// layouts, the serial framing with its stream framer, and the additive
// checksum shared by both.
//
// All byte-level interpretation lives here. Callers deal in typed command
// payloads and decoded status messages only.
package protocol

// MotionCommand is the wire-level motion command payload. Velocities are
// percentages of the configured maximum magnitudes in [-100, 100].
type MotionCommand struct {
	ControlMode    uint8
	FaultClearFlag uint8
	LinearPercent  int8
	AngularPercent int8
}

// LightCommand is the wire-level light command payload.
type LightCommand struct {
	Enable      uint8
	FrontMode   uint8
	FrontCustom uint8
	RearMode    uint8
	RearCustom  uint8
}

// StatusMessage is a decoded telemetry unit received from the base, one of
// MotionStatus, LightStatus, SystemStatus or MotorStatus.
type StatusMessage interface {
	statusMessage()
}

// MotionStatus carries measured velocities in thousandths of a unit
// (mm/s and mrad/s); consumers divide by 1000 for physical units.
type MotionStatus struct {
	LinearVelocity  int16
	AngularVelocity int16
}

// LightStatus mirrors the light command payload back from the base.
type LightStatus struct {
	ControlEnable uint8
	FrontMode     uint8
	FrontCustom   uint8
	RearMode      uint8
	RearCustom    uint8
}

// SystemStatus carries base state, control mode, battery voltage in tenths
// of a volt and the fault bitfield.
type SystemStatus struct {
	BaseState      uint8
	ControlMode    uint8
	BatteryVoltage uint16
	FaultCode      uint16
}

// MotorStatus carries one motor driver's feedback. Motor is 1-based (1..4).
// Current is in tenths of an ampere, Temperature in whole degrees Celsius.
type MotorStatus struct {
	Motor       int
	Current     uint16
	RPM         int16
	Temperature int8
}

func (MotionStatus) statusMessage() {}
func (LightStatus) statusMessage()  {}
func (SystemStatus) statusMessage() {}
func (MotorStatus) statusMessage()  {}

func decodeMotion(p []byte) MotionStatus {
	return MotionStatus{
		LinearVelocity:  int16(uint16(p[1]) | uint16(p[0])<<8),
		AngularVelocity: int16(uint16(p[3]) | uint16(p[2])<<8),
	}
}

func decodeLight(p []byte) LightStatus {
	return LightStatus{
		ControlEnable: p[0],
		FrontMode:     p[1],
		FrontCustom:   p[2],
		RearMode:      p[3],
		RearCustom:    p[4],
	}
}

func decodeSystem(p []byte) SystemStatus {
	return SystemStatus{
		BaseState:      p[0],
		ControlMode:    p[1],
		BatteryVoltage: uint16(p[3]) | uint16(p[2])<<8,
		FaultCode:      uint16(p[5]) | uint16(p[4])<<8,
	}
}

func decodeMotor(motor int, p []byte) MotorStatus {
	return MotorStatus{
		Motor:       motor,
		Current:     uint16(p[1]) | uint16(p[0])<<8,
		RPM:         int16(uint16(p[3]) | uint16(p[2])<<8),
		Temperature: int8(p[4]),
	}
}
