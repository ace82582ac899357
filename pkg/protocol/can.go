package protocol

import (
	"errors"

	"go.einride.tech/can"
)

// ErrUnknownMessage is returned when a frame id does not map to any status
// message kind.
var ErrUnknownMessage = errors.New("protocol: unknown message id")

// PackMotionCommand builds the motion command CAN frame, checksum included.
func PackMotionCommand(cmd MotionCommand, count uint8) can.Frame {
	f := can.Frame{ID: CANMsgMotionCommandID, Length: 8}
	f.Data[0] = cmd.ControlMode
	f.Data[1] = cmd.FaultClearFlag
	f.Data[2] = uint8(cmd.LinearPercent)
	f.Data[3] = uint8(cmd.AngularPercent)
	f.Data[6] = count
	f.Data[7] = Checksum(f.ID, f.Data[:], f.Length)
	return f
}

// PackLightCommand builds the light command CAN frame, checksum included.
func PackLightCommand(cmd LightCommand, count uint8) can.Frame {
	f := can.Frame{ID: CANMsgLightCommandID, Length: 8}
	f.Data[0] = cmd.Enable
	f.Data[1] = cmd.FrontMode
	f.Data[2] = cmd.FrontCustom
	f.Data[3] = cmd.RearMode
	f.Data[4] = cmd.RearCustom
	f.Data[6] = count
	f.Data[7] = Checksum(f.ID, f.Data[:], f.Length)
	return f
}

// VerifyChecksum recomputes the checksum over a received frame and compares
// it against the embedded trailing byte.
func VerifyChecksum(f can.Frame) bool {
	if f.Length == 0 {
		return false
	}
	return f.Data[f.Length-1] == Checksum(f.ID, f.Data[:], f.Length)
}

// DecodeFrame decodes a checksum-valid CAN frame into a status message.
// Frames with ids outside the status range return ErrUnknownMessage.
func DecodeFrame(f can.Frame) (StatusMessage, error) {
	p := f.Data[:6]
	switch f.ID {
	case CANMsgMotionStatusID:
		return decodeMotion(p), nil
	case CANMsgLightStatusID:
		return decodeLight(p), nil
	case CANMsgSystemStatusID:
		return decodeSystem(p), nil
	case CANMsgMotor1StatusID, CANMsgMotor2StatusID, CANMsgMotor3StatusID, CANMsgMotor4StatusID:
		return decodeMotor(int(f.ID-CANMsgMotor1StatusID)+1, p), nil
	}
	return nil, ErrUnknownMessage
}
