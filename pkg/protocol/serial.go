package protocol

// Serial frame layout, 13 bytes fixed:
//
//	[0]  SOF1 0x5A
//	[1]  SOF2 0xA5
//	[2]  frame length counted from the type byte (always 0x0A)
//	[3]  frame type (command or status)
//	[4]  frame id
//	[5..10] payload, same field layout as the matching CAN message
//	[11] count
//	[12] checksum, additive over bytes [0..11]
const (
	SerialSOF1 uint8 = 0x5A
	SerialSOF2 uint8 = 0xA5

	SerialFrameTypeCommand uint8 = 0x55
	SerialFrameTypeStatus  uint8 = 0xAA

	serialFrameLen   = 13
	serialPayloadLen = 6
	serialInnerLen   = 0x0A
)

func serialChecksum(frame []byte) uint8 {
	var sum uint8
	for _, b := range frame[:serialFrameLen-1] {
		sum += b
	}
	return sum
}

func packSerialFrame(frameType, id uint8, payload [serialPayloadLen]byte, count uint8) []byte {
	buf := make([]byte, serialFrameLen)
	buf[0] = SerialSOF1
	buf[1] = SerialSOF2
	buf[2] = serialInnerLen
	buf[3] = frameType
	buf[4] = id
	copy(buf[5:11], payload[:])
	buf[11] = count
	buf[12] = serialChecksum(buf)
	return buf
}

// PackMotionCommandSerial builds the motion command as a ready-to-send
// serial frame, checksum included.
func PackMotionCommandSerial(cmd MotionCommand, count uint8) []byte {
	payload := [serialPayloadLen]byte{
		cmd.ControlMode,
		cmd.FaultClearFlag,
		uint8(cmd.LinearPercent),
		uint8(cmd.AngularPercent),
	}
	return packSerialFrame(SerialFrameTypeCommand, FrameMotionCommandID, payload, count)
}

// PackLightCommandSerial builds the light command as a ready-to-send serial
// frame, checksum included.
func PackLightCommandSerial(cmd LightCommand, count uint8) []byte {
	payload := [serialPayloadLen]byte{
		cmd.Enable,
		cmd.FrontMode,
		cmd.FrontCustom,
		cmd.RearMode,
		cmd.RearCustom,
	}
	return packSerialFrame(SerialFrameTypeCommand, FrameLightCommandID, payload, count)
}

func decodeSerialStatus(id uint8, payload []byte) (StatusMessage, error) {
	switch id {
	case FrameMotionStatusID:
		return decodeMotion(payload), nil
	case FrameLightStatusID:
		return decodeLight(payload), nil
	case FrameSystemStatusID:
		return decodeSystem(payload), nil
	case FrameMotor1StatusID, FrameMotor2StatusID, FrameMotor3StatusID, FrameMotor4StatusID:
		return decodeMotor(int(id-FrameMotor1StatusID)+1, payload), nil
	}
	return nil, ErrUnknownMessage
}
