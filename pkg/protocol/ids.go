package protocol

// CAN message identifiers used by the base.
const (
	CANMsgMotionCommandID uint32 = 0x130
	CANMsgMotionStatusID  uint32 = 0x131
	CANMsgLightCommandID  uint32 = 0x140
	CANMsgLightStatusID   uint32 = 0x141
	CANMsgSystemStatusID  uint32 = 0x151
	CANMsgMotor1StatusID  uint32 = 0x201
	CANMsgMotor2StatusID  uint32 = 0x202
	CANMsgMotor3StatusID  uint32 = 0x203
	CANMsgMotor4StatusID  uint32 = 0x204
)

// Serial frame identifiers. These live in a separate constant space from the
// CAN ids; the serial framing carries its own one-byte id field.
const (
	FrameMotionCommandID uint8 = 0x01
	FrameLightCommandID  uint8 = 0x02
	FrameMotionStatusID  uint8 = 0x21
	FrameLightStatusID   uint8 = 0x22
	FrameSystemStatusID  uint8 = 0x23
	FrameMotor1StatusID  uint8 = 0x25
	FrameMotor2StatusID  uint8 = 0x26
	FrameMotor3StatusID  uint8 = 0x27
	FrameMotor4StatusID  uint8 = 0x28
)

// Control mode byte of an outgoing motion command, tagging which transport
// the command arrived on.
const (
	ControlModeCAN    uint8 = 0x01
	ControlModeSerial uint8 = 0x02
)

// Light control enable sentinel values.
const (
	LightControlDisable uint8 = 0x00
	LightControlEnable  uint8 = 0x01
)
