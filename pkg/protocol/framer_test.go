package protocol

import (
	"bytes"
	"testing"
)

// statusSerialFrame builds a checksum-valid serial status frame for tests.
func statusSerialFrame(id uint8, payload [serialPayloadLen]byte, count uint8) []byte {
	return packSerialFrame(SerialFrameTypeStatus, id, payload, count)
}

func collectFramer() (*Framer, *[]StatusMessage) {
	var got []StatusMessage
	fr := NewFramer(func(msg StatusMessage) {
		got = append(got, msg)
	})
	return fr, &got
}

func TestFramerWholeFrame(t *testing.T) {
	fr, got := collectFramer()
	fr.Feed(statusSerialFrame(FrameMotionStatusID, [serialPayloadLen]byte{0x03, 0xE8}, 5))

	if len(*got) != 1 {
		t.Fatalf("decoded %d messages, want 1", len(*got))
	}
	m, ok := (*got)[0].(MotionStatus)
	if !ok {
		t.Fatalf("decoded %T, want MotionStatus", (*got)[0])
	}
	if m.LinearVelocity != 1000 {
		t.Errorf("linear = %d, want 1000", m.LinearVelocity)
	}
}

func TestFramerFragmentedInput(t *testing.T) {
	frame := statusSerialFrame(FrameSystemStatusID, [serialPayloadLen]byte{0x00, 0x01, 0x01, 0x70}, 0)

	for _, chunk := range []int{1, 2, 5} {
		t.Run(string(rune('0'+chunk)), func(t *testing.T) {
			fr, got := collectFramer()
			for i := 0; i < len(frame); i += chunk {
				end := i + chunk
				if end > len(frame) {
					end = len(frame)
				}
				fr.Feed(frame[i:end])
			}
			if len(*got) != 1 {
				t.Fatalf("decoded %d messages, want 1", len(*got))
			}
			s := (*got)[0].(SystemStatus)
			if s.BatteryVoltage != 368 {
				t.Errorf("battery = %d, want 368", s.BatteryVoltage)
			}
		})
	}
}

func TestFramerResyncAfterGarbage(t *testing.T) {
	fr, got := collectFramer()

	var stream bytes.Buffer
	stream.Write([]byte{0x00, 0xFF, SerialSOF1, 0x13}) // noise, including a false start
	stream.Write(statusSerialFrame(FrameMotionStatusID, [serialPayloadLen]byte{0x00, 0x64}, 1))
	stream.Write([]byte{SerialSOF1, SerialSOF2, 0x07}) // bad length, must resync
	stream.Write(statusSerialFrame(FrameMotionStatusID, [serialPayloadLen]byte{0x00, 0xC8}, 2))
	fr.Feed(stream.Bytes())

	if len(*got) != 2 {
		t.Fatalf("decoded %d messages, want 2", len(*got))
	}
	if v := (*got)[1].(MotionStatus).LinearVelocity; v != 200 {
		t.Errorf("second frame linear = %d, want 200", v)
	}
}

func TestFramerDiscardsBadChecksum(t *testing.T) {
	fr, got := collectFramer()

	bad := statusSerialFrame(FrameMotionStatusID, [serialPayloadLen]byte{0x03, 0xE8}, 0)
	bad[len(bad)-1] ^= 0xA5
	fr.Feed(bad)
	fr.Feed(statusSerialFrame(FrameMotionStatusID, [serialPayloadLen]byte{0x00, 0x64}, 1))

	if len(*got) != 1 {
		t.Fatalf("decoded %d messages, want 1 (bad frame discarded)", len(*got))
	}
	if v := (*got)[0].(MotionStatus).LinearVelocity; v != 100 {
		t.Errorf("linear = %d, want 100", v)
	}
	_, checksumErrors, _ := fr.Stats()
	if checksumErrors != 1 {
		t.Errorf("checksum errors = %d, want 1", checksumErrors)
	}
}

func TestFramerIgnoresCommandEcho(t *testing.T) {
	fr, got := collectFramer()
	fr.Feed(PackMotionCommandSerial(MotionCommand{LinearPercent: 50}, 3))
	if len(*got) != 0 {
		t.Fatalf("decoded %d messages from a command frame, want 0", len(*got))
	}
}

func TestSerialPackRoundTrip(t *testing.T) {
	buf := PackLightCommandSerial(LightCommand{
		Enable:      LightControlEnable,
		FrontMode:   0x02,
		FrontCustom: 0x10,
		RearMode:    0x01,
	}, 9)

	if len(buf) != serialFrameLen {
		t.Fatalf("frame length = %d, want %d", len(buf), serialFrameLen)
	}
	if buf[0] != SerialSOF1 || buf[1] != SerialSOF2 {
		t.Errorf("SOF bytes = % 02X", buf[:2])
	}
	if buf[3] != SerialFrameTypeCommand || buf[4] != FrameLightCommandID {
		t.Errorf("type/id = 0x%02X/0x%02X", buf[3], buf[4])
	}
	if buf[11] != 9 {
		t.Errorf("count = %d, want 9", buf[11])
	}
	if buf[12] != serialChecksum(buf) {
		t.Error("checksum byte does not match computed checksum")
	}
}
