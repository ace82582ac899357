package protocol

import "log"

// Framer reassembles complete serial frames from an arbitrarily fragmented
// byte stream. It validates each frame's checksum and invokes the callback
// once per valid status frame. Feed is not safe for concurrent use; the
// transport delivers chunks from a single reader goroutine.
type Framer struct {
	buf [serialFrameLen]byte
	n   int

	onStatus func(StatusMessage)

	framesDecoded  uint64
	checksumErrors uint64
	bytesDropped   uint64
}

// NewFramer returns a framer delivering decoded status messages to onStatus.
func NewFramer(onStatus func(StatusMessage)) *Framer {
	return &Framer{onStatus: onStatus}
}

// Feed consumes a chunk of raw bytes from the serial stream.
func (fr *Framer) Feed(data []byte) {
	for _, b := range data {
		fr.feedByte(b)
	}
}

func (fr *Framer) feedByte(b byte) {
	switch fr.n {
	case 0:
		if b != SerialSOF1 {
			fr.bytesDropped++
			return
		}
	case 1:
		if b != SerialSOF2 {
			fr.bytesDropped += 2
			fr.n = 0
			// the byte may itself start a new frame
			if b == SerialSOF1 {
				fr.buf[0] = b
				fr.n = 1
				fr.bytesDropped--
			}
			return
		}
	case 2:
		if b != serialInnerLen {
			fr.bytesDropped += 3
			fr.n = 0
			return
		}
	}

	fr.buf[fr.n] = b
	fr.n++
	if fr.n < serialFrameLen {
		return
	}
	fr.n = 0

	if fr.buf[serialFrameLen-1] != serialChecksum(fr.buf[:]) {
		fr.checksumErrors++
		log.Printf("protocol: checksum mismatch, discarding serial frame id 0x%02X", fr.buf[4])
		return
	}
	if fr.buf[3] != SerialFrameTypeStatus {
		// command echo or foreign traffic, not ours to fold into state
		return
	}
	msg, err := decodeSerialStatus(fr.buf[4], fr.buf[5:11])
	if err != nil {
		fr.bytesDropped += serialFrameLen
		return
	}
	fr.framesDecoded++
	if fr.onStatus != nil {
		fr.onStatus(msg)
	}
}

// Stats reports frames decoded, checksum failures and bytes dropped during
// resynchronization since the framer was created.
func (fr *Framer) Stats() (decoded, checksumErrors, dropped uint64) {
	return fr.framesDecoded, fr.checksumErrors, fr.bytesDropped
}
