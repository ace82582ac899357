package protocol

// Checksum computes the single-byte additive checksum over a message id and
// payload: both id bytes plus the payload length plus every payload byte
// except the trailing checksum slot.
func Checksum(id uint32, data []byte, dlc uint8) uint8 {
	sum := uint8(id&0x00FF) + uint8(id>>8) + dlc
	for i := 0; i < int(dlc)-1 && i < len(data); i++ {
		sum += data[i]
	}
	return sum
}
