package board

// Wire-level integer encoding. The monitor takes addresses as 3 bytes and
// lengths as 2 bytes, both little-endian. Values are masked to the field
// width; callers must not rely on higher bits surviving a round trip.

// AppendAddr appends the 3-byte little-endian encoding of a 24-bit address.
func AppendAddr(dst []byte, v uint32) []byte {
	return append(dst,
		byte(v&0xFF),
		byte((v>>8)&0xFF),
		byte((v>>16)&0xFF),
	)
}

// AppendLen appends the 2-byte little-endian encoding of a 16-bit length.
func AppendLen(dst []byte, v uint32) []byte {
	return append(dst,
		byte(v&0xFF),
		byte((v>>8)&0xFF),
	)
}

// DecodeUint folds an arbitrary-length little-endian byte sequence into an
// unsigned integer: byte i contributes b[i] << (8*i). All board values are
// unsigned; there is no sign handling.
func DecodeUint(b []byte) uint32 {
	var v uint32
	for i, by := range b {
		v |= uint32(by) << (8 * i)
	}
	return v
}
