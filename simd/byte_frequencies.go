package simd

// ByteFrequencies ranks bytes by how common they are in typical text and
// source code. Lower rank means rarer, and a better byte to scan for.
var ByteFrequencies = [256]byte{
	// 0x00-0x0F: Control characters (generally rare)
	0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 1, 0, 0,
	// 0x10-0x1F: More control characters
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	// 0x20-0x2F: Space, punctuation
	255, 60, 140, 50, 40, 35, 30, 160, 130, 130, 80, 55, 200, 140, 210, 100,
	// 0x30-0x3F: Digits and more punctuation
	180, 190, 170, 150, 140, 140, 130, 120, 120, 120, 150, 100, 70, 160, 70, 50,
	// 0x40-0x4F: '@' and uppercase A-O
	25, 120, 80, 90, 85, 130, 75, 70, 80, 115, 30, 35, 90, 85, 100, 105,
	// 0x50-0x5F: Uppercase P-Z and brackets
	80, 15, 100, 110, 115, 70, 45, 55, 20, 50, 10, 90, 60, 90, 20, 110,
	// 0x60-0x6F: Backtick and lowercase a-o
	30, 225, 140, 170, 165, 245, 135, 130, 150, 200, 25, 65, 175, 155, 195, 205,
	// 0x70-0x7F: Lowercase p-z and braces
	145, 15, 195, 200, 215, 150, 75, 95, 45, 120, 20, 85, 40, 85, 15, 0,
	// 0x80-0xFF: Extended ASCII / UTF-8 continuation bytes (generally rare in text)
	// These are less common in typical text/code, so they get low ranks
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
}

// ByteRank returns the frequency rank of b.
func ByteRank(b byte) byte {
	return ByteFrequencies[b]
}

// RareByteInfo holds the two rarest bytes of a needle and their positions.
// For needles of two or more bytes the positions differ.
type RareByteInfo struct {
	Byte1  byte
	Index1 int
	Byte2  byte
	Index2 int
}

// SelectRareBytes finds the two rarest bytes of needle by ByteFrequencies.
// Byte1 is the rarest; Byte2 is the rarest byte at another position whose
// value differs from Byte1 when possible.
func SelectRareBytes(needle []byte) RareByteInfo {
	switch len(needle) {
	case 0:
		return RareByteInfo{}
	case 1:
		return RareByteInfo{Byte1: needle[0], Byte2: needle[0]}
	}

	b1, i1 := needle[0], 0
	b2, i2 := needle[1], 1
	if ByteFrequencies[b2] < ByteFrequencies[b1] {
		b1, b2, i1, i2 = b2, b1, i2, i1
	}
	for i := 2; i < len(needle); i++ {
		b := needle[i]
		switch rank := ByteFrequencies[b]; {
		case rank < ByteFrequencies[b1]:
			b2, i2 = b1, i1
			b1, i1 = b, i
		case b != b1 && rank < ByteFrequencies[b2]:
			b2, i2 = b, i
		}
	}
	return RareByteInfo{Byte1: b1, Index1: i1, Byte2: b2, Index2: i2}
}
