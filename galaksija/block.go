package galaksija

import "fmt"

// BasicStart is where Galaksija BASIC programs live (bytes 0x36 0x2c on tape).
const BasicStart uint16 = 0x2c36

// blockOverhead is sync + 4 address bytes + checksum + tail byte on top of
// the inclusive address span.
const blockOverhead = 1 + 4 + 2

// Block is a validated tape block. Payload is the first Size bytes of the
// assembled buffer, sync byte included. BasicMarker is set when the block
// starts at BasicStart. Found is the number of bytes assembled after sync,
// tail byte included.
type Block struct {
	StartAddress uint16
	EndAddress   uint16
	Size         uint16
	Payload      []byte
	Checksum     byte
	ChecksumOK   bool
	BasicMarker  bool
	Found        int
}

// Validate interprets the assembled buffer as a block.
func Validate(buf []byte) (*Block, error) {
	if len(buf) < 5 {
		return nil, fmt.Errorf("%w: %d bytes found", ErrInsufficientData, len(buf))
	}

	b := &Block{
		StartAddress: uint16(buf[1]) | uint16(buf[2])<<8,
		EndAddress:   uint16(buf[3]) | uint16(buf[4])<<8,
		Found:        len(buf),
	}
	b.BasicMarker = b.StartAddress == BasicStart
	// uint16 wraps like the tape loader does
	b.Size = (b.EndAddress - b.StartAddress) + blockOverhead

	if len(buf) < int(b.Size) {
		return nil, fmt.Errorf("%w: block size %04x, %d bytes found", ErrInsufficientData, b.Size, len(buf))
	}

	var sum byte
	for i := 0; i < int(b.Size)-1; i++ {
		sum += buf[i]
	}
	b.Checksum = sum
	b.ChecksumOK = sum == 0xff
	b.Payload = buf[:b.Size]

	return b, nil
}

// Verify returns ErrChecksumMismatch for a block that failed the checksum.
func (b *Block) Verify() error {
	if !b.ChecksumOK {
		return fmt.Errorf("%w: sum %02x", ErrChecksumMismatch, b.Checksum)
	}
	return nil
}
