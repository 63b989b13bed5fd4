package galaksija

// SyncMarker is the first byte of every block.
const SyncMarker = 0xA5

// FrameAssembler drops everything before the sync byte and collects the rest.
type FrameAssembler struct {
	waiting bool
	buf     []byte
}

// NewFrameAssembler returns an assembler waiting for sync.
func NewFrameAssembler() *FrameAssembler {
	return &FrameAssembler{waiting: true}
}

// Observe is called after every timed pulse with the current register.
// complete is set when the pulse finished a byte.
func (f *FrameAssembler) Observe(register byte, complete bool) {
	if complete && !f.waiting {
		f.buf = append(f.buf, register)
	}
	// the register is matched on every pulse, not only on byte boundaries
	if f.waiting && register == SyncMarker {
		f.waiting = false
		f.buf = append(f.buf, register)
	}
}

// Synced reports whether the sync byte was seen.
func (f *FrameAssembler) Synced() bool {
	return !f.waiting
}

// Finish appends the tail byte (whatever the register holds at the end of the
// recording) and returns the assembled buffer.
func (f *FrameAssembler) Finish(tail byte) ([]byte, error) {
	if f.waiting {
		return nil, ErrSyncNotFound
	}
	f.buf = append(f.buf, tail)
	return f.buf, nil
}
