package galaksija

import (
	"errors"

	"github.com/ysh86/GTPtools/adc"
)

var (
	// ErrSyncNotFound is returned when the samples end before the 0xA5 sync byte.
	ErrSyncNotFound = errors.New("galaksija: sync signal not found")

	// ErrInsufficientData is returned when fewer bytes were decoded than the block needs.
	ErrInsufficientData = errors.New("galaksija: not enough data")

	// ErrChannelOutOfRange is returned before decoding when the channel does not exist.
	ErrChannelOutOfRange = adc.ErrChannelOutOfRange

	// ErrChecksumMismatch marks a block whose checksum is wrong.
	// Decode still returns the block; see Block.Verify.
	ErrChecksumMismatch = errors.New("galaksija: checksum mismatch")

	// ErrMarkerMissing marks a block that does not start at the BASIC program area.
	// It is advisory only.
	ErrMarkerMissing = errors.New("galaksija: BASIC start marker not found")
)
