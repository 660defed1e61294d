// Package epoch resolves absolute slot windows for Solana epochs from a
// point-in-time epoch info snapshot.
package epoch

import (
	"fmt"

	"github.com/gagliardetto/solana-go/rpc"
)

// Window is the absolute slot range of an epoch. FirstSlot is the first slot
// of the epoch, LastSlot is clamped to the most recently observed slot so an
// in-progress epoch is never resolved past its known frontier.
type Window struct {
	FirstSlot uint64
	LastSlot  uint64
}

// FutureEpochError is returned when the requested epoch has not been reached
type FutureEpochError struct {
	Requested uint64
	Current   uint64
}

func (e *FutureEpochError) Error() string {
	return fmt.Sprintf("future epoch %d requested, current epoch is %d", e.Requested, e.Current)
}

// WindowFor resolves the absolute slot window of the given epoch from the
// supplied epoch info snapshot. Subtraction saturates at zero so a chain
// younger than the implied offset resolves to a window starting at slot 0.
func WindowFor(info *rpc.GetEpochInfoResult, epoch uint64) (Window, error) {
	if epoch > info.Epoch {
		return Window{}, &FutureEpochError{Requested: epoch, Current: info.Epoch}
	}

	firstSlot := saturatingSub(info.AbsoluteSlot, info.SlotIndex)
	firstSlot = saturatingSub(firstSlot, (info.Epoch-epoch)*info.SlotsInEpoch)

	lastSlot := firstSlot + info.SlotsInEpoch
	if lastSlot > info.AbsoluteSlot {
		lastSlot = info.AbsoluteSlot
	}

	return Window{FirstSlot: firstSlot, LastSlot: lastSlot}, nil
}

func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
