package mmu

import (
	"errors"
	"fmt"
)

// ErrOutOfRangeAddress is matched by every OutOfRangeAddressError.
var ErrOutOfRangeAddress = errors.New("address out of range")

// OutOfRangeAddressError is returned by an access to an address outside
// of 0x0000 - 0xFFFF. Only the access fails, memory is left untouched.
type OutOfRangeAddressError struct {
	Address int
}

func (e *OutOfRangeAddressError) Error() string {
	return fmt.Sprintf("address %#x out of range [0x0000, 0xFFFF]", e.Address)
}

func (e *OutOfRangeAddressError) Is(err error) bool {
	return err == ErrOutOfRangeAddress
}
