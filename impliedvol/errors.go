// SPDX-License-Identifier: MIT

package impliedvol

import "errors"

var (
	// ErrInvalidContract is returned when a Contract fails Validate.
	ErrInvalidContract = errors.New("impliedvol: invalid contract")

	// ErrPriceOutOfBounds is returned when the quoted price violates the
	// no-arbitrage bounds, so no non-negative volatility reproduces it.
	ErrPriceOutOfBounds = errors.New("impliedvol: price outside no-arbitrage bounds")
)
