// SPDX-License-Identifier: MIT

package cashflow

import "errors"

var (
	// ErrInvalidLeg is returned for legs with non-finite payment times.
	ErrInvalidLeg = errors.New("cashflow: invalid leg")

	// ErrInvalidRate is returned for unusable rates or compounding conventions.
	ErrInvalidRate = errors.New("cashflow: invalid rate")

	// ErrNoSignChange is returned by IRR when the market price and the
	// outstanding flows never change sign, so no yield can match the price.
	ErrNoSignChange = errors.New("cashflow: no sign change in cash flows, IRR does not exist")

	// ErrZeroNPV is returned by Duration and Convexity when the leg is worth nothing.
	ErrZeroNPV = errors.New("cashflow: zero present value")
)
