// SPDX-License-Identifier: MIT

// Package cashflow prices a leg of fixed payments against a flat rate and
// solves for its internal rate of return.
//
// Amounts are shopspring/decimal values, so legs read from configuration or
// ledgers keep their exact cents; discounting itself is done in float64.
//
// ⚙️ Usage:
//
//	leg := cashflow.Leg{
//	    {Time: 1, Amount: decimal.NewFromInt(5)},
//	    {Time: 2, Amount: decimal.NewFromInt(105)},
//	}
//	y, err := cashflow.IRR(leg, decimal.NewFromInt(98), cashflow.Compounded, 1)
//	d, err := cashflow.Duration(leg, y, cashflow.ModifiedDuration)
package cashflow
