// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"strings"
)

// Strategy is the refinement step of a solver family.
//
// Refine is called with a State whose bracket [XMin, XMax] holds a sign
// change (FxMin*FxMax < 0), whose Root is a starting estimate inside it, and
// whose Evaluations already counts the bracketing work. Implementations must:
//   - evaluate f only through st.Evaluate, so the shared budget is honoured;
//   - keep every candidate inside [XMin, XMax];
//   - return st.MaxEvaluationsError() once st.Exhausted();
//   - return only an evaluated root whose |f| is at most accuracy.
type Strategy interface {
	Name() string
	Refine(f Function, accuracy float64, st *State) (float64, error)
}

// Method names a built-in Strategy.
type Method int

const (
	// MethodBrent selects Brent (the default).
	MethodBrent Method = iota
	// MethodBisection selects Bisection.
	MethodBisection
	// MethodSecant selects Secant.
	MethodSecant
	// MethodFalsePosition selects FalsePosition.
	MethodFalsePosition
	// MethodRidder selects Ridder.
	MethodRidder
	// MethodNewton selects Newton.
	MethodNewton
	// MethodNewtonSafe selects NewtonSafe.
	MethodNewtonSafe
)

var methodNames = [...]string{
	MethodBrent:         "brent",
	MethodBisection:     "bisection",
	MethodSecant:        "secant",
	MethodFalsePosition: "falseposition",
	MethodRidder:        "ridder",
	MethodNewton:        "newton",
	MethodNewtonSafe:    "newtonsafe",
}

// String returns the lower-case method name.
func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// ParseMethod maps a case-insensitive name ("brent", "newton-safe", "false_position", …)
// to a Method. Dashes and underscores are ignored.
func ParseMethod(name string) (Method, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	for i, n := range methodNames {
		if n == key {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// NewStrategy returns the built-in Strategy for m.
func NewStrategy(m Method) (Strategy, error) {
	switch m {
	case MethodBrent:
		return Brent{}, nil
	case MethodBisection:
		return Bisection{}, nil
	case MethodSecant:
		return Secant{}, nil
	case MethodFalsePosition:
		return FalsePosition{}, nil
	case MethodRidder:
		return Ridder{}, nil
	case MethodNewton:
		return Newton{}, nil
	case MethodNewtonSafe:
		return NewtonSafe{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, m)
	}
}
