// Package payment implements the staged checkout flow used at the point of
// sale: pick a method, enter an amount, submit.
package payment

import "errors"

// Stage is the flow's current position.
type Stage int

const (
	// StageMethodSelection shows the method choices; no amount form yet.
	StageMethodSelection Stage = iota
	// StageAmountEntry shows the amount form for the chosen method.
	StageAmountEntry
	// StageSubmitted is terminal; the payment has been recorded.
	StageSubmitted
)

func (s Stage) String() string {
	switch s {
	case StageMethodSelection:
		return "method_selection"
	case StageAmountEntry:
		return "amount_entry"
	case StageSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Method is a supported payment method.
type Method string

const (
	MethodCard   Method = "card"
	MethodCash   Method = "cash"
	MethodCoupon Method = "coupon"
)

var (
	ErrAlreadySubmitted = errors.New("payment already submitted")
	ErrNoMethod         = errors.New("no payment method selected")
	ErrZeroAmount       = errors.New("payment amount not entered")
	ErrUnknownMethod    = errors.New("unknown payment method")
)

// Flow is the per-checkout state machine. The amount is kept as the raw
// entered string; "0" is the unset default and the only value that blocks
// submission.
type Flow struct {
	stage  Stage
	method Method
	amount string
}

func NewFlow() *Flow {
	return &Flow{stage: StageMethodSelection, amount: "0"}
}

func (f *Flow) Stage() Stage   { return f.stage }
func (f *Flow) Method() Method { return f.method }
func (f *Flow) Amount() string { return f.amount }

// SelectMethod records the method and advances to amount entry. Selecting a
// different method while already on the amount form just switches the method.
func (f *Flow) SelectMethod(m Method) error {
	if f.stage == StageSubmitted {
		return ErrAlreadySubmitted
	}
	switch m {
	case MethodCard, MethodCash, MethodCoupon:
	default:
		return ErrUnknownMethod
	}
	f.method = m
	f.stage = StageAmountEntry
	return nil
}

// EnterAmount stores the raw entered amount. Validation happens at submit.
func (f *Flow) EnterAmount(amount string) error {
	if f.stage == StageSubmitted {
		return ErrAlreadySubmitted
	}
	if f.stage != StageAmountEntry {
		return ErrNoMethod
	}
	f.amount = amount
	return nil
}

// Cancel collapses the amount form back to method selection. The selected
// method and the entered amount are kept, so re-opening the form resumes
// where the operator left off.
func (f *Flow) Cancel() error {
	if f.stage == StageSubmitted {
		return ErrAlreadySubmitted
	}
	f.stage = StageMethodSelection
	return nil
}

// CanPay reports whether submission is allowed: the amount form must be open
// and the amount must not be the unset default. Any other entered string,
// well-formed or not, enables the pay action; numeric validation is the
// caller's concern.
func (f *Flow) CanPay() bool {
	if f.stage != StageAmountEntry {
		return false
	}
	return f.amount != "" && f.amount != "0"
}

// Submit moves the flow to its terminal stage. It fails when no method is
// selected, the amount is still unset, or the flow was already submitted.
func (f *Flow) Submit() error {
	if f.stage == StageSubmitted {
		return ErrAlreadySubmitted
	}
	if f.stage != StageAmountEntry {
		return ErrNoMethod
	}
	if !f.CanPay() {
		return ErrZeroAmount
	}
	f.stage = StageSubmitted
	return nil
}
