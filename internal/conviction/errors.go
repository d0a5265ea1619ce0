package conviction

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration errors. These surface from NewEngine and are fatal at startup.
var (
	// ErrInvalidWeights is returned when the weight set is incomplete, out of range, or does not sum to 1.0.
	ErrInvalidWeights = errors.New("invalid category weights")

	// ErrUnknownCategory is returned for a category name that is not scored.
	ErrUnknownCategory = errors.New("unknown signal category")

	// ErrInvalidConfig is returned for out-of-range engine settings.
	ErrInvalidConfig = errors.New("invalid engine configuration")
)

// Malformed transaction errors. Records failing validation are rejected before grouping.
var (
	ErrMalformedTransaction    = errors.New("malformed transaction")
	ErrMissingTicker           = errors.New("missing ticker")
	ErrMissingInsider          = errors.New("missing insider identity")
	ErrMissingTransactionDate  = errors.New("missing transaction date")
	ErrNegativeShares          = errors.New("negative share count")
	ErrNonPositivePrice        = errors.New("price per share must be positive")
	ErrNegativeValue           = errors.New("negative total value")
	ErrFilingBeforeTransaction = errors.New("filing date before transaction date")
	ErrNotPurchase             = errors.New("not a purchase")
)

// ErrIndeterminate is returned by Fuse when no component is available.
var ErrIndeterminate = errors.New("no signal components available")

// Rejection records one transaction dropped by validation.
type Rejection struct {
	Index  int    `json:"index"`
	Ticker string `json:"ticker"`
	Reason error  `json:"-"`
}

// MalformedBatchError reports every rejected record in a batch. It matches
// ErrMalformedTransaction and each individual reason via errors.Is.
type MalformedBatchError struct {
	Total      int
	Rejections []Rejection
}

func (e *MalformedBatchError) Error() string {
	reasons := make([]string, 0, len(e.Rejections))
	for _, r := range e.Rejections {
		reasons = append(reasons, fmt.Sprintf("#%d %s: %v", r.Index, r.Ticker, r.Reason))
	}
	return fmt.Sprintf("%s: %d of %d rejected (%s)",
		ErrMalformedTransaction, len(e.Rejections), e.Total, strings.Join(reasons, "; "))
}

func (e *MalformedBatchError) Is(target error) bool {
	return target == ErrMalformedTransaction
}

func (e *MalformedBatchError) Unwrap() []error {
	errs := make([]error, 0, len(e.Rejections))
	for _, r := range e.Rejections {
		errs = append(errs, r.Reason)
	}
	return errs
}

// Rejected returns the number of rejected records.
func (e *MalformedBatchError) Rejected() int {
	return len(e.Rejections)
}
