package estoque

import "errors"

var (
	// ErrNoItemsFound reports that a document produced zero extraction
	// facts. Callers surface it as a "nothing recognized" result rather
	// than a failure.
	ErrNoItemsFound = errors.New("no items recognized in document")

	// ErrInvalidQuantity blocks a whole commit batch when any row carries
	// a quantity <= 0. Silently skipping the row could hide a data-entry
	// mistake, so the batch fails closed until it is corrected.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")

	// ErrUnconfirmedHighQuantity blocks a whole commit batch while rows
	// above HighQuantityThreshold exist without explicit operator
	// confirmation.
	ErrUnconfirmedHighQuantity = errors.New("high quantities present but not confirmed")
)
