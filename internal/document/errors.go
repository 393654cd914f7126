package document

import "errors"

// Structural errors. These fail the render before any assembly happens;
// everything else degrades to an omitted section.
var (
	ErrNilReceipt      = errors.New("receipt is nil")
	ErrNoItems         = errors.New("receipt has no items list")
	ErrNoReceiptNumber = errors.New("receipt number is missing")
)
