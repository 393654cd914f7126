package service

import "errors"

// UserFacingError is the single message the boundary shows for any render
// failure; the detailed cause stays in the logs.
const UserFacingError = "PDF generation failed, please try again"

var (
	ErrNilReceipt = errors.New("receipt is required")
)
