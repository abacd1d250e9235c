package domain

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrInvalidCredentials = errors.New("Invalid credentials")
var ErrNoActiveSession = errors.New("No active session")
var ErrInvalidAmount = errors.New("Invalid amount")
var ErrInsufficientBalance = errors.New("Insufficient balance")
var ErrUnknownRecipient = errors.New("Unknown recipient")
var ErrSelfTransfer = errors.New("Cannot transfer to own account")
var ErrLoanNotEligible = errors.New("Loan request not eligible")
var ErrConfirmationMismatch = errors.New("Confirmation details do not match")
