package services

import "errors"

// Common service errors
var (
	ErrNotFound            = errors.New("record not found")
	ErrAlreadyPaid         = errors.New("customer has already paid this cycle")
	ErrEmptyRoster         = errors.New("no customers to bill")
	ErrInvalidAmount       = errors.New("amount must be a positive number")
	ErrInvalidMethod       = errors.New("invalid payment method")
	ErrInsufficientBalance = errors.New("insufficient net balance")
	ErrInsufficientReserve = errors.New("insufficient reserve balance")
	ErrNoMembers           = errors.New("no members to distribute to")
	ErrInvalidBackup       = errors.New("backup is missing customers or finance_history")
)
