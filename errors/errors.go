package errors

import "fmt"

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")
	ErrEmptyWords  = fmt.Errorf("no words have been found")

	// Dashboard commands
	ErrSocketNotAuthorized      = fmt.Errorf("socket not authorized")
	ErrRemoteDispatchNotAllowed = fmt.Errorf("remote dispatch not allowed")
	ErrInvalidCommand           = fmt.Errorf("invalid command")
	ErrVersionMismatch          = fmt.Errorf("broadcast version mismatch")

	// Assignment
	ErrNoOperatorsAvailable = fmt.Errorf("no operators available")
	ErrOperatorNotAvailable = fmt.Errorf("operator not available")
	ErrOfferTimeout         = fmt.Errorf("timeout")
	ErrOfferRejected        = fmt.Errorf("offer rejected")

	// Transport & auth
	ErrInvalidToken     = fmt.Errorf("invalid token")
	ErrInvalidAgentKey  = fmt.Errorf("invalid agent key")
	ErrInvalidHash      = fmt.Errorf("invalid hash format")
	ErrIncompatibleHash = fmt.Errorf("incompatible argon2 version")
	ErrConnectionClosed = fmt.Errorf("connection closed")
	ErrBufferExceeded   = fmt.Errorf("connection buffer exceeded")
	ErrCoordinatorDown  = fmt.Errorf("coordinator stopped")
	ErrInvalidFrame     = fmt.Errorf("invalid frame")
)
