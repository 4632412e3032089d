package monitor

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFix      = errors.New("invalid position fix")
	ErrInvalidReading  = errors.New("invalid distress reading")
	ErrStateViolation  = errors.New("escalation state violation")
	ErrDispatchFailed  = errors.New("sos dispatch failed")
	ErrAlreadyInFlight = errors.New("sos dispatch already in flight")
	ErrTrackingStopped = errors.New("tracking is not active")
)

// DispatchError - ошибка транспорта при отправке SOS
type DispatchError struct {
	Reason string
	Err    error
}

func (e *DispatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrDispatchFailed, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrDispatchFailed, e.Reason)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

func (e *DispatchError) Is(target error) bool {
	return target == ErrDispatchFailed
}
