package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidChild         = errors.New("invalid child")
	ErrDuplicateChild       = errors.New("duplicate child")
	ErrInvalidArticle       = errors.New("invalid article")
	ErrUnknownArticle       = errors.New("unknown article")
	ErrArticleTooLarge      = errors.New("article exceeds sleigh capacity")
	ErrInvalidSpecification = errors.New("invalid specification")
	ErrCapacityExceeded     = errors.New("sleigh capacity exceeded")
	ErrNotOnBoard           = errors.New("article not on board")
	ErrInvalidRouteEntry    = errors.New("invalid route entry")
	ErrPlanNotFound         = errors.New("plan not found")
)

// WindowExceededError is reported when a tour does not fit the delivery window.
// RequiredSpeedKmh is the speed at which the same tour would have fit, assuming
// dwell time stays fixed; it is zero when dwell time alone overruns the window.
type WindowExceededError struct {
	Elapsed          time.Duration
	Window           time.Duration
	RequiredSpeedKmh float64
}

func (e *WindowExceededError) Error() string {
	if e.RequiredSpeedKmh <= 0 {
		return fmt.Sprintf(
			"delivery window exceeded: elapsed %s > window %s (stop time alone exceeds the window)",
			e.Elapsed.Round(time.Second), e.Window,
		)
	}
	return fmt.Sprintf(
		"delivery window exceeded: elapsed %s > window %s (needs at least %.0f km/h)",
		e.Elapsed.Round(time.Second), e.Window, e.RequiredSpeedKmh,
	)
}
