// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/forkedfool/Chillville-Awards-2025/apperr"
)

// dbError classifies a driver error. Deadlines become timeouts, broken
// connections become unavailable and everything else is internal.
func dbError(message string, err error) error {
	var netErr net.Error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return apperr.Wrap(apperr.CodeTimeout, message, err)
	case errors.Is(err, driver.ErrBadConn), errors.As(err, &netErr):
		return apperr.Wrap(apperr.CodeUnavailable, message, err)
	default:
		return apperr.Wrap(apperr.CodeInternal, message, err)
	}
}
