package handler // handler defines http handlers

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

// getUserID extracts the user_id stored by the JWT middleware and
// converts it to uint64. JSON numbers arrive as float64; tests and
// internal callers may store native integer types.
func getUserID(c echo.Context) (uint64, error) {
	return contextUint(c, "user_id")
}

// getPrincipalID extracts the principal_id claim: the student or
// faculty row the authenticated login maps to.
func getPrincipalID(c echo.Context) (uint64, error) {
	return contextUint(c, "principal_id")
}

func contextUint(c echo.Context, key string) (uint64, error) {
	switch t := c.Get(key).(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid " + key + " in context")
}

// parseUint parses a numeric query parameter, rejecting zero.
func parseUint(raw string) (uint64, error) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, errors.New("invalid numeric parameter")
	}
	return n, nil
}

// pathID parses a numeric path parameter, rejecting zero.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}
