package geneval

import (
	"fmt"
	"strconv"
	"strings"
)

// parseCMakeInteger parses a decimal, hex (0x…), octal (0…), or binary
// (optional sign then 0b/0B prefix) integer literal, per spec §4.3 EQUAL.
// The library strconv.ParseInt almost does this, except for the binary
// form: Go's own 0b prefix support requires base 0 *and* applies to
// unsigned magnitudes only when there is no leading sign, whereas CMake's
// EQUAL allows a sign before the 0b/0B prefix. We strip that ourselves and
// delegate the rest to strconv.ParseInt with base 0 (which already handles
// decimal/hex/octal autodetection identically to CMake's own rules).
func parseCMakeInteger(s string) (int64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty string", ErrBadInteger)
	}

	neg := false
	body := trimmed
	if body[0] == '+' || body[0] == '-' {
		neg = body[0] == '-'
		body = body[1:]
	}

	if len(body) > 1 && (body[1] == 'b' || body[1] == 'B') && body[0] == '0' {
		n, err := strconv.ParseUint(body[2:], 2, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrBadInteger, s)
		}
		v := int64(n)
		if neg {
			v = -v
		}
		return v, nil
	}

	v, err := strconv.ParseInt(trimmed, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrBadInteger, s)
	}
	return v, nil
}
