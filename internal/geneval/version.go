package geneval

import (
	"fmt"
	"strconv"
	"strings"
)

// compareVersions implements the dot-separated, non-negative-integer
// component comparison spec §4.3 requires for VERSION_LESS/GREATER/EQUAL
// and their _EQUAL variants. Missing trailing components compare as 0.
//
// golang.org/x/mod/semver (the one semver library present across the
// example corpus, see dagger-dagger and luci-luci-go's go.mod) enforces
// Go's strict "vMAJOR[.MINOR[.PATCH[-PRERELEASE]]]" module-version syntax
// and rejects anything else outright — it has no notion of a bare,
// unbounded-length dotted integer list like "1.2.3.4" with no "v" prefix,
// which is exactly what this operator family must accept. There is no
// ecosystem library for that narrower format, so the comparator here is
// hand-written, the same way the teacher hand-writes its own duration and
// XOR validation in validate_raw.go rather than reaching for a generic
// validation framework.
func compareVersions(a, b string) (int, error) {
	pa, err := splitVersion(a)
	if err != nil {
		return 0, err
	}
	pb, err := splitVersion(b)
	if err != nil {
		return 0, err
	}

	n := len(pa)
	if len(pb) > n {
		n = len(pb)
	}
	for i := 0; i < n; i++ {
		var va, vb uint64
		if i < len(pa) {
			va = pa[i]
		}
		if i < len(pb) {
			vb = pb[i]
		}
		if va != vb {
			if va < vb {
				return -1, nil
			}
			return 1, nil
		}
	}
	return 0, nil
}

func splitVersion(s string) ([]uint64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ".")
	out := make([]uint64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadVersion, s)
		}
		out[i] = v
	}
	return out, nil
}
