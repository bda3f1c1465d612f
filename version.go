package codec

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a packet definition version triple, written on the wire as a
// UTF-8 string such as "1.0.0" (§4.7).
type Version struct {
	Major, Minor, Patch int
}

// String renders the version the way it is written to the wire.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ParseVersion parses a "major.minor.patch" string. Missing trailing
// components default to zero, so "1" and "1.0" both parse to Version{1,0,0}.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) == 0 || len(parts) > 3 || s == "" {
		return Version{}, newEncodingError("invalid packet definition version %q", s)
	}
	nums := [3]int{}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, wrapEncodingError(err, "invalid packet definition version %q", s)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}
