package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Oid identifies a git object by its hex digest, normalized to lower case.
type Oid string

// ParseOid validates that s is a sequence of hex octets and returns it in
// canonical form.
func ParseOid(s string) (Oid, error) {
	if s == "" {
		return "", errors.New("empty object id")
	}
	if len(s)%2 != 0 {
		return "", fmt.Errorf("%q cannot be parsed as an octet", s[len(s)-1:])
	}

	for i := 0; i < len(s); i += 2 {
		if _, err := strconv.ParseUint(s[i:i+2], 16, 8); err != nil {
			return "", fmt.Errorf("%q cannot be parsed as an octet", s[i:i+2])
		}
	}

	return Oid(strings.ToLower(s)), nil
}

func (o Oid) String() string {
	return string(o)
}
