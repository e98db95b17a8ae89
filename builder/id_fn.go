// SPDX-License-Identifier: MIT
// Package: flowplan/builder
//
// id_fn.go - node ID schemes.

package builder

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// IDFn maps a zero-based node index to a node ID. Implementations must be
// pure and injective.
type IDFn func(idx int) string

// DefaultIDFn renders the index in base 10: "0", "1", ...
func DefaultIDFn(idx int) string {
	return strconv.Itoa(idx)
}

// SymbolNumberIDFn prefixes the index: SymbolNumberIDFn("n")(3) == "n3".
func SymbolNumberIDFn(prefix string) IDFn {
	return func(idx int) string {
		return fmt.Sprintf("%s%d", prefix, idx)
	}
}

// UUIDIDFn derives name-based (SHA-1, version 5) UUIDs from namespace and
// the index, so the same index always yields the same ID.
func UUIDIDFn(namespace uuid.UUID) IDFn {
	return func(idx int) string {
		return uuid.NewSHA1(namespace, []byte(strconv.Itoa(idx))).String()
	}
}
