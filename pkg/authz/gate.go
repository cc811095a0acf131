// Package authz checks a presented PIN against the holder directory kept in
// the Users sheet.
package authz

import (
	"context"

	"github.com/harrisonrobin/tasksheet/pkg/store"
	"github.com/pkg/errors"
)

// ErrUnauthorized is returned when no holder carries the presented PIN.
var ErrUnauthorized = errors.New("Invalid 6-digit PIN.")

// Authorize scans holder rows ([pin, name]) and returns the name of the first
// row whose pin cell equals pin exactly.
func Authorize(pin string, holderRows [][]string) (string, error) {
	for _, row := range holderRows {
		if len(row) == 0 || row[0] != pin {
			continue
		}
		if len(row) < 2 {
			return "", nil
		}
		return row[1], nil
	}
	return "", ErrUnauthorized
}

// Gate reads the full holder directory from the store on every call.
type Gate struct {
	store store.Store
	rng   string
}

// NewGate returns a gate reading holders from rng, e.g. "Users!A2:B".
func NewGate(s store.Store, rng string) *Gate {
	return &Gate{store: s, rng: rng}
}

// Authorize fetches the directory and checks pin against it. Store errors are
// never reported as ErrUnauthorized.
func (g *Gate) Authorize(ctx context.Context, pin string) (string, error) {
	rows, err := g.store.Get(ctx, g.rng)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return Authorize(pin, rows)
}
