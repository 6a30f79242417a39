// Package delivery defines the contract every transport entry point
// implements.
package delivery

import (
	"context"
)

// Delivery is a serving transport (HTTP today) started at application boot.
type Delivery interface {
	Serve(ctx context.Context) error
}
