package network

import (
	"errors"
	"fmt"

	"github.com/randytsao24/navnet/internal/models"
)

// ErrUnreachable matches every *UnreachableError
var ErrUnreachable = errors.New("coordinate not serviced by network")

// UnreachableError reports a coordinate that no station (Kind == KindStation)
// or no stop (Kind == KindStop) of the network services.
type UnreachableError struct {
	Coordinate any
	Kind       models.NodeKind
	Network    models.NetworkInfo
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("no %s of network %s v%d services %v",
		e.Kind, e.Network.Name, e.Network.Version, e.Coordinate)
}

func (e *UnreachableError) Is(target error) bool {
	return target == ErrUnreachable
}
