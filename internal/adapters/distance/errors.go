package distance

import "errors"

// ErrNoRoute is returned when a routing service answers but has no route for the pair.
var ErrNoRoute = errors.New("no route found")
