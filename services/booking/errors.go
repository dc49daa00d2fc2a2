// File: services/booking/errors.go
package booking

import "errors"

// ErrNoRoom reports that no available room fits the requested window. It is
// an expected business outcome that drives the alternatives search.
var ErrNoRoom = errors.New("no suitable room available for the requested window")

// ErrSlotTaken reports that the commit lost the conflict race twice. The
// caller should ask the user for a different time.
var ErrSlotTaken = errors.New("slot was taken by a concurrent reservation")
