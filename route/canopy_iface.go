package route

import "github.com/maseology/patchroute/canopy"

// CanopyProducer is the canopy collaborator's contract, aliasing
// canopy.Producer so route.Engine callers need not import the canopy
// package directly just to name the interface.
type CanopyProducer = canopy.Producer

var _ CanopyProducer = canopy.Zero{}
