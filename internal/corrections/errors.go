package corrections

import "errors"

// ErrAlreadyPresented indicates the trámite already has a first presentation
// recorded for the stage.
var ErrAlreadyPresented = errors.New("first presentation already recorded")
