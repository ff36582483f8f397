package engine

import "errors"

var (
	ErrInvalidDeck    = errors.New("invalid deck")
	ErrInvalidCard    = errors.New("invalid card")
	ErrUnknownIntent  = errors.New("unknown intent")
	ErrInvariant      = errors.New("invariant violated")
	ErrNilRandom      = errors.New("random source cannot be nil")
	ErrInvalidColumn  = errors.New("invalid tableau column")
	ErrConfigRequired = errors.New("config cannot be nil")
)
