package models

// Requests for the cycle HTTP endpoints. Defined in domain for consistency
// and reuse.

type RunCycleRequest struct {
	Market    string `query:"market" json:"market" validate:"required"`
	Timeframe string `query:"timeframe" json:"timeframe" default:"1D" validate:"oneof=1H 4H 1D 1W"`
}

type CyclesRequest struct {
	Market string `query:"market" json:"market" validate:"required"`
	Limit  int    `query:"limit" json:"limit" default:"50" validate:"gte=1,lte=500"`
}

// ConstraintsRequest updates price bounds. Nil fields leave the
// corresponding bound unchanged.
type ConstraintsRequest struct {
	Min *float64 `json:"min" validate:"omitempty"`
	Max *float64 `json:"max" validate:"omitempty"`
}

type NewsRequest struct {
	Market string `query:"market" json:"market" validate:"required"`
}
