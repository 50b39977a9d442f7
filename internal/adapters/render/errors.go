package render

import "errors"

// Sentinel errors for chart rendering.
var (
	ErrEncodeSpec = errors.New("encode chart spec")
	ErrRender     = errors.New("render chart document")
)
