package cubemap

import "errors"

// Sentinel errors shared across the filtering core's packages. Callers
// branch on these with errors.Is; the driver wraps them with context via
// fmt.Errorf("...: %w", ...) at the point of detection.
var (
	ErrInvalidDimensions = errors.New("cubemap: invalid dimensions")
	ErrUnsupportedLayout = errors.New("cubemap: unsupported layout")
	ErrNotImplemented    = errors.New("cubemap: operation not implemented for this layout")
)
