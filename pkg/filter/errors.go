package filter

import "github.com/leterax/irrcross/pkg/cubemap"

// Error kinds shared with the rest of the filtering core. Argument
// validation errors are surfaced synchronously at the driver boundary;
// callers branch on these with errors.Is.
var (
	ErrInvalidDimensions = cubemap.ErrInvalidDimensions
	ErrUnsupportedLayout = cubemap.ErrUnsupportedLayout
)
