package collection

import "errors"

// ErrLinkResolutionMissing is returned when a linked id has no destination row.
var ErrLinkResolutionMissing = errors.New("link target not found in destination")
