package renderer

import "errors"

var ErrInvalidFrameSize = errors.New("renderer: frame dimensions must be positive")
