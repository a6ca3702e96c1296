package graphs

import "errors"

// ErrNotFound reports that the page carries no recognizable graphs declaration.
var ErrNotFound = errors.New("graphs declaration not found")
