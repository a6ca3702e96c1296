package browser

import "errors"

// Sentinel kinds for browser errors.
var (
	// ErrNoPage means neither a page nor a managed browser could be obtained.
	ErrNoPage = errors.New("browser page unavailable")
	// ErrUnavailable wraps failures to start or reach the browser.
	ErrUnavailable = errors.New("browser unavailable")
)
