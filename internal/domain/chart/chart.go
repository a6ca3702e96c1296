// Package chart holds the chart vocabulary shared by every pipeline stage:
// the closed set of keys the report cares about, parsed chart definitions and
// numeric series.
package chart

import "strings"

// Key identifies one of the indicators the report renders.
type Key string

// Known keys. The set is closed.
const (
	OnlineUsers          Key = "online-users"
	APILatency           Key = "api-latency"
	APIRequests          Key = "api-requests"
	APIErrorRate         Key = "api-error-rate"
	SteamAuthSuccessRate Key = "steam-auth-success-rate"
	MetaAuthSuccessRate  Key = "meta-auth-success-rate"
)

// CCUName is the definition name of the concurrent-users chart.
const CCUName = "ccu"

// keys keeps declaration order for deterministic iteration.
var keys = []Key{
	OnlineUsers,
	APILatency,
	APIRequests,
	APIErrorRate,
	SteamAuthSuccessRate,
	MetaAuthSuccessRate,
}

var titles = map[Key]string{
	OnlineUsers:          "Online users",
	APILatency:           "API Latency",
	APIRequests:          "API Requests",
	APIErrorRate:         "API Error Rate",
	SteamAuthSuccessRate: "Steam Auth Success Rate",
	MetaAuthSuccessRate:  "Meta Auth Success Rate",
}

// Keys returns all known keys in canonical order.
func Keys() []Key {
	out := make([]Key, len(keys))
	copy(out, keys)
	return out
}

// Title returns the canonical display title of k, or "" for unknown keys.
func (k Key) Title() string { return titles[k] }

// Valid reports whether k is one of the known keys.
func (k Key) Valid() bool {
	_, ok := titles[k]
	return ok
}

// SmallDecimals reports whether value labels of k need two decimals below 1.
func (k Key) SmallDecimals() bool {
	return k == APILatency || k == APIRequests
}

// KeyForTitle matches title against the canonical titles, ignoring case.
func KeyForTitle(title string) (Key, bool) {
	for _, k := range keys {
		if strings.EqualFold(titles[k], title) {
			return k, true
		}
	}
	return "", false
}

// Definition describes one remote chart endpoint found in the status page.
type Definition struct {
	Name       string `json:"name"`
	Title      string `json:"title"`
	DataURL    string `json:"url"`
	OverlayURL string `json:"overlay,omitempty"`
	Filled     bool   `json:"filled"` // true iff Name == CCUName
}

// NewDefinition builds a Definition and derives Filled.
func NewDefinition(name, title, dataURL, overlayURL string) Definition {
	return Definition{
		Name:       name,
		Title:      title,
		DataURL:    dataURL,
		OverlayURL: overlayURL,
		Filled:     name == CCUName,
	}
}

// HasOverlay reports whether an overlay series should be fetched.
func (d Definition) HasOverlay() bool { return d.OverlayURL != "" }

// Rendered maps keys to self-contained SVG documents. A missing key means
// "render a No Data placeholder".
type Rendered map[Key]string

// Keys returns the present keys in canonical order.
func (r Rendered) Keys() []Key {
	out := make([]Key, 0, len(r))
	for _, k := range keys {
		if _, ok := r[k]; ok {
			out = append(out, k)
		}
	}
	return out
}
