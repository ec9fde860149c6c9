package store

import "time"

// PanelState is the stored, JSON-ready form of one evaluated panel.
//
// It is decoupled from the SDK's View type so that the wire format can
// evolve independently. Floating point values that may be non-finite are
// pointers: nil encodes as JSON null.
type PanelState struct {
	// Name is the panel's unique name, used as the storage key.
	Name string `json:"name"`

	// Label is the caption, empty when hidden.
	Label string `json:"label"`

	// DisplayMode is "single", "grid" or "list".
	DisplayMode string `json:"display_mode"`

	// Level is the worst level across all fields.
	Level string `json:"level"`

	// Fields holds one entry per evaluated field, in display order.
	Fields []FieldState `json:"fields"`

	// Style carries the presentation settings the dashboard needs.
	Style Style `json:"style"`

	// RefreshedAt is when the panel's source was last read.
	RefreshedAt time.Time `json:"refreshed_at"`

	// DurationMs is how long loading and evaluating took.
	DurationMs int64 `json:"duration_ms"`

	// Error contains the message of a failed refresh.
	// nil indicates the source was read successfully.
	Error *string `json:"error"`
}

// FieldState is the evaluation of a single field.
type FieldState struct {
	Field      string           `json:"field"`
	Value      *float64         `json:"value"`
	Formatted  string           `json:"formatted"`
	Level      string           `json:"level"`
	Emoji      string           `json:"emoji"`
	Trend      *TrendState      `json:"trend,omitempty"`
	History    *HistoryState    `json:"history,omitempty"`
	Statistics *StatisticsState `json:"statistics,omitempty"`
	Comparison *ComparisonState `json:"comparison,omitempty"`
	Alert      string           `json:"alert,omitempty"`
	Pulse      bool             `json:"pulse"`
}

// TrendState is the trend section of a field.
type TrendState struct {
	Direction     string   `json:"direction"`
	ChangePercent *float64 `json:"change_percent"`
	Indicator     string   `json:"indicator"`
	Glyph         string   `json:"glyph"`
}

// HistoryState holds level counts over the recent window.
type HistoryState struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	OK        int `json:"ok"`
	Warning   int `json:"warning"`
	Critical  int `json:"critical"`
	Total     int `json:"total"`
}

// StatisticsState holds whole-series statistics.
type StatisticsState struct {
	Min   *float64 `json:"min"`
	Max   *float64 `json:"max"`
	Avg   *float64 `json:"avg"`
	Count int      `json:"count"`
}

// ComparisonState is the comparison section of a field.
type ComparisonState struct {
	Mode       string   `json:"mode"`
	Reference  *float64 `json:"reference"`
	Difference *float64 `json:"difference"`
	Percent    *float64 `json:"percent"`
	Met        bool     `json:"met"`
}

// Style carries presentation settings through to the dashboard.
type Style struct {
	EmojiSize  int    `json:"emoji_size"`
	FontSize   int    `json:"font_size"`
	TextColor  string `json:"text_color"`
	Background string `json:"background"`
	Animation  bool   `json:"animation"`
	Drilldown  bool   `json:"drilldown"`
	ShowValue  bool   `json:"show_value"`
}

// Store defines the interface for storing and subscribing to panel states.
//
// Store implementations must be safe for concurrent access.
type Store interface {
	// Update stores a new panel state and notifies all subscribers.
	// States are keyed by Name, so subsequent updates replace previous values.
	Update(state PanelState)

	// Get returns the state stored under name.
	Get(name string) (PanelState, bool)

	// GetAll returns all stored states sorted by name.
	// The returned slice is a snapshot; modifications do not affect the store.
	GetAll() []PanelState

	// Subscribe returns a channel that receives state updates.
	// The returned channel has a buffer; slow consumers may miss updates.
	// Caller must call Unsubscribe when done to prevent resource leaks.
	Subscribe() <-chan PanelState

	// Unsubscribe removes a subscription and closes the channel.
	// Safe to call with a channel that was already unsubscribed.
	Unsubscribe(ch <-chan PanelState)
}
