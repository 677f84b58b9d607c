package model

// WindowLabel maps a customer facing window name to a fixed clock range.
// The catalog is deliberately in code: labels are part of the product
// offering, not admin data, and the resolver needs them without a store
// round trip.
type WindowLabel struct {
	Name       string `json:"name"`
	StartClock string `json:"start_clock"` // "HH:MM"
	EndClock   string `json:"end_clock"`   // "HH:MM"
}

// WindowCatalog lists the bookable windows in presentation order.
var WindowCatalog = []WindowLabel{
	{Name: "morning", StartClock: "08:00", EndClock: "12:00"},
	{Name: "afternoon", StartClock: "12:00", EndClock: "16:00"},
	{Name: "evening", StartClock: "16:00", EndClock: "20:00"},
}

// LookupWindow resolves a label name to its clock range.  The second
// return value reports whether the label exists.
func LookupWindow(name string) (WindowLabel, bool) {
	for _, w := range WindowCatalog {
		if w.Name == name {
			return w, true
		}
	}
	return WindowLabel{}, false
}
