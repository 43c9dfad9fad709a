package model

// Marker is a supplementary structured flag reported with a case or required by
// a rule row. Code and value are compared verbatim; they are never normalized.
type Marker struct {
	Code  string
	Value string
}

// String renders the marker in its input form, "code&value".
func (m Marker) String() string {
	return m.Code + "&" + m.Value
}

// ContainsMarker reports whether m is structurally present in markers.
func ContainsMarker(markers []Marker, m Marker) bool {
	for _, x := range markers {
		if x == m {
			return true
		}
	}
	return false
}
