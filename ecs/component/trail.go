package component

// TrailMarker tags entities owned by the trail manager. Seq is the insertion
// number of the marker, starting at 1.
type TrailMarker struct {
	Seq int
}

var TrailMarkerComponent = NewComponent[TrailMarker]()
