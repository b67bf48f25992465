package component

// Name labels an entity for lookups and the debug overlay.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()

type StarTag struct{}

var StarTagComponent = NewComponent[StarTag]()
