package component

type InteractionKind string

const (
	InteractionNavigable InteractionKind = "navigable"
)

// Interaction tells the picking systems what a hit on this entity means.
type Interaction struct {
	Kind InteractionKind
	URL  string
}

var InteractionComponent = NewComponent[Interaction]()
