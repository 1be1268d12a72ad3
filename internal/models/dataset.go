package models

// Dataset bundles the institutional inputs one generation run consumes. It is
// produced by the persistence layer (or the JSON loader at the CLI boundary)
// and treated as read-only by the engine.
type Dataset struct {
	Sections []Section `json:"sections" validate:"dive"`
	Teachers []Teacher `json:"teachers" validate:"dive"`
	Rooms    []Room    `json:"rooms" validate:"dive"`
	Subjects []Subject `json:"subjects" validate:"dive"`
}
