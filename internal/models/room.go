package models

// Room represents a classroom or lab available for scheduling.
type Room struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Capacity int      `json:"capacity" validate:"min=0"`
	Tags     []string `json:"tags,omitempty"`
}
