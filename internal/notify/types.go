package notify

import "time"

// Kind is the visual style of a toast.
type Kind string

const (
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
)

// Toast is a transient message shown to the learner.
type Toast struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	Delivered bool      `json:"delivered"`
	CreatedAt time.Time `json:"created_at"`
}
