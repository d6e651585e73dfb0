// Package status implements the transient status notice and its visible, fading and hidden lifecycle.
package status

import "encoding/json"

// Kind selects the style a notice is rendered with.
type Kind int

const (
	Success Kind = iota
	Error
)

func (k Kind) String() string {
	if k == Error {
		return "error"
	}
	return "success"
}

// Stage is the position of a notice in its display lifecycle.
type Stage int

const (
	Visible Stage = iota
	Fading
	Hidden
)

func (s Stage) String() string {
	switch s {
	case Fading:
		return "fade-out"
	case Hidden:
		return "hidden"
	default:
		return "visible"
	}
}

// Notice is a single status message shown to the user.
type Notice struct {
	// RequestID ties the notice to the request that produced it.
	RequestID string
	Kind      Kind
	Text      string
	Stage     Stage
}

// IsError reports whether the notice uses the error style.
func (n Notice) IsError() bool {
	return n.Kind == Error
}

// MarshalJSON renders kind and stage by name.
func (n Notice) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		RequestID string `json:"request_id"`
		Kind      string `json:"kind"`
		Text      string `json:"text"`
		Stage     string `json:"stage"`
	}{
		RequestID: n.RequestID,
		Kind:      n.Kind.String(),
		Text:      n.Text,
		Stage:     n.Stage.String(),
	})
}

// Display is the label a notice is rendered on.
type Display interface {
	Show(Notice)
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(Notice)

func (f DisplayFunc) Show(n Notice) { f(n) }

// Multi fans a notice out to several displays in order.
func Multi(displays ...Display) Display {
	return DisplayFunc(func(n Notice) {
		for _, d := range displays {
			d.Show(n)
		}
	})
}
