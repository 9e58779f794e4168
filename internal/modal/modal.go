// Package modal tracks which modal, if any, is open on a screen.
package modal

import (
	"net/url"
	"strconv"
)

// Kind names a modal. The zero value means no modal is open.
type Kind string

const (
	None    Kind = ""
	SignIn  Kind = "signin"
	Product Kind = "product"
	AddCard Kind = "add-card"
)

var kinds = map[Kind]bool{
	SignIn:  true,
	Product: true,
	AddCard: true,
}

// ParseKind returns the kind named by s
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	return k, kinds[k]
}

// State is the modal state of one screen. Holding a single kind means two
// modals can never be open at once.
type State struct {
	kind   Kind
	target int
}

// Open opens k, closing whatever was open
func (s *State) Open(k Kind) {
	s.OpenFor(k, 0)
}

// OpenFor opens k for a target such as a product id
func (s *State) OpenFor(k Kind, target int) {
	if !kinds[k] {
		s.Close()
		return
	}
	s.kind = k
	s.target = target
}

func (s *State) Close() {
	s.kind = None
	s.target = 0
}

// SetOpen opens k, or closes it when open is false. Closing a kind that is
// not the open one does nothing.
func (s *State) SetOpen(k Kind, open bool) {
	if open {
		s.Open(k)
		return
	}
	if s.kind == k {
		s.Close()
	}
}

// Toggle flips k
func (s *State) Toggle(k Kind) {
	s.SetOpen(k, !s.IsOpen(k))
}

func (s State) Current() Kind {
	return s.kind
}

func (s State) IsOpen(k Kind) bool {
	return k != None && s.kind == k
}

// Target returns the id the open modal refers to, or 0
func (s State) Target() int {
	return s.target
}

const (
	queryModal  = "modal"
	queryTarget = "target"
)

// FromQuery reads ?modal=product&target=12. Unknown kinds leave every
// modal closed.
func FromQuery(q url.Values) State {
	var s State
	k, ok := ParseKind(q.Get(queryModal))
	if !ok {
		return s
	}
	target, _ := strconv.Atoi(q.Get(queryTarget))
	s.OpenFor(k, target)
	return s
}

// Query encodes the state for a link, merged over base
func (s State) Query(base url.Values) url.Values {
	q := url.Values{}
	for k, v := range base {
		q[k] = append([]string(nil), v...)
	}
	q.Del(queryModal)
	q.Del(queryTarget)
	if s.kind != None {
		q.Set(queryModal, string(s.kind))
		if s.target != 0 {
			q.Set(queryTarget, strconv.Itoa(s.target))
		}
	}
	return q
}

// Link returns path with the state in its query string
func (s State) Link(path string, base url.Values) string {
	q := s.Query(base)
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
