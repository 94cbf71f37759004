package devicectl

import (
	"errors"
	"fmt"
	"sync"

	"github.com/brunoga/deep"

	"github.com/einherij/groundlink/pkg/protocol"
)

var (
	ErrDuplicateID = errors.New("duplicate device control id")
	ErrUnknownID   = errors.New("unknown device control id")
)

type Kind uint32

const (
	KindBool Kind = iota
	KindInt
	KindMenu
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindMenu:
		return "menu"
	default:
		return fmt.Sprintf("kind(%d)", uint32(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Descriptor is a remotely announced tunable parameter.
type Descriptor struct {
	ID         uint32           `json:"id"`
	Name       string           `json:"name"`
	Kind       Kind             `json:"kind"`
	Min        int32            `json:"min"`
	Max        int32            `json:"max"`
	Step       int32            `json:"step"`
	Default    int32            `json:"default"`
	Current    int32            `json:"current"`
	MenuLabels map[int32]string `json:"menu_labels,omitempty"`
}

func FromAnnouncement(a protocol.ControlAnnouncement) Descriptor {
	return Descriptor{
		ID:      a.ID,
		Name:    a.Name,
		Kind:    Kind(a.Kind),
		Min:     a.Min,
		Max:     a.Max,
		Step:    a.Step,
		Default: a.Default,
		Current: a.Current,
	}
}

// Registry tracks the controls announced during one session. Ids are
// registered once; the registry is cleared when the session ends.
type Registry struct {
	mux      sync.RWMutex
	controls map[uint32]*Descriptor
	order    []uint32
}

func New() *Registry {
	return &Registry{
		controls: make(map[uint32]*Descriptor),
	}
}

func (r *Registry) Register(d Descriptor) error {
	r.mux.Lock()
	defer r.mux.Unlock()

	if _, ok := r.controls[d.ID]; ok {
		return fmt.Errorf("%w: %d (%q)", ErrDuplicateID, d.ID, d.Name)
	}
	d.MenuLabels = nil
	r.controls[d.ID] = &d
	r.order = append(r.order, d.ID)
	return nil
}

func (r *Registry) ApplyMenuLabel(id uint32, index int32, label string) (Descriptor, error) {
	r.mux.Lock()
	defer r.mux.Unlock()

	d, ok := r.controls[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %d", ErrUnknownID, id)
	}
	if d.MenuLabels == nil {
		d.MenuLabels = make(map[int32]string)
	}
	d.MenuLabels[index] = label
	return copyDescriptor(d), nil
}

// SetValue changes the local copy only. Remote updates go through the
// session, which calls SetValue once the remote confirms.
func (r *Registry) SetValue(id uint32, value int32) (Descriptor, error) {
	r.mux.Lock()
	defer r.mux.Unlock()

	d, ok := r.controls[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %d", ErrUnknownID, id)
	}
	d.Current = value
	return copyDescriptor(d), nil
}

func (r *Registry) Get(id uint32) (Descriptor, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()

	d, ok := r.controls[id]
	if !ok {
		return Descriptor{}, false
	}
	return copyDescriptor(d), true
}

// Snapshot returns the controls in announcement order.
func (r *Registry) Snapshot() []Descriptor {
	r.mux.RLock()
	defer r.mux.RUnlock()

	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, copyDescriptor(r.controls[id]))
	}
	return out
}

func (r *Registry) Len() int {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return len(r.order)
}

func (r *Registry) Clear() {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.controls = make(map[uint32]*Descriptor)
	r.order = nil
}

func copyDescriptor(d *Descriptor) Descriptor {
	return deep.MustCopy(*d)
}
