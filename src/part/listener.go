package part

import (
	"sort"

	"github.com/will-rowe/origami/src/vhelix"
)

// Op names the kind of edit carried by an Event
type Op int

const (
	OpAddHelix Op = iota
	OpRemoveHelix
	OpInstallXover
	OpRemoveXover
	OpClearStrand
	OpConnectStrand
	OpRenumber
	OpResize
	OpDecorate
	OpColor
	OpAutoStaple
)

var opNames = [...]string{
	OpAddHelix:      "addHelix",
	OpRemoveHelix:   "removeHelix",
	OpInstallXover:  "installXover",
	OpRemoveXover:   "removeXover",
	OpClearStrand:   "clearStrand",
	OpConnectStrand: "connectStrand",
	OpRenumber:      "renumber",
	OpResize:        "resize",
	OpDecorate:      "decorate",
	OpColor:         "color",
	OpAutoStaple:    "autoStaple",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return "unknown"
	}
	return opNames[o]
}

// BaseRange is an inclusive run of bases on one strand of one helix
type BaseRange struct {
	Helix  int
	Strand vhelix.StrandType
	Lo     int
	Hi     int
}

// Event describes a committed edit.
// Helices lists every helix id the edit touched, Ranges the bases whose slots changed.
type Event struct {
	Op      Op
	Helices []int
	Ranges  []BaseRange
}

// Listener receives an Event after every committed edit
type Listener interface {
	PartChanged(Event)
}

// ListenerFunc adapts a plain function to the Listener interface
type ListenerFunc func(Event)

// PartChanged calls f(e)
func (f ListenerFunc) PartChanged(e Event) {
	f(e)
}

// ListenerID is returned by AddListener and used to unregister
type ListenerID int

type registration struct {
	id       ListenerID
	listener Listener
}

// AddListener registers l; listeners are called in registration order
func (p *Part) AddListener(l Listener) ListenerID {
	p.lastListener++
	p.listeners = append(p.listeners, registration{p.lastListener, l})
	return p.lastListener
}

// RemoveListener unregisters a listener, reporting whether it was registered
func (p *Part) RemoveListener(id ListenerID) bool {
	for i, r := range p.listeners {
		if r.id == id {
			p.listeners = append(p.listeners[:i], p.listeners[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Part) notify(e Event) {
	// copy so a listener may unregister itself
	regs := make([]registration, len(p.listeners))
	copy(regs, p.listeners)
	for _, r := range regs {
		r.listener.PartChanged(e)
	}
}

// eventFor builds an Event from the addresses written by a commit
func eventFor(op Op, addrs []vhelix.Address) Event {
	sorted := make([]vhelix.Address, len(addrs))
	copy(sorted, addrs)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Helix != b.Helix {
			return a.Helix < b.Helix
		}
		if a.Strand != b.Strand {
			return a.Strand < b.Strand
		}
		return a.Index < b.Index
	})
	e := Event{Op: op}
	for _, a := range sorted {
		if n := len(e.Helices); n == 0 || e.Helices[n-1] != a.Helix {
			e.Helices = append(e.Helices, a.Helix)
		}
		if n := len(e.Ranges); n > 0 {
			last := &e.Ranges[n-1]
			if last.Helix == a.Helix && last.Strand == a.Strand && last.Hi+1 >= a.Index {
				last.Hi = a.Index
				continue
			}
		}
		e.Ranges = append(e.Ranges, BaseRange{Helix: a.Helix, Strand: a.Strand, Lo: a.Index, Hi: a.Index})
	}
	return e
}

// helixEvent is an Event covering whole helices
func helixEvent(op Op, ids ...int) Event {
	return Event{Op: op, Helices: ids}
}
