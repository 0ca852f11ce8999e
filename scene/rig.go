package scene

import (
	"sync"

	"github.com/golang/geo/r3"
)

// Rig is an in-memory scene holding one node per link. It stands in
// for a rendered model and is safe for concurrent use.
type Rig struct {
	mu    sync.Mutex
	nodes map[string]*rigNode
}

type rigNode struct {
	rig *Rig
	e   r3.Vector
}

func (n *rigNode) EulerAngles() r3.Vector {
	n.rig.mu.Lock()
	defer n.rig.mu.Unlock()
	return n.e
}

func (n *rigNode) SetEulerAngles(e r3.Vector) {
	n.rig.mu.Lock()
	defer n.rig.mu.Unlock()
	n.e = e
}

// NewRig returns a rig with a node for each of the named links, or for
// every link of the arm when none are named. All Euler angles start
// at zero.
func NewRig(links ...string) *Rig {
	if len(links) == 0 {
		links = []string{BaseLink, ShoulderLink, UpperarmLink, ForearmLink, Wrist1Link, Wrist2Link, Wrist3Link}
	}
	r := &Rig{nodes: make(map[string]*rigNode, len(links))}
	for _, l := range links {
		r.nodes[l] = &rigNode{rig: r}
	}
	return r
}

// Node returns the named node.
func (r *Rig) Node(name string) (Node, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.nodes[name]
	if !ok {
		return nil, false
	}
	return n, true
}
