package input

import (
	"fmt"

	"xr-engine/core"
	"xr-engine/scene"
)

// VisualKind names the repeated visuals drawn for input sources.
type VisualKind int

const (
	Controller VisualKind = iota
	Laser
	Cursor
)

func (k VisualKind) String() string {
	switch k {
	case Controller:
		return "controller"
	case Laser:
		return "laser"
	case Cursor:
		return "cursor"
	}
	return fmt.Sprintf("VisualKind(%d)", int(k))
}

// InstancePool hands out scene nodes of one kind, frame after frame.
//
// Index 0 is the template; further instances are clones of it, attached to
// the pool's parent when created and never removed. Instances below Active
// are visible this frame, the rest are hidden. Reuse follows index order, so
// the n-th visual requested in a frame always lands on the same node.
type InstancePool struct {
	kind      VisualKind
	parent    *scene.Node
	instances []*scene.Node
	active    int
	log       core.Logger
}

func NewInstancePool(kind VisualKind, parent *scene.Node, log core.Logger) *InstancePool {
	if log == nil {
		log = core.NewNopLogger()
	}
	return &InstancePool{kind: kind, parent: parent, log: log}
}

func (p *InstancePool) Kind() VisualKind { return p.kind }

func (p *InstancePool) HasTemplate() bool { return len(p.instances) > 0 }

// Len is the number of instances ever created, template included.
func (p *InstancePool) Len() int { return len(p.instances) }

// Active is the number of instances shown this frame.
func (p *InstancePool) Active() int { return p.active }

// Instances returns the pool's nodes in reuse order.
func (p *InstancePool) Instances() []*scene.Node {
	return append([]*scene.Node(nil), p.instances...)
}

// EnsureTemplate builds the template with factory if the pool is empty.
// Later calls do nothing.
func (p *InstancePool) EnsureTemplate(factory func() (*scene.Node, error)) error {
	if p.HasTemplate() {
		return nil
	}
	node, err := factory()
	if err != nil {
		return fmt.Errorf("%s template: %w", p.kind, err)
	}
	if node == nil {
		return fmt.Errorf("%s template: factory returned no node", p.kind)
	}
	p.install(node)
	return nil
}

// SetTemplate replaces the pool's contents with node as the new template.
// Previously created instances are detached from the parent.
func (p *InstancePool) SetTemplate(node *scene.Node) {
	for _, inst := range p.instances {
		if p.parent != nil {
			p.parent.RemoveChild(inst)
		}
	}
	p.instances = nil
	p.active = 0
	if node != nil {
		p.install(node)
	}
}

func (p *InstancePool) install(node *scene.Node) {
	node.Visible = false
	p.instances = []*scene.Node{node}
	if p.parent != nil {
		p.parent.AddChild(node)
	}
	p.log.Debugf("input: %s template installed", p.kind)
}

// AcquireNext returns the instance that the next Activate call will show,
// cloning the template when every existing instance is in use. It returns
// nil if the pool has no template. Acquiring twice without activating
// returns the same node.
func (p *InstancePool) AcquireNext() *scene.Node {
	if !p.HasTemplate() {
		return nil
	}
	if p.active < len(p.instances) {
		return p.instances[p.active]
	}
	inst := p.instances[0].Clone()
	inst.Visible = false
	if p.parent != nil {
		p.parent.AddChild(inst)
	}
	p.instances = append(p.instances, inst)
	p.log.Debugf("input: %s pool grew to %d", p.kind, len(p.instances))
	return inst
}

// Activate shows node and counts it as used this frame. node must be the
// one AcquireNext just returned; anything else is ignored.
func (p *InstancePool) Activate(node *scene.Node) {
	if node == nil || p.active >= len(p.instances) || p.instances[p.active] != node {
		return
	}
	node.Visible = true
	p.active++
}

// Reset hides every instance and marks all of them free.
func (p *InstancePool) Reset() {
	for _, inst := range p.instances {
		inst.Visible = false
	}
	p.active = 0
}
