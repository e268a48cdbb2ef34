package input

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"xr-engine/core"
	"xr-engine/gfx"
	"xr-engine/materials"
	"xr-engine/math"
	"xr-engine/scene"
	"xr-engine/xr"
)

type Config struct {
	LaserColor  [4]float32
	CursorColor [4]float32

	// CursorDistance is how far along the pointer ray cursors are drawn.
	// No hit testing is done, so the cursor floats at this fixed distance.
	CursorDistance float32
	CursorSegments int

	Logger core.Logger
}

func DefaultConfig() Config {
	return Config{
		LaserColor:     materials.LaserDefaultColor,
		CursorColor:    materials.CursorDefaultColor,
		CursorDistance: 2.0,
		CursorSegments: CursorSegments,
	}
}

// InputRenderer draws controllers, pointer lasers and cursors for the input
// sources of each frame. Attach its Node to the scene, then every frame call
// Reset followed by AddInputSources (or the individual Add methods).
//
// Laser and cursor meshes are built through the gfx.Renderer the first time
// they are needed. The controller mesh must be supplied with
// SetControllerMesh; until then controllers are silently skipped.
type InputRenderer struct {
	*scene.Node

	renderer gfx.Renderer
	log      core.Logger

	laserMaterial  *materials.LaserMaterial
	cursorMaterial *materials.CursorMaterial

	cursorDistance float32
	cursorSegments int

	controllers *InstancePool
	lasers      *InstancePool
	cursors     *InstancePool
}

func NewInputRenderer(r gfx.Renderer, cfg Config) *InputRenderer {
	log := cfg.Logger
	if log == nil {
		log = core.NewNopLogger()
	}

	ir := &InputRenderer{
		Node:           scene.NewNode("InputRenderer"),
		renderer:       r,
		log:            log,
		laserMaterial:  materials.NewLaserMaterial(),
		cursorMaterial: materials.NewCursorMaterial(),
		cursorDistance: cfg.CursorDistance,
		cursorSegments: cfg.CursorSegments,
	}
	ir.laserMaterial.Color = cfg.LaserColor
	ir.cursorMaterial.Color = cfg.CursorColor

	ir.controllers = NewInstancePool(Controller, ir.Node, log)
	ir.lasers = NewInstancePool(Laser, ir.Node, log)
	ir.cursors = NewInstancePool(Cursor, ir.Node, log)
	return ir
}

// Pool exposes the instance pool for kind.
func (ir *InputRenderer) Pool(kind VisualKind) *InstancePool {
	switch kind {
	case Controller:
		return ir.controllers
	case Laser:
		return ir.lasers
	case Cursor:
		return ir.cursors
	}
	return nil
}

func (ir *InputRenderer) LaserMaterial() *materials.LaserMaterial { return ir.laserMaterial }

func (ir *InputRenderer) CursorMaterial() *materials.CursorMaterial { return ir.cursorMaterial }

// SetControllerMesh installs node as the controller template. It stays
// hidden until a controller is added.
func (ir *InputRenderer) SetControllerMesh(node *scene.Node) {
	ir.controllers.SetTemplate(node)
}

// AddController shows a controller at the grip matrix. Without a
// controller mesh this does nothing.
func (ir *InputRenderer) AddController(grip mgl32.Mat4) {
	controller := ir.controllers.AcquireNext()
	if controller == nil {
		ir.log.Debugf("input: no controller mesh, skipping controller")
		return
	}
	controller.SetMatrix(grip)
	ir.controllers.Activate(controller)
}

// AddLaserPointer shows a beam along the -Z axis of the pointer matrix.
func (ir *InputRenderer) AddLaserPointer(pointer mgl32.Mat4) error {
	if err := ir.lasers.EnsureTemplate(ir.createLaserMesh); err != nil {
		return err
	}
	laser := ir.lasers.AcquireNext()
	laser.SetMatrix(pointer)
	ir.lasers.Activate(laser)
	return nil
}

// AddCursor shows a cursor at a world position.
func (ir *InputRenderer) AddCursor(pos mgl32.Vec3) error {
	if err := ir.cursors.EnsureTemplate(ir.createCursorMesh); err != nil {
		return err
	}
	cursor := ir.cursors.AcquireNext()
	cursor.SetTranslation(pos)
	ir.cursors.Activate(cursor)
	return nil
}

// AddInputSources adds the visuals for every input source in frame:
// a controller for each grip pose, a laser for each hand-anchored pointer,
// and a cursor for every pointer. Sources without a pose are skipped.
func (ir *InputRenderer) AddInputSources(frame xr.Frame, ref *xr.FrameOfReference) error {
	for _, source := range frame.InputSources() {
		pose := frame.InputPose(source, ref)
		if pose == nil {
			continue
		}

		if pose.GripMatrix != nil {
			ir.AddController(*pose.GripMatrix)
		}

		if pose.PointerMatrix != nil {
			pointer := *pose.PointerMatrix
			if source.PointerOrigin == xr.PointerOriginHand {
				if err := ir.AddLaserPointer(pointer); err != nil {
					return err
				}
			}

			cursorPos := math.TransformPoint(pointer, mgl32.Vec3{0, 0, -ir.cursorDistance})
			if err := ir.AddCursor(cursorPos); err != nil {
				return err
			}
		}
	}
	return nil
}

// Reset hides all visuals. Call once per frame before adding sources.
func (ir *InputRenderer) Reset() {
	ir.controllers.Reset()
	ir.lasers.Reset()
	ir.cursors.Reset()
}

func (ir *InputRenderer) createLaserMesh() (*scene.Node, error) {
	verts, indices := LaserGeometry()

	vb, err := ir.renderer.CreateRenderBuffer(gfx.ArrayBuffer, gfx.Float32Data(verts))
	if err != nil {
		return nil, fmt.Errorf("laser vertex buffer: %w", err)
	}
	ib, err := ir.renderer.CreateRenderBuffer(gfx.ElementArrayBuffer, gfx.Uint16Data(indices))
	if err != nil {
		return nil, fmt.Errorf("laser index buffer: %w", err)
	}

	attribs := []gfx.PrimitiveAttribute{
		gfx.NewPrimitiveAttribute("POSITION", vb, 3, gfx.Float, laserVertexStride, 0),
		gfx.NewPrimitiveAttribute("TEXCOORD_0", vb, 2, gfx.Float, laserVertexStride, 12),
	}
	prim := gfx.NewPrimitive(attribs, len(indices))
	prim.SetIndexBuffer(ib, gfx.UnsignedShort)
	lr := float32(LaserDiameter * 0.5)
	prim.Bounds = &math.AABB{
		Min: mgl32.Vec3{-lr, -lr, -LaserLength},
		Max: mgl32.Vec3{lr, lr, 0},
	}

	rp, err := ir.renderer.CreateRenderPrimitive(prim, ir.laserMaterial)
	if err != nil {
		return nil, fmt.Errorf("laser primitive: %w", err)
	}
	node := scene.NewNode("laser")
	node.AddRenderPrimitive(rp)
	return node, nil
}

func (ir *InputRenderer) createCursorMesh() (*scene.Node, error) {
	verts, indices := CursorGeometry(ir.cursorSegments)

	vb, err := ir.renderer.CreateRenderBuffer(gfx.ArrayBuffer, gfx.Float32Data(verts))
	if err != nil {
		return nil, fmt.Errorf("cursor vertex buffer: %w", err)
	}
	ib, err := ir.renderer.CreateRenderBuffer(gfx.ElementArrayBuffer, gfx.Uint16Data(indices))
	if err != nil {
		return nil, fmt.Errorf("cursor index buffer: %w", err)
	}

	attribs := []gfx.PrimitiveAttribute{
		gfx.NewPrimitiveAttribute("POSITION", vb, 4, gfx.Float, cursorVertexStride, 0),
	}
	// No Bounds: the vertices are screen-space offsets expanded by the
	// billboard shader, not model-space positions.
	prim := gfx.NewPrimitive(attribs, len(indices))
	prim.SetIndexBuffer(ib, gfx.UnsignedShort)

	rp, err := ir.renderer.CreateRenderPrimitive(prim, ir.cursorMaterial)
	if err != nil {
		return nil, fmt.Errorf("cursor primitive: %w", err)
	}
	node := scene.NewNode("cursor")
	node.AddRenderPrimitive(rp)
	return node, nil
}
