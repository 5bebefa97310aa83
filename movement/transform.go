package movement

import "github.com/go-gl/mathgl/mgl32"

// Transform is a node attached to the body, such as the camera or a visual proxy of the capsule.
type Transform interface {
	LocalPosition() mgl32.Vec3
	SetLocalPosition(pos mgl32.Vec3)
	SetLocalRotation(rot mgl32.Quat)
	LocalScale() mgl32.Vec3
	SetLocalScale(scale mgl32.Vec3)
}

// Camera is the transform the look pitch is applied to.
type Camera interface {
	Transform
	SetFieldOfView(fov float32)
}

// Node is a plain Camera implementation that only stores its values. Controllers fall back to a Node when
// no camera is attached.
type Node struct {
	Position    mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
	FieldOfView float32
}

// NewNode returns a node at pos with identity rotation and unit scale.
func NewNode(pos mgl32.Vec3) *Node {
	return &Node{Position: pos, Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}}
}

func (n *Node) LocalPosition() mgl32.Vec3 { return n.Position }
func (n *Node) SetLocalPosition(pos mgl32.Vec3) { n.Position = pos }
func (n *Node) SetLocalRotation(rot mgl32.Quat) { n.Rotation = rot }
func (n *Node) LocalScale() mgl32.Vec3 { return n.Scale }
func (n *Node) SetLocalScale(scale mgl32.Vec3) { n.Scale = scale }
func (n *Node) SetFieldOfView(fov float32) { n.FieldOfView = fov }
