package scene

import (
	"fmt"

	compas "github.com/jf---/compas"
	"github.com/jf---/compas/colors"
	"github.com/jf---/compas/datastructures"
	"github.com/jf---/compas/geometry"
)

// DefaultColor is the color of scene objects constructed without an
// explicit color.
var DefaultColor = colors.White

// contrastAmount is the lighten/darken percentage used for contrast colors.
const contrastAmount = 50

// ObjectOptions configures a scene object at construction. Nil pointer
// fields fall back to defaults (opacity 1, show true, DefaultColor, no
// frame, no transformation). An empty Context inherits the parent's context
// or, at top level, resolves to the sole registered backend.
type ObjectOptions struct {
	Name           string
	Color          *colors.Color
	Opacity        *float64
	Show           *bool
	Frame          *geometry.Frame
	Transformation *geometry.Transformation
	Context        string
}

// SceneObject wraps a domain item in presentation attributes and delegates
// drawing to the backend registered for the item's type in the object's
// context. The item is observed, never owned or copied.
type SceneObject struct {
	node    *datastructures.TreeNode[*SceneObject]
	item    Item
	drawer  Drawer
	context string

	name           string
	color          *colors.Color
	contrastColor  *colors.Color
	opacity        float64
	show           bool
	frame          *geometry.Frame
	transformation *geometry.Transformation

	guids []Handle
}

// NewSceneObject constructs a scene object for item. The concrete drawer
// variant is resolved from the dispatch registry before the object exists;
// an unregistered (item type, context) pair fails with a
// [NotRegisteredError].
func NewSceneObject(item Item, opts *ObjectOptions) (*SceneObject, error) {
	if item == nil {
		return nil, fmt.Errorf("scene: cannot create a scene object for a nil item")
	}
	if opts == nil {
		opts = &ObjectOptions{}
	}

	ctx, err := resolveContext(opts.Context)
	if err != nil {
		return nil, err
	}
	factory, err := drawerFactoryFor(item, ctx)
	if err != nil {
		return nil, err
	}
	drawer, err := factory(item)
	if err != nil {
		return nil, err
	}

	o := &SceneObject{
		item:           item,
		drawer:         drawer,
		context:        ctx,
		name:           opts.Name,
		color:          opts.Color,
		opacity:        1,
		show:           true,
		frame:          opts.Frame,
		transformation: opts.Transformation,
	}
	if o.name == "" {
		o.name = item.Name()
	}
	if opts.Opacity != nil {
		o.opacity = *opts.Opacity
	}
	if opts.Show != nil {
		o.show = *opts.Show
	}
	o.node = datastructures.NewTreeNode(o)
	return o, nil
}

func (o *SceneObject) String() string {
	return fmt.Sprintf("<SceneObject: %s>", o.name)
}

// Item returns the wrapped domain item.
func (o *SceneObject) Item() Item { return o.item }

// Name returns the object's label, defaulting to the item's name.
func (o *SceneObject) Name() string { return o.name }

// SetName sets the object's label.
func (o *SceneObject) SetName(name string) { o.name = name }

// Context returns the rendering context the object is bound to. The context
// is fixed at construction.
func (o *SceneObject) Context() string { return o.context }

// GUIDs returns the backend handles from the most recent Draw, or nil
// before the first draw and after Clear.
func (o *SceneObject) GUIDs() []Handle { return o.guids }

// Opacity returns the object's opacity.
func (o *SceneObject) Opacity() float64 { return o.opacity }

// SetOpacity sets the object's opacity. The value is not validated.
func (o *SceneObject) SetOpacity(v float64) { o.opacity = v }

// Show returns the visibility flag.
func (o *SceneObject) Show() bool { return o.show }

// SetShow sets the visibility flag.
func (o *SceneObject) SetShow(v bool) { o.show = v }

// Frame returns the local frame relative to the parent, or nil.
func (o *SceneObject) Frame() *geometry.Frame { return o.frame }

// SetFrame sets the local frame.
func (o *SceneObject) SetFrame(f *geometry.Frame) { o.frame = f }

// Transformation returns the local transformation relative to the frame, or
// nil.
func (o *SceneObject) Transformation() *geometry.Transformation { return o.transformation }

// SetTransformation sets the local transformation.
func (o *SceneObject) SetTransformation(t *geometry.Transformation) { o.transformation = t }

// Color returns the object's color, or DefaultColor if unset.
func (o *SceneObject) Color() colors.Color {
	if o.color == nil {
		return DefaultColor
	}
	return *o.color
}

// SetColor sets the object's color and invalidates the cached contrast
// color.
func (o *SceneObject) SetColor(c colors.Color) {
	o.color = &c
	o.contrastColor = nil
}

// ContrastColor returns a 50% darkened version of the color if the color is
// light, or a 50% lightened version otherwise. The result is memoized until
// the color changes.
func (o *SceneObject) ContrastColor() colors.Color {
	if o.contrastColor == nil {
		var cc colors.Color
		if o.Color().IsLight() {
			cc = o.Color().Darkened(contrastAmount)
		} else {
			cc = o.Color().Lightened(contrastAmount)
		}
		o.contrastColor = &cc
	}
	return *o.contrastColor
}

// SetContrastColor overrides the derived contrast color.
func (o *SceneObject) SetContrastColor(c colors.Color) {
	o.contrastColor = &c
}

// Parent returns the parent scene object, or nil for a top-level object
// (the scene tree root is not a scene object).
func (o *SceneObject) Parent() *SceneObject {
	p := o.node.Parent()
	if p == nil {
		return nil
	}
	return p.Value
}

// Children returns the child scene objects in insertion order.
func (o *SceneObject) Children() []*SceneObject {
	nodes := o.node.Children()
	out := make([]*SceneObject, len(nodes))
	for i, n := range nodes {
		out[i] = n.Value
	}
	return out
}

// WorldTransformation returns the object's placement in world coordinates:
// the composition of all ancestor frames (outermost first, the tree root
// excluded) with the object's own transformation. It is recomputed on every
// call so it always reflects the current ancestor state. With no ancestor
// frames and no own transformation it is the identity.
func (o *SceneObject) WorldTransformation() geometry.Transformation {
	// Collect ancestor frames child-to-root, excluding the tree root.
	var frames []geometry.Frame
	for _, anc := range o.node.Ancestors() {
		if anc.IsRoot() {
			continue
		}
		if p := anc.Value; p != nil && p.frame != nil {
			frames = append(frames, *p.frame)
		}
	}

	world := geometry.Identity()
	for i := len(frames) - 1; i >= 0; i-- {
		world = world.Mul(frames[i].ToTransformation())
	}
	if o.transformation != nil {
		world = world.Mul(*o.transformation)
	}
	return world
}

// Add wraps item in a new scene object and attaches it as a child. The
// child inherits this object's context; an explicit conflicting
// opts.Context fails with a [ContextMismatchError] and leaves the tree
// unchanged.
func (o *SceneObject) Add(item Item, opts *ObjectOptions) (*SceneObject, error) {
	if opts == nil {
		opts = &ObjectOptions{}
	}
	if opts.Context != "" && opts.Context != o.context {
		return nil, &ContextMismatchError{Parent: o.context, Child: opts.Context}
	}
	child := *opts
	child.Context = o.context
	obj, err := NewSceneObject(item, &child)
	if err != nil {
		return nil, err
	}
	o.node.Add(obj.node)
	return obj, nil
}

// AddObject attaches an existing scene object as a child, reparenting it if
// necessary.
func (o *SceneObject) AddObject(child *SceneObject) *SceneObject {
	o.node.Add(child.node)
	return child
}

// Draw renders the object through its drawer and records the returned
// backend handles. A scene object without a concrete drawer variant returns
// [ErrNotImplemented].
func (o *SceneObject) Draw() ([]Handle, error) {
	if o.drawer == nil {
		return nil, ErrNotImplemented
	}
	guids, err := o.drawer.Draw(o)
	if err != nil {
		return nil, err
	}
	o.guids = guids
	compas.Logger().Debug("scene: object drawn", "name", o.name, "handles", len(guids))
	return guids, nil
}

// Clear releases the backend handles from the most recent Draw. Clearing an
// object that holds no handles is a no-op, so consecutive calls are
// idempotent. The object stays in its tree.
func (o *SceneObject) Clear() error {
	if len(o.guids) == 0 {
		return nil
	}
	if err := Clear(o.context, o.guids); err != nil {
		return err
	}
	o.guids = nil
	return nil
}

// MarshalJSON always fails: scene objects are serializable only as part of
// a whole-scene export.
func (o *SceneObject) MarshalJSON() ([]byte, error) {
	return nil, ErrSerialization
}

// settings returns the presentation attributes needed to reconstruct the
// object besides the item itself.
func (o *SceneObject) settings() map[string]any {
	s := map[string]any{
		"name":    o.name,
		"color":   o.Color().Hex(),
		"opacity": o.opacity,
		"show":    o.show,
	}
	if o.frame != nil {
		s["frame"] = map[string]any{
			"origin": [3]float64{o.frame.Origin.X, o.frame.Origin.Y, o.frame.Origin.Z},
			"xaxis":  [3]float64{o.frame.XAxis.X, o.frame.XAxis.Y, o.frame.XAxis.Z},
			"yaxis":  [3]float64{o.frame.YAxis.X, o.frame.YAxis.Y, o.frame.YAxis.Z},
		}
	}
	if o.transformation != nil {
		s["transformation"] = o.transformation.Matrix()
	}
	return s
}

// exportData returns the whole-scene export form of the object: the item's
// identity, the presentation settings, and all children recursively.
func (o *SceneObject) exportData() map[string]any {
	children := make([]map[string]any, 0, len(o.node.Children()))
	for _, c := range o.Children() {
		children = append(children, c.exportData())
	}
	return map[string]any{
		"item":     o.item.GUID().String(),
		"settings": o.settings(),
		"children": children,
	}
}
