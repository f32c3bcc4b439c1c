package scene

import (
	"encoding/json"

	compas "github.com/jf---/compas"
	"github.com/jf---/compas/datastructures"
)

// Scene owns a tree of scene objects bound to one rendering context. The
// tree root is a bare node, not a scene object, so it never contributes a
// frame to world transformations.
type Scene struct {
	name    string
	context string
	tree    *datastructures.Tree[*SceneObject]
}

// NewScene creates an empty scene. An empty context resolves to the sole
// registered backend at the first Add.
func NewScene(name, context string) *Scene {
	if name == "" {
		name = "Scene"
	}
	return &Scene{
		name:    name,
		context: context,
		tree:    datastructures.NewTree[*SceneObject](nil),
	}
}

// Name returns the scene name.
func (s *Scene) Name() string { return s.name }

// SetName renames the scene.
func (s *Scene) SetName(name string) { s.name = name }

// Context returns the scene's rendering context identifier.
func (s *Scene) Context() string { return s.context }

// Add wraps item in a scene object and attaches it at the top level of the
// scene. An explicit opts.Context differing from the scene's context fails
// with a [ContextMismatchError].
func (s *Scene) Add(item Item, opts *ObjectOptions) (*SceneObject, error) {
	if opts == nil {
		opts = &ObjectOptions{}
	}
	if s.context == "" {
		ctx, err := resolveContext(opts.Context)
		if err != nil {
			return nil, err
		}
		s.context = ctx
	}
	if opts.Context != "" && opts.Context != s.context {
		return nil, &ContextMismatchError{Parent: s.context, Child: opts.Context}
	}
	child := *opts
	child.Context = s.context
	obj, err := NewSceneObject(item, &child)
	if err != nil {
		return nil, err
	}
	s.tree.Root().Add(obj.node)
	return obj, nil
}

// AddObject attaches an existing scene object at the top level.
func (s *Scene) AddObject(obj *SceneObject) *SceneObject {
	s.tree.Root().Add(obj.node)
	return obj
}

// Objects returns all scene objects in depth-first traversal order.
func (s *Scene) Objects() []*SceneObject {
	var out []*SceneObject
	s.tree.Root().Walk(func(n *datastructures.TreeNode[*SceneObject]) bool {
		if n.Value != nil {
			out = append(out, n.Value)
		}
		return true
	})
	return out
}

// Draw draws all visible objects in traversal order. The first drawing
// error aborts the pass.
func (s *Scene) Draw() error {
	for _, o := range s.Objects() {
		if !o.Show() {
			compas.Logger().Debug("scene: skipping hidden object", "name", o.Name())
			continue
		}
		if _, err := o.Draw(); err != nil {
			return err
		}
	}
	return nil
}

// Clear releases the backend handles of all objects. Objects remain in the
// tree.
func (s *Scene) Clear() error {
	for _, o := range s.Objects() {
		if err := o.Clear(); err != nil {
			return err
		}
	}
	return nil
}

// Redraw clears and draws the whole scene.
func (s *Scene) Redraw() error {
	if err := s.Clear(); err != nil {
		return err
	}
	return s.Draw()
}

// MarshalJSON exports the whole scene: scene name, context, and the nested
// {item, settings, children} form of every top-level object. This is the
// only permitted serialization of scene objects.
func (s *Scene) MarshalJSON() ([]byte, error) {
	objects := make([]map[string]any, 0, len(s.tree.Root().Children()))
	for _, n := range s.tree.Root().Children() {
		if n.Value != nil {
			objects = append(objects, n.Value.exportData())
		}
	}
	return json.Marshal(map[string]any{
		"name":    s.name,
		"context": s.context,
		"objects": objects,
	})
}
