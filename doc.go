// Package compas is a computational-geometry and CAD framework for Go.
//
// It provides geometric primitives (points, lines, frames, transformations,
// polyhedra), a scene graph that wraps those primitives in presentation
// attributes (color, opacity, visibility, local frames), and a pluggable
// rendering layer that dispatches drawing to context-specific backends.
//
// # Scenes
//
// A [scene.Scene] owns a tree of scene objects. Each object wraps a domain
// item and delegates drawing to whichever backend is registered for the
// item's type in the scene's context:
//
//	viewer.Register()
//	s := scene.NewScene("Scene", viewer.Context)
//	obj, _ := s.Add(geometry.NewBox(1, 1, 1), nil)
//	obj.SetColor(colors.Red)
//	s.Draw()
//
// # Backends
//
// The viewer package provides an interactive wireframe viewer built on
// [Ebitengine]. Additional backends register their own drawers with the
// scene package's dispatch registry.
//
// # Scripting
//
// The script package embeds a sandboxed zygomys interpreter so scenes can
// be described in Lisp and driven through cmd/compas-view:
//
//	(add (box 1 1 1) :color "red")
//
// [Ebitengine]: https://ebitengine.org
package compas
