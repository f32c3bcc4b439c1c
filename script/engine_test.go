package script

import (
	"reflect"
	"strings"
	"testing"

	"github.com/jf---/compas/colors"
	"github.com/jf---/compas/geometry"
	"github.com/jf---/compas/scene"
)

const testContext = "Test"

type fakeBackend struct{}

func (fakeBackend) Clear(guids []scene.Handle) error { return nil }

type fakeDrawer struct{}

func (fakeDrawer) Draw(o *scene.SceneObject) ([]scene.Handle, error) {
	return []scene.Handle{"h"}, nil
}

func setup(t *testing.T) *Engine {
	t.Helper()
	scene.ClearRegistry()
	t.Cleanup(scene.ClearRegistry)
	scene.RegisterBackend(testContext, fakeBackend{})
	for _, item := range []scene.Item{
		&geometry.Polyhedron{}, &geometry.Polygon{}, &geometry.Line{}, &geometry.Point{},
	} {
		scene.RegisterDrawer(reflect.TypeOf(item), testContext,
			func(scene.Item) (scene.Drawer, error) { return fakeDrawer{}, nil })
	}
	return NewEngine(testContext)
}

func evaluate(t *testing.T, e *Engine, source string) *scene.Scene {
	t.Helper()
	s, evalErrs, err := e.Evaluate(source)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("Evaluate: unexpected eval errors: %v", evalErrs)
	}
	return s
}

func TestEvaluateEmptySource(t *testing.T) {
	e := setup(t)
	s := evaluate(t, e, "   \n\t")
	if got := len(s.Objects()); got != 0 {
		t.Fatalf("expected empty scene, got %d objects", got)
	}
}

func TestEvaluateAddsObjects(t *testing.T) {
	e := setup(t)
	s := evaluate(t, e, `
		(add (box 1 2 3))
		(add (point 0 0 5))
	`)
	objs := s.Objects()
	if len(objs) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(objs))
	}
	if _, ok := objs[0].Item().(*geometry.Polyhedron); !ok {
		t.Fatalf("expected first object to wrap a Polyhedron, got %T", objs[0].Item())
	}
}

func TestEvaluateCube(t *testing.T) {
	e := setup(t)
	s := evaluate(t, e, `(add (cube 2))`)
	objs := s.Objects()
	if len(objs) != 1 {
		t.Fatalf("expected 1 object, got %d", len(objs))
	}
	p := objs[0].Item().(*geometry.Polyhedron)
	if p.Name() != "Cube" {
		t.Errorf("name = %q, want %q", p.Name(), "Cube")
	}
	if len(p.Vertices) != 8 {
		t.Errorf("got %d vertices, want 8", len(p.Vertices))
	}
}

func TestEvaluateKeywordArguments(t *testing.T) {
	e := setup(t)
	s := evaluate(t, e, `(add (box 1 1 1) :name "base" :color "red" :opacity 0.5 :show false)`)
	objs := s.Objects()
	if len(objs) != 1 {
		t.Fatalf("expected 1 object, got %d", len(objs))
	}
	o := objs[0]
	if o.Name() != "base" {
		t.Errorf("name = %q, want %q", o.Name(), "base")
	}
	if o.Color() != colors.Red {
		t.Errorf("color = %v, want red", o.Color())
	}
	if o.Opacity() != 0.5 {
		t.Errorf("opacity = %v, want 0.5", o.Opacity())
	}
	if o.Show() {
		t.Error("expected object to be hidden")
	}
}

func TestEvaluateParenting(t *testing.T) {
	e := setup(t)
	s := evaluate(t, e, `
		(def base (add (box 2 2 2) :name "base"))
		(add (point 0 0 1) :name "child" :parent base)
	`)
	objs := s.Objects()
	if len(objs) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(objs))
	}
	child := objs[1]
	if child.Parent() == nil || child.Parent().Name() != "base" {
		t.Fatalf("expected child to be parented under base")
	}
}

func TestEvaluateFrame(t *testing.T) {
	e := setup(t)
	s := evaluate(t, e, `(add (point 0 0 0) :frame (frame (vec 1 2 3) (vec 1 0 0) (vec 0 1 0)))`)
	objs := s.Objects()
	if len(objs) != 1 {
		t.Fatalf("expected 1 object, got %d", len(objs))
	}
	f := objs[0].Frame()
	if f == nil {
		t.Fatal("expected a frame to be set")
	}
	if f.Origin != geometry.Vec(1, 2, 3) {
		t.Errorf("frame origin = %v, want (1 2 3)", f.Origin)
	}
}

func TestEvaluatePolyhedron(t *testing.T) {
	e := setup(t)
	s := evaluate(t, e, `
		(add (polyhedron
			(list (vec 0 0 0) (vec 1 0 0) (vec 1 1 0) (vec 0 1 0))
			(list (list 0 1 2 3))))
	`)
	objs := s.Objects()
	if len(objs) != 1 {
		t.Fatalf("expected 1 object, got %d", len(objs))
	}
	p, ok := objs[0].Item().(*geometry.Polyhedron)
	if !ok {
		t.Fatalf("expected a Polyhedron, got %T", objs[0].Item())
	}
	if len(p.Vertices) != 4 || len(p.Faces) != 1 {
		t.Fatalf("got %d vertices, %d faces", len(p.Vertices), len(p.Faces))
	}
	if p.Name() != "Polyhedron" {
		t.Errorf("name = %q, want %q", p.Name(), "Polyhedron")
	}
}

func TestEvaluatePolyhedronIndexOutOfRange(t *testing.T) {
	e := setup(t)
	s, evalErrs, err := e.Evaluate(`(polyhedron (list (vec 0 0 0)) (list (list 0 1)))`)
	if err != nil {
		t.Fatalf("internal error: %v", err)
	}
	if s != nil {
		t.Error("expected nil scene")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors")
	}
}

func TestEvaluateSceneName(t *testing.T) {
	e := setup(t)
	s := evaluate(t, e, `(scene :name "demo")`)
	if s.Name() != "demo" {
		t.Errorf("scene name = %q, want %q", s.Name(), "demo")
	}
}

func TestEvaluateComments(t *testing.T) {
	e := setup(t)
	s := evaluate(t, e, `
		; build a single box
		(add (box 1 1 1)) ; trailing comment
	`)
	if got := len(s.Objects()); got != 1 {
		t.Fatalf("expected 1 object, got %d", got)
	}
}

func TestEvaluateParseError(t *testing.T) {
	e := setup(t)
	s, evalErrs, err := e.Evaluate(`(add (box 1 1 1)`)
	if err != nil {
		t.Fatalf("internal error: %v", err)
	}
	if s != nil {
		t.Error("expected nil scene on parse error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors")
	}
}

func TestEvaluateBuiltinError(t *testing.T) {
	e := setup(t)
	s, evalErrs, err := e.Evaluate(`(add (box 1 1 1) :color "no-such-color")`)
	if err != nil {
		t.Fatalf("internal error: %v", err)
	}
	if s != nil {
		t.Error("expected nil scene on builtin error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors")
	}
	if !strings.Contains(evalErrs[0].Message, "color") {
		t.Errorf("error %q does not mention color", evalErrs[0].Message)
	}
}

func TestPreprocess(t *testing.T) {
	got := preprocess(`(add x :color "red") ; note ":not-a-kw"`)
	if !strings.Contains(got, `"__kw_color"`) {
		t.Errorf("keyword not rewritten: %q", got)
	}
	if !strings.Contains(got, `// note`) {
		t.Errorf("comment not rewritten: %q", got)
	}
	if !strings.Contains(got, `":not-a-kw"`) {
		t.Errorf("string literal mangled: %q", got)
	}
}

func TestEvalErrorFormat(t *testing.T) {
	e := EvalError{Line: 3, Message: "bad"}
	if e.Error() != "line 3: bad" {
		t.Errorf("Error() = %q", e.Error())
	}
	e = EvalError{Message: "bad"}
	if e.Error() != "bad" {
		t.Errorf("Error() = %q", e.Error())
	}
}
