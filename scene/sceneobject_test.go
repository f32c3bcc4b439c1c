package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/jf---/compas/colors"
	"github.com/jf---/compas/geometry"
)

const testContext = "Test"

// fakeBackend records Clear calls.
type fakeBackend struct {
	cleared [][]Handle
}

func (b *fakeBackend) Clear(guids []Handle) error {
	b.cleared = append(b.cleared, guids)
	return nil
}

// fakeDrawer returns a fixed number of fresh handles per draw.
type fakeDrawer struct {
	draws   int
	handles int
}

func (d *fakeDrawer) Draw(o *SceneObject) ([]Handle, error) {
	d.draws++
	out := make([]Handle, d.handles)
	for i := range out {
		out[i] = Handle(fmt.Sprintf("%s-%d-%d", o.Name(), d.draws, i))
	}
	return out, nil
}

// setupTestContext registers a fake backend and a polyhedron drawer under
// the "Test" context and arranges teardown.
func setupTestContext(t *testing.T) *fakeBackend {
	t.Helper()
	ClearRegistry()
	t.Cleanup(ClearRegistry)

	b := &fakeBackend{}
	RegisterBackend(testContext, b)
	RegisterDrawer(reflect.TypeOf(&geometry.Polyhedron{}), testContext, func(item Item) (Drawer, error) {
		return &fakeDrawer{handles: 1}, nil
	})
	return b
}

func box(t *testing.T) *SceneObject {
	t.Helper()
	o, err := NewSceneObject(geometry.NewBox(1, 1, 1), &ObjectOptions{Context: testContext})
	if err != nil {
		t.Fatal(err)
	}
	return o
}

// --- Construction ---

func TestConstructionDefaults(t *testing.T) {
	setupTestContext(t)
	item := geometry.NewBox(1, 1, 1)
	o, err := NewSceneObject(item, nil)
	if err != nil {
		t.Fatal(err)
	}
	if o.Name() != item.Name() {
		t.Errorf("Name = %q, want item name %q", o.Name(), item.Name())
	}
	if o.Context() != testContext {
		t.Errorf("Context = %q, want inferred %q", o.Context(), testContext)
	}
	if o.Color() != DefaultColor {
		t.Errorf("Color = %v, want default %v", o.Color(), DefaultColor)
	}
	if o.Opacity() != 1 || !o.Show() {
		t.Errorf("Opacity/Show = %v/%v, want 1/true", o.Opacity(), o.Show())
	}
	if o.Item() != Item(item) {
		t.Error("Item should be the wrapped value, not a copy")
	}
	if len(o.GUIDs()) != 0 {
		t.Error("GUIDs should be empty before the first draw")
	}
}

func TestConstructionUnregistered(t *testing.T) {
	setupTestContext(t)
	_, err := NewSceneObject(geometry.NewPoint(0, 0, 0), &ObjectOptions{Context: testContext})
	var nre *NotRegisteredError
	if !errors.As(err, &nre) {
		t.Fatalf("err = %v, want NotRegisteredError", err)
	}
	if nre.Context != testContext {
		t.Errorf("error context = %q", nre.Context)
	}
	if nre.ItemType != reflect.TypeOf(&geometry.Point{}) {
		t.Errorf("error item type = %v", nre.ItemType)
	}
}

func TestConstructionUnknownContext(t *testing.T) {
	setupTestContext(t)
	_, err := NewSceneObject(geometry.NewBox(1, 1, 1), &ObjectOptions{Context: "Nope"})
	var nre *NotRegisteredError
	if !errors.As(err, &nre) {
		t.Fatalf("err = %v, want NotRegisteredError", err)
	}
}

// --- Color and contrast color ---

func TestContrastColorOfLightColor(t *testing.T) {
	setupTestContext(t)
	o := box(t)
	o.SetColor(colors.White)
	if got, want := o.ContrastColor(), colors.White.Darkened(50); got != want {
		t.Errorf("contrast of light color = %v, want darkened 50%% = %v", got, want)
	}
}

func TestContrastColorOfDarkColor(t *testing.T) {
	setupTestContext(t)
	o := box(t)
	o.SetColor(colors.Black)
	if got, want := o.ContrastColor(), colors.Black.Lightened(50); got != want {
		t.Errorf("contrast of dark color = %v, want lightened 50%% = %v", got, want)
	}
}

func TestContrastColorMemoized(t *testing.T) {
	setupTestContext(t)
	o := box(t)
	o.SetColor(colors.Red)

	first := o.ContrastColor()
	if second := o.ContrastColor(); second != first {
		t.Errorf("repeated reads differ: %v then %v", first, second)
	}

	// An explicit override sticks until the color is reassigned.
	o.SetContrastColor(colors.Blue)
	if o.ContrastColor() != colors.Blue {
		t.Error("override should be returned as-is")
	}
	o.SetColor(colors.Red)
	if o.ContrastColor() == colors.Blue {
		t.Error("reassigning the color should invalidate the cached contrast color")
	}
}

// --- World transformation ---

func TestWorldTransformationIdentity(t *testing.T) {
	setupTestContext(t)
	o := box(t)
	if o.WorldTransformation() != geometry.Identity() {
		t.Error("object with no ancestor frames and no transformation should be at identity")
	}
}

func TestWorldTransformationOwnTransformation(t *testing.T) {
	setupTestContext(t)
	o := box(t)
	tr := geometry.FromTranslation(geometry.Vec(1, 2, 3))
	o.SetTransformation(&tr)
	if o.WorldTransformation() != tr {
		t.Error("with no ancestors the world transformation is the own transformation")
	}
}

func TestWorldTransformationAncestorFrames(t *testing.T) {
	setupTestContext(t)
	s := NewScene("", testContext)

	parent, err := s.Add(geometry.NewBox(1, 1, 1), nil)
	if err != nil {
		t.Fatal(err)
	}
	middle, err := parent.Add(geometry.NewBox(1, 1, 1), nil)
	if err != nil {
		t.Fatal(err)
	}
	leaf, err := middle.Add(geometry.NewBox(1, 1, 1), nil)
	if err != nil {
		t.Fatal(err)
	}

	pf := geometry.NewFrame(geometry.Vec(10, 0, 0), geometry.Vec(1, 0, 0), geometry.Vec(0, 1, 0))
	mf := geometry.NewFrame(geometry.Vec(0, 5, 0), geometry.Vec(1, 0, 0), geometry.Vec(0, 1, 0))
	parent.SetFrame(&pf)
	middle.SetFrame(&mf)
	tr := geometry.FromTranslation(geometry.Vec(0, 0, 2))
	leaf.SetTransformation(&tr)

	// Outermost ancestor frame applies first, own transformation last:
	// origin maps to (10, 5, 2). The leaf's own frame (none here) and the
	// scene root never contribute.
	got := leaf.WorldTransformation().ApplyPoint(geometry.Vector{})
	if got != (geometry.Vector{X: 10, Y: 5, Z: 2}) {
		t.Errorf("world origin = %v, want (10, 5, 2)", got)
	}

	// Recomputed on every access: moving an ancestor is visible immediately.
	pf2 := geometry.NewFrame(geometry.Vec(-10, 0, 0), geometry.Vec(1, 0, 0), geometry.Vec(0, 1, 0))
	parent.SetFrame(&pf2)
	got = leaf.WorldTransformation().ApplyPoint(geometry.Vector{})
	if got != (geometry.Vector{X: -10, Y: 5, Z: 2}) {
		t.Errorf("world origin after ancestor move = %v, want (-10, 5, 2)", got)
	}
}

func TestWorldTransformationExcludesOwnFrame(t *testing.T) {
	setupTestContext(t)
	o := box(t)
	f := geometry.NewFrame(geometry.Vec(7, 7, 7), geometry.Vec(1, 0, 0), geometry.Vec(0, 1, 0))
	o.SetFrame(&f)
	// Only ancestor frames contribute, never the object's own frame.
	if o.WorldTransformation() != geometry.Identity() {
		t.Error("own frame must not contribute to the world transformation")
	}
}

// --- Add ---

func TestAddInheritsContext(t *testing.T) {
	setupTestContext(t)
	parent := box(t)
	child, err := parent.Add(geometry.NewBox(1, 1, 1), nil)
	if err != nil {
		t.Fatal(err)
	}
	if child.Context() != parent.Context() {
		t.Errorf("child context = %q, want %q", child.Context(), parent.Context())
	}
	if child.Parent() != parent {
		t.Error("child should be parented under the object")
	}
	if len(parent.Children()) != 1 || parent.Children()[0] != child {
		t.Errorf("Children = %v", parent.Children())
	}
}

func TestAddMatchingExplicitContext(t *testing.T) {
	setupTestContext(t)
	parent := box(t)
	if _, err := parent.Add(geometry.NewBox(1, 1, 1), &ObjectOptions{Context: testContext}); err != nil {
		t.Fatalf("matching explicit context should be accepted: %v", err)
	}
}

func TestAddContextMismatch(t *testing.T) {
	setupTestContext(t)
	parent := box(t)
	_, err := parent.Add(geometry.NewBox(1, 1, 1), &ObjectOptions{Context: "Other"})
	var cme *ContextMismatchError
	if !errors.As(err, &cme) {
		t.Fatalf("err = %v, want ContextMismatchError", err)
	}
	if cme.Parent != testContext || cme.Child != "Other" {
		t.Errorf("error values = %q/%q", cme.Parent, cme.Child)
	}
	if len(parent.Children()) != 0 {
		t.Error("a rejected add must not mutate the tree")
	}
}

func TestAddObject(t *testing.T) {
	setupTestContext(t)
	parent := box(t)
	child := box(t)
	if got := parent.AddObject(child); got != child {
		t.Error("AddObject should return the attached child")
	}
	if child.Parent() != parent {
		t.Error("child should be reparented under the object")
	}
}

// --- Draw / clear ---

func TestDrawStoresHandles(t *testing.T) {
	setupTestContext(t)
	o := box(t)
	guids, err := o.Draw()
	if err != nil {
		t.Fatal(err)
	}
	if len(guids) != 1 {
		t.Fatalf("Draw returned %d handles, want 1", len(guids))
	}
	if len(o.GUIDs()) != 1 || o.GUIDs()[0] != guids[0] {
		t.Error("handles should be recorded on the object")
	}
}

func TestDrawWithoutVariant(t *testing.T) {
	setupTestContext(t)
	// A factory may decline to provide a drawer; drawing such an object
	// reports the missing implementation.
	RegisterDrawer(reflect.TypeOf(&geometry.Line{}), testContext, func(item Item) (Drawer, error) {
		return nil, nil
	})
	o, err := NewSceneObject(geometry.NewLine(geometry.Vector{}, geometry.Vec(1, 0, 0)), &ObjectOptions{Context: testContext})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := o.Draw(); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("err = %v, want ErrNotImplemented", err)
	}
}

func TestClearReleasesHandles(t *testing.T) {
	b := setupTestContext(t)
	o := box(t)
	guids, err := o.Draw()
	if err != nil {
		t.Fatal(err)
	}
	if err := o.Clear(); err != nil {
		t.Fatal(err)
	}
	if len(o.GUIDs()) != 0 {
		t.Error("GUIDs should be empty after Clear")
	}
	if len(b.cleared) != 1 || len(b.cleared[0]) != len(guids) {
		t.Errorf("backend cleared %v, want one call with %d handles", b.cleared, len(guids))
	}
}

func TestClearIdempotent(t *testing.T) {
	b := setupTestContext(t)
	o := box(t)
	if _, err := o.Draw(); err != nil {
		t.Fatal(err)
	}
	if err := o.Clear(); err != nil {
		t.Fatal(err)
	}
	if err := o.Clear(); err != nil {
		t.Fatal(err)
	}
	if len(b.cleared) != 1 {
		t.Errorf("second Clear must be a no-op, backend saw %d calls", len(b.cleared))
	}
	if len(o.GUIDs()) != 0 {
		t.Error("GUIDs should stay empty")
	}
}

func TestClearKeepsChildren(t *testing.T) {
	setupTestContext(t)
	parent := box(t)
	child, err := parent.Add(geometry.NewBox(1, 1, 1), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := parent.Draw(); err != nil {
		t.Fatal(err)
	}
	if err := parent.Clear(); err != nil {
		t.Fatal(err)
	}
	if len(parent.Children()) != 1 || parent.Children()[0] != child {
		t.Error("Clear releases handles only; it must not remove children")
	}
}

// --- Serialization ---

func TestDirectSerializationNotPermitted(t *testing.T) {
	setupTestContext(t)
	o := box(t)
	if _, err := json.Marshal(o); !errors.Is(err, ErrSerialization) {
		t.Fatalf("err = %v, want ErrSerialization", err)
	}

	// Object state does not matter.
	o.SetColor(colors.Red)
	if _, err := o.Draw(); err != nil {
		t.Fatal(err)
	}
	if _, err := json.Marshal(o); err == nil {
		t.Fatal("direct serialization should fail after drawing too")
	}
}
