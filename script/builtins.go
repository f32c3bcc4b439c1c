package script

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/jf---/compas/colors"
	"github.com/jf---/compas/geometry"
	"github.com/jf---/compas/scene"
)

// kwPrefix marks keyword arguments rewritten by preprocess.
const kwPrefix = "__kw_"

// preprocess rewrites Lisp conventions zygomys does not accept: ";" line
// comments become "//", and ":keyword" arguments become marker strings.
// String literal contents are left untouched.
func preprocess(source string) string {
	var out strings.Builder
	out.Grow(len(source) + len(source)/8)
	b := []byte(source)
	i := 0
	for i < len(b) {
		switch {
		case b[i] == '"':
			out.WriteByte(b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					out.WriteByte(b[i])
					i++
				}
				out.WriteByte(b[i])
				i++
			}
			if i < len(b) {
				out.WriteByte(b[i])
				i++
			}
		case b[i] == ';':
			out.WriteString("//")
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				out.WriteByte(b[i])
				i++
			}
		case b[i] == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isIdentChar(b[j]) {
				j++
			}
			fmt.Fprintf(&out, "%q", kwPrefix+string(b[i+1:j]))
			i = j
		default:
			out.WriteByte(b[i])
			i++
		}
	}
	return out.String()
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// --- Sexp wrappers ---

// sexpItem carries a geometry item between builtins.
type sexpItem struct {
	item scene.Item
}

func (s *sexpItem) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(item %q)", s.item.Name())
}
func (s *sexpItem) Type() *zygo.RegisteredType { return nil }

// sexpObject carries a scene object reference.
type sexpObject struct {
	obj *scene.SceneObject
}

func (s *sexpObject) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(object %q)", s.obj.Name())
}
func (s *sexpObject) Type() *zygo.RegisteredType { return nil }

// sexpColor carries a color value.
type sexpColor struct {
	c colors.Color
}

func (s *sexpColor) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(color %q)", s.c.Hex())
}
func (s *sexpColor) Type() *zygo.RegisteredType { return nil }

// sexpVec carries a vector.
type sexpVec struct {
	v geometry.Vector
}

func (s *sexpVec) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec %g %g %g)", s.v.X, s.v.Y, s.v.Z)
}
func (s *sexpVec) Type() *zygo.RegisteredType { return nil }

// sexpFrame carries a coordinate frame.
type sexpFrame struct {
	f geometry.Frame
}

func (s *sexpFrame) SexpString(ps *zygo.PrintState) string {
	o := s.f.Origin
	return fmt.Sprintf("(frame (vec %g %g %g) ...)", o.X, o.Y, o.Z)
}
func (s *sexpFrame) Type() *zygo.RegisteredType { return nil }

// --- Argument helpers ---

// kwArgs separates keyword from positional arguments.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

func parseArgs(args []zygo.Sexp) kwArgs {
	out := kwArgs{kw: map[string]zygo.Sexp{}}
	i := 0
	for i < len(args) {
		if str, ok := args[i].(*zygo.SexpStr); ok && strings.HasPrefix(str.S, kwPrefix) {
			name := str.S[len(kwPrefix):]
			if i+1 < len(args) {
				out.kw[name] = args[i+1]
				i += 2
			} else {
				out.kw[name] = zygo.SexpNull
				i++
			}
			continue
		}
		out.positional = append(out.positional, args[i])
		i++
	}
	return out
}

func toFloat(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %s", s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %s", s.SexpString(nil))
}

func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %s", s.SexpString(nil))
}

func toVec(s zygo.Sexp) (geometry.Vector, error) {
	if v, ok := s.(*sexpVec); ok {
		return v.v, nil
	}
	return geometry.Vector{}, fmt.Errorf("expected (vec x y z), got %s", s.SexpString(nil))
}

func toColor(s zygo.Sexp) (colors.Color, error) {
	switch v := s.(type) {
	case *sexpColor:
		return v.c, nil
	case *zygo.SexpStr:
		return colors.Coerce(v.S)
	}
	return colors.Color{}, fmt.Errorf("expected color, got %s", s.SexpString(nil))
}

// toList converts a Lisp list or array to a Go slice.
func toList(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list, got %s", s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %s", s.SexpString(nil))
}

func floats(args []zygo.Sexp, want int, fn string) ([]float64, error) {
	if len(args) != want {
		return nil, fmt.Errorf("%s: expected %d numbers, got %d arguments", fn, want, len(args))
	}
	out := make([]float64, want)
	for i, a := range args {
		f, err := toFloat(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", fn, i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

// --- Builtins ---

// registerBuiltins installs the scene-building vocabulary into env. All
// builtins close over the scene under construction.
func registerBuiltins(env *zygo.Zlisp, s *scene.Scene) {

	// (vec x y z)
	env.AddFunction("vec", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := floats(args, 3, "vec")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpVec{v: geometry.Vec(f[0], f[1], f[2])}, nil
	})

	// (color "red") or (color r g b)
	env.AddFunction("color", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 1 {
			c, err := toColor(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("color: %w", err)
			}
			return &sexpColor{c: c}, nil
		}
		f, err := floats(args, 3, "color")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpColor{c: colors.New(f[0], f[1], f[2])}, nil
	})

	// (frame origin xaxis yaxis), each a (vec ...)
	env.AddFunction("frame", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("frame: expected origin, xaxis, yaxis")
		}
		vs := make([]geometry.Vector, 3)
		for i, a := range args {
			v, err := toVec(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("frame: %w", err)
			}
			vs[i] = v
		}
		return &sexpFrame{f: geometry.NewFrame(vs[0], vs[1], vs[2])}, nil
	})

	// (point x y z)
	env.AddFunction("point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := floats(args, 3, "point")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpItem{item: geometry.NewPoint(f[0], f[1], f[2])}, nil
	})

	// (line start end), each a (vec ...)
	env.AddFunction("line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("line: expected start and end vectors")
		}
		a, err := toVec(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: %w", err)
		}
		b, err := toVec(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: %w", err)
		}
		return &sexpItem{item: geometry.NewLine(a, b)}, nil
	})

	// (box dx dy dz)
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := floats(args, 3, "box")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpItem{item: geometry.NewBox(f[0], f[1], f[2])}, nil
	})

	// (cube size)
	env.AddFunction("cube", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := floats(args, 1, "cube")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpItem{item: geometry.NewCube(f[0])}, nil
	})

	// (polygon v1 v2 v3 ...), each a (vec ...)
	env.AddFunction("polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 3 {
			return zygo.SexpNull, fmt.Errorf("polygon: expected at least 3 vertices")
		}
		ring := make([]geometry.Vector, len(args))
		for i, a := range args {
			v, err := toVec(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polygon: vertex %d: %w", i+1, err)
			}
			ring[i] = v
		}
		return &sexpItem{item: geometry.NewPolygon(ring)}, nil
	})

	// (polyhedron vertices faces), vertices a list of (vec ...), faces a
	// list of index lists.
	env.AddFunction("polyhedron", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("polyhedron: expected vertices and faces")
		}
		vlist, err := toList(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polyhedron: vertices: %w", err)
		}
		vertices := make([]geometry.Vector, len(vlist))
		for i, e := range vlist {
			v, err := toVec(e)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polyhedron: vertex %d: %w", i+1, err)
			}
			vertices[i] = v
		}
		flist, err := toList(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polyhedron: faces: %w", err)
		}
		faces := make([][]int, len(flist))
		for i, e := range flist {
			idxList, err := toList(e)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polyhedron: face %d: %w", i+1, err)
			}
			face := make([]int, len(idxList))
			for j, ie := range idxList {
				idx, err := toInt(ie)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("polyhedron: face %d: %w", i+1, err)
				}
				if idx < 0 || idx >= len(vertices) {
					return zygo.SexpNull, fmt.Errorf("polyhedron: face %d: vertex index %d out of range", i+1, idx)
				}
				face[j] = idx
			}
			faces[i] = face
		}
		return &sexpItem{item: geometry.NewPolyhedron(vertices, faces, "")}, nil
	})

	// (scene :name "n") configures the scene under construction.
	env.AddFunction("scene", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 0 {
			return zygo.SexpNull, fmt.Errorf("scene: expected keyword arguments only")
		}
		if v, ok := pa.kw["name"]; ok {
			n, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("scene: name: %w", err)
			}
			s.SetName(n)
		}
		return zygo.SexpNull, nil
	})

	// (add item :name "n" :color c :opacity 0.5 :show false
	//           :frame f :parent obj)
	env.AddFunction("add", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("add: expected exactly one item")
		}
		wrapped, ok := pa.positional[0].(*sexpItem)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("add: expected a geometry item, got %s",
				pa.positional[0].SexpString(nil))
		}

		opts := &scene.ObjectOptions{}
		if v, ok := pa.kw["name"]; ok {
			n, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("add: name: %w", err)
			}
			opts.Name = n
		}
		if v, ok := pa.kw["color"]; ok {
			c, err := toColor(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("add: color: %w", err)
			}
			opts.Color = &c
		}
		if v, ok := pa.kw["opacity"]; ok {
			f, err := toFloat(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("add: opacity: %w", err)
			}
			opts.Opacity = &f
		}
		if v, ok := pa.kw["show"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("add: show: %w", err)
			}
			opts.Show = &b
		}
		if v, ok := pa.kw["frame"]; ok {
			f, ok := v.(*sexpFrame)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("add: frame: expected (frame ...), got %s", v.SexpString(nil))
			}
			opts.Frame = &f.f
		}

		var (
			obj *scene.SceneObject
			err error
		)
		if v, ok := pa.kw["parent"]; ok {
			parent, ok := v.(*sexpObject)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("add: parent: expected a scene object, got %s", v.SexpString(nil))
			}
			obj, err = parent.obj.Add(wrapped.item, opts)
		} else {
			obj, err = s.Add(wrapped.item, opts)
		}
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("add: %w", err)
		}
		return &sexpObject{obj: obj}, nil
	})
}
