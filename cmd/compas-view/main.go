// compas-view evaluates a scene script and either opens an interactive
// viewer or exports the result to STL or JSON.
//
// Usage:
//
//	compas-view [flags] script.lisp
//
// With no export flags the scene opens in a window. Arrow keys orbit the
// camera, PageUp/PageDown zoom, Home resets, R redraws.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	compas "github.com/jf---/compas"
	"github.com/jf---/compas/geometry"
	"github.com/jf---/compas/meshing"
	"github.com/jf---/compas/scene"
	"github.com/jf---/compas/script"
	"github.com/jf---/compas/viewer"
)

func main() {
	var (
		configPath = flag.String("config", "", "viewer config file (YAML)")
		stlOut     = flag.String("stl", "", "write polyhedra to a binary STL file and exit")
		jsonOut    = flag.String("json", "", "write the scene as JSON and exit")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: compas-view [flags] script.lisp")
		flag.PrintDefaults()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	compas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(flag.Arg(0), *configPath, *stlOut, *jsonOut); err != nil {
		compas.Logger().Error("compas-view failed", "error", err)
		os.Exit(1)
	}
}

func run(scriptPath, configPath, stlOut, jsonOut string) error {
	source, err := os.ReadFile(scriptPath)
	if err != nil {
		return err
	}

	cfg := viewer.DefaultConfig()
	if configPath != "" {
		cfg, err = viewer.LoadConfig(configPath)
		if err != nil {
			return err
		}
	}

	viewer.Register()

	s, evalErrs, err := script.NewEngine(viewer.Context).Evaluate(string(source))
	if err != nil {
		return err
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", scriptPath, e.Error())
		}
		return fmt.Errorf("%d script error(s)", len(evalErrs))
	}

	if stlOut != "" {
		return exportSTL(s, stlOut)
	}
	if jsonOut != "" {
		return exportJSON(s, jsonOut)
	}

	// Show performs the draw; drawing here too would orphan the first
	// set of backend handles.
	return viewer.Show(s, cfg)
}

// exportSTL merges every polyhedron in the scene, with its world
// transformation applied, into a single mesh file.
func exportSTL(s *scene.Scene, path string) error {
	var faces []geometry.Polygon
	for _, o := range s.Objects() {
		p, ok := o.Item().(*geometry.Polyhedron)
		if !ok {
			continue
		}
		world := o.WorldTransformation()
		for _, face := range p.Faces {
			ring := make([]geometry.Vector, len(face))
			for i, idx := range face {
				ring[i] = world.ApplyPoint(p.Vertices[idx])
			}
			faces = append(faces, geometry.Polygon{Vertices: ring})
		}
	}
	if len(faces) == 0 {
		return fmt.Errorf("scene contains no polyhedra to export")
	}
	polys := make([]*geometry.Polygon, len(faces))
	for i := range faces {
		polys[i] = &faces[i]
	}
	merged := geometry.FromPolygons(polys)
	compas.Logger().Info("exporting STL", "path", path, "faces", len(merged.Faces))
	return meshing.SaveSTL(path, merged)
}

func exportJSON(s *scene.Scene, path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
