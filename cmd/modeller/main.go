package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"

	"cell-modeller/config"
	"cell-modeller/editor"
	"cell-modeller/geometry"
	"cell-modeller/internal/opengl"
	"cell-modeller/internal/platform"
	"cell-modeller/math"
	"cell-modeller/scene"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config")
	dump := flag.Bool("dump", false, "print the initial scene graph and exit")
	writeConfig := flag.String("write-config", "", "write the effective config to this path and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *writeConfig != "" {
		if err := config.Save(*writeConfig, cfg); err != nil {
			fmt.Printf("Failed to write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %q\n", *writeConfig)
		return
	}

	registry, extra := loadRegistry(cfg.Scene.Meshes)
	builder := scene.NewBuilder(registry, rand.New(rand.NewSource(cfg.Scene.Seed)))

	positions := make([]math.Vec3, len(cfg.Scene.Cells))
	for i, p := range cfg.Scene.Cells {
		positions[i] = math.NewVec3(p[0], p[1], p[2])
	}
	s, err := scene.NewSampleScene(builder, positions, scene.CellOptions{
		Bumps:     cfg.Scene.BumpCount,
		BumpScale: cfg.Scene.BumpScale,
	})
	if err != nil {
		fmt.Printf("Failed to build scene: %v\n", err)
		os.Exit(1)
	}
	s.PlaceDepth = cfg.Scene.PlaceDepth

	if *dump {
		fmt.Print(s.Dump())
		return
	}

	if err := run(cfg, s, extra); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
}

// loadRegistry builds the geometry registry plus any configured mesh files
// (.obj, .gltf or .glb). Meshes that fail to load are reported and skipped.
// The first extra kind in name order is returned for the place key.
func loadRegistry(meshes map[string]string) (*geometry.Registry, geometry.Kind) {
	names := make([]string, 0, len(meshes))
	for name := range meshes {
		names = append(names, name)
	}
	sort.Strings(names)

	var opts []geometry.Option
	var extra geometry.Kind
	for _, name := range names {
		mesh, err := geometry.LoadMesh(meshes[name])
		if err != nil {
			fmt.Printf("Skipping mesh %q: %v\n", name, err)
			continue
		}
		fmt.Printf("Loaded mesh %q (%d vertices)\n", name, len(mesh.Vertices))
		opts = append(opts, geometry.WithMesh(geometry.Kind(name), mesh))
		if extra == "" {
			extra = geometry.Kind(name)
		}
	}
	return geometry.NewRegistry(opts...), extra
}

func run(cfg config.Config, s *scene.Scene, extra geometry.Kind) error {
	window, err := platform.NewWindow(platform.WindowConfig{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Title:     cfg.Window.Title,
		Resizable: true,
		VSync:     true,
	})
	if err != nil {
		return err
	}
	defer window.Destroy()

	renderer, err := opengl.NewRenderer()
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	viewer := editor.NewViewer(s, editor.Camera{
		FOV:      cfg.Camera.FOV,
		Near:     cfg.Camera.Near,
		Far:      cfg.Camera.Far,
		Distance: cfg.Camera.Distance,
	}, window.Width, window.Height)
	viewer.Interaction.ExtraKind = extra
	window.Bind(viewer.Interaction, viewer.Resize)

	var grid *geometry.Mesh
	if entry, ok := s.Builder().Registry().Lookup(geometry.KindGrid); ok {
		grid = entry.Mesh
	}

	printControls(extra)

	var lastSelected scene.Node
	for !window.ShouldClose() {
		window.PollEvents()

		if viewer.LastError != nil {
			fmt.Printf("[Place] Error: %v\n", viewer.LastError)
			viewer.LastError = nil
		}
		if sel := s.Selected(); sel != lastSelected {
			lastSelected = sel
			title := cfg.Window.Title
			if sel != nil {
				title += " - " + sel.Name()
			}
			window.SetTitle(title)
		}

		renderer.SetViewport(window.GetFramebufferSize())
		viewer.UpdateCamera()
		renderer.BeginFrame()
		renderer.DrawScene(s, grid, viewer.ModelView(), math.Mat4FromGL(viewer.Projection()))
		window.SwapBuffers()
	}
	return nil
}

func printControls(extra geometry.Kind) {
	fmt.Println("===========================================")
	fmt.Println("  Cancer Cell Modeller")
	fmt.Println("===========================================")
	fmt.Println("  Left click      - Select node")
	fmt.Println("  Left drag       - Move selection")
	fmt.Println("  Right drag      - Rotate camera")
	fmt.Println("  Middle drag     - Pan camera")
	fmt.Println("  Scroll          - Zoom")
	fmt.Println("  S / C           - Place sphere / cube")
	if extra != "" {
		fmt.Printf("  P               - Place %s\n", extra)
	}
	fmt.Println("  Up / Down       - Scale selection")
	fmt.Println("  Left / Right    - Cycle selection color")
	fmt.Println("  ESC             - Exit")
	fmt.Println("===========================================")
}
