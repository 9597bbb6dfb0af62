// gltfinspect loads glTF assets the way the viewer does, without a window,
// and prints what ends up in the resource tables.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltfview/internal/config"
	"github.com/Faultbox/gltfview/internal/engine/gpu"
	"github.com/Faultbox/gltfview/internal/engine/input"
	"github.com/Faultbox/gltfview/internal/engine/scene"
	"github.com/Faultbox/gltfview/internal/logger"
	"github.com/Faultbox/gltfview/internal/viewer"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	if err := logger.Init("warn", ""); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	var err error
	switch command {
	case "tables", "info":
		err = cmdTables(os.Stdout, args)
	case "draws":
		err = cmdDraws(os.Stdout, args)
	case "demo":
		err = cmdDemo(os.Stdout, args)
	case "config":
		err = cmdConfig(os.Stdout, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	logger.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`gltfinspect - headless glTF ingestion inspector

Usage:
  gltfinspect <command> [options]

Commands:
  tables [-config file] [-v] [asset...]   Load assets and print the resource tables
  draws  [-config file] [asset...]        Print the draw calls of the first frame
  demo   <out.glb>                        Write a small demo asset
  config [out.yaml]                       Write the default configuration
                                          (default: the user config directory)

Assets given on the command line replace the configured list.

Examples:
  gltfinspect tables assets/toob.gltf assets/plus.gltf
  gltfinspect draws -config config.yaml
  gltfinspect demo demo.glb`)
}

type loadFlags struct {
	configPath string
	debug      bool
}

func (f *loadFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "Path to config file")
	fs.BoolVar(&f.debug, "debug", false, "Log ingestion at debug level")
}

// load builds the scene on a recording device.
func (f *loadFlags) load(assets []string) (*gpu.Recorder, *viewer.Scene, *config.Config, error) {
	cfg, err := config.LoadFile(f.configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(assets) > 0 {
		cfg.Assets.Paths = assets
	}
	if f.debug {
		logger.SetLevel("debug")
	}

	dev := gpu.NewRecorder()
	s, err := viewer.LoadScene(dev, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return dev, s, cfg, nil
}

func cmdTables(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("tables", flag.ContinueOnError)
	var lf loadFlags
	lf.register(fs)
	verbose := fs.Bool("v", false, "Dump every table entry")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dev, s, _, err := lf.load(fs.Args())
	if err != nil {
		return err
	}
	res := s.Resources

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TABLE\tUSED\tCAPACITY")
	for _, st := range res.Stats() {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", st.Table, st.Len, st.Capacity)
	}
	tw.Flush()
	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ASSET\tBUFFERS\tMESHES\tSUBMESHES")
	for _, a := range s.Assets {
		fmt.Fprintf(tw, "%s\t%d..%d\t%d..%d\t%d\n", a.Path,
			a.BufferBase, int(a.BufferBase)+a.BufferCount,
			a.MeshStart, int(a.MeshStart)+a.MeshCount,
			a.SubmeshCount)
	}
	tw.Flush()
	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SUBMESH\tMESH\tPIPELINE\tINDEX\tELEMENTS\tBUFFERS\tOFFSETS")
	for m := 0; m < res.MeshCount(); m++ {
		mesh := res.Mesh(scene.MeshIndex(m))
		for i := mesh.SubmeshStart; i < mesh.SubmeshEnd; i++ {
			sm := res.Submesh(i)
			fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%d\t%v\t%v\n",
				i, m, sm.Pipeline, sm.IndexType, sm.ElementCount, sm.Buffers, sm.Offsets)
		}
	}
	tw.Flush()

	if *verbose {
		fmt.Fprintln(w)
		cs := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
		for i := 0; i < res.BufferCount(); i++ {
			b := res.Buffer(scene.BufferHandle(i))
			fmt.Fprintf(w, "buffer %d: %s, %d bytes\n", i, b.Kind, len(dev.Buffer(b.GPU).Data))
		}
		for i := 0; i < res.EntityCount(); i++ {
			fmt.Fprintf(w, "entity %d: %s", i, cs.Sdump(*res.Entity(scene.EntityIndex(i))))
		}
	}
	return nil
}

func cmdDraws(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("draws", flag.ContinueOnError)
	var lf loadFlags
	lf.register(fs)
	width := fs.Int("width", 0, "Framebuffer width (default: configured window width)")
	height := fs.Int("height", 0, "Framebuffer height (default: configured window height)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dev, s, cfg, err := lf.load(fs.Args())
	if err != nil {
		return err
	}
	if *width <= 0 {
		*width = cfg.Window.Width
	}
	if *height <= 0 {
		*height = cfg.Window.Height
	}

	d := viewer.NewDriver(dev, s.Resources, cfg)
	if err := d.Frame(input.New(), *width, *height); err != nil {
		return err
	}

	for i, call := range dev.Draws {
		origin := mgl32.Mat4(call.MVP).Mul4x1(mgl32.Vec4{0, 0, 0, 1})
		fmt.Fprintf(w, "draw %d: pipeline=%d vb=%v off=%v ib=%d+%d elements=%d origin=%.3v\n",
			i, call.Pipeline, call.VertexBuffers, call.VertexOffsets,
			call.IndexBuffer, call.IndexOffset, call.ElementCount, origin)
	}
	return nil
}

func cmdDemo(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: gltfinspect demo <out.glb>")
	}

	path := fs.Arg(0)
	if err := writeDemo(path); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote: %s\n", path)
	return nil
}

func cmdConfig(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg := config.Default()
	if fs.NArg() < 1 {
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote: %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
		return nil
	}

	if err := cfg.SaveTo(fs.Arg(0)); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote: %s\n", fs.Arg(0))
	return nil
}
