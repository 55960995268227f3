// Package main provides the CLI wrapper for morphcore.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"gocv.io/x/gocv"

	"github.com/facemorph/morphcore/internal/catalog"
	"github.com/facemorph/morphcore/internal/config"
	"github.com/facemorph/morphcore/pkg/morph"
)

var version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "Path to TOML configuration file")
	showVersion := flag.Bool("version", false, "Show version information")

	srcPath := flag.String("src", "", "Path to source image")
	tgtPath := flag.String("tgt", "", "Path to target image")
	srcLMPath := flag.String("src-landmarks", "", "Path to source landmarks JSON")
	tgtLMPath := flag.String("tgt-landmarks", "", "Path to target landmarks JSON")
	outPath := flag.String("out", "", "Path to write the output image")
	alpha := flag.Float64("alpha", -1, "Blend strength in [0,1] (overrides config default)")
	animal := flag.Bool("animal", false, "Treat the target as a non-human (animal) face")
	watchDir := flag.String("watch", "", "Watch DIR for (src,tgt,landmarks) triples instead of a single one-shot call")
	catalogPath := flag.String("catalog", "", "Path to a TOML asset catalog")
	addonName := flag.String("addon", "", "Name of a catalog addon asset to overlay onto the morphed output")
	verbose := flag.Bool("verbose", false, "Enable verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "morphctl - real-time face-morphing engine CLI\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -src a.png -tgt b.png -src-landmarks a.json -tgt-landmarks b.json -out out.png\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -watch ./incoming -config config.toml\n", os.Args[0])
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("morphctl version %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *alpha < 0 {
		*alpha = cfg.Output.DefaultAlpha
	}

	eng, err := morph.NewEngine(cfg)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	if *watchDir != "" {
		runWatch(eng, *watchDir, *alpha, *animal, *verbose)
		return
	}

	if *srcPath == "" || *tgtPath == "" || *srcLMPath == "" || *tgtLMPath == "" || *outPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	var addon *catalog.Asset
	if *catalogPath != "" && *addonName != "" {
		cat, err := catalog.Load(*catalogPath)
		if err != nil {
			log.Fatalf("Failed to load catalog: %v", err)
		}
		asset, ok := cat.ByName(*addonName)
		if !ok {
			log.Fatalf("Addon %q not found in catalog", *addonName)
		}
		addon = &asset
	}

	if err := runOnce(eng, *srcPath, *tgtPath, *srcLMPath, *tgtLMPath, *outPath, *alpha, *animal, cfg.Output.JPEGQuality, addon); err != nil {
		log.Fatalf("Morph failed: %v", err)
	}
	if *verbose {
		log.Printf("Wrote %s (triangles warped=%d rejected=%d)", *outPath, eng.Stats.TrianglesWarped, eng.Stats.TrianglesRejected)
	}
}

// addonKindOf maps a catalog.Kind to its morph.AddonKind, per spec §4.8.
func addonKindOf(k catalog.Kind) (morph.AddonKind, bool) {
	switch k {
	case catalog.KindGlasses:
		return morph.AddonGlasses, true
	case catalog.KindMoustache:
		return morph.AddonMoustache, true
	case catalog.KindHat:
		return morph.AddonHat, true
	case catalog.KindGeneric:
		return morph.AddonGeneric, true
	default:
		return 0, false
	}
}

// runOnce performs a single morph call from file paths to an output
// file, optionally drawing a catalog addon onto the result afterward.
func runOnce(eng *morph.Engine, srcPath, tgtPath, srcLMPath, tgtLMPath, outPath string, alpha float64, isAnimal bool, jpegQuality int, addon *catalog.Asset) error {
	srcImg, err := readImage(srcPath)
	if err != nil {
		return fmt.Errorf("reading source image: %w", err)
	}
	tgtImg, err := readImage(tgtPath)
	if err != nil {
		return fmt.Errorf("reading target image: %w", err)
	}

	srcLM, err := readLandmarks(srcLMPath)
	if err != nil {
		return fmt.Errorf("reading source landmarks: %w", err)
	}
	tgtLM, err := readLandmarks(tgtLMPath)
	if err != nil {
		return fmt.Errorf("reading target landmarks: %w", err)
	}

	out := morph.NewBuffer(srcImg.W, srcImg.H)
	if err := eng.Morph(srcImg, tgtImg, srcLM, tgtLM, alpha, out, isAnimal); err != nil {
		return fmt.Errorf("morph: %w", err)
	}

	if addon != nil {
		kind, ok := addonKindOf(addon.Kind)
		if !ok {
			return fmt.Errorf("addon %q has no placement kind", addon.Name)
		}
		overlayImg, err := readImage(addon.Image)
		if err != nil {
			return fmt.Errorf("reading addon image: %w", err)
		}
		if err := eng.PlaceOverlay(out, overlayImg, kind, srcLM); err != nil {
			return fmt.Errorf("placing addon %q: %w", addon.Name, err)
		}
	}

	return writeImage(outPath, out, jpegQuality)
}

// runWatch polls watchDir every second for (name.src.png, name.tgt.png,
// name.src.json, name.tgt.json) quadruples and morphs each as it
// appears, writing name.out.png alongside. Processed inputs are not
// removed; callers own cleanup. Shuts down cleanly on SIGINT/SIGTERM.
func runWatch(eng *morph.Engine, dir string, alpha float64, isAnimal, verbose bool) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	done := make(map[string]bool)

	log.Printf("Watching %s for morph jobs. Press Ctrl+C to stop.", dir)
	for {
		select {
		case sig := <-sigCh:
			log.Printf("Received signal %v, shutting down...", sig)
			return
		case <-ticker.C:
			names, err := pendingJobs(dir, done)
			if err != nil {
				log.Printf("scanning %s: %v", dir, err)
				continue
			}
			for _, name := range names {
				job := watchJob{dir: dir, name: name}
				outPath := filepath.Join(dir, name+".out.png")
				if err := runOnce(eng, job.src(), job.tgt(), job.srcLM(), job.tgtLM(), outPath, alpha, isAnimal, 92, nil); err != nil {
					log.Printf("job %s failed: %v", name, err)
				} else if verbose {
					log.Printf("job %s -> %s", name, outPath)
				}
				done[name] = true
			}
		}
	}
}

// watchJob names the four input files for one watch-mode job.
type watchJob struct {
	dir, name string
}

func (j watchJob) src() string   { return filepath.Join(j.dir, j.name+".src.png") }
func (j watchJob) tgt() string   { return filepath.Join(j.dir, j.name+".tgt.png") }
func (j watchJob) srcLM() string { return filepath.Join(j.dir, j.name+".src.json") }
func (j watchJob) tgtLM() string { return filepath.Join(j.dir, j.name+".tgt.json") }

// pendingJobs scans dir for complete, not-yet-processed job quadruples,
// identified by the common name prefix before ".src.png".
func pendingJobs(dir string, done map[string]bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".src.png") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".src.png")
		if done[name] {
			continue
		}
		job := watchJob{dir: dir, name: name}
		if fileExists(job.tgt()) && fileExists(job.srcLM()) && fileExists(job.tgtLM()) {
			names = append(names, name)
		}
	}
	return names, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// readImage loads an image file into a morph.Buffer via gocv.
func readImage(path string) (*morph.Buffer, error) {
	mat := gocv.IMRead(path, gocv.IMReadUnchanged)
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("could not decode image %q", path)
	}
	return morph.BufferFromMat(mat)
}

// writeImage encodes a morph.Buffer to a file via gocv, at the given
// JPEG quality when the extension is .jpg/.jpeg.
func writeImage(path string, buf *morph.Buffer, jpegQuality int) error {
	mat, err := buf.ToMat()
	if err != nil {
		return fmt.Errorf("converting output buffer: %w", err)
	}
	defer mat.Close()

	params := []int{}
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".jpg" || ext == ".jpeg" {
		params = []int{gocv.IMWriteJpegQuality, jpegQuality}
	}

	if ok := gocv.IMWriteWithParams(path, mat, params); !ok {
		return fmt.Errorf("failed to write image %q", path)
	}
	return nil
}

// readLandmarks opens and decodes a landmarks JSON file.
func readLandmarks(path string) (morph.LandmarkSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return morph.DecodeLandmarks(f)
}
