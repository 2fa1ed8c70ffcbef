// Command vlasstool extracts fixed-size cutouts from survey images and clips
// measurement-set auxiliary tables to the time ranges present in the data.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	vlass "github.com/Dillon-Z-Dong/VLASS-Tools"
	"github.com/Dillon-Z-Dong/VLASS-Tools/internal/msclip"
	_ "modernc.org/sqlite"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "cutout":
		if err := runCutout(os.Args[2:]); err != nil {
			fail(err)
		}
	case "clip":
		if err := runClip(os.Args[2:]); err != nil {
			fail(err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: vlasstool <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  cutout -in image.png -centers centers.json -out-dir dir [-size 61] [-parallel N] [-preview N] [-config cfg.json] [-v]")
	fmt.Fprintln(os.Stderr, "  clip   -db ms.sqlite -main MAIN [-chunk-col FIELD_ID] [-tables POINTING,SYSPOWER] [-v]")
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runCutout(args []string) error {
	fs := flag.NewFlagSet("cutout", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image (PNG or JPEG)")
	centersPath := fs.String("centers", "", "JSON file with pixel centers [{\"x\":..,\"y\":..}]")
	outDir := fs.String("out-dir", "", "directory for output PNGs")
	configPath := fs.String("config", "", "JSON config file with defaults")
	size := fs.Int("size", 0, "cutout size in pixels (odd)")
	parallel := fs.Int("parallel", 0, "number of extraction workers")
	preview := fs.Int("preview", 0, "also write an NxN preview per cutout")
	verbose := fs.Bool("v", false, "debug logging")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" || *centersPath == "" || *outDir == "" {
		return errors.New("missing required arguments")
	}

	log := newLogger(*verbose)

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath); err != nil {
			return err
		}
	}
	if *size > 0 {
		cfg.Size = *size
	}
	if *parallel > 0 {
		cfg.Parallel = *parallel
	}
	if *preview > 0 {
		cfg.PreviewSize = *preview
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	centers, err := readCenters(*centersPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	src := vlass.ImageFileSource{Path: *inPath}
	raster, _, err := src.Raster()
	if err != nil {
		return err
	}
	log.Debug("raster loaded", "path", *inPath, "width", raster.Width, "height", raster.Height)

	cutouts, err := vlass.ExtractMany(raster, centers, cfg.Size, func(o *vlass.ExtractOptions) {
		o.Parallelism = cfg.Parallel
	})
	if err != nil {
		return err
	}

	for i, c := range cutouts {
		s := c.Stats()
		attrs := []any{
			"index", i,
			"x", c.Center.X,
			"y", c.Center.Y,
			"valid", s.Valid,
			"sentinel_fraction", s.SentinelFraction(),
		}
		if s.Valid > 0 {
			// Min/Max/Mean are NaN for all-sentinel cutouts, which JSON
			// logging cannot represent.
			attrs = append(attrs, "min", s.Min, "max", s.Max, "mean", s.Mean)
		}
		log.Info("cutout", attrs...)
		outPath := filepath.Join(*outDir, fmt.Sprintf("cutout_%03d.png", i))
		if err := vlass.WriteCutoutPNG(c, outPath, func(o *vlass.ExportOptions) {
			o.Lo = cfg.Lo
			o.Hi = cfg.Hi
		}); err != nil {
			return err
		}
		if cfg.PreviewSize > 0 {
			previewPath := filepath.Join(*outDir, fmt.Sprintf("cutout_%03d_preview.png", i))
			if err := vlass.WriteCutoutPNG(c, previewPath, func(o *vlass.ExportOptions) {
				o.Lo = cfg.Lo
				o.Hi = cfg.Hi
				o.PreviewSize = cfg.PreviewSize
			}); err != nil {
				return err
			}
		}
	}
	log.Info("done", "cutouts", len(cutouts), "out_dir", *outDir)
	return nil
}

func readCenters(path string) ([]vlass.PixelCenter, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	var raw []struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse centers %s: %w", path, err)
	}
	centers := make([]vlass.PixelCenter, len(raw))
	for i, p := range raw {
		centers[i] = vlass.PixelCenter{X: p.X, Y: p.Y}
	}
	return centers, nil
}

func runClip(args []string) error {
	fs := flag.NewFlagSet("clip", flag.ContinueOnError)
	dbPath := fs.String("db", "", "SQLite file holding the measurement-set tables")
	mainTable := fs.String("main", "MAIN", "main visibility table")
	chunkCol := fs.String("chunk-col", "FIELD_ID", "column grouping rows into time chunks")
	tables := fs.String("tables", "POINTING,SYSPOWER", "comma-separated auxiliary tables to clip")
	verbose := fs.Bool("v", false, "debug logging")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dbPath == "" {
		return errors.New("missing required arguments")
	}

	log := newLogger(*verbose)

	db, err := sql.Open("sqlite", *dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	clipper := &msclip.Clipper{DB: db, MainTable: *mainTable, ChunkCol: *chunkCol}
	names := strings.Split(*tables, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}

	results, err := clipper.ClipTables(context.Background(), names)
	for _, res := range results {
		if res.Total == 0 {
			log.Info("table empty, not clipped", "table", res.Table)
			continue
		}
		log.Info("table clipped",
			"table", res.Table,
			"total", res.Total,
			"kept", res.Kept,
			"kept_percent", float64(res.Kept)/float64(res.Total)*100,
		)
	}
	return err
}
