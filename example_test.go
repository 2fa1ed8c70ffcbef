package vlass_test

import (
	"fmt"
	"os"
	"path/filepath"

	vlass "github.com/Dillon-Z-Dong/VLASS-Tools"
)

func ExampleExtractMany() {
	r, err := vlass.NewRaster(100, 100)
	if err != nil {
		return
	}

	centers := []vlass.PixelCenter{
		{X: 50, Y: 50},   // well inside
		{X: 0, Y: 0},     // on the corner
		{X: -400, Y: 60}, // not contained in the image
	}
	cutouts, err := vlass.ExtractMany(r, centers, 61)
	if err != nil {
		return
	}

	for i, c := range cutouts {
		s := c.Stats()
		fmt.Printf("cutout %d: %d valid, %.0f%% sentinel\n", i, s.Valid, s.SentinelFraction()*100)
	}
	// Output:
	// cutout 0: 3721 valid, 0% sentinel
	// cutout 1: 961 valid, 74% sentinel
	// cutout 2: 0 valid, 100% sentinel
}

func ExampleExtractMany_parallel() {
	r, err := vlass.NewRaster(2048, 2048)
	if err != nil {
		return
	}
	centers := []vlass.PixelCenter{{X: 1024, Y: 1024}, {X: 17.3, Y: 2047.9}}

	cutouts, _ := vlass.ExtractMany(r, centers, vlass.DefaultCutoutSize, func(o *vlass.ExtractOptions) {
		o.Parallelism = 4
	})
	fmt.Println(len(cutouts))
	// Output:
	// 2
}

func ExampleWriteCutoutPNG() {
	r, err := vlass.NewRaster(100, 100)
	if err != nil {
		return
	}
	cutouts, err := vlass.ExtractMany(r, []vlass.PixelCenter{{X: 50, Y: 50}}, 61)
	if err != nil {
		return
	}
	_ = vlass.WriteCutoutPNG(cutouts[0], filepath.Join(os.TempDir(), "cutout.png"), func(o *vlass.ExportOptions) {
		o.PreviewSize = 256
	})
}
