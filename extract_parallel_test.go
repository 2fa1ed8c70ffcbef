package vlass

import (
	"math"
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractManyParallelMatchesSerial(t *testing.T) {
	t.Parallel()

	r := seqRaster(t, 128, 96)
	rng := rand.New(rand.NewSource(1))

	centers := make([]PixelCenter, 500)
	for i := range centers {
		// Spread centers inside, on, and well past the raster edges.
		centers[i] = PixelCenter{
			X: rng.Float64()*200 - 40,
			Y: rng.Float64()*160 - 40,
		}
	}
	centers = append(centers, PixelCenter{X: math.NaN(), Y: 10}, PixelCenter{X: -5000, Y: -5000})

	serial, err := ExtractMany(r, centers, 21)
	require.NoError(t, err)

	parallel, err := ExtractMany(r, centers, 21, func(o *ExtractOptions) {
		o.Parallelism = 8
	})
	require.NoError(t, err)
	require.Len(t, parallel, len(centers))

	for i := range serial {
		// Compare bitwise: centers include NaN, which reflect.DeepEqual treats as unequal.
		assert.Equal(t,
			[2]uint64{math.Float64bits(serial[i].Center.X), math.Float64bits(serial[i].Center.Y)},
			[2]uint64{math.Float64bits(parallel[i].Center.X), math.Float64bits(parallel[i].Center.Y)},
			"center %d", i)
		assert.Equal(t, cutoutBits(serial[i]), cutoutBits(parallel[i]), "cutout %d not bit-identical", i)
	}
}

func TestExtractManyOrderPreservation(t *testing.T) {
	t.Parallel()

	r := seqRaster(t, 50, 50)
	centers := []PixelCenter{{X: 5, Y: 5}, {X: 40, Y: 12}, {X: 25, Y: 25}, {X: -10, Y: 60}}

	out, err := ExtractMany(r, centers, 9)
	require.NoError(t, err)

	perm := []int{2, 0, 3, 1}
	permuted := make([]PixelCenter, len(centers))
	for i, p := range perm {
		permuted[i] = centers[p]
	}
	outPerm, err := ExtractMany(r, permuted, 9)
	require.NoError(t, err)

	for i, p := range perm {
		assert.Equal(t, cutoutBits(out[p]), cutoutBits(outPerm[i]), "permuted output %d", i)
	}
}

func TestExtractManyOnCutoutCallback(t *testing.T) {
	t.Parallel()

	r := seqRaster(t, 30, 30)
	centers := make([]PixelCenter, 64)
	for i := range centers {
		centers[i] = PixelCenter{X: float64(i), Y: float64(i)}
	}

	for _, workers := range []int{1, 4} {
		var calls atomic.Int64
		seen := make([]atomic.Bool, len(centers))
		_, err := ExtractMany(r, centers, 5, func(o *ExtractOptions) {
			o.Parallelism = workers
			o.OnCutout = func(i int, c *Cutout) {
				// Runs on worker goroutines; collect and assert afterwards.
				if c != nil && c.Center == centers[i] {
					seen[i].Store(true)
				}
				calls.Add(1)
			}
		})
		require.NoError(t, err)
		assert.Equal(t, int64(len(centers)), calls.Load(), "workers=%d", workers)
		for i := range seen {
			assert.True(t, seen[i].Load(), "cutout %d callback missing (workers=%d)", i, workers)
		}
	}
}

func TestExtractManySizeInvariants(t *testing.T) {
	t.Parallel()

	r := seqRaster(t, 11, 7)
	centers := []PixelCenter{{X: 3, Y: 3}, {X: 100, Y: -4}, {X: 0.2, Y: 6.9}}

	for _, size := range []int{1, 3, 9, 61} {
		out, err := ExtractMany(r, centers, size)
		require.NoError(t, err, "size %d", size)
		require.Len(t, out, len(centers))
		for i, c := range out {
			assert.Equal(t, size, c.Size, "cutout %d", i)
			assert.Len(t, c.Pix, size*size, "cutout %d", i)
		}
	}
}
