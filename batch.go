package tiler

import (
	"fmt"

	"github.com/gogpu/tiler/internal/parallel"
)

// Job is one linear to tiled conversion in a batch. Each job must own its
// Dst; two jobs writing the same memory is a caller error.
type Job struct {
	Src       []byte
	Dst       []byte
	RowStride int
	Tile      TileInfo
	TilesX    int
	TilesY    int
}

// JobForLayout builds a job that swizzles src into dst for a tiled layout.
func JobForLayout(l Layout, src, dst []byte, rowStride int) (Job, error) {
	if l.Kind != LayoutTiled {
		return Job{}, fmt.Errorf("%w: layout is %s", ErrNotTiled, l.Kind)
	}
	return Job{
		Src:       src,
		Dst:       dst,
		RowStride: rowStride,
		Tile:      l.Tile,
		TilesX:    l.TilesX,
		TilesY:    l.TilesY,
	}, nil
}

// ConvertBatch runs independent conversions concurrently on up to workers
// goroutines (GOMAXPROCS when workers <= 0). errs[i] is the result of
// jobs[i]. Every job is validated on its own; one failure does not stop
// the others.
func ConvertBatch(jobs []Job, workers int) (errs []error) {
	errs = make([]error, len(jobs))
	if len(jobs) == 0 {
		return errs
	}

	pool := parallel.NewWorkerPool(min(max(workers, 0), len(jobs)))
	defer pool.Close()

	pool.ForEach(len(jobs), func(i int) {
		j := jobs[i]
		errs[i] = ConvertLinearToTiledInto(j.Dst, j.Src, j.RowStride, j.Tile, j.TilesX, j.TilesY)
	})
	return errs
}
