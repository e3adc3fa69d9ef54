package cpu

import (
	"github.com/born-ml/tensorops/internal/parallel"
	"github.com/born-ml/tensorops/internal/tensor"
)

// MatMul multiplies the last two dimensions of lhs [..., m, k] and rhs [..., k, n].
// Leading (batch) dimensions must be identical; they are not broadcast.
func (f floatOps[FE, IE]) MatMul(lhs, rhs tensor.FloatTensor) tensor.FloatTensor {
	const op = "float.MatMul"
	a, b := f.raw(op, lhs), f.raw(op, rhs)
	sameDevice(op, a, b)
	shape := matmulShape(op, a.shape, b.shape)

	rank := shape.Rank()
	m, k, n := a.shape[rank-2], a.shape[rank-1], b.shape[rank-1]
	batch := 1
	for _, d := range shape[:rank-2] {
		batch *= d
	}

	to, from := tensor.FloatConverters[FE]()
	av, bv := values[FE](op, a), values[FE](op, b)
	out := make([]FE, shape.NumElements())
	parallel.For(batch*m, func(start, end int) {
		row := make([]float64, n)
		for bi := start; bi < end; bi++ {
			bat, i := bi/m, bi%m
			aOff, bOff := bat*m*k+i*k, bat*k*n
			for j := range row {
				row[j] = 0
			}
			for p := 0; p < k; p++ {
				x := to(av[aOff+p])
				if x == 0 {
					continue
				}
				bRow := bv[bOff+p*n : bOff+(p+1)*n]
				for j, y := range bRow {
					row[j] += x * to(y)
				}
			}
			dst := out[bat*m*n+i*n : bat*m*n+(i+1)*n]
			for j, v := range row {
				dst[j] = from(v)
			}
		}
	}, rowConfig(f.cfg(), k*n))
	return wrapFloat(newRaw(out, shape, a.device))
}

// matmulShape validates matmul operands and returns the result shape.
func matmulShape(op string, a, b tensor.Shape) tensor.Shape {
	tensor.CheckMinRank(op, a, 2)
	tensor.CheckMinRank(op, b, 2)
	if a.Rank() != b.Rank() {
		tensor.Panicf(tensor.ErrShapeMismatch, "%s: operand ranks differ: %v and %v", op, a, b)
	}
	rank := a.Rank()
	if !a[:rank-2].Equal(b[:rank-2]) {
		tensor.Panicf(tensor.ErrShapeMismatch, "%s: batch dimensions differ: %v and %v", op, a, b)
	}
	if a[rank-1] != b[rank-2] {
		tensor.Panicf(tensor.ErrShapeMismatch, "%s: inner dimensions differ: %v and %v", op, a, b)
	}
	out := a.Clone()
	out[rank-1] = b[rank-1]
	return out
}

// rowConfig scales the parallel chunk size down when each unit of work
// (a matmul output row) already costs work elements.
func rowConfig(cfg parallel.Config, work int) parallel.Config {
	if work > 1 {
		cfg.MinChunkSize = max(1, cfg.MinChunkSize/work)
	}
	return cfg
}
