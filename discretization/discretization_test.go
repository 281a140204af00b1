package discretization

import (
	"testing"

	"github.com/mattetrop/fluidhcen/numerics"
	"github.com/stretchr/testify/assert"
)

func TestLaplacianOfLinearFieldIsZero(t *testing.T) {
	phi := numerics.NewFieldMatrix(5, 5)
	for j := 0; j < 5; j++ {
		for i := 0; i < 5; i++ {
			phi.Set(i, j, float64(i)+2*float64(j))
		}
	}
	got := Laplacian(phi, 2, 2, 1.0, 1.0)
	assert.InDelta(t, 0.0, got, 1e-9)
}

func TestLaplacianOfQuadraticField(t *testing.T) {
	phi := numerics.NewFieldMatrix(5, 5)
	for j := 0; j < 5; j++ {
		for i := 0; i < 5; i++ {
			x := float64(i)
			phi.Set(i, j, x*x)
		}
	}
	// d2/dx2(x^2) = 2 with dx=1.
	got := Laplacian(phi, 2, 2, 1.0, 1.0)
	assert.InDelta(t, 2.0, got, 1e-9)
}

func TestConvectionUZeroForUniformField(t *testing.T) {
	u := numerics.NewFieldMatrix(5, 5, 1.0)
	v := numerics.NewFieldMatrix(5, 5, 0.0)
	got := ConvectionU(u, v, 2, 2, 1.0, 1.0, 0.5)
	assert.InDelta(t, 0.0, got, 1e-9)
}

func TestConvectionVZeroForUniformField(t *testing.T) {
	u := numerics.NewFieldMatrix(5, 5, 0.0)
	v := numerics.NewFieldMatrix(5, 5, 1.0)
	got := ConvectionV(u, v, 2, 2, 1.0, 1.0, 0.5)
	assert.InDelta(t, 0.0, got, 1e-9)
}

// TestConvectionUMatchesDonorCellUpwindForRampedField pins down the
// d(u^2)/dx term against a hand-computed donor-cell upwind value for a
// non-uniform U, where a face-average-instead-of-difference bug would
// produce a different sign and magnitude.
func TestConvectionUMatchesDonorCellUpwindForRampedField(t *testing.T) {
	u := numerics.NewFieldMatrix(5, 5, 0.0)
	u.Set(1, 2, 0)
	u.Set(2, 2, 1)
	u.Set(3, 2, 3)
	v := numerics.NewFieldMatrix(5, 5, 0.0)

	got := ConvectionU(u, v, 2, 2, 1.0, 1.0, 1.0)
	assert.InDelta(t, 2.0, got, 1e-9)
}

// TestConvectionUCrossTermMatchesDonorCellUpwind isolates d(uv)/dy
// (U is constant along i, so d(u^2)/dx is zero) against a ramped U in
// j and a uniform, nonzero V.
func TestConvectionUCrossTermMatchesDonorCellUpwind(t *testing.T) {
	u := numerics.NewFieldMatrix(5, 5, 0.0)
	u.Set(1, 2, 1)
	u.Set(2, 2, 1)
	u.Set(3, 2, 1)
	u.Set(2, 1, 0)
	u.Set(2, 3, 4)
	v := numerics.NewFieldMatrix(5, 5, 2.0)

	got := ConvectionU(u, v, 2, 2, 1.0, 1.0, 1.0)
	assert.InDelta(t, 2.0, got, 1e-9)
}

// TestConvectionVMatchesDonorCellUpwindForRampedField mirrors
// TestConvectionUMatchesDonorCellUpwindForRampedField for d(v^2)/dy.
func TestConvectionVMatchesDonorCellUpwindForRampedField(t *testing.T) {
	u := numerics.NewFieldMatrix(5, 5, 0.0)
	v := numerics.NewFieldMatrix(5, 5, 0.0)
	v.Set(2, 1, 0)
	v.Set(2, 2, 1)
	v.Set(2, 3, 3)

	got := ConvectionV(u, v, 2, 2, 1.0, 1.0, 1.0)
	assert.InDelta(t, 2.0, got, 1e-9)
}

// TestConvectionVCrossTermMatchesDonorCellUpwind isolates d(uv)/dx
// (V is constant along j, so d(v^2)/dy is zero) against a ramped V in
// i and a uniform, nonzero U.
func TestConvectionVCrossTermMatchesDonorCellUpwind(t *testing.T) {
	u := numerics.NewFieldMatrix(5, 5, 3.0)
	v := numerics.NewFieldMatrix(5, 5, 0.0)
	v.Set(2, 1, 1)
	v.Set(2, 2, 1)
	v.Set(2, 3, 1)
	v.Set(1, 2, 0)
	v.Set(3, 2, 4)

	got := ConvectionV(u, v, 2, 2, 1.0, 1.0, 1.0)
	assert.InDelta(t, 3.0, got, 1e-9)
}

func TestConvectionScalarZeroForUniformField(t *testing.T) {
	u := numerics.NewFieldMatrix(5, 5, 1.0)
	v := numerics.NewFieldMatrix(5, 5, 1.0)
	phi := numerics.NewFieldMatrix(5, 5, 3.0)
	got := ConvectionScalar(u, v, phi, 2, 2, 1.0, 1.0, 0.5)
	assert.InDelta(t, 0.0, got, 1e-9)
}

func TestStrainRateSquaredZeroForUniformFlow(t *testing.T) {
	u := numerics.NewFieldMatrix(5, 5, 2.0)
	v := numerics.NewFieldMatrix(5, 5, -1.0)
	got := StrainRateSquared(u, v, 2, 2, 1.0, 1.0)
	assert.InDelta(t, 0.0, got, 1e-9)
}

func TestStrainRateSquaredNonzeroForShear(t *testing.T) {
	u := numerics.NewFieldMatrix(5, 5)
	for j := 0; j < 5; j++ {
		for i := 0; i < 5; i++ {
			u.Set(i, j, float64(j))
		}
	}
	v := numerics.NewFieldMatrix(5, 5, 0.0)
	got := StrainRateSquared(u, v, 2, 2, 1.0, 1.0)
	assert.Greater(t, got, 0.0)
}

func TestSORHelperSumsNeighbors(t *testing.T) {
	p := numerics.NewFieldMatrix(5, 5, 1.0)
	got := SORHelper(p, 2, 2, 1.0, 2.0)
	want := (1.0+1.0)/(1.0*1.0) + (1.0+1.0)/(2.0*2.0)
	assert.InDelta(t, want, got, 1e-9)
}

func TestTurbulentLaplacianZeroForUniformField(t *testing.T) {
	phi := numerics.NewFieldMatrix(5, 5, 4.0)
	nuT := numerics.NewFieldMatrix(5, 5, 0.1)
	got := TurbulentLaplacian(phi, nuT, 0.01, 1.0, 2, 2, 1.0, 1.0)
	assert.InDelta(t, 0.0, got, 1e-9)
}
