// Package discretization implements the pure finite-difference
// stencil operators used by Fields and ViscositySolver: the Laplacian,
// the Hirt donor-cell convection terms, the SOR helper, and the
// strain-rate magnitude. Every function consults only the eight
// neighbors of (i, j); callers guarantee those neighbors are live
// (fluid interior cells whose ghosts have already been filled by a
// boundary pass).
package discretization

import "github.com/mattetrop/fluidhcen/numerics"

// Laplacian computes the standard five-point discrete Laplacian of
// phi at (i, j).
func Laplacian(phi numerics.FieldMatrix, i, j int, dx, dy float64) float64 {
	d2dx2 := (phi.At(i+1, j) - 2*phi.At(i, j) + phi.At(i-1, j)) / (dx * dx)
	d2dy2 := (phi.At(i, j+1) - 2*phi.At(i, j) + phi.At(i, j-1)) / (dy * dy)
	return d2dx2 + d2dy2
}

// SORHelper returns the off-diagonal contribution the SOR sweep needs:
// (P(i+1,j)+P(i-1,j))/dx^2 + (P(i,j+1)+P(i,j-1))/dy^2.
func SORHelper(p numerics.FieldMatrix, i, j int, dx, dy float64) float64 {
	return (p.At(i+1, j) + p.At(i-1, j)) / (dx * dx) + (p.At(i, j+1) + p.At(i, j-1)) / (dy * dy)
}

// ConvectionU computes d(u^2)/dx + d(uv)/dy at the U point (i,j) -
// east face of cell (i,j) - using the Hirt donor-cell blend with
// upwind weight gamma in [0, 1].
func ConvectionU(u, v numerics.FieldMatrix, i, j int, dx, dy, gamma float64) float64 {
	uij, uip1j, uim1j := u.At(i, j), u.At(i+1, j), u.At(i-1, j)
	uijp1, uijm1 := u.At(i, j+1), u.At(i, j-1)

	duudx := 1/dx*(sq(mid(uij, uip1j))-sq(mid(uim1j, uij))) +
		gamma/dx*(absf(mid(uij, uip1j))*(uij-uip1j)/2-absf(mid(uim1j, uij))*(uim1j-uij)/2)

	vij := v.At(i, j)
	vi1j := v.At(i+1, j)
	vijm1 := v.At(i, j-1)
	vi1jm1 := v.At(i+1, j-1)

	vFaceTop := mid(vij, vi1j)
	vFaceBot := mid(vijm1, vi1jm1)
	uFaceTop := mid(uij, uijp1)
	uFaceBot := mid(uijm1, uij)

	duvdy := 1/dy*(vFaceTop*uFaceTop-vFaceBot*uFaceBot) +
		gamma/dy*(absf(vFaceTop)*(uij-uijp1)/2-absf(vFaceBot)*(uijm1-uij)/2)

	return duudx + duvdy
}

// ConvectionV computes d(uv)/dx + d(v^2)/dy at the V point (i,j) -
// north face of cell (i,j) - mirroring ConvectionU with x/y swapped.
func ConvectionV(u, v numerics.FieldMatrix, i, j int, dx, dy, gamma float64) float64 {
	vij, vijp1, vijm1 := v.At(i, j), v.At(i, j+1), v.At(i, j-1)

	dvvdy := 1/dy*(sq(mid(vij, vijp1))-sq(mid(vijm1, vij))) +
		gamma/dy*(absf(mid(vij, vijp1))*(vij-vijp1)/2-absf(mid(vijm1, vij))*(vijm1-vij)/2)

	uij := u.At(i, j)
	uijp1 := u.At(i, j+1)
	uim1j := u.At(i-1, j)
	uim1jp1 := u.At(i-1, j+1)

	vi1j := v.At(i+1, j)
	vim1j := v.At(i-1, j)

	uFaceRight := mid(uij, uijp1)
	uFaceLeft := mid(uim1j, uim1jp1)
	vFaceRight := mid(vij, vi1j)
	vFaceLeft := mid(vim1j, vij)

	duvdx := 1/dx*(uFaceRight*vFaceRight-uFaceLeft*vFaceLeft) +
		gamma/dx*(absf(uFaceRight)*(vij-vi1j)/2-absf(uFaceLeft)*(vim1j-vij)/2)

	return dvvdy + duvdx
}

// ConvectionScalar computes d(u*phi)/dx + d(v*phi)/dy for a
// cell-centered scalar phi (temperature, K, or E), donor-cell blended
// with weight gamma.
func ConvectionScalar(u, v, phi numerics.FieldMatrix, i, j int, dx, dy, gamma float64) float64 {
	uRight, uLeft := u.At(i, j), u.At(i-1, j)
	vTop, vBot := v.At(i, j), v.At(i, j-1)

	phiRightC := mid(phi.At(i, j), phi.At(i+1, j))
	phiLeftC := mid(phi.At(i-1, j), phi.At(i, j))
	phiTopC := mid(phi.At(i, j), phi.At(i, j+1))
	phiBotC := mid(phi.At(i, j-1), phi.At(i, j))

	duphidx := 1/dx*(uRight*phiRightC-uLeft*phiLeftC) +
		gamma/dx*(absf(uRight)*(phi.At(i,j)-phi.At(i+1,j))/2-absf(uLeft)*(phi.At(i-1,j)-phi.At(i,j))/2)

	dvphidy := 1/dy*(vTop*phiTopC-vBot*phiBotC) +
		gamma/dy*(absf(vTop)*(phi.At(i,j)-phi.At(i,j+1))/2-absf(vBot)*(phi.At(i,j-1)-phi.At(i,j))/2)

	return duphidx + dvphidy
}

// StrainRateSquared returns |S|^2 = 2*Sij*Sij, the k-epsilon
// production-term shear magnitude, from central differences of the
// staggered U/V field.
func StrainRateSquared(u, v numerics.FieldMatrix, i, j int, dx, dy float64) float64 {
	dudx := (u.At(i, j) - u.At(i-1, j)) / dx
	dvdy := (v.At(i, j) - v.At(i, j-1)) / dy

	// du/dy and dv/dx averaged onto the cell center from the four
	// surrounding staggered points.
	dudy := ((mid(u.At(i, j), u.At(i, j+1)) - mid(u.At(i, j-1), u.At(i, j))) / dy)
	dvdx := ((mid(v.At(i, j), v.At(i+1, j)) - mid(v.At(i-1, j), v.At(i, j))) / dx)

	sxx := dudx
	syy := dvdy
	sxy := 0.5 * (dudy + dvdx)
	return 2 * (sxx*sxx + syy*syy + 2*sxy*sxy)
}

// TurbulentLaplacian computes the diffusive term
// d/dx[(nu + nuT/sigma) dphi/dx] + d/dy[(nu + nuT/sigma) dphi/dy] for a
// cell-centered turbulence scalar phi, face-interpolating nuT.
func TurbulentLaplacian(phi, nuT numerics.FieldMatrix, nu, sigma float64, i, j int, dx, dy float64) float64 {
	coeffRight := nu + mid(nuT.At(i, j), nuT.At(i+1, j))/sigma
	coeffLeft := nu + mid(nuT.At(i-1, j), nuT.At(i, j))/sigma
	coeffTop := nu + mid(nuT.At(i, j), nuT.At(i, j+1))/sigma
	coeffBot := nu + mid(nuT.At(i, j-1), nuT.At(i, j))/sigma

	dPhidxRight := (phi.At(i+1, j) - phi.At(i, j)) / dx
	dPhidxLeft := (phi.At(i, j) - phi.At(i-1, j)) / dx
	dPhidyTop := (phi.At(i, j+1) - phi.At(i, j)) / dy
	dPhidyBot := (phi.At(i, j) - phi.At(i, j-1)) / dy

	return (coeffRight*dPhidxRight-coeffLeft*dPhidxLeft)/dx +
		(coeffTop*dPhidyTop-coeffBot*dPhidyBot)/dy
}

func mid(a, b float64) float64 { return 0.5 * (a + b) }
func sq(a float64) float64     { return a * a }
func absf(a float64) float64 {
	if a < 0 {
		return -a
	}
	return a
}
