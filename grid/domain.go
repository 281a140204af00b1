package grid

// Domain is a pure geometric descriptor: cell size, iteration bounds,
// and - in a decomposed run - the local shard's sizes alongside the
// global sizes of the undivided problem. Mirrors include/Domain.hpp.
type Domain struct {
	Dx, Dy float64

	// SizeX, SizeY are the number of fluid-eligible cells owned by
	// this shard, excluding the ghost ring.
	SizeX, SizeY int

	// ItermaxX, ItermaxY bound the interior loops; equal to SizeX/SizeY
	// except when the domain is decomposed, where they describe the
	// iteration range appropriate to this shard.
	ItermaxX, ItermaxY int

	// DomainImax, DomainJmax are the global, non-decomposed sizes.
	DomainImax, DomainJmax int
}

// Valid reports the invariant iterm_x <= size_x <= domain_imax (and
// the analogous y relation).
func (d Domain) Valid() bool {
	return d.ItermaxX <= d.SizeX && d.SizeX <= d.DomainImax &&
		d.ItermaxY <= d.SizeY && d.SizeY <= d.DomainJmax
}
