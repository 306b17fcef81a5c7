package physics

import "fmt"

// Atom is one nucleus of a molecular system.
type Atom struct {
	// Coord is the nuclear position (bohr).
	Coord Vec3
	// Charge is the nuclear charge Z.
	Charge float64
	// Population is the mean-field electron population of the atom, as
	// obtained from a partial-charge analysis of a reference
	// single-particle calculation. Walker seeding distributes electrons
	// over atoms in proportion to it. NewSystem defaults it to Charge
	// (a neutral atom with no charge analysis).
	Population float64
}

// System describes the fixed nuclear frame the electrons move in.
type System struct {
	Atoms []Atom
	// Charge is the net molecular charge; electrons = ΣZ − Charge.
	Charge int
}

// NewSystem builds a System from atoms, defaulting each missing
// Population to the atom's nuclear charge.
func NewSystem(charge int, atoms ...Atom) *System {
	for i := range atoms {
		if atoms[i].Population == 0 {
			atoms[i].Population = atoms[i].Charge
		}
	}
	return &System{Atoms: atoms, Charge: charge}
}

// NElectrons returns the total electron count ΣZ − Charge.
func (s *System) NElectrons() int {
	z := 0.0
	for _, a := range s.Atoms {
		z += a.Charge
	}
	return int(z) - s.Charge
}

// FromName returns one of the built-in molecular presets.
// Geometries are in bohr. Known names: "H", "He", "H2", "LiH", "Be".
func FromName(name string) (*System, error) {
	switch name {
	case "H":
		return NewSystem(0, Atom{Charge: 1}), nil
	case "He":
		return NewSystem(0, Atom{Charge: 2}), nil
	case "H2":
		return NewSystem(0,
			Atom{Coord: Vec3{0, 0, 0}, Charge: 1},
			Atom{Coord: Vec3{0.742 * angstrom, 0, 0}, Charge: 1},
		), nil
	case "LiH":
		return NewSystem(0,
			Atom{Coord: Vec3{0, 0, 0}, Charge: 3},
			Atom{Coord: Vec3{1.595 * angstrom, 0, 0}, Charge: 1},
		), nil
	case "Be":
		return NewSystem(0, Atom{Charge: 4}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMolecule, name)
	}
}

// angstrom in bohr.
const angstrom = 1.8897259886
