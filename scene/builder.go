package scene

import (
	"math/rand"

	"github.com/Pallinder/go-randomdata"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"cell-modeller/core"
	"cell-modeller/geometry"
)

// ErrUnknownKind is returned when asked to build a shape the registry cannot
// place.
var ErrUnknownKind = errors.New("unknown primitive kind")

// Builder constructs nodes. All randomness (colors, names, ids, bump
// placement) is drawn from the injected source, so a fixed seed reproduces a
// scene exactly.
type Builder struct {
	registry *geometry.Registry
	rng      *rand.Rand
	names    *Namer
}

func NewBuilder(registry *geometry.Registry, rng *rand.Rand) *Builder {
	return &Builder{
		registry: registry,
		rng:      rng,
		names:    NewNamer(rng),
	}
}

func (b *Builder) Registry() *geometry.Registry { return b.registry }

func (b *Builder) newBase(prefix string) nodeBase {
	id, err := uuid.NewRandomFromReader(b.rng)
	if err != nil {
		id = uuid.Nil
	}
	return newNodeBase(id, b.names.Name(prefix), b.rng.Intn(len(core.Palette)))
}

// Primitive builds a leaf of the given kind, bounded by the registry's box for
// that kind.
func (b *Builder) Primitive(kind geometry.Kind) (*Primitive, error) {
	if !b.registry.Placeable(kind) {
		return nil, errors.Wrapf(ErrUnknownKind, "%q", kind)
	}
	entry, _ := b.registry.Lookup(kind)
	p := &Primitive{
		nodeBase: b.newBase(string(kind)),
		kind:     kind,
		mesh:     entry.Mesh,
	}
	p.aabb = NewAABB(entry.Center, entry.HalfExtents)
	return p, nil
}

// Group builds an empty composite with the default unit box.
func (b *Builder) Group(name string) *Group {
	return &Group{nodeBase: b.newBase(name)}
}

// Namer hands out unique human-readable node names drawn from rng.
type Namer struct {
	rng  *rand.Rand
	used map[string]struct{}
}

func NewNamer(rng *rand.Rand) *Namer {
	return &Namer{rng: rng, used: make(map[string]struct{})}
}

// Name returns a fresh name starting with prefix. randomdata keeps a single
// package-level source, so it is pointed at this namer's rng before every
// draw; names must not be requested from several goroutines at once.
func (n *Namer) Name(prefix string) string {
	for {
		randomdata.CustomRand(n.rng)
		name := prefix + "-" + randomdata.SillyName()
		if _, exists := n.used[name]; !exists {
			n.used[name] = struct{}{}
			return name
		}
	}
}
