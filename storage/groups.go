package storage

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/vocdoni/ecc-elgamal-sandbox/crypto/ecc"
	"github.com/vocdoni/ecc-elgamal-sandbox/log"
	"github.com/vocdoni/ecc-elgamal-sandbox/types"
)

// CurveID returns the identifier of a curve: the truncated sha256 of its
// parameters, with the coefficients reduced mod p so that equivalent
// equations share the same id.
func CurveID(c ecc.Curve) types.HexBytes {
	return hashKey(fmt.Appendf(nil, "%d/%d/%d", c.P, ecc.Mod(c.A, c.P), ecc.Mod(c.B, c.P)))
}

// PresetID returns the identifier of a named preset. Presets live in their
// own id space, so a preset with a fixed generator never aliases the group
// found by the automatic search for the same curve.
func PresetID(name string) types.HexBytes {
	return hashKey([]byte("preset/" + name))
}

// SetGroup stores a built group and returns its curve id. Storing a group
// for a curve that is already stored replaces it.
func (s *Storage) SetGroup(g *ecc.Group) (types.HexBytes, error) {
	if g == nil {
		return nil, errors.New("nil group")
	}
	return s.setGroup(CurveID(g.Curve()), g)
}

// SetPresetGroup stores the group of the named preset under PresetID(name).
func (s *Storage) SetPresetGroup(name string, g *ecc.Group) (types.HexBytes, error) {
	if g == nil {
		return nil, errors.New("nil group")
	}
	return s.setGroup(PresetID(name), g)
}

func (s *Storage) setGroup(id types.HexBytes, g *ecc.Group) (types.HexBytes, error) {
	c := g.Curve()
	points := g.Points()
	artifact := groupArtifact{
		P:         c.P,
		A:         c.A,
		B:         c.B,
		Points:    make([]pointArtifact, 0, len(points)),
		Generator: newPointArtifact(g.Generator()),
		Order:     g.Order(),
	}
	for _, p := range points {
		artifact.Points = append(artifact.Points, newPointArtifact(p))
	}
	if _, err := s.setArtifact(groupPrefix, id, artifact); err != nil {
		return nil, errors.Wrapf(err, "store group %s", c)
	}
	log.Debugw("group stored", "curveId", id.String(), "points", len(points), "order", g.Order())
	return id, nil
}

// Group restores the group stored under the given curve id. It returns
// ErrNotFound if there is none.
func (s *Storage) Group(id types.HexBytes) (*ecc.Group, error) {
	var artifact groupArtifact
	if err := s.getArtifact(groupPrefix, id, &artifact); err != nil {
		return nil, err
	}
	points := make([]ecc.Point, 0, len(artifact.Points))
	for _, p := range artifact.Points {
		points = append(points, p.point())
	}
	c := ecc.Curve{P: artifact.P, A: artifact.A, B: artifact.B}
	g, err := ecc.RestoreGroup(c, points, artifact.Generator.point(), artifact.Order)
	if err != nil {
		return nil, errors.Wrapf(err, "restore group %s", id)
	}
	return g, nil
}

// Groups returns the ids of all the stored curves.
func (s *Storage) Groups() ([]types.HexBytes, error) {
	keys, err := s.listArtifacts(groupPrefix)
	if err != nil {
		return nil, err
	}
	ids := make([]types.HexBytes, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, k)
	}
	return ids, nil
}
