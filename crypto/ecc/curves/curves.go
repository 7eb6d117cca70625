package curves

import (
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/vocdoni/ecc-elgamal-sandbox/crypto/ecc"
)

const (
	// CurveTypeDemo23 is y^2 = x^3 + x + 1 over F_23, with the generator picked
	// by the group search.
	CurveTypeDemo23 = "demo23"
	// CurveTypeTextbook751 is y^2 = x^3 - x + 188 over F_751 with the
	// generator (0, 376) used by the classic textbook exercises.
	CurveTypeTextbook751 = "textbook751"
)

// Types returns the names of the supported presets.
func Types() []string {
	return []string{CurveTypeDemo23, CurveTypeTextbook751}
}

// IsSupported reports whether curveType names a preset.
func IsSupported(curveType string) bool {
	return slices.Contains(Types(), curveType)
}

// New builds the group of the preset identified by curveType. Unsupported
// types return ecc.ErrInvalidParameter.
func New(curveType string) (*ecc.Group, error) {
	switch curveType {
	case CurveTypeDemo23:
		return ecc.NewGroup(ecc.Curve{P: 23, A: 1, B: 1})
	case CurveTypeTextbook751:
		return ecc.NewGroupWithGenerator(ecc.Curve{P: 751, A: -1, B: 188}, ecc.NewPoint(0, 376))
	default:
		return nil, errors.Wrapf(ecc.ErrInvalidParameter, "unsupported curve type: %s", curveType)
	}
}
