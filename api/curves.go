package api

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/vocdoni/ecc-elgamal-sandbox/crypto/ecc"
	"github.com/vocdoni/ecc-elgamal-sandbox/crypto/ecc/curves"
	"github.com/vocdoni/ecc-elgamal-sandbox/log"
	stg "github.com/vocdoni/ecc-elgamal-sandbox/storage"
	"github.com/vocdoni/ecc-elgamal-sandbox/types"
)

// constraints reports whether the given parameters define a non-singular
// curve.
// POST /constraints
func (a *API) constraints(w http.ResponseWriter, r *http.Request) {
	params := &CurveParams{}
	if err := decodeBody(r, params, false); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	httpWriteJSON(w, &Constraints{Valid: ecc.TestConstraints(params.P, params.A, params.B)})
}

// newCurve builds the group of a curve, or returns the stored one if it was
// already built.
// POST /curves
func (a *API) newCurve(w http.ResponseWriter, r *http.Request) {
	params := &CurveParams{}
	if err := decodeBody(r, params, false); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}

	if params.Preset != "" {
		a.newPresetCurve(w, params.Preset)
		return
	}

	curve := ecc.Curve{P: params.P, A: params.A, B: params.B}
	if curve.P > a.maxModulus {
		ErrInvalidCurve.Withf("modulus %d exceeds the limit %d", curve.P, a.maxModulus).Write(w)
		return
	}
	if err := curve.Validate(); err != nil {
		ErrInvalidCurve.WithErr(err).Write(w)
		return
	}
	id := stg.CurveID(curve)
	g, ok := a.storedGroup(w, id)
	if !ok || g != nil {
		return
	}
	built, err := ecc.NewGroup(curve)
	if err != nil {
		engineError(err).Write(w)
		return
	}
	if id, err = a.storage.SetGroup(built); err != nil {
		ErrGenericInternalServerError.Withf("could not store curve: %v", err).Write(w)
		return
	}
	a.cacheGroup(id, built)
	log.Infow("new curve", "curveId", id.String(), "curve", curve.String(),
		"points", len(built.Points()), "generator", built.Generator().String(), "order", built.Order())
	httpWriteJSON(w, curveInfo(id, built))
}

// newPresetCurve serves the group of a named preset, building it only the
// first time it is requested.
func (a *API) newPresetCurve(w http.ResponseWriter, name string) {
	if !curves.IsSupported(name) {
		ErrInvalidCurve.Withf("unsupported curve type: %s", name).Write(w)
		return
	}
	id := stg.PresetID(name)
	g, ok := a.storedGroup(w, id)
	if !ok || g != nil {
		return
	}
	built, err := curves.New(name)
	if err != nil {
		engineError(err).Write(w)
		return
	}
	if id, err = a.storage.SetPresetGroup(name, built); err != nil {
		ErrGenericInternalServerError.Withf("could not store curve: %v", err).Write(w)
		return
	}
	a.cacheGroup(id, built)
	log.Infow("new preset curve", "curveId", id.String(), "preset", name,
		"generator", built.Generator().String(), "order", built.Order())
	httpWriteJSON(w, curveInfo(id, built))
}

// storedGroup writes the info of the group stored under id if there is one.
// It returns a nil group and ok set when the group still has to be built.
func (a *API) storedGroup(w http.ResponseWriter, id types.HexBytes) (*ecc.Group, bool) {
	g, err := a.loadGroup(id)
	switch {
	case err == nil:
		log.Debugw("curve already built", "curveId", id.String(), "curve", g.Curve().String())
		httpWriteJSON(w, curveInfo(id, g))
		return g, true
	case errors.Is(err, stg.ErrNotFound):
		return nil, true
	default:
		ErrGenericInternalServerError.Withf("could not load curve: %v", err).Write(w)
		return nil, false
	}
}

// listCurves returns the ids of the stored curves.
// GET /curves
func (a *API) listCurves(w http.ResponseWriter, r *http.Request) {
	ids, err := a.storage.Groups()
	if err != nil {
		ErrGenericInternalServerError.Withf("could not list curves: %v", err).Write(w)
		return
	}
	if ids == nil {
		ids = []types.HexBytes{}
	}
	httpWriteJSON(w, &CurveList{Curves: ids})
}

// curve returns the info of a built curve.
// GET /curves/{curveId}
func (a *API) curve(w http.ResponseWriter, r *http.Request) {
	id, g, ok := a.urlGroup(w, r)
	if !ok {
		return
	}
	httpWriteJSON(w, curveInfo(id, g))
}

// urlGroup resolves the curveId URL parameter to its group. On failure the
// error is written and ok is false.
func (a *API) urlGroup(w http.ResponseWriter, r *http.Request) (types.HexBytes, *ecc.Group, bool) {
	id, err := types.HexStringToHexBytes(chi.URLParam(r, CurveURLParam))
	if err != nil || len(id) == 0 {
		ErrMalformedCurveID.Withf("could not decode curve ID: %v", err).Write(w)
		return nil, nil, false
	}
	g, err := a.loadGroup(id)
	if err != nil {
		if errors.Is(err, stg.ErrNotFound) {
			ErrCurveNotFound.Withf("curve %s", id).Write(w)
			return nil, nil, false
		}
		ErrGenericInternalServerError.Withf("could not load curve: %v", err).Write(w)
		return nil, nil, false
	}
	return id, g, true
}

// loadGroup returns the group of a curve id from the in-memory cache, or
// restores it from the storage.
func (a *API) loadGroup(id types.HexBytes) (*ecc.Group, error) {
	a.groupsMu.RLock()
	g, ok := a.groups[id.String()]
	a.groupsMu.RUnlock()
	if ok {
		return g, nil
	}
	g, err := a.storage.Group(id)
	if err != nil {
		return nil, err
	}
	log.Debugw("curve restored from storage", "curveId", id.String(), "points", len(g.Points()))
	a.cacheGroup(id, g)
	return g, nil
}

func (a *API) cacheGroup(id types.HexBytes, g *ecc.Group) {
	a.groupsMu.Lock()
	defer a.groupsMu.Unlock()
	a.groups[id.String()] = g
}

func curveInfo(id types.HexBytes, g *ecc.Group) *CurveInfo {
	return &CurveInfo{
		ID:        id,
		Curve:     g.Curve(),
		Equation:  g.Curve().String(),
		Residues:  g.Residues(),
		Points:    g.Points(),
		Generator: g.Generator(),
		Order:     g.Order(),
		Size:      g.Size(),
	}
}
