package fluid

import (
	refpropgo "github.com/thermoflow/refprop-go"
	"github.com/thermoflow/refprop-go/errors"
)

// request is a normalized input state: keys in canonical order with their
// values carried along, so (P, T) and (T, P) resolve identically.
type request struct {
	x, y   Key
	vx, vy float64

	// quality is set for the T-Q and P-Q pairs, which are not dispatched
	// to a flash routine but composed from the saturation line.
	quality bool
}

type pairKey struct{ x, y Key }

// flashRoutines maps each canonical input pair to the engine routine that
// solves it. Method expressions keep the table declarative; the argument
// order of each routine matches the canonical key order.
var flashRoutines = map[pairKey]func(refpropgo.Engine, float64, float64) (refpropgo.ThermoProps, error){
	{KeyT, KeyP}: refpropgo.Engine.FlashTP,
	{KeyT, KeyD}: refpropgo.Engine.FlashTD,
	{KeyT, KeyH}: refpropgo.Engine.FlashTH,
	{KeyT, KeyS}: refpropgo.Engine.FlashTS,
	{KeyP, KeyD}: refpropgo.Engine.FlashPD,
	{KeyP, KeyH}: refpropgo.Engine.FlashPH,
	{KeyP, KeyS}: refpropgo.Engine.FlashPS,
	{KeyD, KeyH}: refpropgo.Engine.FlashDH,
	{KeyD, KeyS}: refpropgo.Engine.FlashDS,
	{KeyH, KeyS}: refpropgo.Engine.FlashHS,
}

// normalizePair validates an input pair and puts it in canonical order.
// The accepted pairs are the ten flash pairs plus T-Q and P-Q.
func normalizePair(k1 Key, v1 float64, k2 Key, v2 float64) (request, error) {
	if !isInput(k1) || !isInput(k2) || k1 == k2 {
		return request{}, errors.UnsupportedPair(k1.String(), k2.String())
	}
	req := request{x: k1, vx: v1, y: k2, vy: v2}
	if req.x > req.y {
		req.x, req.y = req.y, req.x
		req.vx, req.vy = req.vy, req.vx
	}
	if req.y == KeyQ {
		if req.x != KeyT && req.x != KeyP {
			return request{}, errors.UnsupportedPair(k1.String(), k2.String())
		}
		req.quality = true
		return req, nil
	}
	if _, ok := flashRoutines[pairKey{req.x, req.y}]; !ok {
		return request{}, errors.UnsupportedPair(k1.String(), k2.String())
	}
	return req, nil
}
