package fluid_test

import (
	"math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	refpropgo "github.com/thermoflow/refprop-go"
	"github.com/thermoflow/refprop-go/enginetest"
	"github.com/thermoflow/refprop-go/errors"
	"github.com/thermoflow/refprop-go/fluid"
	"github.com/thermoflow/refprop-go/session"
	"github.com/thermoflow/refprop-go/units"
)

func relClose(a, b, tol float64) bool {
	if a == b {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(a-b) <= tol*scale
}

func newFixture(t *testing.T) (*session.Session, *enginetest.Engine) {
	t.Helper()
	eng := enginetest.New()
	return session.New(eng), eng
}

func mustFluid(t *testing.T, ses *session.Session, name string, opts ...fluid.Option) *fluid.Fluid {
	t.Helper()
	f, err := fluid.New(ses, name, opts...)
	if err != nil {
		t.Fatalf("New(%q): %v", name, err)
	}
	return f
}

func mustBlend(t *testing.T, ses *session.Session) *fluid.Fluid {
	t.Helper()
	f, err := fluid.NewMixture(ses, []refpropgo.Component{
		{Name: "R32", Fraction: 0.5},
		{Name: "R125", Fraction: 0.5},
	})
	if err != nil {
		t.Fatalf("NewMixture: %v", err)
	}
	return f
}

func TestGet_PairOrderIndependent(t *testing.T) {
	ses, _ := newFixture(t)
	f := mustFluid(t, ses, "CO2")

	for _, out := range []fluid.Key{fluid.KeyD, fluid.KeyH, fluid.KeyS, fluid.KeyW} {
		a, err := f.Get(out, fluid.KeyT, 300, fluid.KeyP, 200)
		if err != nil {
			t.Fatalf("Get(%v, T, P): %v", out, err)
		}
		b, err := f.Get(out, fluid.KeyP, 200, fluid.KeyT, 300)
		if err != nil {
			t.Fatalf("Get(%v, P, T): %v", out, err)
		}
		if a != b {
			t.Errorf("Get(%v): (T,P) gave %v, (P,T) gave %v", out, a, b)
		}
	}
}

func TestGetByName_Aliases(t *testing.T) {
	ses, _ := newFixture(t)
	f := mustFluid(t, ses, "CO2")

	pairs := [][2]string{
		{"D", "RHO"},
		{"W", "A"},
		{"E", "U"},
		{"ETA", "VIS"},
		{"ETA", "V"},
		{"TCX", "LAMBDA"},
		{"TCX", "L"},
	}
	for _, pair := range pairs {
		canonical, err := f.GetByName(pair[0], "T", 300, "P", 200)
		if err != nil {
			t.Fatalf("GetByName(%s): %v", pair[0], err)
		}
		alias, err := f.GetByName(pair[1], "t", 300, "p", 200)
		if err != nil {
			t.Fatalf("GetByName(%s): %v", pair[1], err)
		}
		if canonical != alias {
			t.Errorf("alias %s = %v, canonical %s = %v", pair[1], alias, pair[0], canonical)
		}
	}
}

func TestGetByName_AliasAsInputKey(t *testing.T) {
	ses, _ := newFixture(t)
	f := mustFluid(t, ses, "CO2")

	d, err := f.GetByName("D", "T", 300, "P", 200)
	if err != nil {
		t.Fatalf("GetByName(D): %v", err)
	}

	canonical, err := f.GetByName("T", "D", d, "P", 200)
	if err != nil {
		t.Fatalf("GetByName with D input: %v", err)
	}
	for _, in := range []string{"RHO", "rho"} {
		aliased, err := f.GetByName("T", in, d, "P", 200)
		if err != nil {
			t.Fatalf("GetByName with %s input: %v", in, err)
		}
		if aliased != canonical {
			t.Errorf("%s input gave %v, D input gave %v", in, aliased, canonical)
		}
	}
	if !relClose(canonical, 300, 1e-9) {
		t.Errorf("recovered temperature = %v, want 300", canonical)
	}
}

func TestWithLogger_ConstructionDiagnostics(t *testing.T) {
	ses, _ := newFixture(t)
	core, logs := observer.New(zapcore.DebugLevel)

	f := mustFluid(t, ses, "CO2", fluid.WithLogger(zap.New(core)))
	if n := logs.FilterMessage("fluid handle created").Len(); n != 1 {
		t.Fatalf("construction log entries = %d, want 1", n)
	}

	// dispatch rejections are logged too
	if _, err := f.Get(fluid.KeyD, fluid.KeyT, 300, fluid.KeyT, 300); !errors.IsKind(err, errors.KindUnsupportedPair) {
		t.Fatalf("Get(T, T) = %v, want unsupported_pair", err)
	}
	if n := logs.FilterMessage("rejected input pair").Len(); n != 1 {
		t.Fatalf("rejection log entries = %d, want 1", n)
	}
}

func TestGet_UnsupportedPairs(t *testing.T) {
	ses, _ := newFixture(t)
	f := mustFluid(t, ses, "CO2")

	cases := []struct {
		name   string
		k1, k2 fluid.Key
	}{
		{"same key", fluid.KeyT, fluid.KeyT},
		{"output as input", fluid.KeyCv, fluid.KeyP},
		{"quality with density", fluid.KeyD, fluid.KeyQ},
		{"quality with enthalpy", fluid.KeyQ, fluid.KeyH},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.Get(fluid.KeyD, tc.k1, 1, tc.k2, 1)
			if !errors.IsKind(err, errors.KindUnsupportedPair) {
				t.Fatalf("Get(%v, %v) = %v, want unsupported_pair", tc.k1, tc.k2, err)
			}
		})
	}
}

func TestGetByName_UnknownKeys(t *testing.T) {
	ses, _ := newFixture(t)
	f := mustFluid(t, ses, "CO2")

	if _, err := f.GetByName("XYZZY", "T", 300, "P", 200); !errors.IsKind(err, errors.KindUnsupportedOutput) {
		t.Fatalf("unknown output: got %v, want unsupported_output", err)
	}
	if _, err := f.GetByName("D", "FOO", 300, "P", 200); !errors.IsKind(err, errors.KindUnsupportedPair) {
		t.Fatalf("unknown input: got %v, want unsupported_pair", err)
	}
}

func TestGet_NonFiniteInputRejected(t *testing.T) {
	ses, eng := newFixture(t)
	f := mustFluid(t, ses, "CO2")
	before := eng.Calls()

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := f.Get(fluid.KeyD, fluid.KeyT, v, fluid.KeyP, 200); !errors.IsKind(err, errors.KindInvalidInput) {
			t.Fatalf("Get with input %v: got %v, want invalid_input", v, err)
		}
	}
	if eng.Calls() != before {
		t.Fatal("non-finite input reached the engine")
	}
}

func TestQuality_RangeValidation(t *testing.T) {
	ses, eng := newFixture(t)
	f := mustFluid(t, ses, "CO2")
	before := eng.Calls()

	for _, q := range []float64{-5, -0.001, 100.001, 150, math.NaN()} {
		if _, err := f.PropsTQ(280, q); !errors.IsKind(err, errors.KindInvalidInput) {
			t.Fatalf("PropsTQ(280, %v) = %v, want invalid_input", q, err)
		}
	}
	if eng.Calls() != before {
		t.Fatal("out-of-range quality reached the engine")
	}
}

func TestQuality_BranchSelection(t *testing.T) {
	ses, _ := newFixture(t)
	blend := mustBlend(t, ses)

	bub, err := blend.SaturationT(280, refpropgo.BranchBubble)
	if err != nil {
		t.Fatalf("SaturationT bubble: %v", err)
	}
	dew, err := blend.SaturationT(280, refpropgo.BranchDew)
	if err != nil {
		t.Fatalf("SaturationT dew: %v", err)
	}
	if relClose(bub.Pressure, dew.Pressure, 1e-6) {
		t.Fatalf("zeotropic blend has identical branches: bubble %v, dew %v", bub.Pressure, dew.Pressure)
	}

	low, err := blend.PropsTQ(280, 49)
	if err != nil {
		t.Fatalf("PropsTQ(280, 49): %v", err)
	}
	high, err := blend.PropsTQ(280, 51)
	if err != nil {
		t.Fatalf("PropsTQ(280, 51): %v", err)
	}
	if !relClose(low.Pressure, bub.Pressure, 1e-12) {
		t.Errorf("q=49%%: pressure %v, want bubble pressure %v", low.Pressure, bub.Pressure)
	}
	if !relClose(high.Pressure, dew.Pressure, 1e-12) {
		t.Errorf("q=51%%: pressure %v, want dew pressure %v", high.Pressure, dew.Pressure)
	}
}

func TestQuality_PureFluidBranchesCoincide(t *testing.T) {
	ses, _ := newFixture(t)
	f := mustFluid(t, ses, "CO2")

	liq, err := f.PropsTQ(280, 0)
	if err != nil {
		t.Fatalf("PropsTQ(280, 0): %v", err)
	}
	vap, err := f.PropsTQ(280, 100)
	if err != nil {
		t.Fatalf("PropsTQ(280, 100): %v", err)
	}
	if !relClose(liq.Pressure, vap.Pressure, 1e-12) {
		t.Errorf("pure fluid: bubble pressure %v != dew pressure %v", liq.Pressure, vap.Pressure)
	}
	if liq.Quality != 0 {
		t.Errorf("q=0%%: quality = %v", liq.Quality)
	}
	if vap.Quality != 100 {
		t.Errorf("q=100%%: quality = %v", vap.Quality)
	}
}

func TestQuality_InterpolatedState(t *testing.T) {
	ses, _ := newFixture(t)
	f := mustFluid(t, ses, "CO2")

	sat, err := f.SaturationT(280, refpropgo.BranchDew)
	if err != nil {
		t.Fatalf("SaturationT: %v", err)
	}
	mid, err := f.PropsTQ(280, 50)
	if err != nil {
		t.Fatalf("PropsTQ(280, 50): %v", err)
	}

	// density blends harmonically, the phases' volumes are additive
	wantD := 1 / (0.5/sat.DensityLiquid + 0.5/sat.DensityVapor)
	if !relClose(mid.Density, wantD, 1e-12) {
		t.Errorf("density = %v, want %v", mid.Density, wantD)
	}
	if mid.Pressure != sat.Pressure {
		t.Errorf("pressure = %v, want saturation pressure %v", mid.Pressure, sat.Pressure)
	}
	if mid.Quality != 50 {
		t.Errorf("quality = %v, want 50", mid.Quality)
	}

	liq, err := f.PropsTQ(280, 0)
	if err != nil {
		t.Fatal(err)
	}
	vap, err := f.PropsTQ(280, 100)
	if err != nil {
		t.Fatal(err)
	}
	wantH := 0.5 * (liq.Enthalpy + vap.Enthalpy)
	if !relClose(mid.Enthalpy, wantH, 1e-9) {
		t.Errorf("enthalpy = %v, want midpoint %v", mid.Enthalpy, wantH)
	}
}

func TestPropsPQ_MatchesSaturationPressure(t *testing.T) {
	ses, _ := newFixture(t)
	blend := mustBlend(t, ses)

	dew, err := blend.SaturationT(280, refpropgo.BranchDew)
	if err != nil {
		t.Fatal(err)
	}
	st, err := blend.PropsPQ(dew.Pressure, 80)
	if err != nil {
		t.Fatalf("PropsPQ: %v", err)
	}
	if !relClose(st.Temperature, dew.Temperature, 1e-9) {
		t.Errorf("PQ temperature = %v, want %v", st.Temperature, dew.Temperature)
	}
	if st.Pressure != dew.Pressure {
		t.Errorf("PQ pressure = %v, want %v", st.Pressure, dew.Pressure)
	}
}

func TestFlash_RoundTrips(t *testing.T) {
	ses, _ := newFixture(t)
	f := mustFluid(t, ses, "CO2")

	base, err := f.PropsTP(300, 200)
	if err != nil {
		t.Fatalf("PropsTP: %v", err)
	}

	cases := []struct {
		name string
		fn   func() (refpropgo.ThermoProps, error)
	}{
		{"PH", func() (refpropgo.ThermoProps, error) { return f.PropsPH(200, base.Enthalpy) }},
		{"PS", func() (refpropgo.ThermoProps, error) { return f.PropsPS(200, base.Entropy) }},
		{"TD", func() (refpropgo.ThermoProps, error) { return f.PropsTD(300, base.Density) }},
		{"PD", func() (refpropgo.ThermoProps, error) { return f.PropsPD(200, base.Density) }},
		{"TH", func() (refpropgo.ThermoProps, error) { return f.PropsTH(300, base.Enthalpy) }},
		{"TS", func() (refpropgo.ThermoProps, error) { return f.PropsTS(300, base.Entropy) }},
		{"DH", func() (refpropgo.ThermoProps, error) { return f.PropsDH(base.Density, base.Enthalpy) }},
		{"DS", func() (refpropgo.ThermoProps, error) { return f.PropsDS(base.Density, base.Entropy) }},
		{"HS", func() (refpropgo.ThermoProps, error) { return f.PropsHS(base.Enthalpy, base.Entropy) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.fn()
			if err != nil {
				t.Fatalf("%s: %v", tc.name, err)
			}
			if !relClose(got.Temperature, base.Temperature, 1e-7) {
				t.Errorf("temperature = %v, want %v", got.Temperature, base.Temperature)
			}
			if !relClose(got.Density, base.Density, 1e-7) {
				t.Errorf("density = %v, want %v", got.Density, base.Density)
			}
		})
	}
}

func TestPropsTP_TwoPhaseRejected(t *testing.T) {
	ses, _ := newFixture(t)
	blend := mustBlend(t, ses)

	bub, err := blend.SaturationT(280, refpropgo.BranchBubble)
	if err != nil {
		t.Fatal(err)
	}
	dew, err := blend.SaturationT(280, refpropgo.BranchDew)
	if err != nil {
		t.Fatal(err)
	}
	inside := 0.5 * (bub.Pressure + dew.Pressure)

	_, err = blend.PropsTP(280, inside)
	if !errors.IsKind(err, errors.KindComputation) {
		t.Fatalf("PropsTP inside the dome: got %v, want computation error", err)
	}
}

func TestGet_SinglePhaseQualitySentinel(t *testing.T) {
	ses, _ := newFixture(t)
	f := mustFluid(t, ses, "CO2")

	q, err := f.Get(fluid.KeyQ, fluid.KeyT, 300, fluid.KeyP, 200)
	if err != nil {
		t.Fatalf("Get(Q): %v", err)
	}
	// sentinels pass through the percent scaling unclamped
	if q < 100 {
		t.Errorf("superheated quality = %v, want a sentinel far above 100", q)
	}
}

func TestGet_TransportOutputs(t *testing.T) {
	ses, _ := newFixture(t)
	f := mustFluid(t, ses, "CO2")

	eta, err := f.Get(fluid.KeyEta, fluid.KeyT, 300, fluid.KeyP, 200)
	if err != nil {
		t.Fatalf("Get(ETA): %v", err)
	}
	tcx, err := f.Get(fluid.KeyTcx, fluid.KeyT, 300, fluid.KeyP, 200)
	if err != nil {
		t.Fatalf("Get(TCX): %v", err)
	}
	if eta <= 0 || tcx <= 0 {
		t.Fatalf("transport values must be positive: eta=%v tcx=%v", eta, tcx)
	}

	d, err := f.Get(fluid.KeyD, fluid.KeyT, 300, fluid.KeyP, 200)
	if err != nil {
		t.Fatal(err)
	}
	tr, err := f.Transport(300, d)
	if err != nil {
		t.Fatalf("Transport: %v", err)
	}
	if !relClose(tr.Viscosity, eta, 1e-12) {
		t.Errorf("Transport viscosity %v != Get(ETA) %v", tr.Viscosity, eta)
	}
}

func TestUnits_EngineeringEndToEnd(t *testing.T) {
	ses, _ := newFixture(t)
	native := mustFluid(t, ses, "CO2")
	eng := mustFluid(t, ses, "CO2", fluid.WithUnits(units.Engineering()))

	// 25 °C and 2 bar name the same state as 298.15 K and 200 kPa
	nat, err := native.PropsTP(298.15, 200)
	if err != nil {
		t.Fatal(err)
	}
	got, err := eng.PropsTP(25, 2)
	if err != nil {
		t.Fatal(err)
	}

	mm := native.MolarMass()
	if !relClose(got.Temperature, 25, 1e-9) {
		t.Errorf("temperature = %v °C, want 25", got.Temperature)
	}
	if !relClose(got.Pressure, 2, 1e-9) {
		t.Errorf("pressure = %v bar, want 2", got.Pressure)
	}
	if !relClose(got.Density, nat.Density*mm, 1e-9) {
		t.Errorf("density = %v kg/m³, want %v", got.Density, nat.Density*mm)
	}
	if !relClose(got.Enthalpy, nat.Enthalpy/mm, 1e-9) {
		t.Errorf("enthalpy = %v kJ/kg, want %v", got.Enthalpy, nat.Enthalpy/mm)
	}
	if !relClose(got.Entropy, nat.Entropy/mm, 1e-9) {
		t.Errorf("entropy = %v kJ/(kg·K), want %v", got.Entropy, nat.Entropy/mm)
	}
	if got.SoundSpeed != nat.SoundSpeed {
		t.Errorf("sound speed converted: %v != %v", got.SoundSpeed, nat.SoundSpeed)
	}
}

func TestInfo_AlwaysNativeUnits(t *testing.T) {
	ses, _ := newFixture(t)
	native := mustFluid(t, ses, "CO2")
	eng := mustFluid(t, ses, "CO2", fluid.WithUnits(units.Engineering()))

	a, err := native.Info()
	if err != nil {
		t.Fatal(err)
	}
	b, err := eng.Info()
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("Info differs across unit systems:\nnative: %+v\nengineering: %+v", a, b)
	}
	if a.MolarMass != native.MolarMass() {
		t.Errorf("Info molar mass %v != handle molar mass %v", a.MolarMass, native.MolarMass())
	}
}

func TestNew_UnknownFluidFailsAtConstruction(t *testing.T) {
	ses, eng := newFixture(t)

	_, err := fluid.New(ses, "UNOBTAINIUM")
	if !errors.IsKind(err, errors.KindEngineSetup) {
		t.Fatalf("New(unknown) = %v, want engine_setup", err)
	}
	if eng.SetupCount() != 0 {
		t.Fatalf("setup count = %d after failed construction, want 0", eng.SetupCount())
	}
}

func TestNewMixture_InvalidCompositionFailsBeforeEngine(t *testing.T) {
	ses, eng := newFixture(t)

	_, err := fluid.NewMixture(ses, []refpropgo.Component{
		{Name: "R32", Fraction: 0.5},
		{Name: "R125", Fraction: 0.6},
	})
	if !errors.IsKind(err, errors.KindInvalidFluid) {
		t.Fatalf("NewMixture = %v, want invalid_fluid", err)
	}
	if eng.Calls() != 0 {
		t.Fatalf("engine saw %d calls for an invalid composition, want 0", eng.Calls())
	}
}

func TestFluids_ShareSessionAcrossIdentities(t *testing.T) {
	ses, eng := newFixture(t)
	co2 := mustFluid(t, ses, "CO2")
	r32 := mustFluid(t, ses, "R32")

	// alternate handles: each switch re-establishes the context
	for i := 0; i < 3; i++ {
		if _, err := co2.PropsTP(300, 200); err != nil {
			t.Fatal(err)
		}
		if _, err := r32.PropsTP(300, 200); err != nil {
			t.Fatal(err)
		}
	}
	// 2 constructions, then every alternating call switches context
	if got, want := eng.SetupCount(), int64(8); got != want {
		t.Fatalf("setup count = %d, want %d", got, want)
	}
}
