package refpropgo

import (
	"strings"
	"testing"

	"github.com/thermoflow/refprop-go/errors"
)

func TestPure_NormalizesName(t *testing.T) {
	id, err := Pure("  r134a ")
	if err != nil {
		t.Fatal(err)
	}
	if id.Name() != "R134A" {
		t.Fatalf("Name() = %q, want R134A", id.Name())
	}
	if id.IsMixture() || id.IsZero() {
		t.Fatal("pure fluid misclassified")
	}
}

func TestPure_EmptyNameRejected(t *testing.T) {
	if _, err := Pure("   "); !errors.IsKind(err, errors.KindInvalidFluid) {
		t.Fatalf("Pure(blank) = %v, want invalid_fluid", err)
	}
}

func TestMixture_Validation(t *testing.T) {
	tests := []struct {
		name       string
		components []Component
		wantErr    bool
	}{
		{
			name:       "valid binary",
			components: []Component{{"R32", 0.5}, {"R125", 0.5}},
		},
		{
			name:       "sum within tolerance",
			components: []Component{{"R32", 0.3}, {"R125", 0.7000000001}},
		},
		{
			name:    "empty",
			wantErr: true,
		},
		{
			name:       "fractions do not sum to one",
			components: []Component{{"R32", 0.5}, {"R125", 0.6}},
			wantErr:    true,
		},
		{
			name:       "negative fraction",
			components: []Component{{"R32", 1.2}, {"R125", -0.2}},
			wantErr:    true,
		},
		{
			name:       "zero fraction",
			components: []Component{{"R32", 1.0}, {"R125", 0}},
			wantErr:    true,
		},
		{
			name:       "blank component name",
			components: []Component{{"", 1.0}},
			wantErr:    true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Mixture(tt.components)
			if tt.wantErr != (err != nil) {
				t.Fatalf("Mixture() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.IsKind(err, errors.KindInvalidFluid) {
				t.Fatalf("error kind = %v, want invalid_fluid", err)
			}
		})
	}
}

func TestMixture_TooManyComponents(t *testing.T) {
	comps := make([]Component, MaxComponents+1)
	for i := range comps {
		comps[i] = Component{Name: "R32", Fraction: 1.0 / float64(len(comps))}
	}
	if _, err := Mixture(comps); !errors.IsKind(err, errors.KindInvalidFluid) {
		t.Fatalf("Mixture(%d components) = %v, want invalid_fluid", len(comps), err)
	}
}

func TestEqual(t *testing.T) {
	mix := func(c ...Component) FluidIdentity {
		id, err := Mixture(c)
		if err != nil {
			t.Fatal(err)
		}
		return id
	}
	pure := func(name string) FluidIdentity {
		id, err := Pure(name)
		if err != nil {
			t.Fatal(err)
		}
		return id
	}

	tests := []struct {
		name string
		a, b FluidIdentity
		want bool
	}{
		{"same pure", pure("CO2"), pure("co2"), true},
		{"different pure", pure("CO2"), pure("R32"), false},
		{"pure vs mixture", pure("R32"), mix(Component{"R32", 0.5}, Component{"R125", 0.5}), false},
		{
			"same mixture",
			mix(Component{"R32", 0.5}, Component{"R125", 0.5}),
			mix(Component{"R32", 0.5}, Component{"R125", 0.5}),
			true,
		},
		{
			"reordered components",
			mix(Component{"R32", 0.5}, Component{"R125", 0.5}),
			mix(Component{"R125", 0.5}, Component{"R32", 0.5}),
			true,
		},
		{
			"different fractions",
			mix(Component{"R32", 0.5}, Component{"R125", 0.5}),
			mix(Component{"R32", 0.4}, Component{"R125", 0.6}),
			false,
		},
		{
			"fraction within tolerance",
			mix(Component{"R32", 0.5}, Component{"R125", 0.5}),
			mix(Component{"R32", 0.5 + 1e-10}, Component{"R125", 0.5 - 1e-10}),
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Fatalf("Equal = %v, want %v", got, tt.want)
			}
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Fatalf("Equal (reversed) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	pure, err := Pure("co2")
	if err != nil {
		t.Fatal(err)
	}
	if pure.String() != "CO2" {
		t.Fatalf("String() = %q", pure.String())
	}

	mix, err := Mixture([]Component{{"r32", 0.697615}, {"R125", 0.302385}})
	if err != nil {
		t.Fatal(err)
	}
	s := mix.String()
	if !strings.Contains(s, "R32:0.697615") || !strings.Contains(s, "R125:0.302385") {
		t.Fatalf("String() = %q", s)
	}
}

func TestComponents_ReturnsCopy(t *testing.T) {
	mix, err := Mixture([]Component{{"R32", 0.5}, {"R125", 0.5}})
	if err != nil {
		t.Fatal(err)
	}
	got := mix.Components()
	got[0].Fraction = 0.99
	if again := mix.Components(); again[0].Fraction != 0.5 {
		t.Fatal("Components() exposed internal state")
	}
}
