package formats

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const planetMTL = `# Blender MTL File
newmtl Planet
Ns 250.000000
Ka 1.000000 1.000000 1.000000
Kd 0.800000 0.600000 0.400000
Ks 0.500000 0.500000 0.500000
d 1.000000
illum 2
map_Kd planet_Quom1200.png

newmtl Glass
Kd 0.1 0.2 0.3
Tr 0.25
`

func TestParseMTL(t *testing.T) {
	lib, err := ParseMTL(strings.NewReader(planetMTL))
	if err != nil {
		t.Fatalf("ParseMTL failed: %v", err)
	}

	if len(lib.Order) != 2 || lib.Order[0] != "Planet" || lib.Order[1] != "Glass" {
		t.Fatalf("unexpected material order: %v", lib.Order)
	}

	p := lib.First()
	if p.Name != "Planet" {
		t.Errorf("expected first material Planet, got %s", p.Name)
	}
	if p.Shininess != 250 {
		t.Errorf("expected Ns 250, got %f", p.Shininess)
	}
	if p.Ambient != [3]float32{1, 1, 1} {
		t.Errorf("Ka: got %v", p.Ambient)
	}
	if p.Diffuse != [3]float32{0.8, 0.6, 0.4} {
		t.Errorf("Kd: got %v", p.Diffuse)
	}
	if p.Specular != [3]float32{0.5, 0.5, 0.5} {
		t.Errorf("Ks: got %v", p.Specular)
	}
	if p.Dissolve != 1 {
		t.Errorf("d: got %f", p.Dissolve)
	}
	if p.Illum != 2 {
		t.Errorf("illum: got %d", p.Illum)
	}
	if p.DiffuseMap != "planet_Quom1200.png" {
		t.Errorf("map_Kd: got %q", p.DiffuseMap)
	}

	g := lib.Materials["Glass"]
	if g.Dissolve != 0.75 {
		t.Errorf("Tr 0.25 should give dissolve 0.75, got %f", g.Dissolve)
	}
	// Unset values keep defaults
	if g.Shininess != DefaultMaterial("").Shininess {
		t.Errorf("expected default shininess, got %f", g.Shininess)
	}
}

func TestParseMTL_ImplicitDefault(t *testing.T) {
	lib, err := ParseMTL(strings.NewReader("Kd 0.5 0.5 0.5\n"))
	if err != nil {
		t.Fatalf("ParseMTL failed: %v", err)
	}
	m := lib.First()
	if m == nil || m.Name != "default" {
		t.Fatalf("expected implicit default material, got %+v", m)
	}
	if m.Diffuse != [3]float32{0.5, 0.5, 0.5} {
		t.Errorf("Kd: got %v", m.Diffuse)
	}
}

func TestParseMTL_Empty(t *testing.T) {
	lib, err := ParseMTL(strings.NewReader("# nothing\n"))
	if err != nil {
		t.Fatalf("ParseMTL failed: %v", err)
	}
	if lib.First() != nil {
		t.Error("expected no materials")
	}
}

func TestParseMTL_Malformed(t *testing.T) {
	tests := []string{
		"newmtl A\nKd 1 2\n",
		"newmtl A\nNs abc\n",
		"newmtl A\nillum x\n",
		"newmtl A\nd\n",
	}
	for _, src := range tests {
		if _, err := ParseMTL(strings.NewReader(src)); !errors.Is(err, ErrMalformedAttribute) {
			t.Errorf("%q: expected ErrMalformedAttribute, got %v", src, err)
		}
	}
}

func TestParseMTLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planet.mtl")
	if err := os.WriteFile(path, []byte(planetMTL), 0644); err != nil {
		t.Fatalf("failed to write MTL: %v", err)
	}
	lib, err := ParseMTLFile(path)
	if err != nil {
		t.Fatalf("ParseMTLFile failed: %v", err)
	}
	if len(lib.Materials) != 2 {
		t.Errorf("expected 2 materials, got %d", len(lib.Materials))
	}

	if _, err := ParseMTLFile(filepath.Join(t.TempDir(), "nope.mtl")); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}
