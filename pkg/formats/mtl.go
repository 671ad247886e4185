// MTL (Wavefront material library) parser.
package formats

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Material holds the classic Phong parameters of one MTL material.
type Material struct {
	Name       string
	Ambient    [3]float32 // Ka
	Diffuse    [3]float32 // Kd
	Specular   [3]float32 // Ks
	Shininess  float32    // Ns
	Dissolve   float32    // d (1 = opaque)
	Illum      int
	DiffuseMap string // map_Kd, relative to the library file
}

// DefaultMaterial returns an opaque white material.
func DefaultMaterial(name string) *Material {
	return &Material{
		Name:      name,
		Ambient:   [3]float32{0.1, 0.1, 0.1},
		Diffuse:   [3]float32{1, 1, 1},
		Specular:  [3]float32{0.5, 0.5, 0.5},
		Shininess: 32,
		Dissolve:  1,
		Illum:     2,
	}
}

// MaterialLibrary is a parsed MTL file.
type MaterialLibrary struct {
	Materials map[string]*Material
	Order     []string // declaration order
}

// First returns the first declared material, or nil if the library is empty.
func (l *MaterialLibrary) First() *Material {
	if len(l.Order) == 0 {
		return nil
	}
	return l.Materials[l.Order[0]]
}

// ParseMTLFile loads a material library from disk.
func ParseMTLFile(path string) (*MaterialLibrary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	}
	defer f.Close()

	lib, err := ParseMTL(f)
	if err != nil {
		return nil, fmt.Errorf("parsing MTL %s: %w", path, err)
	}
	return lib, nil
}

// ParseMTL parses a material library. Statements before the first newmtl
// apply to a material named "default".
func ParseMTL(r io.Reader) (*MaterialLibrary, error) {
	lib := &MaterialLibrary{Materials: make(map[string]*Material)}
	var cur *Material

	current := func() *Material {
		if cur == nil {
			cur = lib.add("default")
		}
		return cur
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)

		var err error
		switch fields[0] {
		case "newmtl":
			name := "default"
			if len(fields) > 1 {
				name = fields[1]
			}
			cur = lib.add(name)
		case "Ka":
			err = parseColor(fields, &current().Ambient)
		case "Kd":
			err = parseColor(fields, &current().Diffuse)
		case "Ks":
			err = parseColor(fields, &current().Specular)
		case "Ns":
			err = parseScalar(fields, &current().Shininess)
		case "d":
			err = parseScalar(fields, &current().Dissolve)
		case "Tr":
			// Tr is the inverse of d
			var tr float32
			if err = parseScalar(fields, &tr); err == nil {
				current().Dissolve = 1 - tr
			}
		case "illum":
			if len(fields) < 2 {
				err = fmt.Errorf("missing value")
				break
			}
			current().Illum, err = strconv.Atoi(fields[1])
		case "map_Kd":
			if len(fields) > 1 {
				// Options such as -s precede the file name; the name comes last
				current().DiffuseMap = fields[len(fields)-1]
			}
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %q: %v", lineNo, ErrMalformedAttribute, fields[0], err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading MTL: %w", err)
	}

	return lib, nil
}

// add registers a new material; a redeclared name replaces the earlier one.
func (l *MaterialLibrary) add(name string) *Material {
	m := DefaultMaterial(name)
	if _, exists := l.Materials[name]; !exists {
		l.Order = append(l.Order, name)
	}
	l.Materials[name] = m
	return m
}

func parseColor(fields []string, dst *[3]float32) error {
	if len(fields) < 4 {
		return fmt.Errorf("expected 3 components, got %d", len(fields)-1)
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i+1], 32)
		if err != nil {
			return err
		}
		dst[i] = float32(f)
	}
	return nil
}

func parseScalar(fields []string, dst *float32) error {
	if len(fields) < 2 {
		return fmt.Errorf("missing value")
	}
	f, err := strconv.ParseFloat(fields[1], 32)
	if err != nil {
		return err
	}
	*dst = float32(f)
	return nil
}
