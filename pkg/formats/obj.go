// Package formats provides parsers for the Wavefront OBJ and MTL text formats.
package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/orrery/pkg/seq"
)

// OBJ loader errors.
var (
	ErrFileNotFound          = errors.New("file not found")
	ErrMalformedIndex        = errors.New("malformed index")
	ErrUnsupportedFaceFormat = errors.New("unsupported face format")
	ErrMalformedAttribute    = errors.New("malformed attribute")
	ErrAllocation            = errors.New("allocation limit exceeded")
)

// Vertex is one interleaved GPU vertex.
// Layout: position (offset 0), texcoord (offset 12), normal (offset 20), stride 32.
type Vertex struct {
	Position [3]float32
	TexCoord [2]float32
	Normal   [3]float32
}

// Mesh is a loaded, fully expanded triangle list.
// Every 3 consecutive vertices form one triangle, in face order.
type Mesh struct {
	Vertices []Vertex
	Count    int

	// Faces skipped during parsing.
	Warnings []FaceWarning

	// MaterialLibs lists mtllib references in file order.
	MaterialLibs []string
	// Materials lists usemtl names in file order.
	Materials []string
}

// Release drops the CPU-side vertex data once it has been uploaded.
func (m *Mesh) Release() {
	m.Vertices = nil
	m.Count = 0
}

// Triangles returns the number of triangles in the mesh.
func (m *Mesh) Triangles() int {
	return m.Count / 3
}

// FaceWarning describes a face line that was skipped.
type FaceWarning struct {
	Line   int
	Text   string
	Reason string
}

func (w FaceWarning) Error() string {
	return fmt.Sprintf("line %d: %s: %s (%q)", w.Line, ErrUnsupportedFaceFormat, w.Reason, w.Text)
}

func (w FaceWarning) Unwrap() error {
	return ErrUnsupportedFaceFormat
}

// IndexError reports a face index that does not resolve to a pool entry.
type IndexError struct {
	Line      int
	Attribute string // "position", "texcoord" or "normal"
	Index     int    // 1-based, as written in the file
	PoolSize  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("line %d: %s: %s index %d out of range [1, %d]",
		e.Line, ErrMalformedIndex, e.Attribute, e.Index, e.PoolSize)
}

func (e *IndexError) Unwrap() error {
	return ErrMalformedIndex
}

// OBJOptions controls loader limits.
type OBJOptions struct {
	// MaxVertices bounds the number of output vertices (0 = unlimited).
	MaxVertices int
}

// objPools holds the transient attribute and index pools of one load.
type objPools struct {
	positions *seq.Seq[float32] // x, y, z
	texcoords *seq.Seq[float32] // u, v
	normals   *seq.Seq[float32] // x, y, z

	posIdx  *seq.Seq[int]
	uvIdx   *seq.Seq[int]
	normIdx *seq.Seq[int]
	lines   *seq.Seq[int] // source line of each corner
}

func newOBJPools(opts OBJOptions) *objPools {
	p := &objPools{
		positions: seq.New[float32](seq.BaselineCapacity),
		texcoords: seq.New[float32](seq.BaselineCapacity),
		normals:   seq.New[float32](seq.BaselineCapacity),
		posIdx:    seq.New[int](seq.BaselineCapacity),
		uvIdx:     seq.New[int](seq.BaselineCapacity),
		normIdx:   seq.New[int](seq.BaselineCapacity),
		lines:     seq.New[int](seq.BaselineCapacity),
	}
	if opts.MaxVertices > 0 {
		p.posIdx.WithLimit(opts.MaxVertices)
	}
	return p
}

func (p *objPools) release() {
	p.positions.Release()
	p.texcoords.Release()
	p.normals.Release()
	p.posIdx.Release()
	p.uvIdx.Release()
	p.normIdx.Release()
	p.lines.Release()
}

// ParseOBJFile loads an OBJ mesh from disk.
func ParseOBJFile(path string, opts OBJOptions) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f, opts)
	if err != nil {
		return nil, fmt.Errorf("parsing OBJ %s: %w", path, err)
	}
	return mesh, nil
}

// ParseOBJ parses a triangulated OBJ stream into an interleaved vertex list.
// Only "f v/t/n v/t/n v/t/n" faces are accepted; other face shapes are
// skipped and reported in Mesh.Warnings. No partial mesh is returned on error.
func ParseOBJ(r io.Reader, opts OBJOptions) (*Mesh, error) {
	pools := newOBJPools(opts)
	defer pools.release()

	mesh := &Mesh{}
	br := bufio.NewReader(r)
	lineNo := 0

	for {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, fmt.Errorf("reading line %d: %w", lineNo+1, readErr)
		}
		if raw == "" && readErr == io.EOF {
			break
		}
		lineNo++

		if err := parseOBJLine(pools, mesh, raw, lineNo); err != nil {
			return nil, err
		}

		if readErr == io.EOF {
			break
		}
	}

	vertices, err := resolveOBJ(pools)
	if err != nil {
		return nil, err
	}

	mesh.Vertices = vertices
	mesh.Count = len(vertices)
	return mesh, nil
}

// parseOBJLine dispatches one line. Only fatal problems are returned.
func parseOBJLine(p *objPools, mesh *Mesh, raw string, lineNo int) error {
	line := strings.TrimSpace(raw)
	if line == "" || line[0] == '#' {
		return nil
	}
	fields := strings.Fields(line)

	switch fields[0] {
	case "v":
		return pushFloats(p.positions, fields, 3, lineNo)
	case "vt":
		return pushFloats(p.texcoords, fields, 2, lineNo)
	case "vn":
		return pushFloats(p.normals, fields, 3, lineNo)
	case "f":
		return parseFace(p, mesh, fields, line, lineNo)
	case "mtllib":
		if len(fields) > 1 {
			mesh.MaterialLibs = append(mesh.MaterialLibs, strings.Join(fields[1:], " "))
		}
	case "usemtl":
		if len(fields) > 1 {
			mesh.Materials = append(mesh.Materials, fields[1])
		}
	}
	return nil
}

// pushFloats appends the first n float components of an attribute line.
// Extra components (such as the optional w) are ignored.
func pushFloats(pool *seq.Seq[float32], fields []string, n, lineNo int) error {
	if len(fields)-1 < n {
		return fmt.Errorf("line %d: %w: %q needs %d components, got %d",
			lineNo, ErrMalformedAttribute, fields[0], n, len(fields)-1)
	}
	var vals [3]float32
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i+1], 32)
		if err != nil {
			return fmt.Errorf("line %d: %w: %q component %d: %v",
				lineNo, ErrMalformedAttribute, fields[0], i, err)
		}
		vals[i] = float32(f)
	}
	if err := pool.Push(vals[:n]...); err != nil {
		return fmt.Errorf("line %d: %w: %v", lineNo, ErrAllocation, err)
	}
	return nil
}

// parseFace validates a face line and appends its three corner triplets.
// An unsupported shape becomes a warning and the face is skipped whole.
func parseFace(p *objPools, mesh *Mesh, fields []string, line string, lineNo int) error {
	warn := func(reason string) error {
		mesh.Warnings = append(mesh.Warnings, FaceWarning{Line: lineNo, Text: line, Reason: reason})
		return nil
	}

	corners := fields[1:]
	if len(corners) != 3 {
		return warn(fmt.Sprintf("expected 3 corners, got %d", len(corners)))
	}

	var idx [3][3]int
	for c, corner := range corners {
		parts := strings.Split(corner, "/")
		if len(parts) != 3 {
			return warn(fmt.Sprintf("corner %d: expected v/vt/vn, got %q", c+1, corner))
		}
		for k, part := range parts {
			if part == "" {
				return warn(fmt.Sprintf("corner %d: missing component %d", c+1, k+1))
			}
			n, err := strconv.Atoi(part)
			if errors.Is(err, strconv.ErrRange) {
				// Atoi saturates n, which is out of range for any pool
				return &IndexError{Line: lineNo, Attribute: cornerAttributes[k], Index: n, PoolSize: p.entries(k)}
			}
			if err != nil {
				return warn(fmt.Sprintf("corner %d: component %q is not an integer", c+1, part))
			}
			idx[c][k] = n
		}
	}

	if err := p.pushCorners(idx, lineNo); err != nil {
		return fmt.Errorf("line %d: %w: %v", lineNo, ErrAllocation, err)
	}
	return nil
}

// cornerAttributes names the components of a v/vt/vn corner in order.
var cornerAttributes = [3]string{"position", "texcoord", "normal"}

// entries returns how many entries the attribute pool for component k holds so far.
func (p *objPools) entries(k int) int {
	switch k {
	case 0:
		return p.positions.Len() / 3
	case 1:
		return p.texcoords.Len() / 2
	default:
		return p.normals.Len() / 3
	}
}

// pushCorners appends one face's index triplets and source line to the index pools.
// posIdx carries the vertex limit and goes first, so a refused face leaves
// every pool untouched.
func (p *objPools) pushCorners(idx [3][3]int, lineNo int) error {
	pushes := []struct {
		pool *seq.Seq[int]
		vals []int
	}{
		{p.posIdx, []int{idx[0][0], idx[1][0], idx[2][0]}},
		{p.uvIdx, []int{idx[0][1], idx[1][1], idx[2][1]}},
		{p.normIdx, []int{idx[0][2], idx[1][2], idx[2][2]}},
		{p.lines, []int{lineNo, lineNo, lineNo}},
	}
	for _, push := range pushes {
		if err := push.pool.Push(push.vals...); err != nil {
			return err
		}
	}
	return nil
}

// resolveOBJ expands every corner triplet into a full vertex.
// Shared attributes are copied per corner; nothing is welded.
func resolveOBJ(p *objPools) ([]Vertex, error) {
	n := p.posIdx.Len()
	vertices := make([]Vertex, n)

	positions := p.positions.Slice()
	texcoords := p.texcoords.Slice()
	normals := p.normals.Slice()
	posIdx := p.posIdx.Slice()
	uvIdx := p.uvIdx.Slice()
	normIdx := p.normIdx.Slice()
	lines := p.lines.Slice()

	for i := 0; i < n; i++ {
		pi, err := poolOffset(posIdx[i], 3, len(positions), "position", lines[i])
		if err != nil {
			return nil, err
		}
		ti, err := poolOffset(uvIdx[i], 2, len(texcoords), "texcoord", lines[i])
		if err != nil {
			return nil, err
		}
		ni, err := poolOffset(normIdx[i], 3, len(normals), "normal", lines[i])
		if err != nil {
			return nil, err
		}

		v := &vertices[i]
		copy(v.Position[:], positions[pi:pi+3])
		copy(v.TexCoord[:], texcoords[ti:ti+2])
		copy(v.Normal[:], normals[ni:ni+3])
	}

	return vertices, nil
}

// poolOffset converts a 1-based OBJ index into a float offset within a pool.
func poolOffset(index, stride, poolLen int, attr string, line int) (int, error) {
	entries := poolLen / stride
	if index < 1 || index > entries {
		return 0, &IndexError{Line: line, Attribute: attr, Index: index, PoolSize: entries}
	}
	return (index - 1) * stride, nil
}
