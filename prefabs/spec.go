package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScene wraps every validation failure of a scene description.
var ErrInvalidScene = errors.New("prefabs: invalid scene")

// DefaultScene is the embedded scene description loaded at startup.
const DefaultScene = "scene.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadSceneSpec loads and validates a scene from the prefab directory or the
// embedded copy.
func LoadSceneSpec(name string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](name)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return &spec, nil
}

// LoadSceneFile loads and validates a scene from an arbitrary path on disk.
func LoadSceneFile(path string) (*SceneSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", path, err)
	}
	return ParseSceneSpec(path, data)
}

// ParseSceneSpec decodes and validates scene YAML. name is used in errors.
func ParseSceneSpec(name string, data []byte) (*SceneSpec, error) {
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", name, err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return &spec, nil
}

type SceneSpec struct {
	Name       string       `yaml:"name"`
	Background string       `yaml:"background"`
	Accent     YAMLColor    `yaml:"accent"`
	Camera     CameraSpec   `yaml:"camera"`
	Stars      StarsSpec    `yaml:"stars"`
	Lights     []LightSpec  `yaml:"lights"`
	Objects    []ObjectSpec `yaml:"objects"`
	Links      []LinkSpec   `yaml:"links"`
	Rig        RigSpec      `yaml:"rig"`
	Trail      TrailSpec    `yaml:"trail"`
	Picking    PickingSpec  `yaml:"picking"`
}

type CameraSpec struct {
	FOV      float64  `yaml:"fov"`
	Near     float64  `yaml:"near"`
	Far      float64  `yaml:"far"`
	Position Vec3Spec `yaml:"position"`
}

type StarsSpec struct {
	Count    int       `yaml:"count"`
	Spread   float64   `yaml:"spread"`
	Radius   float64   `yaml:"radius"`
	Segments int       `yaml:"segments"`
	Color    YAMLColor `yaml:"color"`
}

type LightSpec struct {
	Kind      string    `yaml:"kind"`
	Position  Vec3Spec  `yaml:"position"`
	Color     YAMLColor `yaml:"color"`
	Intensity float64   `yaml:"intensity"`
}

type GeometrySpec struct {
	Kind     string   `yaml:"kind"`
	Radius   float64  `yaml:"radius"`
	Tube     float64  `yaml:"tube"`
	Size     Vec3Spec `yaml:"size"`
	P        int      `yaml:"p"`
	Q        int      `yaml:"q"`
	Segments int      `yaml:"segments"`
	Rings    int      `yaml:"rings"`
}

type MaterialSpec struct {
	Color     YAMLColor `yaml:"color"`
	Accent    bool      `yaml:"accent"`
	Texture   string    `yaml:"texture"`
	NormalMap string    `yaml:"normal_map"`
	Opacity   float64   `yaml:"opacity"`
	Additive  bool      `yaml:"additive"`
	Unlit     bool      `yaml:"unlit"`
}

type TransformSpec struct {
	Position Vec3Spec `yaml:"position"`
	Rotation Vec3Spec `yaml:"rotation"`
	Scale    Vec3Spec `yaml:"scale"`
}

type ObjectSpec struct {
	Name        string        `yaml:"name"`
	Geometry    GeometrySpec  `yaml:"geometry"`
	Material    MaterialSpec  `yaml:"material"`
	Transform   TransformSpec `yaml:"transform"`
	Spin        Vec3Spec      `yaml:"spin"`
	ScrollSpin  Vec3Spec      `yaml:"scroll_spin"`
	ScrollDrift float64       `yaml:"scroll_drift"`
	Script      string        `yaml:"script"`
}

type LinkSpec struct {
	ObjectSpec `yaml:",inline"`
	URL        string `yaml:"url"`
}

// RigSpec holds the scroll rig factors: camera pose = offset * factor.
type RigSpec struct {
	CameraZFactor    float64 `yaml:"camera_z_factor"`
	CameraXFactor    float64 `yaml:"camera_x_factor"`
	CameraRotYFactor float64 `yaml:"camera_rot_y_factor"`
	ScrollStep       float64 `yaml:"scroll_step"`
	MaxOffset        float64 `yaml:"max_offset"`
}

type TrailSpec struct {
	Capacity   int       `yaml:"capacity"`
	Distance   float64   `yaml:"distance"`
	Radius     float64   `yaml:"radius"`
	Color      YAMLColor `yaml:"color"`
	MinOpacity float64   `yaml:"min_opacity"`
	MaxOpacity float64   `yaml:"max_opacity"`
}

type PickingSpec struct {
	// NearestOnly navigates on the first navigable hit instead of every one.
	NearestOnly bool `yaml:"nearest_only"`
}

// Validate reports the first structural problem in the scene.
func (s *SceneSpec) Validate() error {
	if s.Stars.Count <= 0 {
		return fmt.Errorf("%w: stars.count must be positive, got %d", ErrInvalidScene, s.Stars.Count)
	}
	if s.Stars.Spread <= 0 {
		return fmt.Errorf("%w: stars.spread must be positive", ErrInvalidScene)
	}
	if s.Trail.Capacity < 1 {
		return fmt.Errorf("%w: trail.capacity must be at least 1, got %d", ErrInvalidScene, s.Trail.Capacity)
	}
	if len(s.Links) != 2 {
		return fmt.Errorf("%w: want exactly 2 links, got %d", ErrInvalidScene, len(s.Links))
	}
	for i, l := range s.Links {
		if strings.TrimSpace(l.URL) == "" {
			return fmt.Errorf("%w: links[%d] (%s) has no url", ErrInvalidScene, i, l.Name)
		}
	}
	for _, l := range s.Lights {
		if l.Kind != "point" && l.Kind != "ambient" {
			return fmt.Errorf("%w: unknown light kind %q", ErrInvalidScene, l.Kind)
		}
	}
	for _, o := range s.allObjects() {
		switch o.Geometry.Kind {
		case "sphere", "box", "torus", "torus_knot":
		default:
			return fmt.Errorf("%w: object %q has unknown geometry %q", ErrInvalidScene, o.Name, o.Geometry.Kind)
		}
	}
	return nil
}

func (s *SceneSpec) allObjects() []ObjectSpec {
	out := append([]ObjectSpec(nil), s.Objects...)
	for _, l := range s.Links {
		out = append(out, l.ObjectSpec)
	}
	return out
}

// Vec3Spec decodes a YAML sequence [x, y, z].
type Vec3Spec struct {
	mgl64.Vec3
	Set bool
}

func (v *Vec3Spec) UnmarshalYAML(value *yaml.Node) error {
	var xs []float64
	if err := value.Decode(&xs); err != nil {
		return fmt.Errorf("vector must be a list of numbers: %w", err)
	}
	if len(xs) != 3 {
		return fmt.Errorf("vector must have 3 components, got %d", len(xs))
	}
	v.Vec3 = mgl64.Vec3{xs[0], xs[1], xs[2]}
	v.Set = true
	return nil
}

// Or returns v, or def when v was not given.
func (v Vec3Spec) Or(def mgl64.Vec3) mgl64.Vec3 {
	if !v.Set {
		return def
	}
	return v.Vec3
}

type YAMLColor struct {
	color.Color
}

// NRGBA returns the colour, or def when none was given.
func (c YAMLColor) NRGBA(def color.NRGBA) color.NRGBA {
	if c.Color == nil {
		return def
	}
	return color.NRGBAModel.Convert(c.Color).(color.NRGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
