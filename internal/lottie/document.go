package lottie

import "strconv"

// Document is the root of a parsed animation.
type Document struct {
	Version   string
	Name      string
	FrameRate float64
	InPoint   float64
	OutPoint  float64
	Width     int
	Height    int
	Is3D      bool
	Layers    []Layer
	Assets    []Asset
}

// Asset is an entry of the document's asset list. Only assets that carry their own
// layer list are compositions; image and media references have none.
type Asset struct {
	ID     string
	Name   string
	Is3D   bool
	Layers []Layer

	composition bool
}

// IsComposition reports whether the asset owns a layer list.
func (a Asset) IsComposition() bool {
	return a.composition
}

// LayerType identifies the kind of a layer.
type LayerType int

const (
	LayerPrecomp LayerType = iota
	LayerSolid
	LayerImage
	LayerNull
	LayerShape
	LayerText
	LayerOther LayerType = -1
)

// String returns a short name for the layer type.
func (t LayerType) String() string {
	switch t {
	case LayerPrecomp:
		return "precomp"
	case LayerSolid:
		return "solid"
	case LayerImage:
		return "image"
	case LayerNull:
		return "null"
	case LayerShape:
		return "shape"
	case LayerText:
		return "text"
	default:
		return "other"
	}
}

func layerTypeFromCode(code int, ok bool) LayerType {
	if !ok || code < int(LayerPrecomp) || code > int(LayerText) {
		return LayerOther
	}
	return LayerType(code)
}

// Layer is one timeline track within a composition.
type Layer struct {
	Index     int
	HasIndex  bool
	Name      string
	Type      LayerType
	BlendMode int
	HasMask   bool
	Masks     int
	Effects   []Effect
	Shapes    []ShapeNode

	// MatteSource is set on the layer that provides a track matte (td:1).
	MatteSource bool
	// MatteMode is the track matte mode of a matte target (tt), 0 when none.
	MatteMode int
}

// Label returns the quoted layer name, or an index-based fallback.
func (l Layer) Label() string {
	if l.Name != "" {
		return `"` + l.Name + `"`
	}
	if l.HasIndex {
		return "ind:" + strconv.Itoa(l.Index)
	}
	return "ind:?"
}

// Effect is a post-processing operation attached to a layer.
type Effect struct {
	TypeCode    int
	HasTypeCode bool
	MatchName   string
}

// ShapeKind identifies a shape node. Tags the analyzer has no interest in map to
// ShapeOther with the raw tag kept on the node.
type ShapeKind int

const (
	ShapeOther ShapeKind = iota
	ShapeGradientStroke
	ShapeMergePaths
	ShapeGradientFill
	ShapeGroup
)

var shapeKinds = map[string]ShapeKind{
	"gs": ShapeGradientStroke,
	"mm": ShapeMergePaths,
	"gf": ShapeGradientFill,
	"gr": ShapeGroup,
}

// String returns the wire tag of the kind.
func (k ShapeKind) String() string {
	switch k {
	case ShapeGradientStroke:
		return "gs"
	case ShapeMergePaths:
		return "mm"
	case ShapeGradientFill:
		return "gf"
	case ShapeGroup:
		return "gr"
	default:
		return "other"
	}
}

// GradientKind is the geometry of a gradient fill.
type GradientKind int

const (
	GradientUnknown GradientKind = iota
	GradientLinear
	GradientRadial
)

// ShapeNode is a node of a shape layer's content tree.
type ShapeNode struct {
	Kind ShapeKind
	Tag  string

	// Gradient fill only.
	Gradient   GradientKind
	StartPoint AnimatableProperty
	EndPoint   AnimatableProperty

	// Group only.
	Children []ShapeNode
}

// AnimatableProperty is a value that is either static or keyframed.
type AnimatableProperty struct {
	animated bool
}

// IsAnimated reports whether the property value is a keyframe sequence.
func (p AnimatableProperty) IsAnimated() bool {
	return p.animated
}

// Animated returns a keyframed property, mostly useful for building documents in code.
func Animated() AnimatableProperty {
	return AnimatableProperty{animated: true}
}
