package lottie

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrInvalidDocument is returned when the input is not a JSON object.
var ErrInvalidDocument = errors.New("animation document must be a JSON object")

// Parse decodes an animation document from JSON.
func Parse(data []byte) (*Document, error) {
	v, err := DecodeValue(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return FromValue(v)
}

// DecodeValue decodes a single JSON value keeping numbers as json.Number.
func DecodeValue(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("failed to decode JSON: unexpected data after top-level value")
	}
	return v, nil
}

// FromValue builds a Document from a generic decoded JSON value. Optional fields with
// an unexpected shape are treated as absent.
func FromValue(v any) (*Document, error) {
	root, ok := v.(map[string]any)
	if !ok {
		return nil, ErrInvalidDocument
	}
	obj := object(root)

	doc := &Document{
		Version:   obj.str("v"),
		Name:      obj.str("nm"),
		FrameRate: obj.float("fr"),
		InPoint:   obj.float("ip"),
		OutPoint:  obj.float("op"),
		Is3D:      obj.flag("ddd"),
		Layers:    decodeLayers(obj.array("layers")),
	}
	doc.Width, _ = obj.int("w")
	doc.Height, _ = obj.int("h")

	for _, raw := range obj.array("assets") {
		a, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		doc.Assets = append(doc.Assets, decodeAsset(object(a)))
	}
	return doc, nil
}

func decodeAsset(obj object) Asset {
	asset := Asset{
		ID:   obj.id("id"),
		Name: obj.str("nm"),
		Is3D: obj.flag("ddd"),
	}
	if layers, ok := obj["layers"].([]any); ok {
		asset.composition = true
		asset.Layers = decodeLayers(layers)
	}
	return asset
}

func decodeLayers(raw []any) []Layer {
	if len(raw) == 0 {
		return nil
	}
	layers := make([]Layer, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		layers = append(layers, decodeLayer(object(m)))
	}
	return layers
}

func decodeLayer(obj object) Layer {
	layer := Layer{
		Name:    obj.str("nm"),
		HasMask: obj.bool("hasMask"),
		Masks:   len(obj.array("masksProperties")),
	}
	layer.Index, layer.HasIndex = obj.int("ind")
	layer.Type = layerTypeFromCode(obj.int("ty"))
	layer.BlendMode, _ = obj.int("bm")
	layer.MatteMode, _ = obj.int("tt")
	if td, ok := obj.int("td"); ok && td == 1 {
		layer.MatteSource = true
	}

	for _, item := range obj.array("ef") {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		ef := object(m)
		effect := Effect{MatchName: ef.str("mn")}
		effect.TypeCode, effect.HasTypeCode = ef.int("ty")
		layer.Effects = append(layer.Effects, effect)
	}

	layer.Shapes = decodeShapes(obj.array("shapes"))
	return layer
}

func decodeShapes(raw []any) []ShapeNode {
	if len(raw) == 0 {
		return nil
	}
	shapes := make([]ShapeNode, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		shapes = append(shapes, decodeShape(object(m)))
	}
	return shapes
}

func decodeShape(obj object) ShapeNode {
	tag := obj.str("ty")
	node := ShapeNode{Kind: shapeKinds[tag], Tag: tag}

	switch node.Kind {
	case ShapeGradientFill:
		switch t, _ := obj.int("t"); t {
		case 1:
			node.Gradient = GradientLinear
		case 2:
			node.Gradient = GradientRadial
		}
		node.StartPoint = decodeProperty(obj["s"])
		node.EndPoint = decodeProperty(obj["e"])
	case ShapeGroup:
		node.Children = decodeShapes(obj.array("it"))
	}
	return node
}

// decodeProperty marks a property animated when its "k" value is a list holding at
// least one keyframe object (an object with a "t" key).
func decodeProperty(v any) AnimatableProperty {
	m, ok := v.(map[string]any)
	if !ok {
		return AnimatableProperty{}
	}
	frames, ok := m["k"].([]any)
	if !ok {
		return AnimatableProperty{}
	}
	for _, frame := range frames {
		kf, ok := frame.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := kf["t"]; ok {
			return AnimatableProperty{animated: true}
		}
	}
	return AnimatableProperty{}
}

// object wraps a decoded JSON object with lenient typed accessors.
type object map[string]any

func (o object) str(key string) string {
	s, _ := o[key].(string)
	return s
}

// id accepts both string and numeric identifiers.
func (o object) id(key string) string {
	switch v := o[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func (o object) number(key string) (float64, bool) {
	switch v := o[key].(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func (o object) float(key string) float64 {
	f, _ := o.number(key)
	return f
}

func (o object) int(key string) (int, bool) {
	f, ok := o.number(key)
	if !ok || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func (o object) bool(key string) bool {
	b, _ := o[key].(bool)
	return b
}

// flag reads 0/1 switches such as ddd, also accepting booleans.
func (o object) flag(key string) bool {
	if b, ok := o[key].(bool); ok {
		return b
	}
	n, ok := o.int(key)
	return ok && n == 1
}

func (o object) array(key string) []any {
	a, _ := o[key].([]any)
	return a
}
