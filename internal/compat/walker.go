package compat

import (
	"fmt"

	"github.com/scan-io-git/lottiescan/internal/lottie"
)

const (
	mainCompLabel     = "Main comp"
	rootCompLabel     = "Root composition"
	locationSeparator = " › "

	effectGaussianBlur    = 29
	effectDropShadow      = 25
	matchNameGaussianBlur = "ADBE Gaussian Blur 2"
	matchNameDropShadow   = "ADBE Drop Shadow"
)

// Walk traverses the document and records every tracked feature it uses: the root 3D
// flag, the root layers, then each composition asset in document order.
func Walk(doc *lottie.Document) *Findings {
	findings := NewFindings()
	if doc == nil {
		return findings
	}

	if doc.Is3D {
		findings.Record(FeatureCamera3D, rootCompLabel+" (ddd:1)")
	}
	walkLayers(findings, doc.Layers, mainCompLabel)

	for _, asset := range doc.Assets {
		if !asset.IsComposition() || len(asset.Layers) == 0 {
			continue
		}
		label := assetLabel(asset)
		if asset.Is3D {
			findings.Record(FeatureCamera3D, label+" (ddd:1)")
		}
		walkLayers(findings, asset.Layers, label)
	}
	return findings
}

func assetLabel(asset lottie.Asset) string {
	if asset.Name != "" {
		return fmt.Sprintf(`Asset "%s"`, asset.Name)
	}
	return fmt.Sprintf(`Asset id:"%s"`, asset.ID)
}

func layerLocation(comp string, layer lottie.Layer) string {
	return comp + locationSeparator + "Layer " + layer.Label()
}

func detail(location, what string) string {
	return location + locationSeparator + what
}

func walkLayers(findings *Findings, layers []lottie.Layer, comp string) {
	for _, layer := range layers {
		loc := layerLocation(comp, layer)

		if layer.MatteSource {
			findings.Record(FeatureTrackMatte, detail(loc, "matte source (td:1)"))
		}
		if layer.MatteMode != 0 {
			findings.Record(FeatureTrackMatte, detail(loc, fmt.Sprintf("matte target (tt:%d)", layer.MatteMode)))
		}
		if layer.BlendMode != 0 {
			findings.Record(FeatureNonNormalBlend, detail(loc, fmt.Sprintf("blend mode bm:%d", layer.BlendMode)))
		}
		if layer.HasMask || layer.Masks > 0 {
			findings.Record(FeatureMask, detail(loc, "mask"))
		}
		if layer.Type == lottie.LayerText {
			findings.Record(FeatureTextLayer, detail(loc, "text layer"))
		}

		walkEffects(findings, layer.Effects, loc)

		if layer.Type == lottie.LayerShape && len(layer.Shapes) > 0 {
			walkShapes(findings, layer.Shapes, loc)
		}
	}
}

func walkEffects(findings *Findings, effects []lottie.Effect, loc string) {
	for _, ef := range effects {
		if isEffect(ef, effectGaussianBlur, matchNameGaussianBlur) {
			findings.Record(FeatureGaussianBlur, detail(loc, "gaussian blur effect"))
		}
		if isEffect(ef, effectDropShadow, matchNameDropShadow) {
			findings.Record(FeatureDropShadow, detail(loc, "drop shadow effect"))
		}
	}
}

func isEffect(ef lottie.Effect, code int, matchName string) bool {
	return (ef.HasTypeCode && ef.TypeCode == code) || ef.MatchName == matchName
}

// walkShapes visits a shape tree depth-first in document order. It keeps its own
// stack so group nesting depth is bounded only by memory.
func walkShapes(findings *Findings, shapes []lottie.ShapeNode, loc string) {
	stack := make([]*lottie.ShapeNode, 0, len(shapes))
	pushReversed := func(nodes []lottie.ShapeNode) {
		for i := len(nodes) - 1; i >= 0; i-- {
			stack = append(stack, &nodes[i])
		}
	}
	pushReversed(shapes)

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch node.Kind {
		case lottie.ShapeGradientStroke:
			findings.Record(FeatureGradientStroke, detail(loc, "gradient stroke"))
		case lottie.ShapeMergePaths:
			findings.Record(FeatureMergePaths, detail(loc, "merge paths"))
		case lottie.ShapeGradientFill:
			if node.Gradient == lottie.GradientRadial && (node.StartPoint.IsAnimated() || node.EndPoint.IsAnimated()) {
				findings.Record(FeatureAnimatedRadialGradient, detail(loc, "animated radial gradient fill"))
			}
		case lottie.ShapeGroup:
			pushReversed(node.Children)
		}
	}
}
