package compat

import "fmt"

// FeatureID identifies a tracked animation feature.
type FeatureID string

const (
	FeatureTrackMatte             FeatureID = "TRACK_MATTE"
	FeatureGradientStroke         FeatureID = "GRADIENT_STROKE"
	FeatureGaussianBlur           FeatureID = "GAUSSIAN_BLUR"
	FeatureCamera3D               FeatureID = "CAMERA_3D"
	FeatureDropShadow             FeatureID = "DROP_SHADOW"
	FeatureNonNormalBlend         FeatureID = "NON_NORMAL_BLEND"
	FeatureAnimatedRadialGradient FeatureID = "ANIMATED_RADIAL_GRADIENT"
	FeatureMergePaths             FeatureID = "MERGE_PATHS"
	FeatureTextLayer              FeatureID = "TEXT_LAYER"
	FeatureMask                   FeatureID = "MASK"
)

// Runtime names used in AffectedRuntimes.
const (
	RuntimeWebCanvas = "Web — Canvas"
	RuntimeFlutter   = "Flutter"
	RuntimeNative    = "iOS / Android"
)

// Rule is a catalog entry describing a feature and how to work around it.
type Rule struct {
	ID               FeatureID `json:"id" yaml:"id"`
	Name             string    `json:"name" yaml:"name"`
	Severity         Severity  `json:"severity" yaml:"severity"`
	AffectedRuntimes []string  `json:"affectedRuntimes" yaml:"affected_runtimes"`
	Description      string    `json:"description" yaml:"description"`
	Remediation      string    `json:"remediation" yaml:"remediation"`
}

func (r Rule) clone() Rule {
	r.AffectedRuntimes = append([]string(nil), r.AffectedRuntimes...)
	return r
}

// Catalog is an immutable set of rules keyed by feature.
type Catalog struct {
	order []FeatureID
	rules map[FeatureID]Rule
}

// NewCatalog builds a catalog, keeping the given order for listing.
func NewCatalog(rules ...Rule) (Catalog, error) {
	c := Catalog{rules: make(map[FeatureID]Rule, len(rules))}
	for _, r := range rules {
		if r.ID == "" {
			return Catalog{}, fmt.Errorf("rule without id")
		}
		if _, exists := c.rules[r.ID]; exists {
			return Catalog{}, fmt.Errorf("duplicate rule %q", r.ID)
		}
		if !r.Severity.IsValid() {
			return Catalog{}, fmt.Errorf("rule %q: invalid severity %q", r.ID, r.Severity)
		}
		c.order = append(c.order, r.ID)
		c.rules[r.ID] = r.clone()
	}
	return c, nil
}

// Lookup returns the rule for a feature.
func (c Catalog) Lookup(id FeatureID) (Rule, bool) {
	r, ok := c.rules[id]
	if !ok {
		return Rule{}, false
	}
	return r.clone(), true
}

// Rules returns every rule in catalog order.
func (c Catalog) Rules() []Rule {
	out := make([]Rule, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.rules[id].clone())
	}
	return out
}

// Len returns the number of rules.
func (c Catalog) Len() int {
	return len(c.order)
}

var defaultCatalog = mustCatalog(
	Rule{
		ID:               FeatureTrackMatte,
		Name:             "Track Matte (tt / td)",
		Severity:         SeverityCritical,
		AffectedRuntimes: []string{RuntimeWebCanvas, RuntimeFlutter},
		Description: "Track matte layers use one layer to mask another. Canvas and Flutter runtimes do not support this " +
			"compositing mode: the matte source is rendered but masking is skipped, so shapes or text appear unclipped " +
			"or completely invisible.",
		Remediation: "Pre-compose the matte pair into a single layer and export it as a flat composition, or replace the " +
			"matte with an alpha mask directly on the target layer or a shape layer clip path.",
	},
	Rule{
		ID:               FeatureGradientStroke,
		Name:             "Gradient Stroke (gs)",
		Severity:         SeverityCritical,
		AffectedRuntimes: []string{RuntimeWebCanvas, RuntimeFlutter},
		Description: "Gradient strokes are not supported by canvas-based renderers or the Flutter library. The stroke " +
			"renders as a solid colour or is skipped entirely.",
		Remediation: "Use solid-colour strokes. If the gradient is essential, convert the stroke to a filled outline " +
			"and apply a gradient fill instead.",
	},
	Rule{
		ID:               FeatureGaussianBlur,
		Name:             "Gaussian Blur Effect",
		Severity:         SeverityCritical,
		AffectedRuntimes: []string{RuntimeWebCanvas, RuntimeFlutter, RuntimeNative},
		Description: "The ADBE Gaussian Blur 2 effect is not supported by any runtime. The blur is ignored and the " +
			"layer renders sharp, breaking soft-focus or glow designs.",
		Remediation: "Pre-render the blurred layer as a PNG (or PNG sequence) and import it back as an image asset.",
	},
	Rule{
		ID:               FeatureCamera3D,
		Name:             "3D Layers / Camera (ddd)",
		Severity:         SeverityCritical,
		AffectedRuntimes: []string{RuntimeWebCanvas, RuntimeFlutter, RuntimeNative},
		Description: "3D compositions, camera layers and light layers are not supported by any runtime. 3D transforms " +
			"are ignored and layers render flat in document order, with wrong z-ordering and no perspective.",
		Remediation: "Collapse the composition to 2D before exporting: disable every 3D layer switch and remove " +
			"camera and light layers.",
	},
	Rule{
		ID:               FeatureDropShadow,
		Name:             "Drop Shadow Effect",
		Severity:         SeverityWarning,
		AffectedRuntimes: []string{RuntimeWebCanvas, RuntimeFlutter},
		Description: "The Drop Shadow effect is only supported by the web SVG renderer. Canvas-based renderers and " +
			"Flutter skip it silently, so elements appear flat.",
		Remediation: "Bake the shadow into a PNG, or recreate it as a separate shape layer with an offset, dark, " +
			"semi-transparent shape.",
	},
	Rule{
		ID:               FeatureNonNormalBlend,
		Name:             "Non-Normal Blend Mode (bm)",
		Severity:         SeverityWarning,
		AffectedRuntimes: []string{RuntimeWebCanvas, RuntimeFlutter},
		Description: "Blend modes other than Normal (bm:0), such as Multiply, Screen or Overlay, work in the SVG " +
			"renderer but have inconsistent or no support in canvas-based and Flutter renderers.",
		Remediation: "Bake the blended result into the artwork: pre-compose the layers, render a flat PNG and import " +
			"it back as an image layer with Normal blending.",
	},
	Rule{
		ID:               FeatureAnimatedRadialGradient,
		Name:             "Animated Radial Gradient",
		Severity:         SeverityWarning,
		AffectedRuntimes: []string{RuntimeFlutter},
		Description: "Radial gradient fills with an animated focal point or radius are not fully implemented in the " +
			"Flutter library. The gradient may stay static or use wrong centre points while animating.",
		Remediation: "Use a linear gradient where possible, keep radial gradients static, or pre-render the affected " +
			"frames as a PNG sequence.",
	},
	Rule{
		ID:               FeatureMergePaths,
		Name:             "Merge Paths (mm)",
		Severity:         SeverityWarning,
		AffectedRuntimes: []string{RuntimeWebCanvas, RuntimeFlutter},
		Description: "The Merge Paths operator performs boolean path operations at runtime. The canvas renderer and " +
			"Flutter do not support it and draw the individual, un-merged paths.",
		Remediation: "Expand the merge result before export so resolved shape paths are written without the mm " +
			"operator.",
	},
	Rule{
		ID:               FeatureTextLayer,
		Name:             "Text Layer (ty:5)",
		Severity:         SeverityWarning,
		AffectedRuntimes: []string{RuntimeFlutter, RuntimeNative},
		Description: "Text layers need the exact font at runtime. On Flutter and native mobile a missing font falls " +
			"back to a system font or renders as empty boxes, and font metrics differ between platforms.",
		Remediation: "Convert text to outlines before exporting so the glyphs are stored as vector shapes with no " +
			"font dependency.",
	},
	Rule{
		ID:               FeatureMask,
		Name:             "Layer Mask",
		Severity:         SeverityWarning,
		AffectedRuntimes: []string{RuntimeWebCanvas},
		Description: "Animated masks using Subtract or Intersect modes have inconsistent support in the canvas " +
			"renderer and may composite incorrectly.",
		Remediation: "Use Add mode masks only, or pre-compose complex masks and flatten them to a PNG or bake the " +
			"clip path into the shape layer.",
	},
)

func mustCatalog(rules ...Rule) Catalog {
	c, err := NewCatalog(rules...)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultCatalog returns the built-in rule catalog.
func DefaultCatalog() Catalog {
	return defaultCatalog
}
