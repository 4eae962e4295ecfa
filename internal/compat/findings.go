package compat

// MaxSampledLocations caps the locations kept per feature.
const MaxSampledLocations = 3

// Finding aggregates the occurrences of one feature.
type Finding struct {
	Count     int
	Locations []string
}

// Findings accumulates findings per feature, remembering the order in which features
// were first seen.
type Findings struct {
	order []FeatureID
	byID  map[FeatureID]*Finding
}

// NewFindings returns an empty accumulator.
func NewFindings() *Findings {
	return &Findings{byID: make(map[FeatureID]*Finding)}
}

// Record counts one occurrence of a feature. The location is kept only while fewer than
// MaxSampledLocations have been stored.
func (f *Findings) Record(id FeatureID, location string) {
	finding, ok := f.byID[id]
	if !ok {
		finding = &Finding{}
		f.byID[id] = finding
		f.order = append(f.order, id)
	}
	finding.Count++
	if len(finding.Locations) < MaxSampledLocations {
		finding.Locations = append(finding.Locations, location)
	}
}

// IDs returns the recorded features in first-encounter order.
func (f *Findings) IDs() []FeatureID {
	return append([]FeatureID(nil), f.order...)
}

// Get returns a copy of the finding for a feature.
func (f *Findings) Get(id FeatureID) (Finding, bool) {
	finding, ok := f.byID[id]
	if !ok {
		return Finding{}, false
	}
	return Finding{
		Count:     finding.Count,
		Locations: append([]string(nil), finding.Locations...),
	}, true
}

// Len returns the number of distinct features recorded.
func (f *Findings) Len() int {
	return len(f.order)
}
