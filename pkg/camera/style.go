package camera

import (
	"github.com/aerolens/camsync/pkg/capability"
	"github.com/aerolens/camsync/pkg/setting"
)

// StyleSettings is the image style field tuple.
type StyleSettings struct {
	Style      Style
	Saturation int
	Contrast   int
	Sharpness  int
}

// StyleParameter names an adjustable style parameter.
type StyleParameter uint8

const (
	Saturation StyleParameter = iota
	Contrast
	Sharpness
)

// String returns the parameter name.
func (p StyleParameter) String() string {
	return enumName([]string{"SATURATION", "CONTRAST", "SHARPNESS"}, uint8(p))
}

// ImageStyle is the camera image style setting: a style preset plus three
// parameters adjustable within device-provided bounds.
type ImageStyle struct {
	ctrl    *setting.Controller[StyleSettings]
	backend StyleBackend
	styles  capability.Set[Style]
	bounds  [3]setting.Range[int]
}

// NewImageStyle creates a style setting with nothing supported.
func NewImageStyle(backend StyleBackend, onChange setting.ChangeFunc) *ImageStyle {
	return &ImageStyle{
		ctrl:    setting.NewController("style", StyleSettings{Style: StyleStandard}, onChange),
		backend: backend,
		styles:  capability.Set[Style]{},
	}
}

// Style returns the active style preset.
func (s *ImageStyle) Style() Style { return s.ctrl.Get().Style }

// Parameter returns the value of a style parameter.
func (s *ImageStyle) Parameter(p StyleParameter) int {
	v := s.ctrl.Get()
	return *param(&v, p)
}

// ParameterBounds returns the allowed range of a style parameter.
func (s *ImageStyle) ParameterBounds(p StyleParameter) setting.Range[int] {
	if int(p) >= len(s.bounds) {
		return setting.Range[int]{}
	}
	return s.bounds[p]
}

// IsUpdating returns true while a request awaits confirmation.
func (s *ImageStyle) IsUpdating() bool { return s.ctrl.IsUpdating() }

// SupportedStyles returns the supported style presets.
func (s *ImageStyle) SupportedStyles() capability.Set[Style] { return s.styles.Clone() }

// SetStyle requests a style preset.
func (s *ImageStyle) SetStyle(style Style) {
	if !s.styles.Contains(style) {
		return
	}
	next := s.ctrl.Get()
	next.Style = style
	s.ctrl.Request(next, func(v StyleSettings) bool {
		return s.backend.SetStyle(v.Style)
	})
}

// SetParameter requests a style parameter value, clamped to its bounds.
func (s *ImageStyle) SetParameter(p StyleParameter, value int) {
	if int(p) >= len(s.bounds) {
		return
	}
	next := s.ctrl.Get()
	*param(&next, p) = s.bounds[p].Clamp(value)
	s.ctrl.Request(next, func(v StyleSettings) bool {
		return s.backend.SetStyleParameters(v.Saturation, v.Contrast, v.Sharpness)
	})
}

// UpdateSupportedStyles replaces the supported style presets.
func (s *ImageStyle) UpdateSupportedStyles(styles ...Style) *ImageStyle {
	updateSupported(s.ctrl, &s.styles, styles, func(v *StyleSettings) *Style { return &v.Style })
	return s
}

// UpdateStyle applies the style preset reported by the device.
func (s *ImageStyle) UpdateStyle(style Style) *ImageStyle {
	s.ctrl.UpdateWith(func(v *StyleSettings) { v.Style = style })
	return s
}

// UpdateParameter applies a style parameter value and its bounds.
func (s *ImageStyle) UpdateParameter(p StyleParameter, lo, value, hi int) *ImageStyle {
	if int(p) >= len(s.bounds) {
		return s
	}
	updateRange(s.ctrl, &s.bounds[p], lo, hi)
	s.ctrl.UpdateWith(func(v *StyleSettings) { *param(v, p) = value })
	return s
}

func (s *ImageStyle) parts() []part {
	return []part{s.ctrl}
}

func param(v *StyleSettings, p StyleParameter) *int {
	switch p {
	case Contrast:
		return &v.Contrast
	case Sharpness:
		return &v.Sharpness
	default:
		return &v.Saturation
	}
}
