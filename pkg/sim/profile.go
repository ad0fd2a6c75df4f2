package sim

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed profiles/*.yaml
var profileFS embed.FS

// DefaultProfile is the embedded profile used when none is named.
const DefaultProfile = "standard"

// Profile errors.
var (
	// ErrProfileNotFound is returned for an unknown embedded profile name.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrInvalidProfile is returned for a profile with unknown enum names
	// or inconsistent defaults.
	ErrInvalidProfile = errors.New("invalid profile")
)

// Profile describes a simulated camera: what it supports, its initial
// values and how it answers requests. Enum values are given by name, e.g.
// MANUAL or ISO_100.
type Profile struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	// Latency delays applying accepted requests and notifying the result.
	Latency time.Duration `yaml:"latency"`

	// DropEvery drops every n-th request without answering it (0 = never).
	DropEvery int `yaml:"drop_every"`

	Camera       CameraProfile       `yaml:"camera"`
	Exposure     ExposureProfile     `yaml:"exposure"`
	WhiteBalance WhiteBalanceProfile `yaml:"white_balance"`
	Photo        PhotoProfile        `yaml:"photo"`
	Recording    RecordingProfile    `yaml:"recording"`
	Style        StyleProfile        `yaml:"style"`

	// Optional components. Absent ones are never notified.
	Alignment        *AlignmentProfile `yaml:"alignment"`
	ExposureLock     bool              `yaml:"exposure_lock"`
	WhiteBalanceLock bool              `yaml:"white_balance_lock"`
	Zoom             *ZoomProfile      `yaml:"zoom"`
}

// CameraProfile configures camera-wide settings. A nil auto flag is
// unsupported.
type CameraProfile struct {
	Modes           []string `yaml:"modes"`
	Mode            string   `yaml:"mode"`
	EVCompensations []string `yaml:"ev_compensations"`
	EVCompensation  string   `yaml:"ev_compensation"`
	AutoHDR         *bool    `yaml:"auto_hdr"`
	AutoRecord      *bool    `yaml:"auto_record"`
}

// ExposureProfile configures exposure.
type ExposureProfile struct {
	Modes         []string `yaml:"modes"`
	ShutterSpeeds []string `yaml:"shutter_speeds"`
	ISOs          []string `yaml:"isos"`
	MaxISOs       []string `yaml:"max_isos"`
	Mode          string   `yaml:"mode"`
	ShutterSpeed  string   `yaml:"shutter_speed"`
	ISO           string   `yaml:"iso"`
	MaxISO        string   `yaml:"max_iso"`
	Metering      string   `yaml:"metering"`
}

// WhiteBalanceProfile configures white balance.
type WhiteBalanceProfile struct {
	Modes        []string `yaml:"modes"`
	Temperatures []string `yaml:"temperatures"`
	Mode         string   `yaml:"mode"`
	Temperature  string   `yaml:"temperature"`
}

// PhotoCapabilityProfile is one photo capability entry.
type PhotoCapabilityProfile struct {
	Modes       []string `yaml:"modes"`
	Formats     []string `yaml:"formats"`
	FileFormats []string `yaml:"file_formats"`
	HDR         bool     `yaml:"hdr"`
}

// PhotoProfile configures photo capture.
type PhotoProfile struct {
	Capabilities      []PhotoCapabilityProfile `yaml:"capabilities"`
	BurstValues       []string                 `yaml:"burst_values"`
	BracketingValues  []string                 `yaml:"bracketing_values"`
	TimelapseRange    RangeProfile             `yaml:"timelapse_range"`
	GpslapseRange     RangeProfile             `yaml:"gpslapse_range"`
	Mode              string                   `yaml:"mode"`
	Format            string                   `yaml:"format"`
	FileFormat        string                   `yaml:"file_format"`
	Burst             string                   `yaml:"burst"`
	Bracketing        string                   `yaml:"bracketing"`
	TimelapseInterval float64                  `yaml:"timelapse_interval"`
	GpslapseInterval  float64                  `yaml:"gpslapse_interval"`
}

// RecordingCapabilityProfile is one recording capability entry.
type RecordingCapabilityProfile struct {
	Modes       []string `yaml:"modes"`
	Resolutions []string `yaml:"resolutions"`
	Framerates  []string `yaml:"framerates"`
	HDR         bool     `yaml:"hdr"`
}

// RecordingProfile configures video recording.
type RecordingProfile struct {
	Capabilities     []RecordingCapabilityProfile `yaml:"capabilities"`
	HyperlapseValues []string                     `yaml:"hyperlapse_values"`
	Bitrate          uint32                       `yaml:"bitrate"`
	Mode             string                       `yaml:"mode"`
	Resolution       string                       `yaml:"resolution"`
	Framerate        string                       `yaml:"framerate"`
	Hyperlapse       string                       `yaml:"hyperlapse"`
}

// StyleProfile configures the image style.
type StyleProfile struct {
	Styles     []string       `yaml:"styles"`
	Style      string         `yaml:"style"`
	Saturation BoundedProfile `yaml:"saturation"`
	Contrast   BoundedProfile `yaml:"contrast"`
	Sharpness  BoundedProfile `yaml:"sharpness"`
}

// AlignmentProfile gives the offset ranges, in degrees.
type AlignmentProfile struct {
	Yaw   RangeProfile `yaml:"yaw"`
	Pitch RangeProfile `yaml:"pitch"`
	Roll  RangeProfile `yaml:"roll"`
}

// ZoomProfile configures zoom.
type ZoomProfile struct {
	MaxLossyLevel      float64      `yaml:"max_lossy_level"`
	MaxLosslessLevel   float64      `yaml:"max_lossless_level"`
	MaxSpeedRange      RangeProfile `yaml:"max_speed_range"`
	MaxSpeed           float64      `yaml:"max_speed"`
	QualityDegradation bool         `yaml:"quality_degradation"`
}

// RangeProfile is a closed interval.
type RangeProfile struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// BoundedProfile is an integer value with its bounds.
type BoundedProfile struct {
	Min   int `yaml:"min"`
	Value int `yaml:"value"`
	Max   int `yaml:"max"`
}

// WithLatency returns a copy of the profile with a different latency.
func (p *Profile) WithLatency(latency time.Duration) *Profile {
	cp := *p
	cp.Latency = latency
	return &cp
}

// Validate checks that every enum name is known and every initial value
// is supported.
func (p *Profile) Validate() error {
	_, err := newState(p)
	return err
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

var (
	cacheMu sync.RWMutex
	cache   = make(map[string]*Profile)
)

// LoadProfile loads an embedded profile by name (e.g. "standard").
// Profiles are parsed once and shared; callers must not modify them.
func LoadProfile(name string) (*Profile, error) {
	cacheMu.RLock()
	if p, ok := cache[name]; ok {
		cacheMu.RUnlock()
		return p, nil
	}
	cacheMu.RUnlock()

	data, err := profileFS.ReadFile("profiles/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}

	p, err := ParseProfile(data)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", name, err)
	}

	cacheMu.Lock()
	cache[name] = p
	cacheMu.Unlock()

	return p, nil
}

// LoadProfileFile loads a profile from a YAML file.
func LoadProfileFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	p, err := ParseProfile(data)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// ParseProfile parses and validates a YAML profile.
func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// AvailableProfiles returns the names of all embedded profiles, sorted.
func AvailableProfiles() ([]string, error) {
	entries, err := profileFS.ReadDir("profiles")
	if err != nil {
		return nil, fmt.Errorf("reading profiles directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
