package capability

import (
	"cmp"
	"maps"
)

// Descriptor is one capability entry pushed by the device: every
// combination of the listed modes, formats and file formats is supported,
// with HDR availability given by the HDR flag.
type Descriptor[M, F, X cmp.Ordered] struct {
	Modes       []M
	Formats     []F
	FileFormats []X
	HDR         bool
}

// Matrix is the nested capability map Mode -> Format -> FileFormat -> HDR.
//
// The zero value is an empty matrix. Matrices are immutable once built;
// a capability push replaces the whole matrix.
type Matrix[M, F, X cmp.Ordered] struct {
	entries map[M]map[F]map[X]bool
}

// Build merges descriptors into a Matrix.
//
// Descriptors are applied in order. When two descriptors cover the same
// (mode, format, file format) triple, the HDR flag of the first one wins.
func Build[M, F, X cmp.Ordered](descriptors []Descriptor[M, F, X]) Matrix[M, F, X] {
	entries := make(map[M]map[F]map[X]bool)
	for _, d := range descriptors {
		for _, m := range d.Modes {
			formats, ok := entries[m]
			if !ok {
				formats = make(map[F]map[X]bool)
				entries[m] = formats
			}
			for _, f := range d.Formats {
				fileFormats, ok := formats[f]
				if !ok {
					fileFormats = make(map[X]bool)
					formats[f] = fileFormats
				}
				for _, x := range d.FileFormats {
					if _, exists := fileFormats[x]; !exists {
						fileFormats[x] = d.HDR
					}
				}
			}
		}
	}
	return Matrix[M, F, X]{entries: entries}
}

// IsEmpty returns true if the matrix supports no mode.
func (m Matrix[M, F, X]) IsEmpty() bool {
	return len(m.entries) == 0
}

// Modes returns the supported modes.
func (m Matrix[M, F, X]) Modes() Set[M] {
	s := make(Set[M], len(m.entries))
	for mode := range m.entries {
		s[mode] = struct{}{}
	}
	return s
}

// FormatsFor returns the formats supported in the given mode.
// The set is empty if the mode is unsupported.
func (m Matrix[M, F, X]) FormatsFor(mode M) Set[F] {
	formats := m.entries[mode]
	s := make(Set[F], len(formats))
	for f := range formats {
		s[f] = struct{}{}
	}
	return s
}

// FileFormatsFor returns the file formats supported for the given mode
// and format.
func (m Matrix[M, F, X]) FileFormatsFor(mode M, format F) Set[X] {
	fileFormats := m.entries[mode][format]
	s := make(Set[X], len(fileFormats))
	for x := range fileFormats {
		s[x] = struct{}{}
	}
	return s
}

// HDRAvailable reports whether HDR is available for the given triple.
// Returns false when any level of the triple is unsupported.
func (m Matrix[M, F, X]) HDRAvailable(mode M, format F, fileFormat X) bool {
	return m.entries[mode][format][fileFormat]
}

// Supports returns true if the mode is supported.
func (m Matrix[M, F, X]) Supports(mode M) bool {
	_, ok := m.entries[mode]
	return ok
}

// SupportsFormat returns true if the format is supported in the mode.
func (m Matrix[M, F, X]) SupportsFormat(mode M, format F) bool {
	_, ok := m.entries[mode][format]
	return ok
}

// SupportsFileFormat returns true if the whole triple is supported.
func (m Matrix[M, F, X]) SupportsFileFormat(mode M, format F, fileFormat X) bool {
	_, ok := m.entries[mode][format][fileFormat]
	return ok
}

// Equal compares two matrices structurally, HDR flags included.
func (m Matrix[M, F, X]) Equal(other Matrix[M, F, X]) bool {
	return maps.EqualFunc(m.entries, other.entries, func(a, b map[F]map[X]bool) bool {
		return maps.EqualFunc(a, b, func(x, y map[X]bool) bool {
			return maps.Equal(x, y)
		})
	})
}

// Resolve repairs a (mode, format, file format) triple against the matrix.
//
// Fields are checked in hierarchy order: an unsupported mode is replaced by
// the first supported mode, then an unsupported format by the first format
// of the (possibly new) mode, then an unsupported file format by the first
// file format of that mode and format. A level whose candidate set is empty
// is left untouched.
func (m Matrix[M, F, X]) Resolve(mode M, format F, fileFormat X) (M, F, X) {
	if modes := m.Modes(); !modes.Contains(mode) {
		if first, ok := modes.First(); ok {
			mode = first
		}
	}
	if formats := m.FormatsFor(mode); !formats.Contains(format) {
		if first, ok := formats.First(); ok {
			format = first
		}
	}
	if fileFormats := m.FileFormatsFor(mode, format); !fileFormats.Contains(fileFormat) {
		if first, ok := fileFormats.First(); ok {
			fileFormat = first
		}
	}
	return mode, format, fileFormat
}
