// Package capability models what a camera advertises it can do.
//
// Two shapes are used:
//
//   - Set: a flat set of enum values (supported burst values, ISO values,
//     white balance temperatures, ...). Empty means the axis is unsupported.
//   - Matrix: a nested Mode -> Format -> FileFormat -> HDR map, rebuilt
//     from a list of Descriptors each time the device pushes capabilities.
//
// Settings validate requests against these and use Resolve or Set.First to
// repair a value that a new capability push made invalid.
package capability
