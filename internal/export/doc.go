// Package export writes simulated curves to CSV, JSON and SVG files.
package export
