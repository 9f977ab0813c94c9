// Package iconset implements the icon extraction pipeline: source
// directories are enumerated, every SVG file is normalized through the
// transform engine, its geometry is extracted and the results of one
// directory are aggregated into a collection handed to an artifact
// serializer.
package iconset
