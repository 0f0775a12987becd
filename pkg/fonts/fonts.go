// Package fonts resolves TrueType font files for word-cloud rendering.
//
// A configuration may name an explicit font path, in which case it is
// validated by actually parsing the file. When no font is configured the
// package discovers a usable system font, trying a list of faces that are
// present on the vast majority of Linux, macOS, and Windows installs.
package fonts

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"

	"github.com/hed-standard/hedviz/pkg/errors"
)

// defaultFaces are tried in order when no font path is configured.
var defaultFaces = []string{
	"DejaVuSans.ttf",
	"Arial.ttf",
	"LiberationSans-Regular.ttf",
	"NotoSans-Regular.ttf",
	"FreeSans.ttf",
	"Verdana.ttf",
}

// validExtensions lists the font file extensions accepted in configurations.
var validExtensions = map[string]bool{
	".ttf": true,
	".otf": true,
	".ttc": true,
}

// ValidExtension reports whether path carries an accepted font extension.
func ValidExtension(path string) bool {
	return validExtensions[strings.ToLower(filepath.Ext(path))]
}

// Resolve returns a usable font file path. With an explicit path it
// verifies the file exists and parses; with an empty path it falls back
// to system discovery.
func Resolve(path string) (string, error) {
	if path == "" {
		return Discover()
	}

	if !ValidExtension(path) {
		return "", errors.New(errors.ErrCodeInvalidConfig,
			"font path %q must end in .ttf, .otf, or .ttc", path)
	}

	if err := verify(path); err != nil {
		return "", err
	}
	return path, nil
}

// Discover searches the system font directories for a usable default face.
func Discover() (string, error) {
	for _, face := range defaultFaces {
		path, err := findfont.Find(face)
		if err != nil {
			continue
		}
		if verify(path) == nil {
			return path, nil
		}
	}
	return "", errors.New(errors.ErrCodeFontNotFound,
		"no usable system font found (tried %s); set an explicit font path",
		strings.Join(defaultFaces, ", "))
}

// verify parses the font file to prove it is usable before the path is
// handed to the rendering engine.
func verify(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "font file %s", path)
		}
		return errors.Wrap(errors.ErrCodeFileUnreadable, err, "font file %s", path)
	}

	if _, err := truetype.Parse(data); err != nil {
		return errors.Wrap(errors.ErrCodeFileUnreadable, err, "parse font file %s", path)
	}
	return nil
}
