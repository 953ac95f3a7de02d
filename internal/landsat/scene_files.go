package landsat

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	ErrMissingSceneFile   = errors.New("scene file not found")
	ErrAmbiguousSceneFile = errors.New("more than one candidate scene file")
)

const (
	rasterExt      = ".TIF"
	metadataSuffix = "MTL.txt"
)

var whitespace = regexp.MustCompile(`\s+`)

// ListRasters returns the names of the *.TIF files in dir, in directory
// listing order.
func ListRasters(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	names := []string{}
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return Rasters(names), nil
}

// Rasters keeps the *.TIF names of a listing.
func Rasters(files []string) []string {
	rasters := []string{}
	for _, name := range files {
		if hasSuffixFold(name, rasterExt) {
			rasters = append(rasters, name)
		}
	}
	return rasters
}

// ParseBandList turns "4, 5,6" into ["4","5","6"]. All whitespace is dropped
// before splitting and empty ids are skipped.
func ParseBandList(bands string) []string {
	bands = whitespace.ReplaceAllString(bands, "")
	ids := []string{}
	for _, id := range strings.Split(bands, ",") {
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// BandSuffix is the file ending of a band, e.g. "B5.TIF".
func BandSuffix(id string) string {
	return "B" + id + rasterExt
}

// FilterBands keeps the files ending in B<id>.TIF for any of ids. The
// order of files is kept; the order of ids does not matter.
func FilterBands(files []string, ids []string) []string {
	matched := []string{}
	for _, name := range files {
		for _, id := range ids {
			if hasSuffixFold(name, BandSuffix(id)) {
				matched = append(matched, name)
				break
			}
		}
	}
	return matched
}

type SceneFiles struct {
	Band5    string
	Band7    string
	Metadata string
}

// FindSceneFiles picks the band 5, band 7 and MTL metadata files out of a
// directory listing.
func FindSceneFiles(files []string) (SceneFiles, error) {
	var scene SceneFiles
	var err error
	if scene.Band5, err = single(files, BandSuffix("5")); err != nil {
		return SceneFiles{}, err
	}
	if scene.Band7, err = single(files, BandSuffix("7")); err != nil {
		return SceneFiles{}, err
	}
	if scene.Metadata, err = single(files, metadataSuffix); err != nil {
		return SceneFiles{}, err
	}
	return scene, nil
}

// ListFiles returns every regular file name in dir in listing order.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

func single(files []string, suffix string) (string, error) {
	found := []string{}
	for _, name := range files {
		if hasSuffixFold(name, suffix) {
			found = append(found, name)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("%s: %w", suffix, ErrMissingSceneFile)
	case 1:
		return found[0], nil
	}
	return "", fmt.Errorf("%s matched %s: %w", suffix, strings.Join(found, ", "), ErrAmbiguousSceneFile)
}

// SceneStem strips a trailing "_<suffix>" (or "<suffix>") from a file name:
// "LC08_..._T1_B5.TIF" -> "LC08_..._T1".
func SceneStem(name, suffix string) string {
	if !hasSuffixFold(name, suffix) {
		return strings.TrimSuffix(name, extOf(name))
	}
	stem := name[:len(name)-len(suffix)]
	return strings.TrimSuffix(stem, "_")
}

// CompositeName is the default output name for a composite built from the
// given first band file.
func CompositeName(firstBand string) string {
	return SceneStem(firstBand, bandToken(firstBand)) + "_composite.tif"
}

// NBRName is the default output name for the burn ratio of a scene.
func NBRName(band5 string) string {
	return SceneStem(band5, BandSuffix("5")) + "_nbr.tif"
}

func bandToken(name string) string {
	i := strings.LastIndex(strings.ToUpper(name), "B")
	if i < 0 {
		return extOf(name)
	}
	return name[i:]
}

func extOf(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
