package raw

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// FileMetadata is what can be determined about a raw file without opening it.
// Zero-valued fields mean "not found"; callers overlay config or CLI values.
type FileMetadata struct {
	Geometry  Geometry
	Format    PixelFormat
	HasFormat bool
	FrameRate float64
}

var (
	sizeRe = regexp.MustCompile(`(\d{1,5})[xX](\d{1,5})`)
	fpsRe  = regexp.MustCompile(`(?i)[_\-. ](\d{1,3}(?:\.\d+)?)\s*(?:fps|hz)?[_\-. ]`)
)

// namedSizes lists conventional sequence-name tokens in match order; longer
// tokens come before their substrings (qcif/4cif before cif).
var namedSizes = []struct {
	token    string
	geometry Geometry
}{
	{"qcif", Geometry{176, 144}},
	{"4cif", Geometry{704, 576}},
	{"cif", Geometry{352, 288}},
	{"720p", Geometry{1280, 720}},
	{"1080p", Geometry{1920, 1080}},
	{"2160p", Geometry{3840, 2160}},
	{"4k", Geometry{3840, 2160}},
}

// GuessMetadata extracts geometry, pixel format and frame rate hints from a
// file name following common raw-sequence conventions, e.g.
// "foreman_352x288_30.yuv" or "bus_cif.yuv".
func GuessMetadata(path string) FileMetadata {
	var md FileMetadata

	name := strings.ToLower(filepath.Base(path))
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	if m := sizeRe.FindStringSubmatch(stem); m != nil {
		w, _ := strconv.Atoi(m[1])
		h, _ := strconv.Atoi(m[2])
		md.Geometry = Geometry{w, h}
	} else {
		for _, ns := range namedSizes {
			if strings.Contains(stem, ns.token) {
				md.Geometry = ns.geometry
				break
			}
		}
	}

	for _, token := range []string{"444", "422", "420", "gray", "grey", "rgb"} {
		if strings.Contains(stem, token) {
			if f, err := ParseFormat(token); err == nil {
				md.Format = f
				md.HasFormat = true
			}
			break
		}
	}
	if !md.HasFormat && filepath.Ext(name) == ".rgb" {
		md.Format = FormatRGB24
		md.HasFormat = true
	}

	// Frame rate appears after the size, e.g. "_352x288_30.yuv". Pad with a
	// trailing separator so a rate at the end of the stem still matches.
	// Chroma subsampling tags (444, 422, 420) look like rates and are
	// skipped; scanning resumes at the trailing separator so a rate right
	// after a skipped tag is still seen.
	rest := stem + "_"
	for {
		loc := fpsRe.FindStringSubmatchIndex(rest)
		if loc == nil {
			break
		}
		val := rest[loc[2]:loc[3]]
		rest = rest[loc[1]-1:]
		if val == "444" || val == "422" || val == "420" {
			continue
		}
		if fps, err := strconv.ParseFloat(val, 64); err == nil && fps > 0 && fps <= 1000 {
			md.FrameRate = fps
			break
		}
	}

	return md
}
