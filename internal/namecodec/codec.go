// Package namecodec encodes camera assignments into light identifiers.
//
// The identifier grammar is:
//
//	G_<base>        global light, visible for every camera
//	C_<NN>_<base>   camera light, NN is the 2-digit camera ordinal
//	<base>          unassigned (legacy) light
//
// The codec is pure: it never touches a scene.
package namecodec

import (
	"fmt"
	"strings"
)

const (
	// GlobalPrefix marks a global light.
	GlobalPrefix = "G_"

	// CameraPrefix starts a camera-specific prefix, followed by the ordinal and "_".
	CameraPrefix = "C_"

	// DefaultOrdinal is used for the default camera and as fallback when no
	// ordinal can be derived.
	DefaultOrdinal = "00"

	// maxSuffix bounds the collision search to the 3-digit suffix space.
	maxSuffix = 999
)

// Kind classifies an identifier.
type Kind int

const (
	// KindUnassigned is a light without a recognized prefix.
	KindUnassigned Kind = iota

	// KindGlobal is a light assigned to every camera.
	KindGlobal

	// KindCamera is a light assigned to the cameras producing Label.Ordinal.
	KindCamera
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindUnassigned:
		return "unassigned"
	case KindGlobal:
		return "global"
	case KindCamera:
		return "camera"
	default:
		return "unknown"
	}
}

// Label is the decoded assignment of one identifier.
type Label struct {
	Kind    Kind
	Ordinal string // set only for KindCamera
}

// Global returns the label of a global light.
func Global() Label {
	return Label{Kind: KindGlobal}
}

// Camera returns the label of a light bound to ordinal.
func Camera(ordinal string) Label {
	return Label{Kind: KindCamera, Ordinal: ordinal}
}

// Unassigned returns the label of a light without prefix.
func Unassigned() Label {
	return Label{Kind: KindUnassigned}
}

// Codec derives camera ordinals and rewrites light identifiers.
type Codec struct {
	defaultCamera string
}

// New creates a codec.
//
// Parameters:
//   - defaultCamera: Camera identifier that maps to ordinal "00"
//
// Returns:
//   - *Codec: Codec instance
func New(defaultCamera string) *Codec {
	return &Codec{defaultCamera: defaultCamera}
}

// DefaultCamera returns the camera identifier mapped to ordinal "00".
func (c *Codec) DefaultCamera() string {
	return c.defaultCamera
}

// Ordinal derives the 2-digit ordinal of a camera identifier.
//
// Rules, first match wins:
//   - suffix ".001" to ".009" gives "01" to "09"
//   - the default camera name gives "00"
//   - the first run of decimal digits, zero-padded and keeping the last 2 characters
//
// Distinct identifiers can produce the same ordinal ("Cam1" and "Shot01").
// Such cameras share their lights.
//
// Returns:
//   - string: Ordinal
//   - bool: false when the identifier contains no digit
func (c *Codec) Ordinal(cameraID string) (string, bool) {
	if n := len(cameraID); n >= 4 && strings.HasPrefix(cameraID[n-4:], ".00") {
		d := cameraID[n-1]
		if d >= '1' && d <= '9' {
			return "0" + string(d), true
		}
	}

	if cameraID == c.defaultCamera {
		return DefaultOrdinal, true
	}

	digits := firstDigitRun(cameraID)
	if digits == "" {
		return "", false
	}

	if len(digits) < 2 {
		digits = "0" + digits
	}

	return digits[len(digits)-2:], true
}

// OrdinalOrDefault is Ordinal with the "00" fallback.
func (c *Codec) OrdinalOrDefault(cameraID string) string {
	if ord, ok := c.Ordinal(cameraID); ok {
		return ord
	}

	return DefaultOrdinal
}

// Strip removes one recognized prefix from a light identifier.
func (c *Codec) Strip(id string) string {
	if rest, ok := strings.CutPrefix(id, GlobalPrefix); ok {
		return rest
	}

	if _, rest, ok := cutCameraPrefix(id); ok {
		return rest
	}

	return id
}

// Encode prefixes base with the label.
//
// base must already be stripped; Encode does not look for existing prefixes.
func (c *Codec) Encode(base string, label Label) string {
	switch label.Kind {
	case KindGlobal:
		return GlobalPrefix + base
	case KindCamera:
		return CameraPrefix + label.Ordinal + "_" + base
	default:
		return base
	}
}

// Rewrite strips the current prefix of id and applies label.
func (c *Codec) Rewrite(id string, label Label) string {
	return c.Encode(c.Strip(id), label)
}

// Parse decodes the label carried by an identifier.
func (c *Codec) Parse(id string) Label {
	if strings.HasPrefix(id, GlobalPrefix) {
		return Global()
	}

	if ord, _, ok := cutCameraPrefix(id); ok {
		return Camera(ord)
	}

	return Unassigned()
}

// Classify decodes id against the ordinals of the cameras present in the scene.
//
// A camera label whose ordinal is not in known is an orphan and classifies
// as unassigned.
func (c *Codec) Classify(id string, known map[string]struct{}) Label {
	label := c.Parse(id)
	if label.Kind != KindCamera {
		return label
	}

	if _, ok := known[label.Ordinal]; !ok {
		return Unassigned()
	}

	return label
}

// Unique resolves identifier collisions by appending ".NNN".
//
// Parameters:
//   - candidate: Desired identifier
//   - current: Identifier of the object being renamed (never a collision with itself)
//   - exists: Reports whether an identifier is used by any object
//
// Returns:
//   - string: candidate, or candidate with the first free suffix starting at ".001"
//   - int: Number of taken identifiers skipped
//   - error: When all 999 suffixes are taken
func (c *Codec) Unique(candidate, current string, exists func(string) bool) (string, int, error) {
	if candidate == current || !exists(candidate) {
		return candidate, 0, nil
	}

	for n := 1; n <= maxSuffix; n++ {
		id := fmt.Sprintf("%s.%03d", candidate, n)
		if id == current || !exists(id) {
			return id, n, nil
		}
	}

	return "", maxSuffix, fmt.Errorf("no free identifier for %q", candidate)
}

// cutCameraPrefix splits "C_NN_rest" into NN and rest.
func cutCameraPrefix(id string) (string, string, bool) {
	if len(id) < 5 || !strings.HasPrefix(id, CameraPrefix) || id[4] != '_' {
		return "", "", false
	}
	if !isDigit(id[2]) || !isDigit(id[3]) {
		return "", "", false
	}

	return id[2:4], id[5:], true
}

func firstDigitRun(s string) string {
	start := -1
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return s[start:i]
		}
	}
	if start >= 0 {
		return s[start:]
	}

	return ""
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
