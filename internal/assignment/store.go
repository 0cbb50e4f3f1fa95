package assignment

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/arloliu/camlight/internal/namecodec"
	"github.com/arloliu/camlight/types"
	"github.com/zeebo/xxh3"
)

type lightSet map[string]struct{}

func (s lightSet) sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)

	return out
}

// Store is the derived camera -> lights cache.
type Store struct {
	codec   *namecodec.Codec
	logger  types.Logger
	metrics types.AssignmentMetrics

	cameras  []string            // camera ids seen by the last Load, scene order
	byCamera map[string]lightSet // camera-specific lights plus global lights
	global   lightSet
	loaded   bool // set by the first Load
}

// NewStore creates an empty store.
//
// Parameters:
//   - codec: Identifier codec
//   - logger: Logger for rename and load events
//   - metrics: Collector for load and rename metrics
//
// Returns:
//   - *Store: Empty store; call Load to populate it
func NewStore(codec *namecodec.Codec, logger types.Logger, metrics types.AssignmentMetrics) *Store {
	return &Store{
		codec:    codec,
		logger:   logger,
		metrics:  metrics,
		byCamera: make(map[string]lightSet),
		global:   make(lightSet),
	}
}

// Load rebuilds the cache from the identifiers in scene.
//
// Every camera gets the lights whose ordinal matches its own plus every
// global light. Cameras with no derivable ordinal use "00". Lights whose
// ordinal matches no camera are orphans and are left out. Load replaces the
// whole cache, so calling it twice gives the same result.
func (s *Store) Load(scene types.Scene) {
	start := time.Now()

	cameras := scene.Cameras()
	lights := scene.Lights()

	byOrdinal := make(map[string][]string, len(cameras))
	known := make(map[string]struct{}, len(cameras))
	byCamera := make(map[string]lightSet, len(cameras))

	for _, cam := range cameras {
		ord := s.codec.OrdinalOrDefault(cam)
		byOrdinal[ord] = append(byOrdinal[ord], cam)
		known[ord] = struct{}{}
		byCamera[cam] = make(lightSet)
	}

	global := make(lightSet)
	orphans := 0

	for _, id := range lights {
		label := s.codec.Classify(id, known)
		switch label.Kind {
		case namecodec.KindGlobal:
			global[id] = struct{}{}
		case namecodec.KindCamera:
			for _, cam := range byOrdinal[label.Ordinal] {
				byCamera[cam][id] = struct{}{}
			}
		default:
			if s.codec.Parse(id).Kind == namecodec.KindCamera {
				orphans++
			}
		}
	}

	for _, set := range byCamera {
		for id := range global {
			set[id] = struct{}{}
		}
	}

	s.cameras = slices.Clone(cameras)
	s.byCamera = byCamera
	s.global = global
	s.loaded = true

	s.metrics.RecordAssignmentLoad(len(cameras), len(lights), time.Since(start).Seconds())
	s.logger.Debug("assignments loaded",
		"cameras", len(cameras),
		"lights", len(lights),
		"global", len(global),
		"orphans", orphans,
	)
}

// Assign binds a light to a camera.
//
// The light identifier is rewritten to carry the camera ordinal (with a
// ".NNN" suffix on collision). The previous identifier is removed from every
// set and the new one is added to every known camera sharing the ordinal,
// which is what the next Load would produce. A store that was never loaded
// loads scene first, so the other lights of the camera are not lost.
//
// Returns:
//   - string: The light's identifier after the rename
//   - error: ErrCameraRequired, ErrLightNotFound, or a wrapped rename failure
func (s *Store) Assign(scene types.Scene, cameraID, lightID string) (string, error) {
	if cameraID == "" {
		return "", types.ErrCameraRequired
	}
	if _, ok := scene.Visibility(lightID); !ok {
		return "", fmt.Errorf("%w: %s", types.ErrLightNotFound, lightID)
	}
	s.ensureLoaded(scene)

	ord := s.codec.OrdinalOrDefault(cameraID)
	newID, err := s.Relabel(scene, lightID, namecodec.Camera(ord))
	if err != nil {
		return "", err
	}

	if _, ok := s.byCamera[cameraID]; !ok {
		s.cameras = append(s.cameras, cameraID)
		s.byCamera[cameraID] = s.withGlobal()
	}

	for _, cam := range s.cameras {
		if cam == cameraID || s.codec.OrdinalOrDefault(cam) == ord {
			s.byCamera[cam][newID] = struct{}{}
		}
	}

	return newID, nil
}

// AssignGlobal binds a light to every camera.
//
// Returns:
//   - string: The light's identifier after the rename
//   - error: ErrLightNotFound or a wrapped rename failure
func (s *Store) AssignGlobal(scene types.Scene, lightID string) (string, error) {
	if _, ok := scene.Visibility(lightID); !ok {
		return "", fmt.Errorf("%w: %s", types.ErrLightNotFound, lightID)
	}
	s.ensureLoaded(scene)

	newID, err := s.Relabel(scene, lightID, namecodec.Global())
	if err != nil {
		return "", err
	}

	s.global[newID] = struct{}{}
	for _, set := range s.byCamera {
		set[newID] = struct{}{}
	}

	return newID, nil
}

// Relabel rewrites a light identifier to carry label without assigning it.
//
// The old identifier is dropped from every set. Relabel is a no-op when the
// identifier already carries the label.
//
// Returns:
//   - string: The light's identifier after the rename
//   - error: Wrapped rename failure
func (s *Store) Relabel(scene types.Scene, lightID string, label namecodec.Label) (string, error) {
	candidate := s.codec.Rewrite(lightID, label)
	if candidate == lightID {
		return lightID, nil
	}

	newID, skipped, err := s.codec.Unique(candidate, lightID, scene.HasObject)
	if err != nil {
		return "", fmt.Errorf("failed to rename light %s: %w", lightID, err)
	}

	if err := scene.RenameObject(lightID, newID); err != nil {
		return "", fmt.Errorf("failed to rename light %s to %s: %w", lightID, newID, err)
	}

	s.forget(lightID)
	s.metrics.RecordLightRename(skipped)
	s.logger.Debug("light renamed", "from", lightID, "to", newID, "collisions", skipped)

	return newID, nil
}

// Unassign removes a light from one camera's cached set.
//
// The identifier is not rewritten, so a later Load restores the assignment.
// Global lights removed this way come back on the next Load as well.
// Removing the last light of a set makes the next AssignedLights reload,
// which brings the light straight back.
//
// Returns:
//   - bool: true if the light was in the set
func (s *Store) Unassign(cameraID, lightID string) bool {
	set, ok := s.byCamera[cameraID]
	if !ok {
		return false
	}
	if _, ok := set[lightID]; !ok {
		return false
	}
	delete(set, lightID)

	return true
}

// AssignedLights returns the sorted lights assigned to a camera.
//
// When the cached set is empty the store reloads from scene once before
// answering. A camera that genuinely has no lights costs one Load per call.
func (s *Store) AssignedLights(scene types.Scene, cameraID string) []string {
	if len(s.byCamera[cameraID]) == 0 && scene != nil {
		s.Load(scene)
	}

	return s.byCamera[cameraID].sorted()
}

// Contains reports whether the cached set of cameraID holds lightID.
func (s *Store) Contains(cameraID, lightID string) bool {
	_, ok := s.byCamera[cameraID][lightID]
	return ok
}

// Cameras returns the camera ids known to the cache.
func (s *Store) Cameras() []string {
	return slices.Clone(s.cameras)
}

// Global returns the sorted global lights.
func (s *Store) Global() []string {
	return s.global.sorted()
}

// Fingerprint returns a digest of the cache contents.
//
// Two stores holding the same table have the same fingerprint regardless of
// insertion order.
func (s *Store) Fingerprint() uint64 {
	cams := make([]string, 0, len(s.byCamera))
	for cam := range s.byCamera {
		cams = append(cams, cam)
	}
	slices.Sort(cams)

	var sb strings.Builder
	for _, cam := range cams {
		sb.WriteString(cam)
		sb.WriteByte(0)
		for _, id := range s.byCamera[cam].sorted() {
			sb.WriteString(id)
			sb.WriteByte(0)
		}
		sb.WriteByte(1)
	}
	for _, id := range s.global.sorted() {
		sb.WriteString(id)
		sb.WriteByte(0)
	}

	return xxh3.HashString(sb.String())
}

func (s *Store) ensureLoaded(scene types.Scene) {
	if !s.loaded {
		s.Load(scene)
	}
}

func (s *Store) withGlobal() lightSet {
	set := make(lightSet, len(s.global))
	for id := range s.global {
		set[id] = struct{}{}
	}

	return set
}

func (s *Store) forget(lightID string) {
	delete(s.global, lightID)
	for _, set := range s.byCamera {
		delete(set, lightID)
	}
}
