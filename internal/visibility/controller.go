// Package visibility applies a camera's light assignment to the scene.
package visibility

import (
	"time"

	"github.com/arloliu/camlight/types"
)

// Assignments resolves the lights assigned to a camera.
type Assignments interface {
	// Contains reports whether lightID is assigned to cameraID.
	Contains(cameraID, lightID string) bool

	// AssignedLights returns the assigned lights, loading from scene when the cache is cold.
	AssignedLights(scene types.Scene, cameraID string) []string
}

// Result summarizes one Apply call.
type Result struct {
	Shown   int // lights left visible
	Hidden  int // lights hidden
	Changed int // lights whose flags were modified
}

// Backup maps light identifiers to their flags before the manager touched them.
type Backup map[string]types.Visibility

// Controller writes hide flags for every light in the scene.
type Controller struct {
	assignments Assignments
	logger      types.Logger
	metrics     types.VisibilityMetrics
}

// NewController creates a visibility controller.
//
// Parameters:
//   - assignments: Source of camera assignments
//   - logger: Logger for apply summaries
//   - metrics: Collector for apply metrics
//
// Returns:
//   - *Controller: Controller instance
func NewController(assignments Assignments, logger types.Logger, metrics types.VisibilityMetrics) *Controller {
	return &Controller{
		assignments: assignments,
		logger:      logger,
		metrics:     metrics,
	}
}

// Apply shows the lights assigned to cameraID and hides all others.
//
// Both flags of a light are always written together. An empty cameraID
// performs no update.
func (c *Controller) Apply(scene types.Scene, cameraID string) Result {
	var res Result
	if cameraID == "" {
		return res
	}

	start := time.Now()

	// Warms the cache once when it is cold.
	c.assignments.AssignedLights(scene, cameraID)

	for _, id := range scene.Lights() {
		want := types.Hidden(!c.assignments.Contains(cameraID, id))

		if cur, ok := scene.Visibility(id); ok && cur != want {
			if scene.SetVisibility(id, want) {
				res.Changed++
			}
		}

		if want.HiddenInViewport {
			res.Hidden++
		} else {
			res.Shown++
		}
	}

	c.metrics.RecordVisibilityApply(res.Shown, res.Hidden, time.Since(start).Seconds())
	c.logger.Debug("visibility applied",
		"camera", cameraID,
		"shown", res.Shown,
		"hidden", res.Hidden,
		"changed", res.Changed,
	)

	return res
}

// Snapshot captures the flags of every light.
func Snapshot(scene types.Scene) Backup {
	lights := scene.Lights()
	backup := make(Backup, len(lights))
	for _, id := range lights {
		if v, ok := scene.Visibility(id); ok {
			backup[id] = v
		}
	}

	return backup
}

// Restore writes the backed-up flags back.
//
// Lights no longer present are skipped.
//
// Returns:
//   - int: Number of lights restored
//   - int: Number of backup entries skipped
func Restore(scene types.Scene, backup Backup) (int, int) {
	restored, skipped := 0, 0
	for id, v := range backup {
		if scene.SetVisibility(id, v) {
			restored++
		} else {
			skipped++
		}
	}

	return restored, skipped
}

// Rename moves a backup entry to a new identifier.
func (b Backup) Rename(oldID, newID string) {
	if v, ok := b[oldID]; ok && oldID != newID {
		delete(b, oldID)
		b[newID] = v
	}
}
