// Package assignment maintains the camera to light assignment cache.
//
// The cache is derived from light identifiers (see package namecodec) and is
// rebuilt from the scene by Load. Assign and AssignGlobal rewrite the light
// identifier first and then update the cache, so both always agree on the
// identifier a light is known by. Unassign only touches the cache; the
// identifier keeps its prefix until the next Load restores the assignment.
//
// Store is not safe for concurrent use. The Manager serializes every call.
package assignment
