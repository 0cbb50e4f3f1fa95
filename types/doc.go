// Package types provides core type definitions and interfaces for the camlight library.
//
// This package contains shared types that are used across multiple packages in the
// camlight library. By keeping these types in a separate package, we avoid import cycles
// between the main camlight package and its internal implementations.
//
// Key types:
//   - State: Manager lifecycle state
//   - Visibility: Viewport/render hide flags of a light
//   - AssignmentMode: How a newly created light is bound to cameras
//   - Host, Scene, SceneSubscriber: The host application integration surface
//   - Scheduler: Cancellable one-shot task scheduling
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
