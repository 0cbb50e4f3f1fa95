package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// Methods may be called from the host thread, the retry timer, or transport
// callbacks and must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	LifecycleMetrics
	VisibilityMetrics
	AssignmentMetrics
}

// LifecycleMetrics defines metrics for enable/disable handling.
type LifecycleMetrics interface {
	// RecordStateTransition records a manager state transition event.
	RecordStateTransition(from, to State)

	// RecordDeferredRetry records a scheduled initialization retry.
	//
	// Parameters:
	//   - attempt: 1-based retry attempt number
	RecordDeferredRetry(attempt int)

	// RecordHandlerFailure records a recovered failure inside a host callback.
	//
	// Parameters:
	//   - component: Component that failed ("detector", "hook", "retry")
	RecordHandlerFailure(component string)
}

// VisibilityMetrics defines metrics for visibility application.
type VisibilityMetrics interface {
	// RecordSceneEvent records a scene-change notification.
	//
	// Parameters:
	//   - applied: true if the event led to a visibility update, false if filtered
	RecordSceneEvent(applied bool)

	// RecordVisibilityApply records one visibility application.
	//
	// Parameters:
	//   - shown: Number of lights left visible
	//   - hidden: Number of lights hidden
	//   - duration: Time taken in seconds
	RecordVisibilityApply(shown, hidden int, duration float64)
}

// AssignmentMetrics defines metrics for the assignment cache.
type AssignmentMetrics interface {
	// RecordAssignmentLoad records a full rescan of light identifiers.
	//
	// Parameters:
	//   - cameras: Number of cameras scanned
	//   - lights: Number of lights scanned
	//   - duration: Time taken in seconds
	RecordAssignmentLoad(cameras, lights int, duration float64)

	// RecordLightRename records an identifier rewrite.
	//
	// Parameters:
	//   - collisions: Number of suffixes tried before a free identifier was found
	RecordLightRename(collisions int)
}
