package mining

import (
	errorutil "github.com/projectdiscovery/utils/errors"
)

// errTag namespaces every error this package constructs, matching how
// the example corpus tags its own wrapped errors (e.g. errorutil.NewWithTag
// scoped to a single component).
const errTag = "colocate-mining"

// InvalidInput is returned when the input PointSet or parameters violate
// the engine's preconditions: empty PointSet, non-finite coordinates,
// radius <= 0, or prevalence outside [0, 1]. Detected before any index
// construction begins.
func InvalidInput(format string, args ...interface{}) error {
	return errorutil.NewWithTag(errTag, format, args...)
}

// DuplicateInstance is returned when two input points share an id.
func DuplicateInstance(id int) error {
	return errorutil.NewWithTag(errTag, "duplicate instance id %d", id)
}

// ResourceExhaustion is returned when instance enumeration for a single
// candidate exceeds the configured instance cap. The engine never
// truncates silently; this is always surfaced to the caller.
func ResourceExhaustion(pattern Pattern, cap int) error {
	return errorutil.NewWithTag(errTag, "pattern %v exceeded instance cap of %d", pattern.Types, cap)
}

// Cancelled is returned when a mining run observes a cancelled context
// between candidates or between levels.
func Cancelled() error {
	return errorutil.NewWithTag(errTag, "mining run cancelled")
}
