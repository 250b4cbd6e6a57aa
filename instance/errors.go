package instance

import "errors"

var (
	// ErrEmpty is returned for a collection with no instances.
	ErrEmpty = errors.New("instance: empty collection")

	// ErrShapeMismatch is returned when two collections (or an instance and
	// its declared order) do not line up.
	ErrShapeMismatch = errors.New("instance: shape mismatch")

	// ErrGroupsRequired is returned when instances of different orders are
	// used without an explicit Groups descriptor.
	ErrGroupsRequired = errors.New("instance: groups descriptor required for instances of different order")

	// ErrBadGroups is returned for a malformed Groups descriptor.
	ErrBadGroups = errors.New("instance: malformed groups descriptor")

	// ErrNilInstance is returned when a nil matrix is passed as an instance.
	ErrNilInstance = errors.New("instance: nil instance matrix")
)
