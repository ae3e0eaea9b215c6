package refreshrate

import "errors"

// Sentinel errors returned by the engine's fallible operations. All other
// operations are total and never error.
var (
	// ErrInvalidPolicy is returned when a Policy fails validation against
	// a catalog: its default mode is missing, its default mode's rate
	// falls outside its primary range, or its app range does not
	// contain its primary range.
	ErrInvalidPolicy = errors.New("refreshrate: invalid policy")

	// ErrUnknownModeID is returned by SetCurrentModeID when the given id
	// is not present in the catalog. State is left unchanged.
	ErrUnknownModeID = errors.New("refreshrate: unknown mode id")

	// ErrEmptyCatalog is returned by NewCatalog when constructed with no
	// modes. An engine cannot be built over an empty catalog.
	ErrEmptyCatalog = errors.New("refreshrate: empty catalog")

	// ErrDuplicateModeID is returned by NewCatalog when two modes share
	// the same id.
	ErrDuplicateModeID = errors.New("refreshrate: duplicate mode id")
)
