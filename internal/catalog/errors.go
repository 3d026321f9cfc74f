package catalog

import "errors"

var (
	// ErrEmptyCatalog indicates a catalog with no projects.
	ErrEmptyCatalog = errors.New("catalog is empty")
	// ErrDuplicateID indicates two projects share an ID.
	ErrDuplicateID = errors.New("duplicate project id")
	// ErrInvalidProject indicates a project missing its ID or title.
	ErrInvalidProject = errors.New("invalid project")
	// ErrInvalidType indicates a type outside the closed set.
	ErrInvalidType = errors.New("invalid project type")
	// ErrInvalidStatus indicates a status outside the closed set.
	ErrInvalidStatus = errors.New("invalid project status")
)
