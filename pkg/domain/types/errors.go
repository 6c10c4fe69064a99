package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures at the boundary between the core and its
// external collaborators. HTTP status mapping is derived from these tags.
var (
	// ErrTagValidation marks errors caused by malformed caller input.
	ErrTagValidation = goerr.NewTag("validation")

	// ErrTagDependency marks errors from the vector store or the
	// generation engine. A single failed external call fails the request.
	ErrTagDependency = goerr.NewTag("dependency")

	// ErrTagFetch marks failures to retrieve the remote dataset.
	ErrTagFetch = goerr.NewTag("fetch")

	// ErrTagParse marks malformed dataset content.
	ErrTagParse = goerr.NewTag("parse")
)
