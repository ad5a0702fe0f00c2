// Package errors provides the classified error primitives used across sitecfg.
//
// Every failure that reaches the operator carries a category (config,
// validation, manifest, git, filesystem, ...), a severity and a small context
// map. The CLI adapter turns the category into a process exit code so scripts
// can tell a broken site definition from an unreadable output directory.
//
// Example usage:
//
//	err := errors.ManifestError("manifest is missing description").
//		WithContext("path", manifestPath).
//		Build()
package errors
