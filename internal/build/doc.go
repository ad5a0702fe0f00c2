// Package build runs the generation pipeline: load the site definition and
// manifest, validate, optionally check pages, and write the configuration file.
// The CLI generate command and the watch loop both route through Service.
package build
