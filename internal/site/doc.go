// Package site models the configuration record handed to the documentation
// site generator: site metadata, head tags, theme navigation, the sidebar tree
// and the ordered plugin list.
//
// A Config is assembled once (see package loader), validated, and treated as
// read-only for the rest of the process. Sidebar groups come in two shapes,
// a list of child pages or a single page path, modelled as the sealed
// SidebarGroup interface with one concrete type per shape.
package site
