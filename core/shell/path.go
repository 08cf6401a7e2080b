package shell

// PathList is the ordered set of directories consulted when resolving
// commands. The zero value is an empty registry.
type PathList struct {
	dirs []string
}

// NewPathList returns a registry seeded with the given directories.
func NewPathList(dirs ...string) *PathList {
	pl := &PathList{}
	pl.Replace(dirs)
	return pl
}

// Replace discards the current registry in favor of dirs. Replacing
// with nothing empties the registry, after which only builtins resolve.
// The slice is copied, later mutation by the caller changes nothing.
func (p *PathList) Replace(dirs []string) {
	p.dirs = append([]string(nil), dirs...)
}

// Dirs returns a copy of the directories in resolution order.
func (p *PathList) Dirs() []string {
	return append([]string(nil), p.dirs...)
}
