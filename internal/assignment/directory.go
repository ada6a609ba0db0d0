// Package assignment resolves ticket routing from static module-to-person
// mappings loaded once at startup.
package assignment

import "sort"

// Unassigned is the sentinel owner for modules absent from the directory.
// Unmatched tickets must still be creatable and visible in reporting, so an
// unknown module is never an error.
const Unassigned = "Unassigned"

// Assignment is the routing result for a module.
type Assignment struct {
	SupportEngineer string
	Developer       string
	DeveloperEmail  string
}

// Directory maps module names to their support engineer and developer, and
// developers to their contact address. It is immutable after construction
// and safe for concurrent use without synchronization.
type Directory struct {
	supportByModule   map[string]string
	developerByModule map[string]string
	emailByDeveloper  map[string]string
}

// NewDirectory copies the provided mappings into an immutable directory.
func NewDirectory(supportByModule, developerByModule, emailByDeveloper map[string]string) *Directory {
	return &Directory{
		supportByModule:   copyMap(supportByModule),
		developerByModule: copyMap(developerByModule),
		emailByDeveloper:  copyMap(emailByDeveloper),
	}
}

// Resolve returns the configured owners for module, or the Unassigned
// sentinel when the module is unknown.
func (d *Directory) Resolve(module string) Assignment {
	support, ok := d.supportByModule[module]
	if !ok {
		support = Unassigned
	}
	developer, ok := d.developerByModule[module]
	if !ok {
		developer = Unassigned
	}
	return Assignment{
		SupportEngineer: support,
		Developer:       developer,
		DeveloperEmail:  d.emailByDeveloper[developer],
	}
}

// Modules returns the sorted list of modules known to the directory.
func (d *Directory) Modules() []string {
	return sortedKeys(d.supportByModule)
}

// Developers returns the sorted, de-duplicated list of developers.
func (d *Directory) Developers() []string {
	return sortedValues(d.developerByModule)
}

// SupportEngineers returns the sorted, de-duplicated list of support
// engineers.
func (d *Directory) SupportEngineers() []string {
	return sortedValues(d.supportByModule)
}

func copyMap(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedValues(m map[string]string) []string {
	seen := make(map[string]struct{}, len(m))
	values := make([]string, 0, len(m))
	for _, v := range m {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
