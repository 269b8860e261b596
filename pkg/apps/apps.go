// Package apps builds the candidate list offered to the picker.
// Applications come from a Provider; the Catalog keeps the visible ones
// keyed by display name, sorted by name.
package apps

import "sort"

// App е едно инсталирано приложение
type App struct {
	Name    string
	Visible bool
	Exec    string

	// ID is the desktop-file ID, empty for apps not backed by a file.
	ID string
}

// Provider lists all installed applications, visible or not.
type Provider interface {
	List() ([]App, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func() ([]App, error)

// List calls f.
func (f ProviderFunc) List() ([]App, error) {
	return f()
}

// Catalog is an immutable name → App mapping in ascending name order.
type Catalog struct {
	names []string
	apps  map[string]App
}

// NewCatalog keeps the visible apps with a display name. When two apps
// share a name the later one wins.
func NewCatalog(all []App) *Catalog {
	byName := make(map[string]App, len(all))
	for _, app := range all {
		if !app.Visible || app.Name == "" {
			continue
		}
		byName[app.Name] = app
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Catalog{names: names, apps: byName}
}

// Load builds a catalog from p.
func Load(p Provider) (*Catalog, error) {
	all, err := p.List()
	if err != nil {
		return nil, err
	}
	return NewCatalog(all), nil
}

// Names връща имената в реда, в който се показват
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Lookup намира приложение по display name
func (c *Catalog) Lookup(name string) (App, bool) {
	app, ok := c.apps[name]
	return app, ok
}
