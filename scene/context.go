package scene

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"

	compas "github.com/jf---/compas"
)

// Item is the contract a domain value must satisfy to be wrapped in a scene
// object: a display name and a stable identity for serialization references.
type Item interface {
	Name() string
	GUID() uuid.UUID
}

// Handle is a backend-opaque identifier for a drawn artifact, used to later
// release it.
type Handle string

// Drawer draws one item type in one backend context. Draw receives the
// scene object and returns the backend handles of the created artifacts.
type Drawer interface {
	Draw(o *SceneObject) ([]Handle, error)
}

// DrawerFactory creates the drawer for a new scene object wrapping item.
// The factory may reject items it cannot handle.
type DrawerFactory func(item Item) (Drawer, error)

// Backend is the per-context drawing backend surface consumed by the scene
// layer. Draw calls go through Drawers; Clear releases handles.
type Backend interface {
	Clear(guids []Handle) error
}

// registryKey identifies a (item type, context) registration.
type registryKey struct {
	itemType reflect.Type
	context  string
}

// The registry is populated by backend packages at startup and read-mostly
// afterwards.
var (
	registryMu sync.RWMutex
	drawers    = map[registryKey]DrawerFactory{}
	backends   = map[string]Backend{}
)

// RegisterBackend registers the drawing backend for a context. Backend
// packages call this once from their Register function before any scene
// object is constructed.
func RegisterBackend(context string, b Backend) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[context] = b
	compas.Logger().Info("scene: backend registered", "context", context)
}

// RegisterDrawer registers the drawer factory for an item type in a context.
// itemType may be a concrete type or an interface type; concrete
// registrations take precedence at lookup time.
func RegisterDrawer(itemType reflect.Type, context string, factory DrawerFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	drawers[registryKey{itemType, context}] = factory
}

// ClearRegistry removes all registrations. Intended for tests.
func ClearRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	drawers = map[registryKey]DrawerFactory{}
	backends = map[string]Backend{}
}

// Clear forwards a handle-release request to the backend registered for the
// context.
func Clear(context string, guids []Handle) error {
	registryMu.RLock()
	b, ok := backends[context]
	registryMu.RUnlock()
	if !ok {
		return fmt.Errorf("scene: no backend registered for context %q", context)
	}
	return b.Clear(guids)
}

// resolveContext returns the effective context: an explicit context is used
// as-is; an empty context resolves to the sole registered backend.
func resolveContext(context string) (string, error) {
	if context != "" {
		return context, nil
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	if len(backends) == 1 {
		for ctx := range backends {
			return ctx, nil
		}
	}
	return "", fmt.Errorf("scene: cannot infer context: %d backends registered", len(backends))
}

// drawerFactoryFor finds the most specific registered factory for an item in
// a context. An exact type match wins; otherwise registered interface types
// implemented by the item are considered, largest method set first, with
// lexicographic type-name order breaking ties.
func drawerFactoryFor(item Item, context string) (DrawerFactory, error) {
	itemType := reflect.TypeOf(item)

	registryMu.RLock()
	defer registryMu.RUnlock()

	if f, ok := drawers[registryKey{itemType, context}]; ok {
		return f, nil
	}

	var candidates []reflect.Type
	for key := range drawers {
		if key.context != context || key.itemType.Kind() != reflect.Interface {
			continue
		}
		if itemType.Implements(key.itemType) {
			candidates = append(candidates, key.itemType)
		}
	}
	if len(candidates) == 0 {
		return nil, &NotRegisteredError{ItemType: itemType, Context: context}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].NumMethod() != candidates[j].NumMethod() {
			return candidates[i].NumMethod() > candidates[j].NumMethod()
		}
		return candidates[i].String() < candidates[j].String()
	})
	return drawers[registryKey{candidates[0], context}], nil
}
