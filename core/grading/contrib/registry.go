package contrib

import (
	"fmt"
	"sync"

	"github.com/vuthanhtrung2010/judge-server/core/grading"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]grading.ContribModule{
		"default": Default{},
		"cms":     CMS{},
		"testlib": Testlib{},
		"themis":  Themis{},
	}
)

// Lookup resolves a contrib module by name. An empty name means "default",
// matching the communication/bridged-checker handler's contrib_type default.
func Lookup(name string) (grading.ContribModule, error) {
	if name == "" {
		name = "default"
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	m, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("contrib: unknown contrib module %q", name)
	}
	return m, nil
}

// Register adds or overrides a contrib module under name.
func Register(name string, m grading.ContribModule) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = m
}
