package processor

import (
	"fmt"
	"sync"
)

var (
	registryLock      sync.Mutex
	registeredPlugins []Registration
)

// Registration is a processor along with the name it was registered under.
// The name scopes log output and error messages.
type Registration struct {
	Name      string
	Processor Processor
}

// RegisterProcessor registers the given annotation processor. It panics if a
// processor with the same name is already registered.
func RegisterProcessor(name string, p Processor) {
	registryLock.Lock()
	defer registryLock.Unlock()
	for _, r := range registeredPlugins {
		if r.Name == name {
			panic(fmt.Sprintf("processor %q already registered", name))
		}
	}
	registeredPlugins = append(registeredPlugins, Registration{Name: name, Processor: p})
}

// AllRegisteredProcessors returns the list of all registered processors, in
// registration order.
func AllRegisteredProcessors() []Registration {
	registryLock.Lock()
	defer registryLock.Unlock()
	procs := make([]Registration, len(registeredPlugins))
	copy(procs, registeredPlugins)
	return procs
}

// LookupProcessors returns the registered processors with the given names, in
// the order given.
func LookupProcessors(names ...string) ([]Registration, error) {
	registryLock.Lock()
	defer registryLock.Unlock()
	procs := make([]Registration, 0, len(names))
	for _, n := range names {
		found := false
		for _, r := range registeredPlugins {
			if r.Name == n {
				procs = append(procs, r)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("no processor registered with name %q", n)
		}
	}
	return procs, nil
}
