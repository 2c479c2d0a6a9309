package region

import (
	"fmt"
	"sync"
	"testing"

	"github.com/aretw0/statewalk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dep(target, object string) *domain.SearchRegionOnObject {
	return &domain.SearchRegionOnObject{TargetStateName: target, TargetObjectName: object}
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewDependencyRegistry()
	obj := &domain.StateObject{Name: "field", OwnerState: "form"}
	r.Register(obj, dep("login", "logo"))

	deps := r.DependentsOf("login", "logo")
	require.Len(t, deps, 1)
	assert.Same(t, obj, deps[0].Object)
	assert.Equal(t, 1, r.Size())
}

func TestRegistry_NilAndIncompleteInputIgnored(t *testing.T) {
	r := NewDependencyRegistry()
	obj := &domain.StateObject{Name: "field"}

	r.Register(nil, dep("login", "logo"))
	r.Register(obj, nil)
	r.Register(obj, dep("", "logo"))
	r.Register(obj, dep("login", ""))

	assert.Equal(t, 0, r.Size())
}

func TestRegistry_DuplicatesPreserved(t *testing.T) {
	r := NewDependencyRegistry()
	obj := &domain.StateObject{Name: "field"}
	cfg := dep("login", "logo")

	r.Register(obj, cfg)
	r.Register(obj, cfg)

	assert.Len(t, r.DependentsOf("login", "logo"), 2)
	assert.Equal(t, 2, r.Size())
}

func TestRegistry_UnknownAnchor(t *testing.T) {
	r := NewDependencyRegistry()

	deps := r.DependentsOf("nowhere", "nothing")
	assert.NotNil(t, deps)
	assert.Empty(t, deps)

	assert.Empty(t, r.DependentsOf("", "logo"))
	assert.Empty(t, r.DependentsOf("login", ""))
}

func TestRegistry_LookupReturnsCopy(t *testing.T) {
	r := NewDependencyRegistry()
	r.Register(&domain.StateObject{Name: "a"}, dep("login", "logo"))

	deps := r.DependentsOf("login", "logo")
	deps[0] = DependentObject{}

	fresh := r.DependentsOf("login", "logo")
	require.Len(t, fresh, 1)
	assert.NotNil(t, fresh[0].Object)
}

func TestRegistry_Clear(t *testing.T) {
	r := NewDependencyRegistry()
	r.Register(&domain.StateObject{Name: "a"}, dep("login", "logo"))
	r.Clear()
	assert.Equal(t, 0, r.Size())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewDependencyRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				obj := &domain.StateObject{Name: fmt.Sprintf("obj-%d-%d", n, j)}
				r.Register(obj, dep("login", "logo"))
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.DependentsOf("login", "logo")
				r.Size()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 800, r.Size())
}
