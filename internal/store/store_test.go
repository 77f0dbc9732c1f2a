package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/prism/internal/domain/preference"
)

func TestNewNormalizesInitialSet(t *testing.T) {
	t.Parallel()

	initial := preference.Defaults()
	initial.AccentColor = "chartreuse"

	s := New(initial)
	assert.Equal(t, preference.AccentNeutral, s.Get().AccentColor)
}

func TestSetMergesAndNotifies(t *testing.T) {
	t.Parallel()

	s := New(preference.Defaults())

	var seen []preference.Set
	s.Subscribe(func(set preference.Set) { seen = append(seen, set) })

	changed := s.Set(preference.Patch{AccentColor: preference.Ptr(preference.AccentBlue)})
	require.True(t, changed)
	require.Len(t, seen, 1)
	assert.Equal(t, preference.AccentBlue, seen[0].AccentColor)
	assert.Equal(t, preference.AccentBlue, s.Get().AccentColor)
	assert.Equal(t, preference.PresetVega, s.Get().StylePreset)
}

func TestSetWithoutChangeDoesNotNotify(t *testing.T) {
	t.Parallel()

	s := New(preference.Defaults())
	calls := 0
	s.Subscribe(func(preference.Set) { calls++ })

	assert.False(t, s.Set(preference.Patch{StylePreset: preference.Ptr(preference.PresetVega)}))
	assert.False(t, s.Set(preference.Patch{}))
	assert.Zero(t, calls)
}

func TestSetCoercesInvalidTokensSilently(t *testing.T) {
	t.Parallel()

	var diags []preference.Diagnostic
	s := New(preference.Defaults(), WithDiagnostics(func(d preference.Diagnostic) { diags = append(diags, d) }))
	s.Set(preference.Patch{MenuAccent: preference.Ptr(preference.MenuAccentBold)})

	var patch preference.Patch
	patch.Put(preference.FieldMenuAccent, "neon")
	s.Set(patch)

	assert.Equal(t, preference.MenuAccentSubtle, s.Get().MenuAccent)
	require.Len(t, diags, 1)
	assert.Equal(t, preference.DiagnosticInvalidValue, diags[0].Kind)
}

func TestSubscribersCalledInRegistrationOrder(t *testing.T) {
	t.Parallel()

	s := New(preference.Defaults())
	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		s.Subscribe(func(preference.Set) { order = append(order, i) })
	}

	s.Set(preference.Patch{Hydrated: true})
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	t.Parallel()

	s := New(preference.Defaults())
	calls := 0
	unsubscribe := s.Subscribe(func(preference.Set) { calls++ })

	s.Set(preference.Patch{AccentColor: preference.Ptr(preference.AccentRose)})
	unsubscribe()
	unsubscribe()
	s.Set(preference.Patch{AccentColor: preference.Ptr(preference.AccentSky)})

	assert.Equal(t, 1, calls)
}

func TestHydratedNeverReverts(t *testing.T) {
	t.Parallel()

	s := New(preference.Defaults())
	s.Set(preference.Patch{Hydrated: true})
	s.Set(preference.Patch{Hydrated: false, AccentColor: preference.Ptr(preference.AccentLime)})
	assert.True(t, s.Get().Hydrated)
}

func TestConcurrentSetsAreSerialised(t *testing.T) {
	t.Parallel()

	s := New(preference.Defaults())

	var mu sync.Mutex
	notified := 0
	s.Subscribe(func(preference.Set) {
		mu.Lock()
		notified++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	accents := preference.AccentColors()
	for _, accent := range accents {
		wg.Add(1)
		go func(c preference.AccentColor) {
			defer wg.Done()
			s.Set(preference.Patch{AccentColor: preference.Ptr(c)})
		}(accent)
	}
	wg.Wait()

	assert.True(t, s.Get().AccentColor.Valid())
	assert.LessOrEqual(t, notified, len(accents))
	assert.Positive(t, notified)
}
