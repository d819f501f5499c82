package ui

import (
	"fmt"
	"sync"
	"testing"

	"penguinlab/app"
	"penguinlab/domain/core"

	"github.com/stretchr/testify/assert"
)

func TestSessionStoreSnapshotIsolation(t *testing.T) {
	store := NewSessionStore()
	id := core.SessionID("browser-1")

	store.Update(id, func(s *SessionState) {
		s.Model = app.ModelParams{Response: "body_mass_g"}
		s.HasModel = true
	})

	snapshot := store.Get(id)
	snapshot.Model.Response = "bill_length_mm"
	snapshot.HasModel = false

	// Mutating the snapshot must not leak back into the store.
	assert.Equal(t, "body_mass_g", store.Get(id).Model.Response)
	assert.True(t, store.Get(id).HasModel)
}

func TestSessionStoreConcurrentReadersAndWriters(t *testing.T) {
	store := NewSessionStore()
	id := core.SessionID("browser-2")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Get(id).Model.Response
		}()
		go func(i int) {
			defer wg.Done()
			store.Update(id, func(s *SessionState) {
				s.Model.Response = fmt.Sprintf("var-%d", i)
				s.HasModel = true
			})
		}(i)
	}
	wg.Wait()

	assert.True(t, store.Get(id).HasModel)
}
