package catalogsheet

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFetchProgress(t *testing.T) {
	assert.Equal(t, 0, FetchProgress(0, 20))
	assert.Equal(t, 2, FetchProgress(1, 20))
	assert.Equal(t, 20, FetchProgress(10, 20))
	assert.Equal(t, 40, FetchProgress(20, 20))
	assert.Equal(t, 13, FetchProgress(1, 3))
	assert.Equal(t, 40, FetchProgress(0, 0))
}

func TestRenderProgress(t *testing.T) {
	assert.Equal(t, 40, RenderProgress(0, 20))
	assert.Equal(t, 43, RenderProgress(1, 20))
	assert.Equal(t, 95, RenderProgress(20, 20))
	assert.Equal(t, 95, RenderProgress(0, 0))
}

func TestProgressReporter(t *testing.T) {
	t.Run("never goes backwards", func(t *testing.T) {
		var got []int
		r := NewProgressReporter(func(p int) { got = append(got, p) })
		for _, p := range []int{0, 10, 5, 10, 40, 120, -3} {
			r.Report(p)
		}
		assert.Equal(t, []int{0, 10, 10, 40, 100}, got)
		assert.Equal(t, 100, r.Last())
	})

	t.Run("nil callback", func(t *testing.T) {
		r := NewProgressReporter(nil)
		r.Report(50)
		var nilReporter *ProgressReporter
		nilReporter.Report(50)
	})

	t.Run("concurrent reports stay monotonic", func(t *testing.T) {
		var mu sync.Mutex
		var got []int
		r := NewProgressReporter(func(p int) {
			mu.Lock()
			got = append(got, p)
			mu.Unlock()
		})
		var wg sync.WaitGroup
		for i := 0; i <= 40; i++ {
			wg.Add(1)
			go func(p int) {
				defer wg.Done()
				r.Report(p)
			}(i)
		}
		wg.Wait()
		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, got[i], got[i-1])
		}
	})
}

func TestFilename(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	// 01:30 UTC on the 17th is still the 16th in Brasília
	at := time.Date(2026, 10, 17, 1, 30, 0, 0, time.UTC).In(loc)
	assert.Equal(t, "catalogo-2026-10-16.pdf", Filename(at))
	assert.Equal(t, "Atualizado: 16/10/2026", UpdatedLabel(at))
}

func TestDocument_Size(t *testing.T) {
	d := &Document{Content: []byte("%PDF-1.3")}
	assert.Equal(t, 8, d.Size())
}
