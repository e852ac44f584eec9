package palette

import (
	"sync"
	"testing"
)

func TestColors(t *testing.T) {
	got := Colors()
	if len(got) != 10 {
		t.Fatalf("palette has %d colors, want 10", len(got))
	}
	seen := make(map[string]bool)
	for _, c := range got {
		if seen[c] {
			t.Errorf("duplicate color %q", c)
		}
		seen[c] = true
	}
	if got[0] != "Red" || got[9] != "Orange" {
		t.Errorf("palette order = %v", got)
	}

	got[0] = "Black"
	if Colors()[0] != "Red" {
		t.Error("Colors exposes the palette backing array")
	}
}

func TestContains(t *testing.T) {
	if !Contains("Peach") {
		t.Error("Contains(Peach) = false")
	}
	if Contains("peach") || Contains("") {
		t.Error("Contains matched a non-palette name")
	}
}

func TestPickConcurrent(t *testing.T) {
	const goroutines, picks = 8, 500

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[string]int)
	)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make(map[string]int)
			for j := 0; j < picks; j++ {
				local[Pick()]++
			}
			mu.Lock()
			defer mu.Unlock()
			for c, n := range local {
				seen[c] += n
			}
		}()
	}
	wg.Wait()

	for c := range seen {
		if !Contains(c) {
			t.Errorf("Pick returned %q, not in palette", c)
		}
	}
	// 4000 uniform draws over 10 colors miss one with negligible probability.
	if len(seen) != len(colors) {
		t.Errorf("saw %d distinct colors in %d picks, want %d", len(seen), goroutines*picks, len(colors))
	}
}
