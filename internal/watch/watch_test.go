package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestIsWAV(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"tape.wav", true},
		{"TAPE.WAV", true},
		{"tape.gtp", false},
		{"wav", false},
		{".tape.wav.123", false},
	}
	for _, tt := range tests {
		if got := IsWAV(tt.name); got != tt.want {
			t.Errorf("IsWAV(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWatcherConvertsNewWAVOnce(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	converted := map[string]int{}
	done := make(chan struct{}, 10)

	w := &Watcher{
		Dir:      dir,
		Debounce: 100 * time.Millisecond,
		Log:      zerolog.Nop(),
		Convert: func(path string) {
			mu.Lock()
			converted[filepath.Base(path)]++
			mu.Unlock()
			done <- struct{}{}
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "tape.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		f.Write([]byte("chunk"))
	}
	f.Close()
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for conversion")
	}
	// let any extra debounced call fire
	time.Sleep(300 * time.Millisecond)

	cancel()
	if err := <-errc; err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if converted["tape.wav"] != 1 {
		t.Errorf("tape.wav converted %d times, want 1", converted["tape.wav"])
	}
	if converted["notes.txt"] != 0 {
		t.Error("notes.txt was converted")
	}
}

func TestWatcherMissingDir(t *testing.T) {
	w := &Watcher{
		Dir:      filepath.Join(t.TempDir(), "nope"),
		Debounce: time.Millisecond,
		Convert:  func(string) {},
		Log:      zerolog.Nop(),
	}
	if err := w.Run(context.Background()); err == nil {
		t.Error("Run() expected error for missing directory")
	}
}
