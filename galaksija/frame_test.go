package galaksija

import (
	"bytes"
	"errors"
	"testing"
)

func TestFrameAssembler(t *testing.T) {
	type obs struct {
		register byte
		complete bool
	}

	tests := []struct {
		name string
		obs  []obs
		tail byte
		want []byte
	}{
		{
			name: "bytes before sync are dropped",
			obs:  []obs{{0x12, true}, {0x34, true}, {SyncMarker, true}, {0x36, true}, {0x2c, true}},
			tail: 0x2c,
			want: []byte{SyncMarker, 0x36, 0x2c, 0x2c},
		},
		{
			name: "sync matches between byte boundaries",
			obs:  []obs{{0x4a, false}, {SyncMarker, false}, {0x01, false}, {0x02, true}},
			tail: 0x02,
			want: []byte{SyncMarker, 0x02, 0x02},
		},
		{
			name: "no filtering after sync",
			obs:  []obs{{SyncMarker, true}, {SyncMarker, true}, {0x00, false}, {0xff, true}},
			tail: 0x77,
			want: []byte{SyncMarker, SyncMarker, 0xff, 0x77},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFrameAssembler()
			for _, o := range tt.obs {
				f.Observe(o.register, o.complete)
			}
			got, err := f.Finish(tt.tail)
			if err != nil {
				t.Fatalf("Finish() error: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("buffer = % x, want % x", got, tt.want)
			}
		})
	}
}

func TestFrameAssemblerNoSync(t *testing.T) {
	f := NewFrameAssembler()
	for _, b := range []byte{0x00, 0x80, 0xc0, 0xff} {
		f.Observe(b, true)
	}
	if f.Synced() {
		t.Fatal("Synced() = true without sync byte")
	}
	if _, err := f.Finish(0xff); !errors.Is(err, ErrSyncNotFound) {
		t.Errorf("Finish() error = %v, want ErrSyncNotFound", err)
	}
}
