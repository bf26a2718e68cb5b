package grid

import (
	"math"
	"testing"

	"github.com/matzehuels/padd/pkg/units"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestTracksLine(t *testing.T) {
	tracks := Tracks(100, Line{Gap: units.Px(8)}, AlignStart)
	if len(tracks) != 13 {
		t.Fatalf("len(Tracks) = %d, want 13", len(tracks))
	}
	for i, tr := range tracks {
		if tr.Width != 1 || !approx(tr.X, float64(i*8)) {
			t.Errorf("track %d = %+v, want X=%d Width=1", i, tr, i*8)
		}
	}
}

func TestTracksFractions(t *testing.T) {
	tracks := Tracks(432, Pattern{Columns: []string{"1fr", "2fr", "1fr"}, Gap: units.Px(16)}, AlignCenter)
	// 432 - 2*16 = 400 free, 100 per fr
	want := []Track{{0, 100}, {116, 200}, {332, 100}}
	if len(tracks) != len(want) {
		t.Fatalf("len(Tracks) = %d, want %d", len(tracks), len(want))
	}
	for i := range want {
		if !approx(tracks[i].X, want[i].X) || !approx(tracks[i].Width, want[i].Width) {
			t.Errorf("track %d = %+v, want %+v", i, tracks[i], want[i])
		}
	}
}

func TestTracksMixed(t *testing.T) {
	tracks := Tracks(1000, Pattern{Columns: []string{"100px", "1fr", "20%", "auto"}, Gap: units.Px(0)}, AlignStart)
	// fixed: 100 + 200 (20% of 1000); free 700 shared by 1fr and auto
	wantWidths := []float64{100, 350, 200, 350}
	for i, w := range wantWidths {
		if !approx(tracks[i].Width, w) {
			t.Errorf("track %d width = %v, want %v", i, tracks[i].Width, w)
		}
	}
	if last := tracks[len(tracks)-1]; !approx(last.Right(), 1000) {
		t.Errorf("last track right = %v, want 1000", last.Right())
	}
}

func TestTracksAlignment(t *testing.T) {
	cfg := Fixed{Columns: 2, ColumnWidth: units.Px(100), Gap: units.Px(0)}

	tests := []struct {
		align Align
		wantX float64
	}{
		{AlignStart, 0},
		{AlignCenter, 400},
		{AlignEnd, 800},
	}

	for _, tt := range tests {
		t.Run(string(tt.align), func(t *testing.T) {
			tracks := Tracks(1000, cfg, tt.align)
			if len(tracks) != 2 || !approx(tracks[0].X, tt.wantX) {
				t.Errorf("Tracks(%s)[0].X = %v, want %v", tt.align, tracks[0].X, tt.wantX)
			}
		})
	}
}

func TestTracksAuto(t *testing.T) {
	tracks := Tracks(1000, Auto{ColumnWidth: units.Px(100), Gap: units.Px(16)}, AlignStart)
	if len(tracks) != 8 {
		t.Fatalf("len(Tracks) = %d, want 8", len(tracks))
	}
	if !approx(tracks[1].X, 116) {
		t.Errorf("track 1 X = %v, want 116", tracks[1].X)
	}

	// Relative widths resolve against the container for drawing.
	rel := Tracks(1000, Auto{ColumnWidth: units.Of(25, units.Percent), Gap: units.Px(0)}, AlignStart)
	if len(rel) != 4 {
		t.Errorf("len(Tracks(25%%)) = %d, want 4", len(rel))
	}

	full := Tracks(1000, Auto{ColumnWidth: units.Auto}, AlignStart)
	if len(full) != 1 || full[0].Width != 1000 {
		t.Errorf("Tracks(auto) = %+v, want one full-width track", full)
	}
}

func TestTracksInvalid(t *testing.T) {
	if got := Tracks(0, Fixed{Columns: 3}, AlignStart); got != nil {
		t.Errorf("Tracks(width 0) = %+v, want nil", got)
	}
	if got := Tracks(100, Pattern{Columns: []string{"bogus"}}, AlignStart); got != nil {
		t.Errorf("Tracks(bad pattern) = %+v, want nil", got)
	}
}

func TestAlignOffset(t *testing.T) {
	if got := AlignCenter.Offset(100, 40); got != 30 {
		t.Errorf("Offset(center) = %v, want 30", got)
	}
	if got := AlignEnd.Offset(100, 140); got != 0 {
		t.Errorf("Offset(overflow) = %v, want 0", got)
	}
}
