package main

import (
	"flag"
	"image"
	"testing"

	"github.com/Faultbox/decal-studio/internal/imaging"
	"github.com/Faultbox/decal-studio/pkg/math"
)

func TestParseRect(t *testing.T) {
	tests := []struct {
		in      string
		want    imaging.Rect
		wantErr bool
	}{
		{"10,20,30,40", imaging.Rect{X: 10, Y: 20, W: 30, H: 40}, false},
		{" 1.5, 2 ,3,4", imaging.Rect{X: 1.5, Y: 2, W: 3, H: 4}, false},
		{"1,2,3", imaging.Rect{}, true},
		{"1,2,0,4", imaging.Rect{}, true},
		{"a,2,3,4", imaging.Rect{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseRect(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRect(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseRect(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseVec3(t *testing.T) {
	got, err := parseVec3("0,1,-2.5")
	if err != nil {
		t.Fatalf("parseVec3 failed: %v", err)
	}
	if got != (math.Vec3{Y: 1, Z: -2.5}) {
		t.Errorf("expected (0,1,-2.5), got %v", got)
	}
}

func TestPointListFlag(t *testing.T) {
	var seeds pointList
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&seeds, "seed", "")

	if err := fs.Parse([]string{"-seed", "1,2", "-seed", "30,40"}); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(seeds) != 2 || seeds[0] != image.Pt(1, 2) || seeds[1] != image.Pt(30, 40) {
		t.Errorf("expected [1,2 30,40], got %v", seeds.String())
	}

	if err := seeds.Set("oops"); err == nil {
		t.Error("expected error for malformed seed")
	}
}

func TestDragListFlag(t *testing.T) {
	var drags dragList
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&drags, "drag", "")

	if err := fs.Parse([]string{"-drag", "10,10:6,4.5"}); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := cropDrag{From: imaging.Point{X: 10, Y: 10}, To: imaging.Point{X: 6, Y: 4.5}}
	if len(drags) != 1 || drags[0] != want {
		t.Errorf("expected %v, got %v", want, drags.String())
	}

	for _, bad := range []string{"10,10", "1,2:3", "a,b:1,2"} {
		if err := drags.Set(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
