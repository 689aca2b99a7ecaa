package planner

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestPlanLineString(t *testing.T) {
	plan := Plan{{X: 0, Y: 0}, {X: 10, Y: 20}, {X: 30, Y: 5}}

	ls := PlanLineString(plan)
	if len(ls) != 3 {
		t.Fatalf("LineString length = %d, want 3", len(ls))
	}
	if ls[1][0] != 10 || ls[1][1] != 20 {
		t.Errorf("LineString[1] = %v, want [10 20]", ls[1])
	}
}

func TestSimplifyPlan(t *testing.T) {
	tests := []struct {
		name      string
		plan      Plan
		tolerance float64
		wantLen   int
	}{
		{
			name:      "collinear points collapse to endpoints",
			plan:      Plan{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}, {X: 15, Y: 0}},
			tolerance: 1,
			wantLen:   2,
		},
		{
			name:      "zero tolerance is a no-op",
			plan:      Plan{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}},
			tolerance: 0,
			wantLen:   3,
		},
		{
			name:      "sharp corner survives",
			plan:      Plan{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
			tolerance: 1,
			wantLen:   3,
		},
		{
			name:      "too short to simplify",
			plan:      Plan{{X: 0, Y: 0}, {X: 10, Y: 0}},
			tolerance: 1,
			wantLen:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimplifyPlan(tt.plan, tt.tolerance)
			if len(got) != tt.wantLen {
				t.Fatalf("SimplifyPlan() = %v (%d points), want %d points", got, len(got), tt.wantLen)
			}
			if got[0] != tt.plan[0] {
				t.Errorf("simplified plan start = %v, want %v", got[0], tt.plan[0])
			}
			if got[len(got)-1] != tt.plan[len(tt.plan)-1] {
				t.Errorf("simplified plan end = %v, want %v", got[len(got)-1], tt.plan[len(tt.plan)-1])
			}
		})
	}
}

func TestPlanFeatureCollection(t *testing.T) {
	plan := Plan{{X: 0, Y: 0}, {X: 3, Y: 4}}

	fc := PlanFeatureCollection(plan)
	if len(fc.Features) != 3 {
		t.Fatalf("feature count = %d, want 3 (line, start, goal)", len(fc.Features))
	}

	line := fc.Features[0]
	if line.Properties["kind"] != "plan" {
		t.Errorf("line kind = %v, want plan", line.Properties["kind"])
	}
	if found, _ := line.Properties["found"].(bool); !found {
		t.Error("line found property should be true")
	}
	if length, _ := line.Properties["lengthCells"].(float64); math.Abs(length-5) > 1e-9 {
		t.Errorf("lengthCells = %v, want 5", line.Properties["lengthCells"])
	}
}

func TestPlanFeatureCollection_NotFound(t *testing.T) {
	fc := PlanFeatureCollection(Plan{{X: 7, Y: 7}})

	// No goal marker for a plan that never reached one.
	if len(fc.Features) != 2 {
		t.Fatalf("feature count = %d, want 2 (line, start)", len(fc.Features))
	}
	if found, _ := fc.Features[0].Properties["found"].(bool); found {
		t.Error("line found property should be false")
	}
}

func TestWriteGeoJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGeoJSON(&buf, Plan{{X: 0, Y: 0}, {X: 10, Y: 10}}); err != nil {
		t.Fatalf("WriteGeoJSON() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "FeatureCollection") {
		t.Error("output should be a GeoJSON FeatureCollection")
	}
	if !strings.Contains(out, "LineString") {
		t.Error("output should contain the plan LineString")
	}
}
