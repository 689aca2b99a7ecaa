package planner

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
)

// PlanLineString converts a plan to an orb LineString in cell coordinates.
func PlanLineString(plan Plan) orb.LineString {
	ls := make(orb.LineString, len(plan))
	for i, p := range plan {
		ls[i] = orb.Point{float64(p.X), float64(p.Y)}
	}
	return ls
}

// SimplifyPlan reduces a plan with Douglas-Peucker at the given tolerance.
// The endpoints are always retained. A tolerance of zero or a plan too short
// to simplify is returned unchanged.
func SimplifyPlan(plan Plan, tolerance float64) Plan {
	if tolerance <= 0 || len(plan) < 3 {
		return plan
	}

	ls := simplify.DouglasPeucker(tolerance).Simplify(PlanLineString(plan).Clone())
	result, ok := ls.(orb.LineString)
	if !ok {
		return plan
	}

	out := make(Plan, len(result))
	for i, p := range result {
		out[i] = Point{X: int(p[0]), Y: int(p[1])}
	}
	return out
}

// PlanFeatureCollection packages a plan as GeoJSON: a LineString feature for
// the path plus Point features for its endpoints. Coordinates are grid cells,
// not geographic degrees; length is planar, in cells.
func PlanFeatureCollection(plan Plan) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	line := geojson.NewFeature(PlanLineString(plan))
	line.Properties["kind"] = "plan"
	line.Properties["found"] = plan.Found()
	line.Properties["pointCount"] = len(plan)
	line.Properties["lengthCells"] = planar.Length(PlanLineString(plan))
	fc.Append(line)

	if len(plan) > 0 {
		start := geojson.NewFeature(orb.Point{float64(plan[0].X), float64(plan[0].Y)})
		start.Properties["kind"] = "start"
		fc.Append(start)
	}
	if plan.Found() {
		last := plan[len(plan)-1]
		goal := geojson.NewFeature(orb.Point{float64(last.X), float64(last.Y)})
		goal.Properties["kind"] = "goal"
		fc.Append(goal)
	}

	return fc
}

// WriteGeoJSON marshals the plan's feature collection to a writer.
func WriteGeoJSON(w io.Writer, plan Plan) error {
	data, err := PlanFeatureCollection(plan).MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshaling plan GeoJSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing plan GeoJSON: %w", err)
	}
	return nil
}
