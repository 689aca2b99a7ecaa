package planner

import "math"

// Point is a grid cell coordinate. X indexes columns, Y indexes rows; the row
// axis grows downward as in image coordinates. Two Points with the same
// coordinates are the same value regardless of how they were produced, which
// is what tree set-membership relies on.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := float64(other.X - p.X)
	dy := float64(other.Y - p.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Plan is an ordered sequence of points from start to goal. A plan of length
// one (just the start) means no path was found within the iteration budget;
// that is a reportable outcome, not an error.
type Plan []Point

// Found reports whether the plan actually reaches a goal, i.e. whether it
// contains more than the bare start point.
func (pl Plan) Found() bool {
	return len(pl) > 1
}

// Length returns the summed Euclidean length of the plan's segments in cells.
func (pl Plan) Length() float64 {
	var total float64
	for i := 0; i < len(pl)-1; i++ {
		total += pl[i].Distance(pl[i+1])
	}
	return total
}

// Nearest-neighbor strategies accepted by Options.Nearest.
const (
	NearestLinear = "linear"
	NearestRTree  = "rtree"
)

// Options bounds a single planning run. MaxIterations is the sole termination
// mechanism besides reaching the goal; there is no timeout.
type Options struct {
	MaxIterations int     `yaml:"maxIterations" json:"maxIterations"`
	SteerRadius   float64 `yaml:"steerRadius" json:"steerRadius"`
	GoalRadius    float64 `yaml:"goalRadius" json:"goalRadius"`
	Nearest       string  `yaml:"nearest,omitempty" json:"nearest,omitempty"`
}

// DefaultOptions returns the budgets used by the CLI when nothing else is
// configured.
func DefaultOptions() Options {
	return Options{
		MaxIterations: 1000,
		SteerRadius:   30,
		GoalRadius:    50,
		Nearest:       NearestLinear,
	}
}

// Config is the YAML run configuration for the CLI and service modes.
type Config struct {
	Map     string  `yaml:"map" json:"map"`
	Start   Point   `yaml:"start" json:"start"`
	Goal    Point   `yaml:"goal" json:"goal"`
	Options Options `yaml:",inline" json:"options"`
	Seed    int64   `yaml:"seed,omitempty" json:"seed,omitempty"`

	Output   string  `yaml:"output,omitempty" json:"output,omitempty"`
	Format   string  `yaml:"format,omitempty" json:"format,omitempty"` // raster, vector, geojson
	Simplify float64 `yaml:"simplify,omitempty" json:"simplify,omitempty"`

	MQTT MQTTConfig `yaml:"mqtt,omitempty" json:"mqtt,omitempty"`
}

// MQTTConfig holds broker settings for publishing plan results.
type MQTTConfig struct {
	Broker        string `yaml:"broker,omitempty" json:"broker,omitempty"`
	PublishPrefix string `yaml:"publishPrefix,omitempty" json:"publishPrefix,omitempty"`
	ClientID      string `yaml:"clientId,omitempty" json:"clientId,omitempty"`
	Username      string `yaml:"username,omitempty" json:"username,omitempty"`
	Password      string `yaml:"password,omitempty" json:"password,omitempty"`
}

// Output formats accepted by Config.Format.
const (
	FormatRaster  = "raster"
	FormatVector  = "vector"
	FormatGeoJSON = "geojson"
)
