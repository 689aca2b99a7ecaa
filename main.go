package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/openrover/gridplan/planner"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	configFile  = flag.String("config", "config.yaml", "Path to configuration file")
	mapFile     = flag.String("map", "", "Path to map PNG (overrides config)")
	startFlag   = flag.String("start", "", "Start cell as x,y (overrides config)")
	goalFlag    = flag.String("goal", "", "Goal cell as x,y (overrides config)")
	iterations  = flag.Int("iterations", 0, "Iteration budget (overrides config)")
	steerRadius = flag.Float64("steer-radius", 0, "Steering radius in cells (overrides config)")
	goalRadius  = flag.Float64("goal-radius", 0, "Goal radius in cells (overrides config)")
	seed        = flag.Int64("seed", 0, "Random seed; 0 seeds from the clock")
	nearest     = flag.String("nearest", "", "Nearest-neighbor strategy: linear or rtree")
	outputFile  = flag.String("output", "", "Output file path")
	format      = flag.String("format", "", "Output format: raster, vector, or geojson")
	simplify    = flag.Float64("simplify", 0, "Simplification tolerance in cells (0 = off)")
	httpMode    = flag.Bool("http", false, "Run HTTP service mode")
	httpPort    = flag.Int("http-port", 8080, "HTTP server port (default 8080)")
	mqttMode    = flag.Bool("mqtt", false, "Publish plans over MQTT in service mode")
)

func main() {
	flag.Parse()
	fmt.Printf("gridplan version: %s\n", Version)

	config, err := loadEffectiveConfig()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	app := NewApp(config)
	app.HttpPort = *httpPort
	app.HttpMode = *httpMode
	app.MqttMode = *mqttMode

	if *httpMode || *mqttMode {
		app.RunService()
		return
	}

	app.RunPlan()
}

// loadEffectiveConfig loads config.yaml if present, applies flag overrides,
// and validates the merged result. Flags win over file values.
func loadEffectiveConfig() (*planner.Config, error) {
	config := &planner.Config{Options: planner.DefaultOptions()}

	if _, err := os.Stat(*configFile); err == nil {
		loaded, err := planner.LoadConfig(*configFile)
		if err != nil {
			return nil, err
		}
		config = loaded
		log.Printf("Loaded config from %s", *configFile)
	}

	if *mapFile != "" {
		config.Map = *mapFile
	}
	if *startFlag != "" {
		p, err := parsePoint(*startFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid -start: %w", err)
		}
		config.Start = p
	}
	if *goalFlag != "" {
		p, err := parsePoint(*goalFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid -goal: %w", err)
		}
		config.Goal = p
	}
	if *iterations > 0 {
		config.Options.MaxIterations = *iterations
	}
	if *steerRadius > 0 {
		config.Options.SteerRadius = *steerRadius
	}
	if *goalRadius > 0 {
		config.Options.GoalRadius = *goalRadius
	}
	if *seed != 0 {
		config.Seed = *seed
	}
	if *nearest != "" {
		config.Options.Nearest = *nearest
	}
	if *outputFile != "" {
		config.Output = *outputFile
	}
	if *format != "" {
		config.Format = *format
	}
	if *simplify > 0 {
		config.Simplify = *simplify
	}

	if err := planner.ValidateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// parsePoint parses a cell coordinate given as "x,y".
func parsePoint(s string) (planner.Point, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return planner.Point{}, fmt.Errorf("want x,y, got %q", s)
	}

	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return planner.Point{}, fmt.Errorf("x coordinate %q: %w", parts[0], err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return planner.Point{}, fmt.Errorf("y coordinate %q: %w", parts[1], err)
	}

	return planner.Point{X: x, Y: y}, nil
}
