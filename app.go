package main

import (
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/openrover/gridplan/planner"
)

// App encapsulates the application state and dependencies
type App struct {
	Config *planner.Config
	World  *planner.World
	Grid   *planner.OccupancyGrid

	Publisher  *planner.Publisher
	mqttClient mqtt.Client

	// CLI Flags (effectively dependencies)
	HttpPort int
	HttpMode bool
	MqttMode bool

	// Last planning run, for the HTTP surface
	mu        sync.RWMutex
	lastPlan  planner.Plan
	lastEdges [][2]planner.Point
}

// NewApp creates a new App instance
func NewApp(config *planner.Config) *App {
	return &App{Config: config}
}

// LoadMap loads the configured map image and derives the occupancy grid.
func (a *App) LoadMap() error {
	world, err := planner.LoadWorld(a.Config.Map)
	if err != nil {
		return fmt.Errorf("loading map: %w", err)
	}
	a.World = world
	a.Grid = planner.NewOccupancyGrid(world)
	log.Printf("Loaded map %s (%dx%d)", a.Config.Map, world.Width(), world.Height())
	return nil
}

// rng returns the random source for a planning run. Seed 0 means seed from
// the clock.
func (a *App) rng() *rand.Rand {
	if a.Config.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(a.Config.Seed))
}

// plan runs one planning attempt and records it for the HTTP endpoints.
func (a *App) plan(start, goal planner.Point, opts planner.Options, rng *rand.Rand) (planner.Plan, error) {
	pl := planner.New(a.Grid, rng)

	var edges [][2]planner.Point
	pl.OnExtend(func(from, to planner.Point) {
		edges = append(edges, [2]planner.Point{from, to})
	})

	plan, err := pl.Plan(start, goal, opts)
	if err != nil {
		return nil, err
	}

	if a.Config.Simplify > 0 {
		before := len(plan)
		plan = planner.SimplifyPlan(plan, a.Config.Simplify)
		if len(plan) < before {
			log.Printf("Simplified plan from %d to %d points (tolerance %g)", before, len(plan), a.Config.Simplify)
		}
	}

	a.mu.Lock()
	a.lastPlan = plan
	a.lastEdges = edges
	a.mu.Unlock()

	return plan, nil
}

// lastRun returns the most recent plan and explored tree edges.
func (a *App) lastRun() (planner.Plan, [][2]planner.Point) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastPlan, a.lastEdges
}

// RunPlan performs a single planning run and writes the configured output
func (a *App) RunPlan() {
	if err := a.LoadMap(); err != nil {
		log.Fatalf("Error: %v", err)
	}

	opts := a.Config.Options
	fmt.Printf("Planning (%d,%d) -> (%d,%d) (budget %d, steer %g, goal %g)\n",
		a.Config.Start.X, a.Config.Start.Y, a.Config.Goal.X, a.Config.Goal.Y,
		opts.MaxIterations, opts.SteerRadius, opts.GoalRadius)

	plan, err := a.plan(a.Config.Start, a.Config.Goal, opts, a.rng())
	if err != nil {
		log.Fatalf("Planning failed: %v", err)
	}

	_, edges := a.lastRun()
	if plan.Found() {
		fmt.Printf("Path found: %d points, length %.1f cells (%d tree edges explored)\n",
			len(plan), plan.Length(), len(edges))
	} else {
		fmt.Printf("No path found within %d iterations (%d tree edges explored)\n",
			opts.MaxIterations, len(edges))
	}

	if err := a.writeOutput(plan, edges); err != nil {
		log.Fatalf("Error writing output: %v", err)
	}

	if a.Config.MQTT.Broker != "" {
		a.initMQTT()
		if a.Publisher != nil {
			name := mapName(a.Config.Map)
			if err := a.Publisher.PublishPlan(name, a.Config.Start, a.Config.Goal, plan); err != nil {
				log.Printf("Warning: publishing plan: %v", err)
			} else {
				fmt.Printf("Published plan for %s\n", name)
			}
			a.mqttClient.Disconnect(250)
		}
	}

	fmt.Println("Done!")
}

// writeOutput renders the run in the configured format.
func (a *App) writeOutput(plan planner.Plan, edges [][2]planner.Point) error {
	format := a.Config.Format
	if format == "" {
		format = planner.FormatRaster
	}

	output := a.Config.Output
	if output == "" {
		output = defaultOutputName(format)
	}

	switch format {
	case planner.FormatRaster:
		r := planner.NewTreeRenderer(a.World)
		for _, e := range edges {
			r.RecordEdge(e[0], e[1])
		}
		r.SetPlan(plan)
		if err := r.SavePNG(output); err != nil {
			return err
		}

	case planner.FormatVector:
		r := planner.NewVectorRenderer(a.World.Width(), a.World.Height())
		for _, e := range edges {
			r.RecordEdge(e[0], e[1])
		}
		r.SetPlan(plan)

		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()

		if strings.EqualFold(filepath.Ext(output), ".png") {
			err = r.RenderToPNG(f)
		} else {
			err = r.RenderToSVG(f)
		}
		if err != nil {
			return err
		}

	case planner.FormatGeoJSON:
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()

		if err := planner.WriteGeoJSON(f, plan); err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	fmt.Printf("Created %s: %s\n", format, output)
	return nil
}

// RunService starts the HTTP and/or MQTT service
func (a *App) RunService() {
	fmt.Println("Starting gridplan service...")

	if err := a.LoadMap(); err != nil {
		log.Fatalf("Error: %v", err)
	}

	if a.MqttMode {
		a.initMQTT()
		if a.Publisher == nil {
			log.Fatal("MQTT broker not configured (set mqtt.broker in config.yaml)")
		}
		fmt.Println("MQTT plan publisher initialized")
	}

	if a.HttpMode {
		httpServer := newHTTPServer(a)
		go func() {
			addr := fmt.Sprintf("0.0.0.0:%d", a.HttpPort)
			log.Printf("[HTTP] Starting server on %s", addr)
			if err := http.ListenAndServe(addr, httpServer); err != nil {
				log.Fatalf("[HTTP] Server error: %v", err)
			}
		}()
	}

	fmt.Println("\nService Running")
	fmt.Println("===============")

	if a.MqttMode {
		prefix := a.Config.MQTT.PublishPrefix
		if prefix == "" {
			prefix = "gridplan"
		}
		fmt.Println("\nMQTT:")
		fmt.Printf("  Publishing plans to: %s/plans/{map}\n", prefix)
	}

	if a.HttpMode {
		fmt.Printf("\nHTTP endpoints (port %d):\n", a.HttpPort)
		fmt.Println("  GET  /health        - Health check")
		fmt.Println("  POST /plan          - Run the planner (JSON body)")
		fmt.Println("  GET  /map.png       - Occupancy map image")
		fmt.Println("  GET  /plan.png      - Last plan over the map")
		fmt.Println("  GET  /plan.svg      - Last plan as vector graphics")
		fmt.Println("  GET  /plan.geojson  - Last plan as GeoJSON")
	}

	fmt.Println("\nPress Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	fmt.Println("\nShutting down service...")
	if a.mqttClient != nil {
		a.mqttClient.Disconnect(250)
	}
	fmt.Println("Service stopped")
}

// initMQTT connects the broker from config and wires the publisher. A failed
// connection is logged, not fatal; planning still works without it.
func (a *App) initMQTT() {
	if a.Config.MQTT.Broker == "" {
		return
	}

	client, err := planner.ConnectMQTT(a.Config.MQTT)
	if err != nil {
		log.Printf("Warning: MQTT unavailable: %v", err)
		return
	}
	a.mqttClient = client
	a.Publisher = planner.NewPublisher(client, a.Config.MQTT.PublishPrefix)
	log.Printf("Connected to MQTT broker %s", a.Config.MQTT.Broker)
}

// mapName derives the publish key for a map from its file path.
func mapName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// defaultOutputName picks an output filename for a format.
func defaultOutputName(format string) string {
	switch format {
	case planner.FormatVector:
		return "plan.svg"
	case planner.FormatGeoJSON:
		return "plan.geojson"
	default:
		return "plan.png"
	}
}
