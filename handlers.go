package main

import (
	"encoding/json"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/openrover/gridplan/planner"
)

// planRequest is the POST /plan body. Omitted option fields fall back to the
// service configuration.
type planRequest struct {
	Start         planner.Point `json:"start"`
	Goal          planner.Point `json:"goal"`
	MaxIterations *int          `json:"maxIterations,omitempty"`
	SteerRadius   *float64      `json:"steerRadius,omitempty"`
	GoalRadius    *float64      `json:"goalRadius,omitempty"`
	Nearest       string        `json:"nearest,omitempty"`
}

// planResponse is the POST /plan reply.
type planResponse struct {
	Found       bool         `json:"found"`
	Plan        planner.Plan `json:"plan"`
	LengthCells float64      `json:"lengthCells"`
	EdgeCount   int          `json:"edgeCount"`
	DurationMS  int64        `json:"durationMs"`
}

// newHTTPServer creates an HTTP server with all endpoints
func newHTTPServer(app *App) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		status := struct {
			Status    string    `json:"status"`
			Timestamp time.Time `json:"timestamp"`
			Map       string    `json:"map"`
			Width     int       `json:"width"`
			Height    int       `json:"height"`
		}{
			Status:    "ok",
			Timestamp: time.Now(),
			Map:       app.Config.Map,
			Width:     app.Grid.Width(),
			Height:    app.Grid.Height(),
		}
		if err := json.NewEncoder(w).Encode(status); err != nil {
			log.Printf("Error encoding health status: %v", err)
		}
	})

	// Planning endpoint
	mux.HandleFunc("/plan", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST required", http.StatusMethodNotAllowed)
			return
		}

		var req planRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
			return
		}

		opts := app.Config.Options
		if req.MaxIterations != nil {
			opts.MaxIterations = *req.MaxIterations
		}
		if req.SteerRadius != nil {
			opts.SteerRadius = *req.SteerRadius
		}
		if req.GoalRadius != nil {
			opts.GoalRadius = *req.GoalRadius
		}
		if req.Nearest != "" {
			opts.Nearest = req.Nearest
		}

		began := time.Now()
		plan, err := app.plan(req.Start, req.Goal, opts, app.rng())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if app.Publisher != nil {
			name := mapName(app.Config.Map)
			if err := app.Publisher.PublishPlan(name, req.Start, req.Goal, plan); err != nil {
				log.Printf("Error publishing plan for %s: %v", name, err)
			}
		}

		_, edges := app.lastRun()
		resp := planResponse{
			Found:       plan.Found(),
			Plan:        plan,
			LengthCells: plan.Length(),
			EdgeCount:   len(edges),
			DurationMS:  time.Since(began).Milliseconds(),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Printf("Error encoding plan response: %v", err)
		}
	})

	// Raw occupancy map endpoint
	mux.HandleFunc("/map.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-cache")
		if err := png.Encode(w, app.World.Image()); err != nil {
			log.Printf("Error encoding map PNG: %v", err)
		}
	})

	// Last plan over the map, raster
	mux.HandleFunc("/plan.png", func(w http.ResponseWriter, r *http.Request) {
		plan, edges := app.lastRun()
		if plan == nil {
			http.Error(w, "No plan computed yet", http.StatusNotFound)
			return
		}

		renderer := planner.NewTreeRenderer(app.World)
		for _, e := range edges {
			renderer.RecordEdge(e[0], e[1])
		}
		renderer.SetPlan(plan)

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-cache")
		if err := png.Encode(w, renderer.Render()); err != nil {
			log.Printf("Error encoding plan PNG: %v", err)
		}
	})

	// Last plan as vector graphics
	mux.HandleFunc("/plan.svg", func(w http.ResponseWriter, r *http.Request) {
		plan, edges := app.lastRun()
		if plan == nil {
			http.Error(w, "No plan computed yet", http.StatusNotFound)
			return
		}

		renderer := planner.NewVectorRenderer(app.World.Width(), app.World.Height())
		for _, e := range edges {
			renderer.RecordEdge(e[0], e[1])
		}
		renderer.SetPlan(plan)

		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "no-cache")
		if err := renderer.RenderToSVG(w); err != nil {
			log.Printf("Error encoding plan SVG: %v", err)
		}
	})

	// Last plan as GeoJSON
	mux.HandleFunc("/plan.geojson", func(w http.ResponseWriter, r *http.Request) {
		plan, _ := app.lastRun()
		if plan == nil {
			http.Error(w, "No plan computed yet", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/geo+json")
		w.Header().Set("Cache-Control", "no-cache")
		if err := planner.WriteGeoJSON(w, plan); err != nil {
			log.Printf("Error encoding plan GeoJSON: %v", err)
		}
	})

	// Default route serves HTML page embedding the plan image
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = fmt.Fprint(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>gridplan</title>
<style>
*{margin:0;padding:0;box-sizing:border-box}
html,body{width:100%;height:100%;overflow:hidden;background:#1a1a1a}
img{display:block;width:100vw;height:100vh;object-fit:contain}
</style>
</head>
<body>
<img src="/plan.png" alt="Plan" onerror="this.src='/map.png'">
</body>
</html>`)
	})

	// Wrap mux with logging middleware
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[HTTP] %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
		mux.ServeHTTP(w, r)
	})
}
