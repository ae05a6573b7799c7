package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	cli "github.com/spf13/pflag"

	"github.com/latticebeam/beamdecoder/decodable"
	"github.com/latticebeam/beamdecoder/decoder"
	"github.com/latticebeam/beamdecoder/model"
)

// frameMessage is one JSON message a client streams per acoustic
// frame: a log-likelihood vector indexed by input label, or the
// closing {"last": true} with no scores. The transport is streaming;
// the decode underneath is still one-shot per connection (SPEC_FULL.md
// §11's streaming-front-door, non-streaming-decode distinction).
type frameMessage struct {
	Scores []float64 `json:"scores,omitempty"`
	Last   bool      `json:"last,omitempty"`
}

type hypothesisMessage struct {
	Text            string  `json:"text"`
	Weight          float64 `json:"weight"`
	Frames          int     `json:"frames"`
	AvgCostPerFrame float64 `json:"avg_cost_per_frame"`
	Error           string  `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type server struct {
	bundle  *model.Bundle
	metrics *decoder.Metrics
}

func main() {
	envFile := cli.StringP("env", "e", ".env", "env file path")
	addr := cli.StringP("addr", "a", ":8090", "listen address")
	manifestPath := cli.StringP("manifest", "m", "model/manifest.yaml", "path to the model manifest")
	cli.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		slog.Debug("no .env file loaded", "path", *envFile, "err", err)
	}

	reg := prometheus.NewRegistry()
	metrics := decoder.NewMetrics(reg)

	bundle, err := model.Load(*manifestPath, metrics)
	if err != nil {
		slog.Error("failed to load model", "err", err)
		os.Exit(1)
	}

	s := &server{bundle: bundle, metrics: metrics}

	mux := http.NewServeMux()
	mux.HandleFunc("/decode", s.handleDecode)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	slog.Info("decode server listening", "addr", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func (s *server) handleDecode(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

	var scores [][]float64
	for {
		var msg frameMessage
		if err := conn.ReadJSON(&msg); err != nil {
			slog.Error("websocket read failed", "err", err)
			return
		}
		if msg.Last {
			break
		}
		scores = append(scores, msg.Scores)
	}

	scorer := decodable.NewMatrixScorer(scores)
	d := s.bundle.NewDecoder()
	d.Decode(scorer)
	hyp := d.BestPath()
	frames := d.NumFramesDecoded()

	avgCost := 0.0
	if frames > 0 {
		avgCost = hyp.Weight / float64(frames)
	}

	resp := hypothesisMessage{
		Text:            s.bundle.Symbols.Render(hyp.Words),
		Weight:          hyp.Weight,
		Frames:          frames,
		AvgCostPerFrame: avgCost,
	}

	data, err := json.Marshal(resp)
	if err != nil {
		slog.Error("failed to marshal hypothesis", "err", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("websocket write failed", "err", err)
	}
}
