package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/latticebeam/beamdecoder/decodable"
	"github.com/latticebeam/beamdecoder/model"
)

// result is the CLI's own output shape. AvgCostPerFrame lives here,
// not on decoder.Hypothesis, per SPEC_FULL.md §12.5 — it is a
// presentation-layer number, not part of the decoder's core contract.
type result struct {
	Text            string  `json:"text"`
	Weight          float64 `json:"weight"`
	Frames          int     `json:"frames"`
	AvgCostPerFrame float64 `json:"avg_cost_per_frame"`
}

func main() {
	var manifestPath, scoresPath, outFormat string

	rootCmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode a precomputed log-likelihood matrix against a WFST",
		Long: `decode runs one Viterbi beam search over the WFST and symbol
table named by a manifest file, scoring the search against a
precomputed frame x label log-likelihood matrix read from a JSON file.

Example:
  decode --manifest model/manifest.yaml --scores utt001.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(manifestPath, scoresPath, outFormat)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&manifestPath, "manifest", "m", "model/manifest.yaml", "path to the model manifest (fst_path/symbols_path/config_path)")
	flags.StringVarP(&scoresPath, "scores", "s", "", "path to a JSON file holding a frame x label log-likelihood matrix")
	flags.StringVarP(&outFormat, "format", "f", "text", "output format: text or json")
	_ = rootCmd.MarkFlagRequired("scores")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runDecode(manifestPath, scoresPath, outFormat string) error {
	logger := slog.Default()

	bundle, err := model.Load(manifestPath, nil)
	if err != nil {
		return fmt.Errorf("decode: loading model: %w", err)
	}

	scores, err := readScores(scoresPath)
	if err != nil {
		return fmt.Errorf("decode: reading scores: %w", err)
	}
	scorer := decodable.NewMatrixScorer(scores)

	ok := bundle.Decoder.Decode(scorer)
	hyp := bundle.Decoder.BestPath()
	frames := bundle.Decoder.NumFramesDecoded()

	logger.Info("decode finished", "ok", ok, "frames", frames, "weight", hyp.Weight)

	avgCost := 0.0
	if frames > 0 {
		avgCost = hyp.Weight / float64(frames)
	}

	res := result{
		Text:            bundle.Symbols.Render(hyp.Words),
		Weight:          hyp.Weight,
		Frames:          frames,
		AvgCostPerFrame: avgCost,
	}

	switch outFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	default:
		fmt.Printf("text:  %s\n", res.Text)
		fmt.Printf("weight: %g\n", res.Weight)
		fmt.Printf("frames: %d\n", res.Frames)
		fmt.Printf("avg_cost_per_frame: %g\n", res.AvgCostPerFrame)
		return nil
	}
}

// readScores loads a frame x label log-likelihood matrix from a JSON
// file shaped as [][]float64.
func readScores(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var scores [][]float64
	if err := json.NewDecoder(f).Decode(&scores); err != nil {
		return nil, err
	}
	return scores, nil
}
