package decoder_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/latticebeam/beamdecoder/decodable"
	"github.com/latticebeam/beamdecoder/decoder"
	"github.com/latticebeam/beamdecoder/fst"
)

// scenarioState accumulates the transducer, scores, and config a
// scenario builds up across Given steps, then the Hypothesis produced
// by the When step for the Then steps to assert against.
type scenarioState struct {
	states map[int]stateSpec
	arcs   []arcSpec
	scores map[int]map[int32]float64
	beam   float64

	decodeOK bool
	hyp      decoder.Hypothesis
}

type stateSpec struct {
	final  bool
	weight float64
}

type arcSpec struct {
	from, to       int
	ilabel, olabel int32
	weight         float64
}

func newScenarioState() *scenarioState {
	return &scenarioState{
		states: make(map[int]stateSpec),
		scores: make(map[int]map[int32]float64),
		beam:   decoder.DefaultConfig().Beam,
	}
}

func (s *scenarioState) givenStates(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		id, err := strconv.Atoi(row.Cells[0].Value)
		if err != nil {
			return err
		}
		final := strings.TrimSpace(row.Cells[1].Value) == "yes"
		weight := 0.0
		if w := strings.TrimSpace(row.Cells[2].Value); w != "" {
			weight, err = strconv.ParseFloat(w, 64)
			if err != nil {
				return err
			}
		}
		s.states[id] = stateSpec{final: final, weight: weight}
	}
	return nil
}

func (s *scenarioState) givenArcs(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		from, err := strconv.Atoi(row.Cells[0].Value)
		if err != nil {
			return err
		}
		to, err := strconv.Atoi(row.Cells[1].Value)
		if err != nil {
			return err
		}
		ilabel, err := strconv.ParseInt(row.Cells[2].Value, 10, 32)
		if err != nil {
			return err
		}
		olabel, err := strconv.ParseInt(row.Cells[3].Value, 10, 32)
		if err != nil {
			return err
		}
		weight, err := strconv.ParseFloat(row.Cells[4].Value, 64)
		if err != nil {
			return err
		}
		s.arcs = append(s.arcs, arcSpec{from: from, to: to, ilabel: int32(ilabel), olabel: int32(olabel), weight: weight})
	}
	return nil
}

func (s *scenarioState) givenScoreMatrix(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		frame, err := strconv.Atoi(row.Cells[0].Value)
		if err != nil {
			return err
		}
		label, err := strconv.ParseInt(row.Cells[1].Value, 10, 32)
		if err != nil {
			return err
		}
		loglik, err := strconv.ParseFloat(row.Cells[2].Value, 64)
		if err != nil {
			return err
		}
		if s.scores[frame] == nil {
			s.scores[frame] = make(map[int32]float64)
		}
		s.scores[frame][int32(label)] = loglik
	}
	return nil
}

func (s *scenarioState) givenBeamWidth(beam float64) error {
	s.beam = beam
	return nil
}

func (s *scenarioState) whenDecoded() error {
	b := fst.NewBuilder()
	maxState := -1
	for id := range s.states {
		if id > maxState {
			maxState = id
		}
	}
	ids := make([]int, maxState+1)
	for i := range ids {
		ids[i] = b.AddState()
	}
	b.SetStart(ids[0])
	for id, spec := range s.states {
		if spec.final {
			b.SetFinal(ids[id], spec.weight)
		}
	}
	for _, a := range s.arcs {
		b.AddArc(ids[a.from], a.ilabel, a.olabel, ids[a.to], a.weight)
	}
	transducer := b.Build()

	numFrames := 0
	for frame := range s.scores {
		if frame+1 > numFrames {
			numFrames = frame + 1
		}
	}
	matrix := make([][]float64, numFrames)
	for frame := 0; frame < numFrames; frame++ {
		row := s.scores[frame]
		maxLabel := int32(0)
		for label := range row {
			if label > maxLabel {
				maxLabel = label
			}
		}
		matrix[frame] = make([]float64, maxLabel+1)
		for label, loglik := range row {
			matrix[frame][label] = loglik
		}
	}

	cfg := decoder.DefaultConfig()
	cfg.Beam = s.beam
	d := decoder.NewWithConfig(transducer, cfg, nil)
	scorer := decodable.NewMatrixScorer(matrix)

	s.decodeOK = d.Decode(scorer)
	s.hyp = d.BestPath()
	return nil
}

func (s *scenarioState) thenDecodeSucceeds() error {
	if !s.decodeOK {
		return fmt.Errorf("expected decode to succeed, got false")
	}
	return nil
}

func (s *scenarioState) thenNoFiniteCostPath() error {
	if s.decodeOK {
		return fmt.Errorf("expected no surviving token, got decode=true")
	}
	if len(s.hyp.Words) != 0 || s.hyp.Weight != 0 {
		return fmt.Errorf("expected an empty hypothesis (no reachable final state), got %+v", s.hyp)
	}
	return nil
}

func (s *scenarioState) thenHypothesisTextIs(want string) error {
	got := renderReversed(s.hyp.Words)
	if got != want {
		return fmt.Errorf("hypothesis text: got %q, want %q", got, want)
	}
	return nil
}

func (s *scenarioState) thenHypothesisWeightIs(want float64) error {
	if s.hyp.Weight != want {
		return fmt.Errorf("hypothesis weight: got %v, want %v", s.hyp.Weight, want)
	}
	return nil
}

// renderReversed joins a decoder.Hypothesis.Words (which comes back in
// reverse emission order) into a space-separated string in emission
// order, the same reversal symboltable.Table.Render performs.
func renderReversed(words []int32) string {
	if len(words) == 0 {
		return ""
	}
	parts := make([]string, len(words))
	n := len(words)
	for i, w := range words {
		parts[n-1-i] = strconv.Itoa(int(w))
	}
	return strings.Join(parts, " ")
}

func InitializeScenario(sc *godog.ScenarioContext) {
	state := newScenarioState()

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		*state = *newScenarioState()
		return ctx, nil
	})

	sc.Step(`^a transducer with states:$`, state.givenStates)
	sc.Step(`^arcs:$`, state.givenArcs)
	sc.Step(`^a score matrix:$`, state.givenScoreMatrix)
	sc.Step(`^the beam width is ([0-9.]+)$`, state.givenBeamWidth)
	sc.Step(`^the utterance is decoded$`, state.whenDecoded)
	sc.Step(`^decode succeeds$`, state.thenDecodeSucceeds)
	sc.Step(`^decode reports no surviving token and no finite-cost path$`, state.thenNoFiniteCostPath)
	sc.Step(`^the hypothesis text is "([^"]*)"$`, state.thenHypothesisTextIs)
	sc.Step(`^the hypothesis weight is ([0-9.]+)$`, state.thenHypothesisWeightIs)
}

func TestFeatures(t *testing.T) {
	entries, err := os.ReadDir("features")
	if err != nil {
		t.Fatalf("failed to read features directory: %v", err)
	}

	format := os.Getenv("GODOG_FORMAT")
	if format == "" {
		format = "pretty"
	}

	found := false
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".feature") {
			continue
		}
		found = true
		featurePath := filepath.Join("features", e.Name())

		t.Run(e.Name(), func(t *testing.T) {
			suite := godog.TestSuite{
				ScenarioInitializer: InitializeScenario,
				Options: &godog.Options{
					Format:   format,
					Paths:    []string{featurePath},
					TestingT: t,
				},
			}
			if suite.Run() != 0 {
				t.Fatalf("non-zero status returned for %s", featurePath)
			}
		})
	}

	if !found {
		t.Fatalf("no .feature files found in features/")
	}
}
