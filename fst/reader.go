package fst

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ReadText parses a line-oriented WFST text format:
//
//	start <state>
//	final <state> <weight>
//	arc <state> <next> <ilabel> <olabel> <weight>
//
// Blank lines and lines starting with '#' are ignored. Weight "inf"
// means unreachable/non-final and is accepted for symmetry with
// WriteText's output, though final lines are normally only emitted
// for finite weights.
func ReadText(r io.Reader) (*FST, error) {
	b := NewBuilder()
	ensure := func(state int) {
		for b.f.NumStates() <= state {
			b.AddState()
		}
	}

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		parts := strings.Fields(text)
		switch parts[0] {
		case "start":
			if len(parts) != 2 {
				return nil, fmt.Errorf("fst: line %d: malformed start", line)
			}
			state, err := strconv.Atoi(parts[1])
			if err != nil {
				return nil, fmt.Errorf("fst: line %d: %w", line, err)
			}
			ensure(state)
			b.SetStart(state)
		case "final":
			if len(parts) != 3 {
				return nil, fmt.Errorf("fst: line %d: malformed final", line)
			}
			state, err := strconv.Atoi(parts[1])
			if err != nil {
				return nil, fmt.Errorf("fst: line %d: %w", line, err)
			}
			weight, err := parseWeight(parts[2])
			if err != nil {
				return nil, fmt.Errorf("fst: line %d: %w", line, err)
			}
			ensure(state)
			b.SetFinal(state, weight)
		case "arc":
			if len(parts) != 6 {
				return nil, fmt.Errorf("fst: line %d: malformed arc", line)
			}
			from, err := strconv.Atoi(parts[1])
			if err != nil {
				return nil, fmt.Errorf("fst: line %d: %w", line, err)
			}
			to, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, fmt.Errorf("fst: line %d: %w", line, err)
			}
			ilabel, err := strconv.ParseInt(parts[3], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("fst: line %d: %w", line, err)
			}
			olabel, err := strconv.ParseInt(parts[4], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("fst: line %d: %w", line, err)
			}
			weight, err := parseWeight(parts[5])
			if err != nil {
				return nil, fmt.Errorf("fst: line %d: %w", line, err)
			}
			ensure(from)
			ensure(to)
			b.AddArc(from, int32(ilabel), int32(olabel), to, weight)
		default:
			return nil, fmt.Errorf("fst: line %d: unknown directive %q", line, parts[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

func parseWeight(s string) (float64, error) {
	if s == "inf" {
		return math.Inf(1), nil
	}
	return strconv.ParseFloat(s, 64)
}

// WriteText writes f in the format ReadText parses.
func WriteText(w io.Writer, f *FST) error {
	bw := bufio.NewWriter(w)
	if start, ok := f.StartState(); ok {
		if _, err := fmt.Fprintf(bw, "start %d\n", start); err != nil {
			return err
		}
	}
	for state := 0; state < f.NumStates(); state++ {
		if fw := f.FinalWeight(state); !math.IsInf(fw, 1) {
			if _, err := fmt.Fprintf(bw, "final %d %s\n", state, formatWeight(fw)); err != nil {
				return err
			}
		}
	}
	for state := 0; state < f.NumStates(); state++ {
		it := f.Arcs(state)
		for {
			a, ok := it.Next()
			if !ok {
				break
			}
			if _, err := fmt.Fprintf(bw, "arc %d %d %d %d %s\n",
				state, a.NextState, a.InputLabel, a.OutputLabel, formatWeight(a.Weight)); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func formatWeight(w float64) string {
	if math.IsInf(w, 1) {
		return "inf"
	}
	return strconv.FormatFloat(w, 'g', -1, 64)
}
