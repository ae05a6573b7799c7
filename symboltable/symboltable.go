// Package symboltable provides the word<->id mapping used to render a
// decoder Hypothesis as text. It is an external collaborator per
// spec.md §1 (out of the decoder core's scope) but is needed by any
// caller that wants human-readable output.
package symboltable

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Epsilon is always symbol id 0, never assigned to a word.
const Epsilon int32 = 0

// Table is a bidirectional string<->int32 symbol mapping.
type Table struct {
	idToWord map[int32]string
	wordToID map[string]int32
}

// New returns an empty Table with only Epsilon registered as "<eps>".
func New() *Table {
	t := &Table{
		idToWord: map[int32]string{Epsilon: "<eps>"},
		wordToID: map[string]int32{"<eps>": Epsilon},
	}
	return t
}

// Load reads a symbol table text file in "word id" format (one symbol
// per line, same scanner-driven shape as dictionary.Dictionary.Load in
// the word-segmentation lineage this module grew out of).
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadText(f)
}

// ReadText parses the "word id" text format from r.
func ReadText(r io.Reader) (*Table, error) {
	t := New()
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		parts := strings.Fields(text)
		if len(parts) != 2 {
			return nil, fmt.Errorf("symboltable: line %d: expected \"word id\"", line)
		}
		id, err := strconv.ParseInt(parts[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("symboltable: line %d: %w", line, err)
		}
		t.Add(parts[0], int32(id))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// Add registers word under id, overwriting any existing mapping for
// either the word or the id.
func (t *Table) Add(word string, id int32) {
	t.idToWord[id] = word
	t.wordToID[word] = id
}

// Word returns the word registered for id, or "" if none.
func (t *Table) Word(id int32) string {
	return t.idToWord[id]
}

// ID returns the id registered for word and whether it was found.
func (t *Table) ID(word string) (int32, bool) {
	id, ok := t.wordToID[word]
	return id, ok
}

// Len returns the number of registered symbols, including epsilon.
func (t *Table) Len() int {
	return len(t.idToWord)
}

// Render converts a decoder Hypothesis's Words (reverse emission
// order, per decoder.Hypothesis's documented contract) into a
// space-joined string in natural emission order, resolving each id
// through the table. Unknown ids render as "<unk:ID>" rather than
// silently dropping, mirroring pocketkaldi's pk_process which always
// appends a rendered word per id.
func (t *Table) Render(wordsReverseOrder []int32) string {
	if len(wordsReverseOrder) == 0 {
		return ""
	}
	words := make([]string, len(wordsReverseOrder))
	n := len(wordsReverseOrder)
	for i, id := range wordsReverseOrder {
		words[n-1-i] = t.renderOne(id)
	}
	return strings.Join(words, " ")
}

func (t *Table) renderOne(id int32) string {
	if w, ok := t.idToWord[id]; ok {
		return w
	}
	return fmt.Sprintf("<unk:%d>", id)
}
