// Package model wires together the collaborators a decode needs: an
// fst.FST, a symboltable.Table, and decoder.Config, as named by a YAML
// manifest file. It is a narrow reimplementation of pocketkaldi's
// pk_load, scoped to the two paths this module actually owns (the FST
// and the symbol table); CMVN/acoustic-model paths are Non-goals and
// are not modeled here.
package model

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/latticebeam/beamdecoder/decoder"
	"github.com/latticebeam/beamdecoder/fst"
	"github.com/latticebeam/beamdecoder/symboltable"
)

// Manifest is the on-disk shape of a model directory's manifest.yaml.
type Manifest struct {
	FSTPath     string `mapstructure:"fst_path"`
	SymbolsPath string `mapstructure:"symbols_path"`
	ConfigPath  string `mapstructure:"config_path"`
}

// ReadManifest loads a manifest from path via viper.
func ReadManifest(path string) (Manifest, error) {
	var m Manifest
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return m, fmt.Errorf("model: reading manifest %s: %w", path, err)
	}
	if err := v.Unmarshal(&m); err != nil {
		return m, fmt.Errorf("model: parsing manifest %s: %w", path, err)
	}
	if m.FSTPath == "" {
		return m, fmt.Errorf("model: manifest %s: missing fst_path", path)
	}
	if m.SymbolsPath == "" {
		return m, fmt.Errorf("model: manifest %s: missing symbols_path", path)
	}
	return m, nil
}

// Bundle holds everything a caller needs to run decodes: the
// transducer, the symbol table for rendering output, a ready Decoder
// bound to the transducer, and the Config/Metrics used to build it.
//
// The embedded Decoder is convenient for single-shot callers (like
// cmd/decode) that run exactly one decode and exit. Callers that serve
// multiple concurrent decodes (like cmd/decode-server) must not share
// it across goroutines; use NewDecoder to build one per request
// instead, since a *decoder.Decoder is not safe for concurrent use.
type Bundle struct {
	FST     *fst.FST
	Symbols *symboltable.Table
	Decoder *decoder.Decoder
	Config  decoder.Config
	Metrics *decoder.Metrics
}

// NewDecoder builds a fresh Decoder bound to the same transducer,
// config, and metrics as the Bundle. Call this once per concurrent
// decode in progress.
func (b *Bundle) NewDecoder() *decoder.Decoder {
	return decoder.NewWithConfig(b.FST, b.Config, b.Metrics)
}

// Load reads the manifest at manifestPath and constructs a Bundle.
// metrics may be nil.
func Load(manifestPath string, metrics *decoder.Metrics) (*Bundle, error) {
	m, err := ReadManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	fstFile, err := os.Open(m.FSTPath)
	if err != nil {
		return nil, fmt.Errorf("model: opening fst %s: %w", m.FSTPath, err)
	}
	defer fstFile.Close()
	transducer, err := fst.ReadText(fstFile)
	if err != nil {
		return nil, fmt.Errorf("model: parsing fst %s: %w", m.FSTPath, err)
	}

	symbols, err := symboltable.Load(m.SymbolsPath)
	if err != nil {
		return nil, fmt.Errorf("model: loading symbols %s: %w", m.SymbolsPath, err)
	}

	cfg := decoder.DefaultConfig()
	if m.ConfigPath != "" {
		cfg, err = decoder.LoadConfig(m.ConfigPath)
		if err != nil {
			return nil, err
		}
	}

	return &Bundle{
		FST:     transducer,
		Symbols: symbols,
		Decoder: decoder.NewWithConfig(transducer, cfg, metrics),
		Config:  cfg,
		Metrics: metrics,
	}, nil
}
