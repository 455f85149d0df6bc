// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package taint is the taint analysis overlay of spec 4.7 (C8): Source/TaintTransfer/Sink
// rules matched against resolved call sites, a Taint Flow Graph parallel to the pointer
// analysis's PFG, and the final TaintFlow report.
package taint

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Position encodes where a taint rule reads or writes a value at a call site: the receiver
// (Base), an argument index (>= 0), or the call's result (Result) — spec 4.7.
type Position int

const (
	Result Position = -2
	Base   Position = -1
)

// ArgPosition returns the Position naming argument i.
func ArgPosition(i int) Position { return Position(i) }

func (p Position) String() string {
	switch {
	case p == Result:
		return "RESULT"
	case p == Base:
		return "BASE"
	default:
		return fmt.Sprintf("%d", int(p))
	}
}

func parsePosition(s string) (Position, error) {
	switch s {
	case "RESULT":
		return Result, nil
	case "BASE":
		return Base, nil
	default:
		var i int
		if _, err := fmt.Sscanf(s, "%d", &i); err != nil || i < 0 {
			return 0, fmt.Errorf("invalid taint position %q", s)
		}
		return Position(i), nil
	}
}

// Source names a method whose call results are freshly tainted (spec 4.7). Method is the
// statically declared target, formatted as ir.MethodRef.String() ("DeclaringType::Subsignature").
type Source struct{ Method string }

// Sink names a method whose designated argument is checked for taint on completion.
type Sink struct {
	Method   string
	ArgIndex int
}

// Transfer names a method that moves taint between two positions of its own call site.
type Transfer struct {
	Method   string
	From, To Position
}

// Config is the runtime-ready TaintConfig contract of spec 6: GetSources/GetSinks/GetTransfers.
type Config struct {
	sources   []Source
	sinks     []Sink
	transfers []Transfer
}

// NewConfig builds a Config directly from already-parsed rules, for callers that assemble a
// taint policy programmatically rather than from a YAML file (e.g. a CLI demo, or a caller
// composing rules from several sources).
func NewConfig(sources []Source, sinks []Sink, transfers []Transfer) *Config {
	return &Config{sources: sources, sinks: sinks, transfers: transfers}
}

func (c *Config) GetSources() []Source     { return c.sources }
func (c *Config) GetSinks() []Sink         { return c.sinks }
func (c *Config) GetTransfers() []Transfer { return c.transfers }

// yamlConfig is the on-disk schema: positions are written as the strings "BASE", "RESULT", or a
// decimal argument index, matching spec 4.7's rule-kind vocabulary.
type yamlConfig struct {
	Sources []struct {
		Method string `yaml:"method"`
	} `yaml:"sources"`
	Sinks []struct {
		Method   string `yaml:"method"`
		ArgIndex int    `yaml:"arg-index"`
	} `yaml:"sinks"`
	Transfers []struct {
		Method string `yaml:"method"`
		From   string `yaml:"from"`
		To     string `yaml:"to"`
	} `yaml:"transfers"`
}

// LoadConfig reads a YAML taint-config file (spec 6: "loaded from a configuration file whose
// schema matches 4.7 rule kinds"). Malformed entries are reported as an error; the engine may
// choose to run with a partially-loaded config per spec 4.10's "malformed configuration is
// ignored silently at rule-match time" by skipping the offending rule instead of failing the
// whole load — LoadConfig itself only fails on unparseable YAML or unrecognized positions.
func LoadConfig(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read taint config: %w", err)
	}
	var raw yamlConfig
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("could not unmarshal taint config: %w", err)
	}

	cfg := &Config{}
	for _, s := range raw.Sources {
		cfg.sources = append(cfg.sources, Source{Method: s.Method})
	}
	for _, s := range raw.Sinks {
		cfg.sinks = append(cfg.sinks, Sink{Method: s.Method, ArgIndex: s.ArgIndex})
	}
	for _, t := range raw.Transfers {
		from, err := parsePosition(t.From)
		if err != nil {
			return nil, fmt.Errorf("transfer rule for %s: %w", t.Method, err)
		}
		to, err := parsePosition(t.To)
		if err != nil {
			return nil, fmt.Errorf("transfer rule for %s: %w", t.Method, err)
		}
		cfg.transfers = append(cfg.transfers, Transfer{Method: t.Method, From: from, To: to})
	}
	return cfg, nil
}
