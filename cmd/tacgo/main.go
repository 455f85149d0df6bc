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

// Command tacgo drives the analysis core (ir/, dataflow/, constprop/, liveness/,
// callgraph/cha, pta, taint) against one of a handful of built-in demo programs, the way
// cmd/argot-cli drives the teacher's analyses against a loaded SSA program, dispatching
// subcommands from a table rather than a CLI framework.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"git.amazon.com/pkg/PTA-GoAnalyzer/config"
)

var (
	configPath = flag.String("config", "", "analysis options file (YAML); defaults used if empty")
	jsonOutput = flag.Bool("json", false, "print results as JSON instead of plain text")
)

type command func(cfg *config.Config) (any, error)

var commands = map[string]command{
	"cha":        runCHA,
	"pta":        runPointerAnalysis,
	"liveness":   runLiveness,
	"constprop":  runIntraConstProp,
	"inter":      runInterConstProp,
	"taint":      runTaint,
}

const usage = `tacgo: a constant propagation / dead-code / call-graph / pointer / taint analysis engine

Usage:
  tacgo [-config file.yaml] [-json] <command>

Commands:
  cha         build a CHA call graph over a virtual-dispatch demo program
  pta         run the context-insensitive pointer analysis over a points-to demo program
  liveness    run live-variable analysis and fused dead-code detection
  constprop   run intraprocedural constant propagation
  inter       run interprocedural, alias-aware constant propagation (ICFG)
  taint       run the taint overlay over a source-to-sink demo program

Use -help to display the flags.
`

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "tacgo: unknown command %q\n\n%s", args[0], usage)
		os.Exit(1)
	}

	cfg := config.NewDefault()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tacgo: %s\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	log := config.NewLogGroup(cfg)
	log.Infof("running %q", args[0])

	result, err := cmd(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tacgo: %s: %s\n", args[0], err)
		os.Exit(1)
	}

	if *jsonOutput {
		b, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "tacgo: could not marshal result: %s\n", err)
			os.Exit(1)
		}
		fmt.Println(string(b))
		return
	}
	fmt.Printf("%+v\n", result)
}
