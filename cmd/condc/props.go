package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/buildcond/buildcond-go/eval"
	"github.com/buildcond/buildcond-go/project"
)

// PropertyReport is one conditioned property and the literal values it was
// compared against, as exposed to -filter expressions and JSON output.
type PropertyReport struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
	Count  int      `json:"count"`
}

func definePropsCommand() {
	fs := flag.NewFlagSet("props", flag.ExitOnError)
	projectPath := fs.String("project", "", "Project file to evaluate")
	filter := fs.String("filter", "", "Boolean expression over {Name, Values, Count} selecting entries")
	asJSON := fs.Bool("json", false, "Emit the report as JSON")

	commands["props"] = &Command{
		Name:        "props",
		Description: "Report conditioned properties observed while evaluating a project",
		FlagSet:     fs,
		Run: func() error {
			return runProps(*projectPath, *filter, *asJSON)
		},
	}
}

func runProps(projectPath, filter string, asJSON bool) error {
	if projectPath == "" {
		return fmt.Errorf("-project is required")
	}

	proj, err := project.Load(projectPath)
	if err != nil {
		return err
	}
	result, err := proj.Evaluate(projectPath, eval.NewEvaluator())
	if err != nil {
		return err
	}

	reports := make([]PropertyReport, 0, result.Conditioned.Len())
	for _, name := range result.Conditioned.Names() {
		values := result.Conditioned.Values(name)
		reports = append(reports, PropertyReport{Name: name, Values: values, Count: len(values)})
	}

	if filter != "" {
		program, err := expr.Compile(filter, expr.Env(PropertyReport{}), expr.AsBool())
		if err != nil {
			return fmt.Errorf("failed to compile filter: %w", err)
		}
		kept := reports[:0]
		for _, report := range reports {
			out, err := expr.Run(program, report)
			if err != nil {
				return fmt.Errorf("failed to run filter: %w", err)
			}
			if out.(bool) {
				kept = append(kept, report)
			}
		}
		reports = kept
	}

	if asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(reports)
	}
	for _, report := range reports {
		fmt.Printf("%s = {%s}\n", report.Name, strings.Join(report.Values, ", "))
	}
	return nil
}
