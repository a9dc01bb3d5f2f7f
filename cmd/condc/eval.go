package main

import (
	"flag"
	"fmt"
	"strings"

	buildcond "github.com/buildcond/buildcond-go"
	"github.com/buildcond/buildcond-go/eval"
	"github.com/buildcond/buildcond-go/project"
	"github.com/buildcond/buildcond-go/state"
)

func defineEvalCommand() {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	projectPath := fs.String("project", "", "Project file supplying properties and items")
	condition := fs.String("condition", "", "Condition expression to evaluate")
	props := fs.String("props", "", "Extra name=value property definitions, comma-separated")
	lenient := fs.Bool("lenient-internal-errors", false, "Continue best-effort on internal evaluator errors (triage only)")

	commands["eval"] = &Command{
		Name:        "eval",
		Description: "Evaluate a condition expression",
		FlagSet:     fs,
		Run: func() error {
			return runEval(*projectPath, *condition, *props, *lenient)
		},
	}
}

func runEval(projectPath, condition, props string, lenient bool) error {
	if condition == "" {
		return fmt.Errorf("-condition is required")
	}

	var options []eval.Option
	if lenient {
		options = append(options, eval.WithLenientInternalErrors())
	}
	evaluator := eval.NewEvaluator(options...)

	stateOptions, err := projectStateOptions(projectPath, evaluator)
	if err != nil {
		return err
	}
	for _, pair := range splitPairs(props) {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("malformed property definition %q, want name=value", pair)
		}
		stateOptions = append(stateOptions, state.WithProperty(name, value))
	}

	result, err := evaluator.Evaluate(condition, state.NewProjectState(stateOptions...), buildcond.Location{File: projectPath})
	if err != nil {
		return err
	}
	fmt.Println(result)
	return nil
}

// projectStateOptions evaluates the project (when given) and carries its
// effective properties and items into a fresh state.
func projectStateOptions(projectPath string, evaluator *eval.Evaluator) ([]state.ProjectOption, error) {
	if projectPath == "" {
		return nil, nil
	}

	proj, err := project.Load(projectPath)
	if err != nil {
		return nil, err
	}
	result, err := proj.Evaluate(projectPath, evaluator)
	if err != nil {
		return nil, err
	}

	options := []state.ProjectOption{state.WithProperties(result.Properties)}
	for itemType, items := range result.Items {
		options = append(options, state.WithItems(itemType, items...))
	}
	return options, nil
}

func splitPairs(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
