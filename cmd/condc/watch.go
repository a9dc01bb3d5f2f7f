package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	buildcond "github.com/buildcond/buildcond-go"
	"github.com/buildcond/buildcond-go/eval"
	"github.com/buildcond/buildcond-go/project"
)

func defineWatchCommand() {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	projectPath := fs.String("project", "", "Project file to watch and re-evaluate")

	commands["watch"] = &Command{
		Name:        "watch",
		Description: "Re-evaluate a project's conditions whenever its file changes",
		FlagSet:     fs,
		Run: func() error {
			return runWatch(*projectPath)
		},
	}
}

// runWatch re-runs the whole project evaluation on every change. Each run is
// an independent evaluation pass; the conditioned-properties table is shared
// across passes so observations accumulate monotonically.
func runWatch(projectPath string) error {
	if projectPath == "" {
		return fmt.Errorf("-project is required")
	}

	evaluator := eval.NewEvaluator()
	table := buildcond.NewConditionedProperties()

	if err := evaluatePass(projectPath, evaluator, table); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory rather than the file: editors that replace the
	// file on save would otherwise drop the watch.
	if err := watcher.Add(filepath.Dir(projectPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", projectPath, err)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	target := filepath.Clean(projectPath)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := evaluatePass(projectPath, evaluator, table); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)
		case <-interrupt:
			return nil
		}
	}
}

func evaluatePass(projectPath string, evaluator *eval.Evaluator, table *buildcond.ConditionedProperties) error {
	proj, err := project.Load(projectPath)
	if err != nil {
		return err
	}
	result, err := proj.EvaluateWithConditioned(projectPath, evaluator, table)
	if err != nil {
		return err
	}

	fmt.Printf("targets: %s\n", strings.Join(result.Targets, ", "))
	for _, name := range table.Names() {
		fmt.Printf("  %s = {%s}\n", name, strings.Join(table.Values(name), ", "))
	}
	return nil
}
