// Command div-by-zero-checker reports integer divisions whose divisor
// cannot be proven non-zero.
package main

import (
	"flag"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"

	"github.com/slyubomirsky/div-by-zero-checker/checker"
	"github.com/slyubomirsky/div-by-zero-checker/pkgutil"
)

var (
	dir        = flag.String("dir", ".", "directory of the module to check")
	configPath = flag.String("config", "", "path to a YAML config file")
	tests      = flag.Bool("tests", false, "also check test files")
	visualize  = flag.String("visualize", "", "directory receiving one annotated graph image per function")
	format     = flag.String("format", "svg", "image format for -visualize")
	watch      = flag.Bool("watch", false, "keep running, re-checking on source changes")
	noColor    = flag.Bool("no-color", false, "disable colored output")
)

func main() {
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("div-by-zero-checker: ")

	if *noColor {
		color.NoColor = true
	}

	conf, err := checker.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *tests {
		conf.IncludeTests = true
	}
	if *visualize != "" {
		conf.Visualize = *visualize
		conf.VisualizeFormat = *format
	}

	patterns := flag.Args()

	run := func() int {
		pkgs, err := pkgutil.LoadPackages(pkgutil.LoadConfig{
			Dir:          *dir,
			IncludeTests: conf.IncludeTests,
		}, patterns...)
		if err != nil {
			log.Printf("loading packages: %v", err)
			return 0
		}

		issues, err := checker.CheckPackages(pkgs, conf)
		if err != nil {
			log.Printf("checking: %v", err)
			return 0
		}
		checker.Print(os.Stdout, issues)
		return len(issues)
	}

	if *watch {
		watchLoop(*dir, run)
		return
	}

	if run() > 0 {
		os.Exit(1)
	}
}

// watchLoop re-runs the checker whenever a Go file under root
// changes, with a short debounce so editor save bursts trigger a
// single run.
func watchLoop(root string, run func() int) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatalf("starting watcher: %v", err)
	}
	defer watcher.Close()

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if name := d.Name(); path != root &&
			(strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
	if err != nil {
		log.Fatalf("watching %s: %v", root, err)
	}

	run()

	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Ext(ev.Name) == ".go" {
				debounce.Reset(200 * time.Millisecond)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch error: %v", err)
		case <-debounce.C:
			run()
		}
	}
}
