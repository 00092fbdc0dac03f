//go:build mage

// Package main contains Mage build targets for deal-engine developer tooling.
// Implements: docs/ARCHITECTURE § Developer Tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// projectDirs are created by Init. ProcessDir creates them on demand as
// well, so Init is a convenience for fresh checkouts.
var projectDirs = []string{
	"documents",
	"reports",
}

// Init creates the working directories the pipeline reads and writes.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Printf("  %s\n", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "deal-engine"
	cmdPkg  = "./cmd/deal-engine"
)

// Build compiles the deal-engine binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	cmd := exec.Command("go", "build", "-o", out, cmdPkg)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("building %s: %w", binName, err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Stats prints line counts for production and test code and word counts
// for the documentation set.
func Stats() error {
	prod, test, err := countGoLines(".")
	if err != nil {
		return fmt.Errorf("counting source lines: %w", err)
	}
	words, err := countDocWords("docs")
	if err != nil {
		return fmt.Errorf("counting doc words: %w", err)
	}
	fmt.Printf("Production code: %d lines\n", prod)
	fmt.Printf("Test code:       %d lines\n", test)
	fmt.Printf("Documentation:   %d words\n", words)
	return nil
}

// countGoLines walks root and tallies non-blank lines in Go source,
// split into production and test code. Vendor-style directories with a
// leading underscore or dot are skipped.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(name, ".go") {
			return nil
		}
		n, countErr := countNonBlankLines(path)
		if countErr != nil {
			return countErr
		}
		if strings.HasSuffix(name, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}

func countNonBlankLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			n++
		}
	}
	return n, scanner.Err()
}

// countDocWords tallies whitespace-separated words across the Markdown
// files under dir. A missing docs directory counts as zero.
func countDocWords(dir string) (int, error) {
	words := 0
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}
		words += len(bytes.Fields(data))
		return nil
	})
	if os.IsNotExist(err) {
		return 0, nil
	}
	return words, err
}
