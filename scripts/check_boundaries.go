package main

import (
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const moduleRoot = "ripclips"

type violation struct {
	File   string
	Line   int
	Import string
	Rule   string
}

// layerRule restricts what a bounded-context layer may import beyond the
// standard library.
type layerRule struct {
	name    string
	allowed func(modulePrefix string) []string
}

var layerRules = map[string]layerRule{
	"domain": {
		name: "domain",
		allowed: func(modulePrefix string) []string {
			return []string{modulePrefix + "/domain"}
		},
	},
	"ports": {
		name: "ports",
		allowed: func(modulePrefix string) []string {
			return []string{modulePrefix + "/domain"}
		},
	},
	"application": {
		name: "application",
		allowed: func(modulePrefix string) []string {
			return []string{
				modulePrefix + "/application",
				modulePrefix + "/domain",
				modulePrefix + "/ports",
				"go.opentelemetry.io/otel",
			}
		},
	},
}

func main() {
	violations := collectViolations("contexts")
	if len(violations) == 0 {
		fmt.Println("boundary checks passed")
		return
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].File != violations[j].File {
			return violations[i].File < violations[j].File
		}
		if violations[i].Line != violations[j].Line {
			return violations[i].Line < violations[j].Line
		}
		return violations[i].Import < violations[j].Import
	})

	fmt.Println("boundary violations found:")
	for _, v := range violations {
		fmt.Printf("- %s:%d imports %q (%s)\n", v.File, v.Line, v.Import, v.Rule)
	}
	os.Exit(1)
}

func collectViolations(root string) []violation {
	var violations []violation

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		normalized := filepath.ToSlash(path)
		parts := strings.Split(normalized, "/")
		if len(parts) < 4 || parts[0] != "contexts" {
			return nil
		}
		modulePrefix := fmt.Sprintf("%s/contexts/%s/%s", moduleRoot, parts[1], parts[2])
		violations = append(violations, checkFile(path, normalized, parts[3], modulePrefix)...)
		return nil
	})

	return violations
}

func checkFile(path string, normalizedPath string, layer string, modulePrefix string) []violation {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
	if err != nil {
		return []violation{{File: normalizedPath, Line: 1, Rule: "file must parse"}}
	}

	var violations []violation
	report := func(line int, importPath string, rule string) {
		violations = append(violations, violation{
			File:   normalizedPath,
			Line:   line,
			Import: importPath,
			Rule:   rule,
		})
	}

	rule, restricted := layerRules[layer]
	for _, imp := range file.Imports {
		importPath := strings.Trim(imp.Path.Value, "\"")
		line := fset.Position(imp.Pos()).Line

		if hasPrefix(importPath, moduleRoot+"/contexts") && !hasPrefix(importPath, modulePrefix) {
			report(line, importPath, "cross-module imports are forbidden")
		}
		if !restricted {
			continue
		}
		if strings.Contains(importPath, "/adapters/") {
			report(line, importPath, rule.name+" must not import adapters")
		}
		if hasPrefix(importPath, moduleRoot+"/internal") {
			report(line, importPath, rule.name+" must not import runtime infrastructure")
		}
		if !isStdlib(importPath) && !isAllowed(importPath, rule.allowed(modulePrefix)) {
			report(line, importPath, rule.name+" import is outside explicit allowlist")
		}
	}

	return violations
}

func hasPrefix(path string, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func isAllowed(importPath string, allowedPrefixes []string) bool {
	for _, p := range allowedPrefixes {
		if hasPrefix(importPath, p) {
			return true
		}
	}
	return false
}

func isStdlib(importPath string) bool {
	if hasPrefix(importPath, moduleRoot) {
		return false
	}
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}
