// Package pybuilder extracts declared dependencies from PyBuilder build.py
// scripts. Scripts are parsed into a Python syntax tree and pattern-matched;
// they are never executed, so untrusted build scripts are safe to inspect.
package pybuilder

import (
	"os"
	"strings"

	"github.com/go-python/gpython/ast"
	"github.com/go-python/gpython/parser"
	"github.com/go-python/gpython/py"

	"github.com/voidpetal/python-inspector/internal/core"
)

// callScopes maps the recognized declaration methods to dependency scopes.
var callScopes = map[string]core.Scope{
	"depends_on":       core.Install,
	"build_depends_on": core.Build,
	"test_depends_on":  core.Test,
}

// markers are the lexical patterns used to detect a PyBuilder build script.
var markers = []string{
	"use_plugin(",
	"depends_on(",
	"build_depends_on(",
	"test_depends_on(",
}

// IsPyBuilderProject reports whether the source text looks like a PyBuilder
// build script. This is a cheap case-insensitive pre-filter, not a
// validator; lookalike text can produce false positives.
func IsPyBuilderProject(text string) bool {
	if text == "" {
		return false
	}
	lowered := strings.ToLower(text)
	for _, marker := range markers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// ParseDependencies returns the dependencies declared in a build.py source
// text. Only calls of the shape project.depends_on(...) (and the build/test
// variants) with literal string arguments are recognized; requiring the
// receiver to be the bare identifier "project" cuts false positives from
// unrelated objects sharing the method names. Malformed scripts yield an
// empty slice, never an error.
func ParseDependencies(text string) []core.DependentPackage {
	if text == "" {
		return nil
	}
	tree, err := parser.ParseString(text, py.ExecMode)
	if err != nil {
		return nil
	}

	var deps []core.DependentPackage
	ast.Walk(tree, func(node ast.Ast) bool {
		call, ok := node.(*ast.Call)
		if !ok {
			return true
		}
		attr, ok := call.Func.(*ast.Attribute)
		if !ok {
			return true
		}
		scope, ok := callScopes[string(attr.Attr)]
		if !ok {
			return true
		}
		receiver, ok := attr.Value.(*ast.Name)
		if !ok || receiver.Id != "project" {
			return true
		}

		// Only literal strings are accepted; identifiers, f-strings and
		// expressions skip the whole call rather than emit a partial record.
		name := stringConst(call.Args, 0)
		if name == "" {
			return true
		}
		// PyBuilder embeds the operator in the version literal ("~=2.32"),
		// so the requirement is name and version concatenated verbatim.
		version := stringConst(call.Args, 1)

		deps = append(deps, core.DependentPackage{
			PURL:                 core.PyPIPURL(name),
			ExtractedRequirement: name + version,
			Scope:                scope,
		})
		return true
	})
	return deps
}

// DependenciesFromFile reads a build.py path and extracts its declared
// dependencies. Missing or irregular paths yield an empty slice; the text
// is pre-filtered before the more expensive parse.
func DependenciesFromFile(path string) []core.DependentPackage {
	stat, err := os.Stat(path)
	if err != nil || !stat.Mode().IsRegular() {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	text := string(data)
	if !IsPyBuilderProject(text) {
		return nil
	}
	return ParseDependencies(text)
}

// stringConst returns the trimmed literal string at positional index i, or
// empty when the argument is absent or not a string literal.
func stringConst(args []ast.Expr, i int) string {
	if i >= len(args) {
		return ""
	}
	str, ok := args[i].(*ast.Str)
	if !ok {
		return ""
	}
	return strings.TrimSpace(string(str.S))
}
