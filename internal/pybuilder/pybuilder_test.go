package pybuilder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/voidpetal/python-inspector/internal/core"
)

const buildScript = `
from pybuilder.core import use_plugin, init

use_plugin('python.core')
use_plugin('python.unittest')
use_plugin('python.distutils')

name = 'demo'

@init
def initialize(project):
    project.depends_on("requests", "~=2.32")
    project.build_depends_on("wheel", ">=0.42.0")
    project.test_depends_on("pytest", "==8.1.0")
`

func TestIsPyBuilderProject(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"build script", buildScript, true},
		{"use_plugin only", "use_plugin('python.core')", true},
		{"uppercase marker", "PROJECT.DEPENDS_ON('x')", true},
		{"build_depends_on", "project.build_depends_on('wheel')", true},
		{"test_depends_on", "project.test_depends_on('pytest')", true},
		{"empty", "", false},
		{"unrelated python", "import os\nprint(os.getcwd())", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPyBuilderProject(tt.text); got != tt.want {
				t.Errorf("IsPyBuilderProject = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDependencies(t *testing.T) {
	want := []core.DependentPackage{
		{PURL: "pkg:pypi/requests", ExtractedRequirement: "requests~=2.32", Scope: core.Install},
		{PURL: "pkg:pypi/wheel", ExtractedRequirement: "wheel>=0.42.0", Scope: core.Build},
		{PURL: "pkg:pypi/pytest", ExtractedRequirement: "pytest==8.1.0", Scope: core.Test},
	}
	got := ParseDependencies(buildScript)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dependencies mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDependenciesCanonicalizesPurlName(t *testing.T) {
	// purl names are canonicalized per the purl spec for pypi (lowercase,
	// "_" replaced by "-"); the extracted requirement keeps the name as
	// written.
	deps := ParseDependencies(`project.depends_on("Django_Extensions", ">=3.2")`)
	if len(deps) != 1 {
		t.Fatalf("deps = %d, want 1", len(deps))
	}
	if deps[0].PURL != "pkg:pypi/django-extensions" {
		t.Errorf("PURL = %q, want %q", deps[0].PURL, "pkg:pypi/django-extensions")
	}
	if deps[0].ExtractedRequirement != "Django_Extensions>=3.2" {
		t.Errorf("ExtractedRequirement = %q, want %q", deps[0].ExtractedRequirement, "Django_Extensions>=3.2")
	}
}

func TestParseDependenciesNameOnly(t *testing.T) {
	deps := ParseDependencies(`project.depends_on("click")`)
	if len(deps) != 1 {
		t.Fatalf("deps = %d, want 1", len(deps))
	}
	if deps[0].ExtractedRequirement != "click" {
		t.Errorf("ExtractedRequirement = %q, want %q", deps[0].ExtractedRequirement, "click")
	}
}

func TestParseDependenciesWrongReceiver(t *testing.T) {
	deps := ParseDependencies(`other_object.depends_on("x")`)
	if len(deps) != 0 {
		t.Errorf("deps = %d, want 0", len(deps))
	}
}

func TestParseDependenciesAttributeReceiver(t *testing.T) {
	// A dotted receiver is not the bare identifier "project".
	deps := ParseDependencies(`self.project.depends_on("x")`)
	if len(deps) != 0 {
		t.Errorf("deps = %d, want 0", len(deps))
	}
}

func TestParseDependenciesNonLiteralSkipped(t *testing.T) {
	src := `
name = "requests"
project.depends_on(name)
project.depends_on("click", ">=8.0")
`
	deps := ParseDependencies(src)
	if len(deps) != 1 {
		t.Fatalf("deps = %d, want 1", len(deps))
	}
	if deps[0].PURL != "pkg:pypi/click" {
		t.Errorf("PURL = %q, want %q", deps[0].PURL, "pkg:pypi/click")
	}
}

func TestParseDependenciesSyntaxError(t *testing.T) {
	deps := ParseDependencies("def broken(:\n    pass")
	if deps != nil {
		t.Errorf("deps = %+v, want nil", deps)
	}
}

func TestParseDependenciesEmpty(t *testing.T) {
	if deps := ParseDependencies(""); deps != nil {
		t.Errorf("deps = %+v, want nil", deps)
	}
}

func TestDependenciesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.py")
	script := `
from pybuilder.core import use_plugin, init
use_plugin('python.core')

@init
def initialize(project):
    project.depends_on('click', '>=8.0')
`
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	deps := DependenciesFromFile(path)
	if len(deps) != 1 {
		t.Fatalf("deps = %d, want 1", len(deps))
	}
	want := core.DependentPackage{
		PURL:                 "pkg:pypi/click",
		ExtractedRequirement: "click>=8.0",
		Scope:                core.Install,
	}
	if diff := cmp.Diff(want, deps[0]); diff != "" {
		t.Errorf("dependency mismatch (-want +got):\n%s", diff)
	}
}

func TestDependenciesFromFileMissing(t *testing.T) {
	deps := DependenciesFromFile(filepath.Join(t.TempDir(), "no-such-build.py"))
	if deps != nil {
		t.Errorf("deps = %+v, want nil", deps)
	}
}

func TestDependenciesFromFileSkipsNonPyBuilder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.py")
	if err := os.WriteFile(path, []byte("import os\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if deps := DependenciesFromFile(path); deps != nil {
		t.Errorf("deps = %+v, want nil", deps)
	}
}
