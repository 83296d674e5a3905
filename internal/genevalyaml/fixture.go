// Package genevalyaml provides a YAML-fixture-backed implementation of
// geneval's host interfaces (TargetHandle, BuildContext, GeneratorTarget,
// SourceFileStore), for the CLI demo and for exercising the core against
// realistic, hand-authored target graphs without a real buildsystem.
package genevalyaml

import (
	"fmt"

	"genexpr/internal/genexprparse"

	"gopkg.in/yaml.v3"
)

// Fixture is the parsed form of a genexpr YAML fixture file (see
// testdata/*.yaml for examples). It is converted into a *Host by NewHost.
type Fixture struct {
	Config                 string
	EvaluateForBuildsystem bool
	ForExport              bool
	InstallPrefix          string
	HeadTarget             string
	Definitions            map[string]string
	KnownPolicies          []string
	PolicyMessages         map[string]string
	Features               map[string]string
	UnavailableFeatures    map[string]string
	Targets                map[string]*FixtureTarget
}

// FixtureTarget is one target's fixture-level description.
type FixtureTarget struct {
	Type                        string
	Imported                    bool
	DLLPlatform                 bool
	Linkable                    bool
	HasImportLibrary            bool
	LinkerLanguage              string
	ArtifactPath                string
	LinkerArtifactPath          string
	OutputDirectory             string
	Soname                      string
	Alias                       string
	Properties                  map[string]string
	MappedConfigs               map[string][]string
	TransitivePropertyTargets   []string
	LinkImplementationLibraries []string
	ConsistentBool              map[string]string
	ConsistentString            map[string]string
	ConsistentNumberMin         map[string]string
	ConsistentNumberMax         map[string]string
	Policies                    map[string]string
	ObjectSources               []string
}

// yamlFixture and yamlFixtureTarget mirror Fixture/FixtureTarget with YAML
// struct tags, converted to the public types below. Kept distinct from the
// public types so the fixture format's on-disk field names (snake_case, as
// YAML convention demands) don't leak into the Go-facing API.
type yamlFixture struct {
	Config                 string                    `yaml:"config"`
	EvaluateForBuildsystem bool                      `yaml:"evaluate_for_buildsystem"`
	ForExport              bool                      `yaml:"for_export"`
	InstallPrefix          string                    `yaml:"install_prefix"`
	HeadTarget             string                    `yaml:"head_target"`
	Definitions            map[string]string         `yaml:"definitions"`
	KnownPolicies          []string                  `yaml:"known_policies"`
	PolicyMessages         map[string]string         `yaml:"policy_messages"`
	Features               map[string]string         `yaml:"features"`
	UnavailableFeatures    map[string]string         `yaml:"unavailable_features"`
	Targets                map[string]yamlFixtureTarget `yaml:"targets"`
}

type yamlFixtureTarget struct {
	Type                         string            `yaml:"type"`
	Imported                     bool              `yaml:"imported"`
	DLLPlatform                  bool              `yaml:"dll_platform"`
	Linkable                     bool              `yaml:"linkable"`
	HasImportLibrary             bool              `yaml:"has_import_library"`
	LinkerLanguage               string            `yaml:"linker_language"`
	ArtifactPath                 string            `yaml:"artifact_path"`
	LinkerArtifactPath           string            `yaml:"linker_artifact_path"`
	OutputDirectory              string            `yaml:"output_directory"`
	Soname                       string            `yaml:"soname"`
	Alias                        string            `yaml:"alias"`
	Properties                   map[string]string `yaml:"properties"`
	MappedConfigs                map[string][]string `yaml:"mapped_configs"`
	TransitivePropertyTargets    []string          `yaml:"transitive_property_targets"`
	LinkImplementationLibraries  []string          `yaml:"link_implementation_libraries"`
	ConsistentBool               map[string]string `yaml:"consistent_bool"`
	ConsistentString              map[string]string `yaml:"consistent_string"`
	ConsistentNumberMin           map[string]string `yaml:"consistent_number_min"`
	ConsistentNumberMax           map[string]string `yaml:"consistent_number_max"`
	Policies                      map[string]string `yaml:"policies"`
	ObjectSources                  []string         `yaml:"object_sources"`
}

// ParseFixture decodes a YAML fixture document.
func ParseFixture(in []byte) (Fixture, error) {
	var yf yamlFixture
	if err := yaml.Unmarshal(in, &yf); err != nil {
		return Fixture{}, fmt.Errorf("phase=parse path=<fixture>: %w", err)
	}

	f := Fixture{
		Config:                 yf.Config,
		EvaluateForBuildsystem: yf.EvaluateForBuildsystem,
		ForExport:              yf.ForExport,
		InstallPrefix:          yf.InstallPrefix,
		HeadTarget:             yf.HeadTarget,
		Definitions:            yf.Definitions,
		KnownPolicies:          yf.KnownPolicies,
		PolicyMessages:         yf.PolicyMessages,
		Features:               yf.Features,
		UnavailableFeatures:    yf.UnavailableFeatures,
		Targets:                make(map[string]*FixtureTarget, len(yf.Targets)),
	}
	for name, yt := range yf.Targets {
		f.Targets[name] = &FixtureTarget{
			Type:                         yt.Type,
			Imported:                     yt.Imported,
			DLLPlatform:                  yt.DLLPlatform,
			Linkable:                     yt.Linkable,
			HasImportLibrary:             yt.HasImportLibrary,
			LinkerLanguage:               yt.LinkerLanguage,
			ArtifactPath:                 yt.ArtifactPath,
			LinkerArtifactPath:           yt.LinkerArtifactPath,
			OutputDirectory:              yt.OutputDirectory,
			Soname:                       yt.Soname,
			Alias:                        yt.Alias,
			Properties:                   yt.Properties,
			MappedConfigs:                yt.MappedConfigs,
			TransitivePropertyTargets:    yt.TransitivePropertyTargets,
			LinkImplementationLibraries:  yt.LinkImplementationLibraries,
			ConsistentBool:               yt.ConsistentBool,
			ConsistentString:             yt.ConsistentString,
			ConsistentNumberMin:          yt.ConsistentNumberMin,
			ConsistentNumberMax:          yt.ConsistentNumberMax,
			Policies:                     yt.Policies,
			ObjectSources:                yt.ObjectSources,
		}
	}

	for name, t := range f.Targets {
		for prop, text := range t.Properties {
			if _, err := genexprparse.Parse(text); err != nil {
				return Fixture{}, fmt.Errorf("target %q property %q: %w", name, prop, err)
			}
		}
	}

	return f, nil
}
