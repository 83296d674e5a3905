package genevalyaml

import (
	"fmt"

	"genexpr/internal/geneval"
	"genexpr/internal/genexprparse"
)

// Host adapts a parsed Fixture to geneval's BuildContext interface (spec
// §6). Property text is compiled to an AST lazily, on first lookup, and
// cached — fixtures are read many times during a CLI session but written
// once.
type Host struct {
	fixture Fixture
	targets map[string]*Target
	source  *sourceStore
}

// Target adapts one FixtureTarget to geneval.TargetHandle.
type Target struct {
	name    string
	data    *FixtureTarget
	host    *Host
	compiled map[string]geneval.Evaluator
}

var targetTypeByName = map[string]geneval.TargetType{
	"executable":        geneval.TargetExecutable,
	"static_library":    geneval.TargetStaticLibrary,
	"shared_library":    geneval.TargetSharedLibrary,
	"module_library":    geneval.TargetModuleLibrary,
	"object_library":    geneval.TargetObjectLibrary,
	"interface_library": geneval.TargetInterfaceLibrary,
}

var policyStatusByName = map[string]geneval.PolicyStatus{
	"OLD":          geneval.PolicyOld,
	"NEW":          geneval.PolicyNew,
	"WARN":         geneval.PolicyWarn,
	"REQUIRED_OLD": geneval.PolicyRequiredOld,
	"REQUIRED_NEW": geneval.PolicyRequiredNew,
}

// NewHost builds a Host (and its per-target geneval.TargetHandle adapters)
// from a parsed Fixture.
func NewHost(f Fixture) *Host {
	h := &Host{fixture: f, targets: map[string]*Target{}, source: newSourceStore()}
	for name, data := range f.Targets {
		h.targets[name] = &Target{name: name, data: data, host: h, compiled: map[string]geneval.Evaluator{}}
	}
	return h
}

// NewContext builds a geneval.Context for this fixture's declared config
// and head target, ready for a top-level Evaluate call.
func (h *Host) NewContext(sink geneval.DiagnosticSink) (*geneval.Context, error) {
	var head geneval.TargetHandle
	if h.fixture.HeadTarget != "" {
		t, ok := h.Target(h.fixture.HeadTarget)
		if !ok {
			return nil, fmt.Errorf("genevalyaml: head_target %q not found in fixture", h.fixture.HeadTarget)
		}
		head = t
	}
	ctx := geneval.NewContext(h, h.fixture.Config, head)
	ctx.EvaluateForBuildsystem = h.fixture.EvaluateForBuildsystem
	ctx.ForExport = h.fixture.ForExport
	ctx.InstallPrefix = h.fixture.InstallPrefix
	ctx.Sink = sink
	return ctx, nil
}

// --- BuildContext ---

func (h *Host) Definition(key string) (string, bool) {
	v, ok := h.fixture.Definitions[key]
	return v, ok
}

func (h *Host) Target(name string) (geneval.TargetHandle, bool) {
	t, ok := h.targets[name]
	if !ok {
		return nil, false
	}
	return t, true
}

func (h *Host) IsAlias(name string) bool {
	t, ok := h.targets[name]
	return ok && t.data.Alias != ""
}

func (h *Host) PolicyMessage(policy string) string { return h.fixture.PolicyMessages[policy] }

func (h *Host) KnownPolicies() []string { return h.fixture.KnownPolicies }

func (h *Host) ClassifyFeature(name string) (string, bool) {
	lang, ok := h.fixture.Features[name]
	return lang, ok
}

func (h *Host) FeatureAvailable(tgt geneval.TargetHandle, feature, config string) (bool, string) {
	requiredStandard, unavailable := h.fixture.UnavailableFeatures[feature]
	return !unavailable, requiredStandard
}

func (h *Host) GeneratorTarget(tgt geneval.TargetHandle) (geneval.GeneratorTarget, bool) {
	t, ok := tgt.(*Target)
	if !ok || t.data.Type != "object_library" {
		return nil, false
	}
	return (*generatorTarget)(t), true
}

func (h *Host) Sources() geneval.SourceFileStore { return h.source }

// --- TargetHandle ---

func (t *Target) Name() string { return t.name }

func (t *Target) Type() geneval.TargetType {
	return targetTypeByName[t.data.Type]
}

func (t *Target) IsImported() bool       { return t.data.Imported }
func (t *Target) IsDLLPlatform() bool    { return t.data.DLLPlatform }
func (t *Target) IsLinkable() bool       { return t.data.Linkable }
func (t *Target) HasImportLibrary() bool { return t.data.HasImportLibrary }

func (t *Target) LinkerLanguage(config string) string { return t.data.LinkerLanguage }

func (t *Target) ArtifactPath(config string, forLinker bool) (string, error) {
	if forLinker {
		if t.data.LinkerArtifactPath != "" {
			return t.data.LinkerArtifactPath, nil
		}
		return t.data.ArtifactPath, nil
	}
	return t.data.ArtifactPath, nil
}

func (t *Target) OutputDirectory(config string, forLinker bool) (string, error) {
	return t.data.OutputDirectory, nil
}

func (t *Target) Soname(config string) (string, error) { return t.data.Soname, nil }

// Property compiles and caches the generator-expression text stored under
// name in the fixture. ParseFixture already validated every property text
// parses; a parse failure here would be a programming error, not a
// runtime condition — a fixture ParseFixture rejects stops the CLI run
// before any Host is built or Evaluate is called.
func (t *Target) Property(name string) (geneval.Evaluator, bool) {
	text, ok := t.data.Properties[name]
	if !ok {
		return nil, false
	}
	if cached, ok := t.compiled[name]; ok {
		return cached, true
	}
	evaluator, err := genexprparse.Parse(text)
	if err != nil {
		panic(fmt.Sprintf("genevalyaml: property %q on target %q failed to parse after fixture validation: %v", name, t.name, err))
	}
	t.compiled[name] = evaluator
	return evaluator, true
}

func (t *Target) MappedConfigs(activeConfig string) []string {
	return t.data.MappedConfigs[activeConfig]
}

func (t *Target) TransitivePropertyTargets(config string) []string {
	return t.data.TransitivePropertyTargets
}

func (t *Target) LinkImplementationLibraries(config string) []string {
	return t.data.LinkImplementationLibraries
}

func (t *Target) ConsistentProperty(prop, config string, kind geneval.ConsistentPropertyKind) (string, bool) {
	var m map[string]string
	switch kind {
	case geneval.ConsistentBool:
		m = t.data.ConsistentBool
	case geneval.ConsistentString:
		m = t.data.ConsistentString
	case geneval.ConsistentNumberMin:
		m = t.data.ConsistentNumberMin
	case geneval.ConsistentNumberMax:
		m = t.data.ConsistentNumberMax
	}
	v, ok := m[prop]
	return v, ok
}

func (t *Target) AliasTarget() string { return t.data.Alias }

func (t *Target) PolicyStatus(policy string) (geneval.PolicyStatus, bool) {
	name, ok := t.data.Policies[policy]
	if !ok {
		return 0, false
	}
	status, ok := policyStatusByName[name]
	return status, ok
}

// --- GeneratorTarget ---

type generatorTarget Target

func (g *generatorTarget) ObjectSources(config string) ([]string, error) {
	return g.data.ObjectSources, nil
}

func (g *generatorTarget) ObjectFilePath(sourcePath, config string) string {
	return sourcePath + ".o"
}

// --- SourceFileStore ---

type sourceStore struct {
	handles map[string]string
	marked  map[string]string
	next    int
}

func newSourceStore() *sourceStore {
	return &sourceStore{handles: map[string]string{}, marked: map[string]string{}}
}

func (s *sourceStore) GetOrCreateSource(path string, generated bool) string {
	if h, ok := s.handles[path]; ok {
		return h
	}
	s.next++
	h := fmt.Sprintf("src#%d:%s", s.next, path)
	s.handles[path] = h
	return h
}

func (s *sourceStore) MarkExternalObject(handle string, objectLibrary string) {
	s.marked[handle] = objectLibrary
}
