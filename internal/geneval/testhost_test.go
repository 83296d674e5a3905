package geneval

// fakeTarget and fakeBuild are minimal, in-memory TargetHandle/BuildContext
// implementations used only by this package's own tests. A real
// implementation lives in internal/genevalyaml, backed by YAML fixtures.

type fakeTarget struct {
	name             string
	kind             TargetType
	imported         bool
	dllPlatform      bool
	linkable         bool
	importLibrary    bool
	linkerLanguage   string
	artifactPath     string
	linkerArtifact   string
	outputDir        string
	soname           string
	properties       map[string]Evaluator
	mappedConfigs    map[string][]string
	transitiveDeps   []string
	linkImplDeps     []string
	consistent       map[ConsistentPropertyKind]map[string]string
	alias            string
	policies         map[string]PolicyStatus
}

func newFakeTarget(name string) *fakeTarget {
	return &fakeTarget{
		name:       name,
		kind:       TargetExecutable,
		linkable:   true,
		properties: map[string]Evaluator{},
		policies:   map[string]PolicyStatus{},
	}
}

func (f *fakeTarget) Name() string           { return f.name }
func (f *fakeTarget) Type() TargetType       { return f.kind }
func (f *fakeTarget) IsImported() bool       { return f.imported }
func (f *fakeTarget) IsDLLPlatform() bool    { return f.dllPlatform }
func (f *fakeTarget) IsLinkable() bool       { return f.linkable }
func (f *fakeTarget) HasImportLibrary() bool { return f.importLibrary }

func (f *fakeTarget) LinkerLanguage(config string) string { return f.linkerLanguage }

func (f *fakeTarget) ArtifactPath(config string, forLinker bool) (string, error) {
	if forLinker && f.linkerArtifact != "" {
		return f.linkerArtifact, nil
	}
	return f.artifactPath, nil
}

func (f *fakeTarget) OutputDirectory(config string, forLinker bool) (string, error) {
	return f.outputDir, nil
}

func (f *fakeTarget) Soname(config string) (string, error) { return f.soname, nil }

func (f *fakeTarget) Property(name string) (Evaluator, bool) {
	v, ok := f.properties[name]
	return v, ok
}

func (f *fakeTarget) MappedConfigs(activeConfig string) []string {
	return f.mappedConfigs[activeConfig]
}

func (f *fakeTarget) TransitivePropertyTargets(config string) []string { return f.transitiveDeps }

func (f *fakeTarget) LinkImplementationLibraries(config string) []string { return f.linkImplDeps }

func (f *fakeTarget) ConsistentProperty(prop, config string, kind ConsistentPropertyKind) (string, bool) {
	m, ok := f.consistent[kind]
	if !ok {
		return "", false
	}
	v, ok := m[prop]
	return v, ok
}

func (f *fakeTarget) AliasTarget() string { return f.alias }

func (f *fakeTarget) PolicyStatus(policy string) (PolicyStatus, bool) {
	s, ok := f.policies[policy]
	return s, ok
}

type fakeBuild struct {
	definitions    map[string]string
	targets        map[string]*fakeTarget
	aliases        map[string]bool
	policyMessages map[string]string
	features       map[string]string
	unavailable    map[string]string
	generators     map[string]GeneratorTarget
	sources        SourceFileStore
}

func newFakeBuild() *fakeBuild {
	return &fakeBuild{
		definitions:    map[string]string{},
		targets:        map[string]*fakeTarget{},
		aliases:        map[string]bool{},
		policyMessages: map[string]string{},
		features:       map[string]string{},
		unavailable:    map[string]string{},
		generators:     map[string]GeneratorTarget{},
	}
}

func (b *fakeBuild) add(t *fakeTarget) *fakeTarget {
	b.targets[t.name] = t
	return t
}

func (b *fakeBuild) Definition(key string) (string, bool) {
	v, ok := b.definitions[key]
	return v, ok
}

func (b *fakeBuild) Target(name string) (TargetHandle, bool) {
	t, ok := b.targets[name]
	if !ok {
		return nil, false
	}
	return t, true
}

func (b *fakeBuild) IsAlias(name string) bool { return b.aliases[name] }

func (b *fakeBuild) PolicyMessage(policy string) string { return b.policyMessages[policy] }

func (b *fakeBuild) KnownPolicies() []string { return knownPolicies }

func (b *fakeBuild) ClassifyFeature(name string) (string, bool) {
	lang, ok := b.features[name]
	return lang, ok
}

func (b *fakeBuild) FeatureAvailable(tgt TargetHandle, feature, config string) (bool, string) {
	req, unavailable := b.unavailable[feature]
	return !unavailable, req
}

func (b *fakeBuild) GeneratorTarget(tgt TargetHandle) (GeneratorTarget, bool) {
	g, ok := b.generators[tgt.Name()]
	return g, ok
}

func (b *fakeBuild) Sources() SourceFileStore { return b.sources }

type fakeGeneratorTarget struct {
	sources []string
}

func (g *fakeGeneratorTarget) ObjectSources(config string) ([]string, error) { return g.sources, nil }

func (g *fakeGeneratorTarget) ObjectFilePath(sourcePath, config string) string {
	return sourcePath + ".o"
}

type fakeSourceStore struct {
	handles map[string]string
	marked  map[string]string
}

func newFakeSourceStore() *fakeSourceStore {
	return &fakeSourceStore{handles: map[string]string{}, marked: map[string]string{}}
}

func (s *fakeSourceStore) GetOrCreateSource(path string, generated bool) string {
	if h, ok := s.handles[path]; ok {
		return h
	}
	h := "src:" + path
	s.handles[path] = h
	return h
}

func (s *fakeSourceStore) MarkExternalObject(handle string, objectLibrary string) {
	s.marked[handle] = objectLibrary
}

type fakeSink struct {
	fatals    []string
	warnings  []string
}

func (s *fakeSink) Fatal(message string, backtrace []string) {
	s.fatals = append(s.fatals, message)
}

func (s *fakeSink) PolicyWarning(policyName, message string) {
	s.warnings = append(s.warnings, policyName+": "+message)
}
