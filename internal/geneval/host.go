package geneval

// This file declares the narrow, read-only interfaces the core consumes
// from the host buildsystem (spec §6). The core never implements these
// itself; internal/genevalyaml provides a fixture-backed implementation
// for the demo CLI, and this package's own tests use the in-package fakes
// in testhost_test.go.

// TargetType enumerates the kinds of target TargetHandle.Type can return.
type TargetType int

const (
	TargetUnknown TargetType = iota
	TargetExecutable
	TargetStaticLibrary
	TargetSharedLibrary
	TargetModuleLibrary
	TargetObjectLibrary
	TargetInterfaceLibrary
)

// PolicyStatus is the resolved status of one CMake-style behavior policy.
type PolicyStatus int

const (
	PolicyOld PolicyStatus = iota
	PolicyNew
	PolicyWarn
	// PolicyRequiredOld/PolicyRequiredNew never warn. TARGET_POLICY
	// returns "0" for both, as for Old; the compiler-id case-insensitive
	// fallback treats them like Old and New respectively. They are kept
	// distinct so a host can still tell required from merely-set policies.
	PolicyRequiredOld
	PolicyRequiredNew
)

// ConsistentPropertyKind selects which link-interface-dependent-property
// consistency rule applies when a property is absent on a target (spec
// §4.6 step 8).
type ConsistentPropertyKind int

const (
	ConsistentBool ConsistentPropertyKind = iota
	ConsistentString
	ConsistentNumberMin
	ConsistentNumberMax
)

// TargetHandle is the per-target query surface the evaluator needs.
type TargetHandle interface {
	Name() string
	Type() TargetType
	IsImported() bool
	IsDLLPlatform() bool
	IsLinkable() bool
	HasImportLibrary() bool

	// LinkerLanguage returns the computed link language for config.
	LinkerLanguage(config string) string

	// ArtifactPath returns the target's main (or, if forLinker, the
	// link-input/import-library) full file path for config.
	ArtifactPath(config string, forLinker bool) (string, error)

	// OutputDirectory returns the directory component of ArtifactPath.
	OutputDirectory(config string, forLinker bool) (string, error)

	// Soname returns the directory-qualified soname file, valid only for
	// shared libraries on platforms without import libraries.
	Soname(config string) (string, error)

	// Property returns the raw (non-transitive) value of name on this
	// target, compiled to an Evaluator, and whether it is set at all. The
	// host owns compiling a property's stored text into an AST (spec §1
	// keeps surface-syntax parsing out of this package); TARGET_PROPERTY
	// just evaluates whatever tree comes back.
	Property(name string) (value Evaluator, ok bool)

	// MappedConfigs returns the MAP_IMPORTED_CONFIG_<activeConfig> list for
	// an imported target, or nil if there is no mapping.
	MappedConfigs(activeConfig string) []string

	// TransitivePropertyTargets returns the set of target names reachable
	// through this target's transitive usage-requirement graph for config,
	// as consulted by $<TARGET_PROPERTY:...> on a whitelisted property.
	TransitivePropertyTargets(config string) []string

	// LinkImplementationLibraries returns this target's direct link
	// dependencies for config (used when the interface-form of a
	// non-whitelisted property is requested, spec §4.6 step 7).
	LinkImplementationLibraries(config string) []string

	// ConsistentProperty resolves a link-interface-dependent property that
	// is absent on this target directly, by kind (spec §4.6 step 8).
	// ok is false if no link-interface-dependent rule applies to prop.
	ConsistentProperty(prop string, config string, kind ConsistentPropertyKind) (value string, ok bool)

	// AliasTarget returns the canonical name this target aliases, or ""
	// if this target is not an alias.
	AliasTarget() string

	// PolicyStatus returns the resolved status of policy on this target.
	PolicyStatus(policy string) (PolicyStatus, bool)
}

// BuildContext is the host's target/property store and definition table
// (spec §6).
type BuildContext interface {
	// Definition implements $<C_COMPILER_ID>-style no-arg lookups against
	// the CMAKE_<KEY> definition store.
	Definition(key string) (string, bool)

	// Target resolves a target by name, following ALIASED_TARGET once the
	// caller has already done so if needed; returns ok=false if unknown.
	Target(name string) (TargetHandle, bool)

	// IsAlias reports whether name is a known alias (distinguished from an
	// unknown name: both make Target's second form behave the same, but
	// error messages differ).
	IsAlias(name string) bool

	// PolicyMessage returns the author-warning text for a WARN policy.
	PolicyMessage(policy string) string

	// KnownPolicies lists the identifiers TARGET_POLICY accepts, for the
	// "listing of accepted policies" fatal-error text (spec §4.9).
	KnownPolicies() []string

	// ClassifyFeature resolves a compile-feature identifier to the
	// language it belongs to; ok is false for an unknown feature.
	ClassifyFeature(name string) (lang string, ok bool)

	// FeatureAvailable reports whether feature is available for tgt in
	// config, and if not, the language standard level required to satisfy
	// it (for COMPILE_FEATURES' max-language-standard bookkeeping).
	FeatureAvailable(tgt TargetHandle, feature, config string) (available bool, requiredStandard string)

	// GeneratorTarget resolves the local code generator's view of tgt, for
	// TARGET_OBJECTS. ok is false if tgt has no generator-target backing
	// (e.g. an imported target).
	GeneratorTarget(tgt TargetHandle) (GeneratorTarget, bool)

	// Sources returns the SourceFileStore used to register external
	// object sources (TARGET_OBJECTS).
	Sources() SourceFileStore
}

// GeneratorTarget is the local code generator's view of one target, used
// by $<TARGET_OBJECTS:...> (spec §4.7).
type GeneratorTarget interface {
	// ObjectSources returns the target's object-library source paths for
	// config.
	ObjectSources(config string) ([]string, error)

	// ObjectFilePath computes the on-disk object file path the local
	// generator would produce for one of ObjectSources' paths.
	ObjectFilePath(sourcePath, config string) string
}

// SourceFileStore is the host's source-file registry (spec §6).
type SourceFileStore interface {
	// GetOrCreateSource registers path (marking it generated if
	// requested), and returns an opaque handle string it can be looked up
	// by later. Object-library membership and EXTERNAL_OBJECT are set by
	// the caller via MarkExternalObject.
	GetOrCreateSource(path string, generated bool) string

	// MarkExternalObject sets the EXTERNAL_OBJECT property and records
	// object-library membership for a source previously returned by
	// GetOrCreateSource.
	MarkExternalObject(handle string, objectLibrary string)
}
