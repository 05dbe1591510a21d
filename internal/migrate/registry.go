package migrate

// TokenMetadata is the resolved identity of one dependency line.
type TokenMetadata struct {
	// DependencyName is the constructor parameter's declared name.
	DependencyName string
	// Token is the identifier passed to the resolution function.
	Token string
	// Generic is the explicit type-argument text, "" when none is attached.
	Generic string
	// Eligible is false for lines that resolved but were vetoed later.
	Eligible bool
}

// ParameterFlags captures the modifier and marker-decorator state of one
// dependency line.
type ParameterFlags struct {
	Public    bool
	Private   bool
	Protected bool
	Readonly  bool
	Override  bool

	Optional bool
	Self     bool
	SkipSelf bool
	Host     bool
}

// HasInjectOption reports whether any resolution option is set.
func (f ParameterFlags) HasInjectOption() bool {
	return f.Optional || f.Self || f.SkipSelf || f.Host
}

// TokenRegistry maps dependency names to their resolved metadata. One
// registry lives per file being processed and is discarded afterwards.
type TokenRegistry struct {
	byName map[string]TokenMetadata
	order  []string
}

func NewTokenRegistry() *TokenRegistry {
	return &TokenRegistry{byName: make(map[string]TokenMetadata)}
}

// Register records metadata under its dependency name. First write wins;
// within one class parameter names are unique anyway.
func (r *TokenRegistry) Register(meta TokenMetadata) {
	if _, ok := r.byName[meta.DependencyName]; ok {
		return
	}
	r.byName[meta.DependencyName] = meta
	r.order = append(r.order, meta.DependencyName)
}

// MarkIneligible flips the entry's Eligible flag off. Used when a class
// veto arrives after its lines already resolved.
func (r *TokenRegistry) MarkIneligible(name string) {
	if meta, ok := r.byName[name]; ok {
		meta.Eligible = false
		r.byName[name] = meta
	}
}

// Lookup returns the metadata registered under name.
func (r *TokenRegistry) Lookup(name string) (TokenMetadata, bool) {
	meta, ok := r.byName[name]
	return meta, ok
}

// Names returns dependency names in registration order.
func (r *TokenRegistry) Names() []string {
	return r.order
}

// Len returns the number of registered dependencies.
func (r *TokenRegistry) Len() int {
	return len(r.order)
}
