package combat

// Source identifies the originator of damage or healing: another actor, a
// projectile, or an environmental hazard. Defensive states may additionally
// type-assert richer capabilities (e.g. staggering a parried attacker).
type Source interface {
	SourceID() string
}

// NamedSource is a Source for environmental and scripted damage.
type NamedSource string

func (n NamedSource) SourceID() string {
	return string(n)
}

func sourceName(s Source) string {
	if s == nil {
		return "unknown"
	}
	return s.SourceID()
}
