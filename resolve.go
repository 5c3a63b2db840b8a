package brokerimport

// Resolution is the outcome of resolving an extracted security against the
// caller's registry. Exactly one of two cases holds:
//
//   - New: the registry did not know the security. Security is the
//     extracted one, and a SecurityItem must accompany the transaction.
//   - Existing: the registry already knew it. Security is the registry's
//     record, which defines the canonical currency; no SecurityItem is
//     emitted and no forex pair is attached downstream.
type Resolution struct {
	Security *Security
	Existing bool
}

// Currency returns the currency all derived units must be interpreted in.
func (r Resolution) Currency() string { return r.Security.Currency() }

// resolver deduplicates securities for one document pass.
//
// Lookup and commit are separate on purpose: a block that later turns out
// malformed or cancelled must neither grow the registry nor emit a
// SecurityItem.
type resolver struct {
	registry *Registry
}

// lookup resolves the extracted security without mutating anything.
func (r *resolver) lookup(extracted *Security) Resolution {
	if known := r.registry.Find(extracted); known != nil {
		return Resolution{Security: known, Existing: true}
	}
	return Resolution{Security: extracted, Existing: false}
}

// commit records a New resolution: the security is appended to the caller's
// registry (exactly once per distinct security, since later blocks of the
// same document will now resolve to Existing) and announced as an item.
func (r *resolver) commit(res Resolution) *SecurityItem {
	if res.Existing {
		return nil
	}
	r.registry.Add(res.Security)
	return NewSecurityItem(res.Security)
}
