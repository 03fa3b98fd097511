package attribution

// Outcome reports the result of resolving one field of an analysis result.
// Attribution always completes for every resolvable field that did not hit
// a storage error, so callers receive one Outcome per attempted field
// rather than a single success/failure.
type Outcome struct {
	Field    Field
	EntityID int64
	Created  bool
	Link     Link
	Err      error
}

// Outcomes is the per-field result list of one attribution call.
type Outcomes []Outcome

// Failed returns the outcomes that hit an error.
func (o Outcomes) Failed() Outcomes {
	var failed Outcomes
	for _, out := range o {
		if out.Err != nil {
			failed = append(failed, out)
		}
	}
	return failed
}

// ByField returns the outcome for a field, if present.
func (o Outcomes) ByField(f Field) (Outcome, bool) {
	for _, out := range o {
		if out.Field == f {
			return out, true
		}
	}
	return Outcome{}, false
}
