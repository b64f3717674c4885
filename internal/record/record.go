package record

// Record is the accumulated state of one document session, keyed by field key.
// Every key of the owning schema is always present: a nil value means the
// field was never populated, a pointer to "" means it was explicitly left
// blank. The two states are distinct and both count as missing for
// completeness purposes.
type Record map[string]*string

// Partial is the output of one extraction pass. Keys that the pass did not
// propose a value for are simply not present; an empty-string proposal is
// equivalent to abstaining.
type Partial map[string]string

// New creates a Record with every key initialized to the absent state.
func New(keys []string) Record {
	r := make(Record, len(keys))
	for _, k := range keys {
		r[k] = nil
	}
	return r
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		if v == nil {
			out[k] = nil
			continue
		}
		s := *v
		out[k] = &s
	}
	return out
}

// Value returns the stored value and whether the key was ever populated.
// A populated-but-blank field returns ("", true).
func (r Record) Value(key string) (string, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}

// Filled reports whether the key holds a non-empty value.
func (r Record) Filled(key string) bool {
	v, ok := r.Value(key)
	return ok && v != ""
}

// Set stores an explicit value for a key, including an explicit empty string.
// It is the only way a field can transition to the populated-but-blank state;
// Merge never clears a field.
func (r Record) Set(key, value string) {
	v := value
	r[key] = &v
}

// Merge combines a partial extraction result into an existing record and
// returns the merged copy. Per key: an absent or empty incoming value keeps
// the existing value unchanged; a non-empty incoming value replaces it (the
// newest explicit statement about a field wins). Keys the existing record
// does not know are ignored.
//
// Merge is idempotent and the final record after any number of turns depends
// only on the per-key sequence of non-empty values, not on how extraction
// batched them.
func Merge(existing Record, incoming Partial) Record {
	out := existing.Clone()
	for key, value := range incoming {
		if _, known := out[key]; !known {
			continue
		}
		if value == "" {
			continue
		}
		out.Set(key, value)
	}
	return out
}
