package sections

// Section is one finalized lyric section.
type Section struct {
	Key     string   `json:"key"`     // unique name in the result, e.g. "Chorus 2"
	Base    string   `json:"base"`    // standard name, or the label as given, without numeric suffix
	Content string   `json:"content"` // lines joined with a single space
	Singers []string `json:"singers"`
}

// DiagnosticKind identifies a non-fatal parse finding.
type DiagnosticKind string

const (
	// DiagnosticNonStandardLabel marks a label that maps to no standard name.
	DiagnosticNonStandardLabel DiagnosticKind = "non_standard_label"
)

// Diagnostic is an advisory produced while parsing.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Label   string         `json:"label"`
	Message string         `json:"message"`
}

// Result holds the sections in order of appearance.
type Result struct {
	Sections    []Section    `json:"sections"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`

	index map[string]int
}

// Lookup returns the section recorded under key.
func (r *Result) Lookup(key string) (Section, bool) {
	i, ok := r.index[key]
	if !ok {
		return Section{}, false
	}
	return r.Sections[i], true
}

// Keys returns the section keys in order of appearance.
func (r *Result) Keys() []string {
	keys := make([]string, len(r.Sections))
	for i, s := range r.Sections {
		keys[i] = s.Key
	}
	return keys
}

// Len returns the number of sections.
func (r *Result) Len() int {
	return len(r.Sections)
}

func (r *Result) add(s Section) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[s.Key]; ok {
		r.Sections[i] = s
		return
	}
	r.index[s.Key] = len(r.Sections)
	r.Sections = append(r.Sections, s)
}
