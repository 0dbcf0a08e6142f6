package ngff

// Severity expresses how a check reacts to a finding.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement for wire-level hygiene.
type Strictness struct {
	OnDuplicateKey Severity // Ignore, Warn or Error (duplicate JSON keys).
}

// ParseOpt bundles parsing options. The Parse* entry points take a variadic
// list; the last element wins.
type ParseOpt struct {
	Policy     Policy
	Strictness Strictness
	// MaxIssues caps the number of issues collected by hygiene scans.
	// 0 or negative means unlimited; >0 sets a limit, marked by a trailing
	// truncated issue.
	MaxIssues int
	// FailFast stops decoding at the first fatal issue instead of
	// aggregating everything the document has to offer.
	FailFast bool
}

func mergeParseOpt(opts []ParseOpt) ParseOpt {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.MaxIssues == 0 {
		opt.MaxIssues = -1
	}
	return opt
}

func singleIssue(code, path string) Issues {
	return AppendIssues(nil, Issue{Code: code, Path: path, Message: messageFor(code)})
}
