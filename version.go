package ngff

// Revision identifies a supported metadata revision.
type Revision string

const (
	// V04 is the stable 0.4 revision.
	V04 Revision = "0.4"
	// V05Dev is the 0.5 development revision.
	V05Dev Revision = "0.5-dev"
	// V05Legacy is the historical 0.5 pre-release that wrote "0.5.dev" and
	// spelled the axis unit key "units".
	V05Legacy Revision = "0.5.dev"
)

// RevisionFromString maps a version literal to its Revision.
func RevisionFromString(s string) (Revision, bool) {
	switch Revision(s) {
	case V04, V05Dev, V05Legacy:
		return Revision(s), true
	}
	return "", false
}

// Policy captures everything revision-specific: the version literal, the
// axis unit wire key, and how hard the advisory knobs bite. Validation logic
// in the rest of the package is revision-agnostic and consults only these
// knobs.
type Policy struct {
	Version         string
	AxisUnitKey     string
	NullName        Severity
	NullVersion     Severity
	VersionMismatch Severity
}

// PolicyFor returns the table entry for a revision. Unknown revisions fall
// back to the V04 entry.
func PolicyFor(rev Revision) Policy {
	switch rev {
	case V05Dev:
		return Policy{
			Version:         string(V05Dev),
			AxisUnitKey:     "unit",
			NullName:        Warn,
			NullVersion:     Warn,
			VersionMismatch: Error,
		}
	case V05Legacy:
		return Policy{
			Version:         string(V05Legacy),
			AxisUnitKey:     "units",
			NullName:        Warn,
			NullVersion:     Warn,
			VersionMismatch: Warn,
		}
	default:
		return Policy{
			Version:         string(V04),
			AxisUnitKey:     "unit",
			NullName:        Warn,
			NullVersion:     Warn,
			VersionMismatch: Error,
		}
	}
}

// DefaultPolicy is the policy used when callers pass a zero Policy.
func DefaultPolicy() Policy { return PolicyFor(V04) }

// orDefault lets a zero Policy stand in for the default revision.
func (p Policy) orDefault() Policy {
	if p.Version == "" {
		return DefaultPolicy()
	}
	return p
}

// checkVersionValue applies the policy's null-version and version-mismatch
// knobs to a loosely typed version field.
func checkVersionValue(v any, pol Policy) (Warnings, Issues) {
	if v == nil {
		switch pol.NullVersion {
		case Warn:
			return Warnings{{
				Path:    "/version",
				Code:    WarnVersionMissing,
				Message: messageFor(WarnVersionMissing),
				Rule:    "multiscale.version.present",
			}}, nil
		case Error:
			return nil, AppendIssues(nil, newIssue("/version", CodeRequired, nil))
		}
		return nil, nil
	}
	s, isString := v.(string)
	if isString && s == pol.Version {
		return nil, nil
	}
	params := map[string]any{"got": v, "want": pol.Version}
	switch pol.VersionMismatch {
	case Warn:
		return Warnings{{
			Path:    "/version",
			Code:    WarnVersionMismatch,
			Message: messageFor(WarnVersionMismatch),
			Value:   v,
			Rule:    "multiscale.version.match",
		}}, nil
	case Error:
		return nil, AppendIssues(nil, newIssue("/version", CodeVersionMismatch, params))
	}
	return nil, nil
}

// checkNameValue applies the policy's null-name knob.
func checkNameValue(name any, pol Policy) (Warnings, Issues) {
	if name != nil {
		return nil, nil
	}
	switch pol.NullName {
	case Warn:
		return Warnings{{
			Path:    "/name",
			Code:    WarnNameMissing,
			Message: messageFor(WarnNameMissing),
			Rule:    "multiscale.name.present",
		}}, nil
	case Error:
		return nil, AppendIssues(nil, newIssue("/name", CodeRequired, nil))
	}
	return nil, nil
}
