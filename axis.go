package ngff

// Axis describes one dimension of a multiscale image: a required name plus
// optional semantic type and unit. Nil pointer fields mean the document left
// the field out (or set it to null), which is legal but discouraged.
type Axis struct {
	Name string
	Type *string
	Unit *string
}

// Str returns a pointer to s, for filling the optional Axis fields inline.
func Str(s string) *string { return &s }

// SpaceAxis builds a space-typed axis with the given unit.
func SpaceAxis(name, unit string) Axis {
	return Axis{Name: name, Type: Str(TypeSpace), Unit: Str(unit)}
}

// TimeAxis builds a time-typed axis with the given unit.
func TimeAxis(name, unit string) Axis {
	return Axis{Name: name, Type: Str(TypeTime), Unit: Str(unit)}
}

// ChannelAxis builds a channel-typed axis. Channel axes carry no unit
// vocabulary, so none is required.
func ChannelAxis(name string) Axis {
	return Axis{Name: name, Type: Str(TypeChannel)}
}

// ValidateAxis inspects a single axis for legal-but-discouraged values and
// never hard-fails. Each rule contributes at most one warning: an
// unrecognized unit on a space or time axis, a missing type, a type outside
// the known set, and a missing unit. Warning paths are relative to the axis
// object ("/type", "/unit").
func ValidateAxis(ax Axis) Warnings {
	var ws Warnings
	if ax.Type != nil && ax.Unit != nil {
		switch *ax.Type {
		case TypeSpace:
			if !IsSpaceUnit(*ax.Unit) {
				ws = AppendWarnings(ws, Warning{
					Path:    "/unit",
					Code:    WarnUnitUnrecognized,
					Message: messageFor(WarnUnitUnrecognized),
					Value:   *ax.Unit,
					Rule:    "axis.unit.vocabulary",
				})
			}
		case TypeTime:
			if !IsTimeUnit(*ax.Unit) {
				ws = AppendWarnings(ws, Warning{
					Path:    "/unit",
					Code:    WarnUnitUnrecognized,
					Message: messageFor(WarnUnitUnrecognized),
					Value:   *ax.Unit,
					Rule:    "axis.unit.vocabulary",
				})
			}
		}
	}
	if ax.Type == nil {
		ws = AppendWarnings(ws, Warning{
			Path:    "/type",
			Code:    WarnTypeMissing,
			Message: messageFor(WarnTypeMissing),
			Rule:    "axis.type.present",
		})
	} else if !isKnownType(*ax.Type) {
		ws = AppendWarnings(ws, Warning{
			Path:    "/type",
			Code:    WarnTypeUnknown,
			Message: messageFor(WarnTypeUnknown),
			Value:   *ax.Type,
			Rule:    "axis.type.known",
		})
	}
	if ax.Unit == nil {
		ws = AppendWarnings(ws, Warning{
			Path:    "/unit",
			Code:    WarnUnitMissing,
			Message: messageFor(WarnUnitMissing),
			Rule:    "axis.unit.present",
		})
	}
	return ws
}

func isKnownType(t string) bool {
	return t == TypeSpace || t == TypeTime || t == TypeChannel
}

// isCustomType reports whether the axis counts as custom in the type census:
// either no type at all or a type outside the known set.
func isCustomType(t *string) bool {
	return t == nil || !isKnownType(*t)
}
