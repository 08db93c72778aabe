// Package permissions holds the declarative field permission matrix for
// partial task updates. The rules live in one table so they can be audited
// and tested without touching persistence.
package permissions

// Role is the caller's permission level on task mutations.
type Role int

const (
	RoleMember Role = iota
	RoleAdmin
)

func RoleFor(isAdmin bool) Role {
	if isAdmin {
		return RoleAdmin
	}
	return RoleMember
}

// Field names a patchable task field as it appears on the wire.
type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldStatus      Field = "status"
	FieldDueDate     Field = "due_date"
	FieldComment     Field = "comment"
)

// Disposition is what happens when a role supplies a field.
type Disposition int

const (
	// Allow applies the field.
	Allow Disposition = iota
	// Reject fails the whole request.
	Reject
	// Discard drops the field but applies the rest. A request consisting
	// only of discarded fields is rejected, since it would have no effect.
	Discard
)

// Rule is the matrix entry for one (role, field) pair. Companion, when set,
// names a field that must accompany this one in the same request.
type Rule struct {
	Disposition Disposition
	Companion   Field
}

var patchMatrix = map[Role]map[Field]Rule{
	RoleAdmin: {
		FieldName:        {Disposition: Allow},
		FieldDescription: {Disposition: Allow},
		FieldStatus:      {Disposition: Allow},
		FieldDueDate:     {Disposition: Allow},
		// Comments are the non-admin audit mechanism; an admin comment is
		// dropped when it rides along with real field changes and rejected
		// when it is the entire request.
		FieldComment: {Disposition: Discard},
	},
	RoleMember: {
		FieldName:        {Disposition: Reject},
		FieldDescription: {Disposition: Reject},
		FieldStatus:      {Disposition: Allow, Companion: FieldComment},
		FieldDueDate:     {Disposition: Reject},
		FieldComment:     {Disposition: Allow},
	},
}

// Decision is the outcome of evaluating one request's field set.
type Decision struct {
	// Forbidden lists fields the role may not touch.
	Forbidden []Field
	// Discarded lists fields to silently drop before persisting.
	Discarded []Field
	// MissingCompanion maps a supplied field to the absent field it requires.
	MissingCompanion map[Field]Field
}

func (d Decision) OK() bool {
	return len(d.Forbidden) == 0 && len(d.MissingCompanion) == 0
}

// EvaluatePatch runs the matrix over the set of fields present in a partial
// update request.
func EvaluatePatch(role Role, present []Field) Decision {
	rules := patchMatrix[role]
	presentSet := make(map[Field]bool, len(present))
	for _, f := range present {
		presentSet[f] = true
	}

	d := Decision{MissingCompanion: make(map[Field]Field)}
	allowed := 0
	for _, f := range present {
		rule, known := rules[f]
		if !known {
			d.Forbidden = append(d.Forbidden, f)
			continue
		}
		switch rule.Disposition {
		case Reject:
			d.Forbidden = append(d.Forbidden, f)
		case Discard:
			d.Discarded = append(d.Discarded, f)
		case Allow:
			allowed++
			if rule.Companion != "" && !presentSet[rule.Companion] {
				d.MissingCompanion[f] = rule.Companion
			}
		}
	}

	// A request made up entirely of discarded fields has no effect, which
	// is indistinguishable from a forbidden request to the caller.
	if len(present) > 0 && allowed == 0 && len(d.Forbidden) == 0 && len(d.Discarded) > 0 {
		d.Forbidden = d.Discarded
		d.Discarded = nil
	}

	return d
}
