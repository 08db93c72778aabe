package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleFor(t *testing.T) {
	assert.Equal(t, RoleAdmin, RoleFor(true))
	assert.Equal(t, RoleMember, RoleFor(false))
}

func TestEvaluatePatch(t *testing.T) {
	tests := []struct {
		name          string
		role          Role
		present       []Field
		wantOK        bool
		wantForbidden []Field
		wantDiscarded []Field
		wantMissing   map[Field]Field
	}{
		{
			name:    "admin updates every task field",
			role:    RoleAdmin,
			present: []Field{FieldName, FieldDescription, FieldStatus, FieldDueDate},
			wantOK:  true,
		},
		{
			name:          "admin comment rides along and is dropped",
			role:          RoleAdmin,
			present:       []Field{FieldName, FieldComment},
			wantOK:        true,
			wantDiscarded: []Field{FieldComment},
		},
		{
			name:          "admin comment alone is rejected",
			role:          RoleAdmin,
			present:       []Field{FieldComment},
			wantOK:        false,
			wantForbidden: []Field{FieldComment},
		},
		{
			name:    "member moves status with a comment",
			role:    RoleMember,
			present: []Field{FieldStatus, FieldComment},
			wantOK:  true,
		},
		{
			name:        "member status without comment needs its companion",
			role:        RoleMember,
			present:     []Field{FieldStatus},
			wantOK:      false,
			wantMissing: map[Field]Field{FieldStatus: FieldComment},
		},
		{
			name:    "member comment alone is allowed",
			role:    RoleMember,
			present: []Field{FieldComment},
			wantOK:  true,
		},
		{
			name:          "member touching name is forbidden",
			role:          RoleMember,
			present:       []Field{FieldName},
			wantOK:        false,
			wantForbidden: []Field{FieldName},
		},
		{
			name:          "member mixing allowed and forbidden fields fails whole request",
			role:          RoleMember,
			present:       []Field{FieldStatus, FieldComment, FieldDueDate},
			wantOK:        false,
			wantForbidden: []Field{FieldDueDate},
		},
		{
			name:          "unknown field is forbidden",
			role:          RoleAdmin,
			present:       []Field{Field("priority")},
			wantOK:        false,
			wantForbidden: []Field{Field("priority")},
		},
		{
			name:    "empty field set decides nothing",
			role:    RoleMember,
			present: nil,
			wantOK:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := EvaluatePatch(tt.role, tt.present)

			assert.Equal(t, tt.wantOK, d.OK())
			assert.ElementsMatch(t, tt.wantForbidden, d.Forbidden)
			assert.ElementsMatch(t, tt.wantDiscarded, d.Discarded)
			if len(tt.wantMissing) > 0 {
				assert.Equal(t, tt.wantMissing, d.MissingCompanion)
			} else {
				assert.Empty(t, d.MissingCompanion)
			}
		})
	}
}
