package rbac_test

import (
	"testing"

	"github.com/Yaseenhassan/college-leave-app/internal/rbac"

	"github.com/stretchr/testify/assert"
)

func TestEnforce(t *testing.T) {
	svc, err := rbac.NewService()
	assert.NoError(t, err)

	cases := []struct {
		name    string
		role    string
		obj     string
		act     string
		allowed bool
	}{
		{"teacher can apply", "teacher", "leave", "create", true},
		{"teacher cannot approve hod stage", "teacher", "leave", "approve_hod", false},
		{"hod approves hod stage", "hod", "leave", "approve_hod", true},
		{"hod cannot approve principal stage", "hod", "leave", "approve_principal", false},
		{"principal approves final stage", "principal", "leave", "approve_principal", true},
		{"principal inherits staff read", "principal", "leave", "read", true},
		{"teaching_admin manages departments", "teaching_admin", "department", "delete", true},
		{"non_teaching_admin initializes balances", "non_teaching_admin", "balance", "initialize", true},
		{"teacher cannot delete staff", "teacher", "staff", "delete", false},
		{"unknown role denied", "visitor", "leave", "read", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(rbac.EnforceRequest{Role: tc.role, Resource: tc.obj, Action: tc.act})
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}
