package domain

import "testing"

func TestAuthorizeDecisionTable(t *testing.T) {
	admin := &Principal{ID: "admin-1", Roles: map[string]struct{}{RoleAdmin: {}}}
	user := &Principal{ID: "user-1", Roles: map[string]struct{}{}}

	cases := []struct {
		name      string
		op        Operation
		kind      ResourceKind
		ownerID   string
		principal *Principal
		want      Decision
	}{
		{"catalog read anonymous", OpRead, KindCatalog, "", nil, Allow},
		{"catalog read user", OpRead, KindCatalog, "", user, Allow},
		{"catalog create anonymous", OpCreate, KindCatalog, "", nil, DenyUnauthenticated},
		{"catalog create non-admin", OpCreate, KindCatalog, "", user, DenyForbidden},
		{"catalog create admin", OpCreate, KindCatalog, "", admin, Allow},
		{"catalog update non-admin", OpUpdate, KindCatalog, "", user, DenyForbidden},
		{"catalog update admin", OpUpdate, KindCatalog, "", admin, Allow},
		{"catalog delete non-admin", OpDelete, KindCatalog, "", user, DenyForbidden},
		{"catalog delete admin", OpDelete, KindCatalog, "", admin, Allow},
		{"personal list anonymous", OpRead, KindPersonal, "", nil, DenyUnauthenticated},
		{"personal list user", OpRead, KindPersonal, "", user, Allow},
		{"personal read own record", OpRead, KindPersonal, "user-1", user, Allow},
		{"personal read foreign record", OpRead, KindPersonal, "user-2", user, DenyNotFound},
		{"personal create user", OpCreate, KindPersonal, "", user, Allow},
		{"personal update own", OpUpdate, KindPersonal, "user-1", user, Allow},
		{"personal update foreign", OpUpdate, KindPersonal, "user-2", user, DenyNotFound},
		{"personal update foreign as admin", OpUpdate, KindPersonal, "user-2", admin, DenyNotFound},
		{"personal delete own", OpDelete, KindPersonal, "user-1", user, Allow},
		{"personal delete foreign", OpDelete, KindPersonal, "user-2", user, DenyNotFound},
		{"personal delete anonymous", OpDelete, KindPersonal, "user-1", nil, DenyUnauthenticated},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Authorize(tc.op, tc.kind, tc.ownerID, tc.principal)
			if got != tc.want {
				t.Fatalf("expected %s got %s", tc.want, got)
			}
		})
	}
}

func TestAdminHasNoOwnershipOverride(t *testing.T) {
	admin := &Principal{ID: "admin-1", Roles: map[string]struct{}{RoleAdmin: {}}}

	for _, op := range []Operation{OpRead, OpUpdate, OpDelete} {
		if got := Authorize(op, KindPersonal, "someone-else", admin); got != DenyNotFound {
			t.Fatalf("op %s: expected %s got %s", op, DenyNotFound, got)
		}
	}
}
