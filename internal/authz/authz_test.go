package authz

import "testing"

func TestCanDelete(t *testing.T) {
	authorizer := NewRoleAuthorizer()

	tests := []struct {
		name      string
		principal Principal
		accountID string
		want      bool
	}{
		{
			name:      "owner may delete own account",
			principal: Principal{UserID: "acc-1", Role: RoleUser},
			accountID: "acc-1",
			want:      true,
		},
		{
			name:      "user may not delete another account",
			principal: Principal{UserID: "acc-1", Role: RoleUser},
			accountID: "acc-2",
			want:      false,
		},
		{
			name:      "admin may delete any account",
			principal: Principal{UserID: "acc-admin", Role: RoleAdmin},
			accountID: "acc-2",
			want:      true,
		},
		{
			name:      "system may delete any account",
			principal: SystemPrincipal(),
			accountID: "acc-2",
			want:      true,
		},
		{
			name:      "unknown role is denied",
			principal: Principal{UserID: "acc-1", Role: Role("auditor")},
			accountID: "acc-1",
			want:      false,
		},
		{
			name:      "empty role is denied",
			principal: Principal{UserID: "acc-1"},
			accountID: "acc-1",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := authorizer.CanDelete(tt.principal, tt.accountID); got != tt.want {
				t.Errorf("CanDelete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanViewMatchesDeleteRule(t *testing.T) {
	authorizer := NewRoleAuthorizer()

	if !authorizer.CanView(Principal{UserID: "acc-1", Role: RoleUser}, "acc-1") {
		t.Error("owner should be able to view own account")
	}
	if authorizer.CanView(Principal{UserID: "acc-1", Role: RoleUser}, "acc-2") {
		t.Error("user should not view another account")
	}
	if !authorizer.CanView(Principal{UserID: "acc-admin", Role: RoleAdmin}, "acc-2") {
		t.Error("admin should view any account")
	}
}
