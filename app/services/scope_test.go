package services

import (
	"testing"

	"github.com/drager40/product-manager/app/models"
)

func testUser(role models.Role) *models.AppUser {
	return &models.AppUser{
		Role:       role,
		Company:    "LINK",
		Department: "Development",
		Team:       "Platform",
	}
}

func TestResolveCategory(t *testing.T) {
	tests := []struct {
		name     string
		role     models.Role
		supplied string
		want     string
	}{
		{name: "admin passes through", role: models.RoleAdmin, supplied: "BUGS", want: "BUGS"},
		{name: "admin passes through empty", role: models.RoleAdmin, supplied: "", want: ""},
		{name: "company forced to own", role: models.RoleCompany, supplied: "BUGS", want: "LINK"},
		{name: "department forced to own", role: models.RoleDepartment, supplied: "BUGS", want: "LINK"},
		{name: "team forced to own", role: models.RoleTeam, supplied: "", want: "LINK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveCategory(testUser(tt.role), tt.supplied)
			if got != tt.want {
				t.Errorf("ResolveCategory() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveDepartment(t *testing.T) {
	tests := []struct {
		name     string
		role     models.Role
		supplied string
		want     string
	}{
		{name: "admin passes through", role: models.RoleAdmin, supplied: "Sales", want: "Sales"},
		{name: "company passes through", role: models.RoleCompany, supplied: "Sales", want: "Sales"},
		{name: "department forced", role: models.RoleDepartment, supplied: "Sales", want: "Development"},
		{name: "team forced", role: models.RoleTeam, supplied: "", want: "Development"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveDepartment(testUser(tt.role), tt.supplied)
			if got != tt.want {
				t.Errorf("ResolveDepartment() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveTeams(t *testing.T) {
	tests := []struct {
		name     string
		role     models.Role
		supplied []string
		want     []string
	}{
		{name: "admin keeps list", role: models.RoleAdmin, supplied: []string{"A", "B"}, want: []string{"A", "B"}},
		{name: "department keeps sentinel", role: models.RoleDepartment, supplied: []string{models.TeamDeptOnly, "A"}, want: []string{models.TeamDeptOnly, "A"}},
		{name: "empty entries dropped", role: models.RoleCompany, supplied: []string{"", "A"}, want: []string{"A"}},
		{name: "team forced to own team", role: models.RoleTeam, supplied: []string{"A", "B"}, want: []string{"Platform"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveTeams(testUser(tt.role), tt.supplied)
			if len(got) != len(tt.want) {
				t.Fatalf("ResolveTeams() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ResolveTeams()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// Non-admin resolution must never be broader than the user's own scope.
func TestResolveNeverWidensScope(t *testing.T) {
	for _, role := range []models.Role{models.RoleCompany, models.RoleDepartment, models.RoleTeam} {
		u := testUser(role)
		if got := ResolveCategory(u, "OTHER"); got != u.Company {
			t.Errorf("role %s: category %q escapes company %q", role, got, u.Company)
		}
		if role != models.RoleCompany {
			if got := ResolveDepartment(u, "OTHER"); got != u.Department {
				t.Errorf("role %s: department %q escapes %q", role, got, u.Department)
			}
		}
	}
}

func TestCanAccess(t *testing.T) {
	tests := []struct {
		name       string
		role       models.Role
		category   string
		department string
		team       string
		want       bool
	}{
		{name: "admin sees everything", role: models.RoleAdmin, category: "X", department: "Y", team: "Z", want: true},
		{name: "company own rows", role: models.RoleCompany, category: "LINK", department: "Anything", team: "Anything", want: true},
		{name: "company other company denied", role: models.RoleCompany, category: "BUGS", department: "Development", team: "Platform", want: false},
		{name: "department own rows", role: models.RoleDepartment, category: "LINK", department: "Development", team: "Other", want: true},
		{name: "department wrong department denied", role: models.RoleDepartment, category: "LINK", department: "Sales", team: "Platform", want: false},
		{name: "company mismatch denies before department match", role: models.RoleDepartment, category: "BUGS", department: "Development", team: "Platform", want: false},
		{name: "team own row", role: models.RoleTeam, category: "LINK", department: "Development", team: "Platform", want: true},
		{name: "team wrong team denied", role: models.RoleTeam, category: "LINK", department: "Development", team: "Infra", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanAccess(testUser(tt.role), tt.category, tt.department, tt.team)
			if got != tt.want {
				t.Errorf("CanAccess() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStampScope(t *testing.T) {
	tests := []struct {
		name           string
		role           models.Role
		wantCategory   string
		wantDepartment string
		wantTeam       string
	}{
		{name: "admin untouched", role: models.RoleAdmin, wantCategory: "X", wantDepartment: "Y", wantTeam: "Z"},
		{name: "company stamps category only", role: models.RoleCompany, wantCategory: "LINK", wantDepartment: "Y", wantTeam: "Z"},
		{name: "department stamps category and department", role: models.RoleDepartment, wantCategory: "LINK", wantDepartment: "Development", wantTeam: "Z"},
		{name: "team stamps all three", role: models.RoleTeam, wantCategory: "LINK", wantDepartment: "Development", wantTeam: "Platform"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, department, team := "X", "Y", "Z"
			StampScope(testUser(tt.role), &category, &department, &team)
			if category != tt.wantCategory || department != tt.wantDepartment || team != tt.wantTeam {
				t.Errorf("StampScope() = %q/%q/%q, want %q/%q/%q",
					category, department, team, tt.wantCategory, tt.wantDepartment, tt.wantTeam)
			}
		})
	}
}
