package permission

import (
	"strings"
	"testing"
)

func testDefinitions() []Permission {
	return []Permission{
		{Name: "admin", Category: CategoryAdministration, Level: LevelAdmin},
		{Name: "moderator", Category: CategorySocial, Level: LevelAdvanced},
		{Name: "user", Category: CategoryGameplay, Level: LevelBasic},
	}
}

func TestLevelOrdering(t *testing.T) {
	ordered := []Level{LevelBasic, LevelIntermediate, LevelAdvanced, LevelAdmin, LevelSystem}
	for i := 1; i < len(ordered); i++ {
		if !ordered[i].AtLeast(ordered[i-1]) {
			t.Errorf("Expected %s to be at least %s", ordered[i], ordered[i-1])
		}
		if ordered[i-1].AtLeast(ordered[i]) {
			t.Errorf("Expected %s to be below %s", ordered[i-1], ordered[i])
		}
	}
	if !LevelAdmin.AtLeast(LevelAdmin) {
		t.Error("Expected a level to be at least itself")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    Level
		wantErr bool
	}{
		{"BASIC", LevelBasic, false},
		{"INTERMEDIATE", LevelIntermediate, false},
		{"ADVANCED", LevelAdvanced, false},
		{"ADMIN", LevelAdmin, false},
		{"SYSTEM", LevelSystem, false},
		{"WIZARD", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
			}
			if err == nil && got.String() != tt.name {
				t.Errorf("Expected round-trip name %s, got %s", tt.name, got.String())
			}
		})
	}
}

func TestNewCatalog(t *testing.T) {
	catalog, err := NewCatalog(testDefinitions())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	def, ok := catalog.Get("moderator")
	if !ok {
		t.Fatal("Expected moderator definition")
	}
	if def.Level != LevelAdvanced || def.Category != CategorySocial {
		t.Errorf("Unexpected definition: %+v", def)
	}

	if _, ok := catalog.Get("nobody"); ok {
		t.Error("Expected lookup miss for undefined permission")
	}
}

func TestNewCatalog_RejectsDuplicates(t *testing.T) {
	defs := append(testDefinitions(), Permission{Name: "admin", Level: LevelBasic})
	if _, err := NewCatalog(defs); err == nil {
		t.Error("Expected error for duplicate definition")
	}
}

func TestCatalog_ValidateHierarchy(t *testing.T) {
	catalog, err := NewCatalog(testDefinitions())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		direct  map[string][]string
		wantErr string
	}{
		{
			name:   "downward implications allowed",
			direct: map[string][]string{"admin": {"moderator", "user"}, "moderator": {"user"}},
		},
		{
			name:    "escalating implication rejected",
			direct:  map[string][]string{"user": {"admin"}},
			wantErr: "cannot imply higher-level",
		},
		{
			name:    "undefined holder rejected",
			direct:  map[string][]string{"ghost": {"user"}},
			wantErr: "undefined permission",
		},
		{
			name:    "undefined implied rejected",
			direct:  map[string][]string{"admin": {"ghost"}},
			wantErr: "undefined permission",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := catalog.ValidateHierarchy(tt.direct)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}
