package config

import "testing"

func TestValidate_DevAllowsMissingSecret(t *testing.T) {
	cfg := &Config{Env: "development", OverdueVLMonths: 12, OverdueFUMonths: 12}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_ProductionRequiresSecret(t *testing.T) {
	cfg := &Config{Env: "production", OverdueVLMonths: 12, OverdueFUMonths: 12}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET in production")
	}
}

func TestValidate_OverdueWindows(t *testing.T) {
	tests := []struct {
		name    string
		vl, fu  int
		wantErr bool
	}{
		{"both positive", 12, 6, false},
		{"zero vl", 0, 12, true},
		{"negative fu", 12, -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Env: "development", OverdueVLMonths: tt.vl, OverdueFUMonths: tt.fu}
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
