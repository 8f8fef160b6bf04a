package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoadDefaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Trunc", cfg.Trunc, int64(50)},
		{"FindprodMaxDegree", cfg.FindprodMaxDegree, int64(6)},
		{"FindprodMaxExponent", cfg.FindprodMaxExponent, int64(3)},
		{"ZeilbergerMaxOrder", cfg.ZeilbergerMaxOrder, 3},
		{"BaileyDepth", cfg.BaileyDepth, 1},
		{"BaileyMaxN", cfg.BaileyMaxN, int64(8)},
		{"HistoryPath", cfg.HistoryPath, ".qsq-history.db"},
		{"Verbose", cfg.Verbose, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	wantModuli := []int64{2, 3, 5, 7, 11, 13}
	if len(cfg.FindcongModuli) != len(wantModuli) {
		t.Fatalf("FindcongModuli = %v, want %v", cfg.FindcongModuli, wantModuli)
	}
	for i, m := range wantModuli {
		if cfg.FindcongModuli[i] != m {
			t.Fatalf("FindcongModuli = %v, want %v", cfg.FindcongModuli, wantModuli)
		}
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "trunc",
			envKey: "QSQ_TRUNC",
			envVal: "120",
			field:  func(c Config) any { return c.Trunc },
			want:   int64(120),
		},
		{
			name:   "zeilberger_max_order",
			envKey: "QSQ_ZEILBERGER_MAX_ORDER",
			envVal: "5",
			field:  func(c Config) any { return c.ZeilbergerMaxOrder },
			want:   5,
		},
		{
			name:   "history_path",
			envKey: "QSQ_HISTORY_PATH",
			envVal: "/tmp/results.db",
			field:  func(c Config) any { return c.HistoryPath },
			want:   "/tmp/results.db",
		},
		{
			name:   "verbose",
			envKey: "QSQ_VERBOSE",
			envVal: "true",
			field:  func(c Config) any { return c.Verbose },
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			viper.SetEnvPrefix("QSQ")
			viper.AutomaticEnv()

			os.Setenv(tt.envKey, tt.envVal)
			defer os.Unsetenv(tt.envKey)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			got := tt.field(cfg)
			if got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestLoadDefaultsAreNotZero(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.Trunc == 0 {
		t.Error("Trunc should not be zero")
	}
	if cfg.FindprodMaxDegree == 0 {
		t.Error("FindprodMaxDegree should not be zero")
	}
	if cfg.ZeilbergerMaxOrder == 0 {
		t.Error("ZeilbergerMaxOrder should not be zero")
	}
	if cfg.HistoryPath == "" {
		t.Error("HistoryPath should not be empty")
	}
	if len(cfg.FindcongModuli) == 0 {
		t.Error("FindcongModuli should not be empty")
	}
}
