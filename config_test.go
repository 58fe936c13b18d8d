package debugdraw_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-theft-auto/debugdraw"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    debugdraw.Config
		wantErr bool
	}{
		{
			name:  "full",
			input: "base_scale: 0.05\nline_height: 1000\nframe_capacity: 64\nverbose: false\n",
			want:  debugdraw.Config{BaseScale: 0.05, LineHeight: 1000, FrameCapacity: 64},
		},
		{
			name:  "partial",
			input: "line_height: 900\n",
			want:  debugdraw.Config{LineHeight: 900},
		},
		{
			name:  "empty",
			input: "",
			want:  debugdraw.Config{},
		},
		{
			name:    "unknown key",
			input:   "font_size: 12\n",
			wantErr: true,
		},
		{
			name:    "negative",
			input:   "base_scale: -1\n",
			wantErr: true,
		},
		{
			name:    "malformed",
			input:   "base_scale: [1, 2\n",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := debugdraw.LoadConfig(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConfigOptions(t *testing.T) {
	cfg, err := debugdraw.LoadConfig(strings.NewReader("base_scale: 0.04\nline_height: 1000\n"))
	if err != nil {
		t.Fatal(err)
	}

	acc := debugdraw.New(&mockRenderer{}, nil, append(cfg.Options(), debugdraw.WithLogger(quietLogger))...)
	layout := acc.TextLayout()
	if layout.BaseScale != 0.04 {
		t.Errorf("BaseScale = %v, want 0.04", layout.BaseScale)
	}
	if layout.LineHeight != 1000 {
		t.Errorf("LineHeight = %v, want 1000", layout.LineHeight)
	}

	defaults := debugdraw.New(&mockRenderer{}, nil, debugdraw.Config{}.Options()...)
	if defaults.TextLayout().BaseScale != debugdraw.DefaultBaseScale {
		t.Errorf("zero config changed BaseScale to %v", defaults.TextLayout().BaseScale)
	}
}
