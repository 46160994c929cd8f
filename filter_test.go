package filemagic

import (
	"errors"
	"reflect"
	"testing"
)

func TestLabelFilter_Check(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		blocked []string
		label   string
		want    bool
	}{
		{"no patterns", nil, nil, "application/x-msdownload", true},
		{"allowed exact", []string{"image/png"}, nil, "image/png", true},
		{"allowed wildcard", []string{"image/*"}, nil, "image/jpeg", true},
		{"wildcard stays in segment", []string{"image/*"}, nil, "application/pdf", false},
		{"case insensitive", []string{"IMAGE/*"}, nil, "image/PNG", true},
		{"text wildcard", []string{"text/*"}, nil, "text/plain", true},
		{"blocked", nil, []string{"application/x-*"}, "application/x-msdownload", false},
		{"blocked wins over allowed", []string{"**"}, []string{"application/x-msdownload"}, "application/x-msdownload", false},
		{"super wildcard", []string{"**"}, nil, "video/mp4", true},
		{"alternatives", []string{"{image,video}/*"}, nil, "video/webm", true},
		{"alternatives miss", []string{"{image,video}/*"}, nil, "audio/wav", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewLabelFilter(tt.allowed, tt.blocked)
			if err != nil {
				t.Fatalf("NewLabelFilter() error = %v", err)
			}
			if got := f.Allowed(tt.label); got != tt.want {
				t.Errorf("Allowed(%q) = %v, want %v", tt.label, got, tt.want)
			}

			err = f.Check(tt.label)
			if tt.want {
				if err != nil {
					t.Errorf("Check(%q) error = %v", tt.label, err)
				}
				return
			}
			if !IsNotAllowed(err) {
				t.Errorf("Check(%q) error = %v, want ErrNotAllowed", tt.label, err)
			}
			var policyErr *PolicyError
			if !errors.As(err, &policyErr) || policyErr.Label != tt.label {
				t.Errorf("Check(%q) error = %v, want *PolicyError", tt.label, err)
			}
		})
	}
}

func TestLabelFilter_Nil(t *testing.T) {
	var f *LabelFilter
	if err := f.Check("application/x-msdownload"); err != nil {
		t.Errorf("nil filter Check() error = %v", err)
	}
}

func TestNewLabelFilter_InvalidPattern(t *testing.T) {
	if _, err := NewLabelFilter([]string{"image/[png"}, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewLabelFilter() error = %v, want ErrInvalidConfig", err)
	}
	if _, err := NewLabelFilter(nil, []string{"image/[png"}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewLabelFilter() blocked error = %v, want ErrInvalidConfig", err)
	}
}

func TestSplitPatterns(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"image/*", []string{"image/*"}},
		{" image/* , video/mp4,,", []string{"image/*", "video/mp4"}},
		{",", []string{}},
	}
	for _, tt := range tests {
		if got := SplitPatterns(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitPatterns(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
