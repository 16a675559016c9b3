package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestEffective(t *testing.T) {
	if got := Effective("v1.2.3"); got != "v1.2.3" {
		t.Errorf("Effective = %q, want v1.2.3", got)
	}
	if got := Effective(""); got == "" {
		t.Error("Effective should never be empty")
	}
}

func TestFromBuildInfo(t *testing.T) {
	tests := []struct {
		name string
		info debug.BuildInfo
		want string
	}{
		{
			name: "module version",
			info: debug.BuildInfo{Main: debug.Module{Version: "v0.3.0"}},
			want: "v0.3.0",
		},
		{
			name: "no vcs",
			info: debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			want: "devel",
		},
		{
			name: "clean revision",
			info: debug.BuildInfo{Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef"},
			}},
			want: "devel+0123456789ab",
		},
		{
			name: "dirty revision",
			info: debug.BuildInfo{Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc"},
				{Key: "vcs.modified", Value: "true"},
			}},
			want: "devel+abc+dirty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fromBuildInfo(&tt.info); got != tt.want {
				t.Errorf("fromBuildInfo = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUpgradeHint(t *testing.T) {
	tests := []struct {
		method   InstallMethod
		contains string
	}{
		{InstallMethodHomebrew, "brew upgrade notecards"},
		{InstallMethodGo, "go install github.com/marcus/notecards/cmd/notecards@latest"},
		{InstallMethodBinary, "releases"},
	}
	for _, tt := range tests {
		if got := UpgradeHint(tt.method); !strings.Contains(got, tt.contains) {
			t.Errorf("UpgradeHint(%s) = %q, want it to contain %q", tt.method, got, tt.contains)
		}
	}
}

func TestInGoBin(t *testing.T) {
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}
	tests := []struct {
		name string
		exe  string
		env  map[string]string
		home string
		want bool
	}{
		{"gobin", "/opt/gobin/notecards", map[string]string{"GOBIN": "/opt/gobin"}, "", true},
		{"gopath", "/work/gp/bin/notecards", map[string]string{"GOPATH": "/work/gp"}, "", true},
		{"home go bin", "/home/u/go/bin/notecards", nil, "/home/u", true},
		{"heuristic", "/srv/go/bin/notecards", nil, "", true},
		{"elsewhere", "/usr/local/bin/notecards", nil, "/home/u", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inGoBin(tt.exe, env(tt.env), tt.home); got != tt.want {
				t.Errorf("inGoBin(%q) = %v, want %v", tt.exe, got, tt.want)
			}
		})
	}
}

func TestDetectInstallMethodCached(t *testing.T) {
	first := DetectInstallMethod()
	if second := DetectInstallMethod(); second != first {
		t.Errorf("detection changed between calls: %s then %s", first, second)
	}
}
