package mapper

import (
	"strings"
	"testing"

	"github.com/moasq/xcforge/internal/config"
	"github.com/moasq/xcforge/internal/model"
	"github.com/moasq/xcforge/internal/services"
)

func TestGenerateInfoPlistWritesFileAndRewritesTarget(t *testing.T) {
	proj := model.Project{
		Path: "/App",
		Targets: []model.Target{
			{Name: "App", InfoPlist: model.InfoPlist{Properties: map[string]any{
				"CFBundleShortVersionString": "1.0",
				"UILaunchStoryboardName":     "LaunchScreen",
				"UIRequiredDeviceCapabilities": []any{"armv7"},
				"LSRequiresIPhoneOS":         true,
			}}},
			{Name: "Widget", InfoPlist: model.InfoPlist{Path: "Widget/Info.plist"}},
		},
	}

	out, effects, err := (GenerateInfoPlistProjectMapper{}).Map(proj, config.Default(), services.Default())
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if len(effects) != 1 {
		t.Fatalf("expected 1 write_file effect for the synthesized target, got %d", len(effects))
	}
	if effects[0].Kind != SideEffectWriteFile {
		t.Errorf("expected SideEffectWriteFile, got %v", effects[0].Kind)
	}
	if out.Targets[0].InfoPlist.Path == "" {
		t.Error("expected synthesized target to be rewritten with a generated path")
	}
	if out.Targets[1].InfoPlist.Path != "Widget/Info.plist" {
		t.Error("expected existing-path target to be left untouched")
	}

	contents := string(effects[0].Contents)
	for _, want := range []string{"<dict>", "<key>CFBundleShortVersionString</key>", "<string>1.0</string>", "<true/>", "<array>"} {
		if !strings.Contains(contents, want) {
			t.Errorf("expected rendered plist to contain %q, got:\n%s", want, contents)
		}
	}
}

func TestGenerateInfoPlistSkipsNonSynthesizedTargets(t *testing.T) {
	proj := model.Project{
		Path: "/App",
		Targets: []model.Target{
			{Name: "Widget", InfoPlist: model.InfoPlist{Path: "Widget/Info.plist"}},
		},
	}
	_, effects, err := (GenerateInfoPlistProjectMapper{}).Map(proj, config.Default(), services.Default())
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if len(effects) != 0 {
		t.Errorf("expected no side effects, got %d", len(effects))
	}
}
