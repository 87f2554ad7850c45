package descriptor

import (
	"testing"

	"github.com/moasq/xcforge/internal/graph"
	"github.com/moasq/xcforge/internal/model"
)

func TestGenerateWorkspaceOrdersProjectsByPath(t *testing.T) {
	projects := map[string]*model.Project{
		"/Z": {Path: "/Z", Name: "Z"},
		"/A": {Path: "/A", Name: "A"},
		"/M": {Path: "/M", Name: "M"},
	}
	g := &graph.Graph{Projects: projects}

	desc := GenerateWorkspace(g, nil, nil)
	if len(desc.Projects) != 3 {
		t.Fatalf("expected 3 projects, got %d", len(desc.Projects))
	}
	order := []string{desc.Projects[0].Path, desc.Projects[1].Path, desc.Projects[2].Path}
	want := []string{"/A", "/M", "/Z"}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q (full order %v)", i, order[i], want[i], order)
		}
	}
}

func TestGenerateProjectContainerPathUsesFileName(t *testing.T) {
	proj := model.Project{Path: "/App", Name: "App", FileName: "MyApp"}
	desc := GenerateProject(proj, nil)
	want := "/App/MyApp.xcodeproj"
	if desc.ContainerPath != want {
		t.Errorf("ContainerPath = %q, want %q", desc.ContainerPath, want)
	}
}

func TestGenerateProjectSchemesPartitionedBySharing(t *testing.T) {
	proj := model.Project{
		Path: "/App",
		Name: "App",
		Schemes: []model.Scheme{
			{Name: "App", Shared: true},
			{Name: "AppDebug", Shared: false},
		},
	}
	desc := GenerateProject(proj, nil)
	if len(desc.Schemes) != 2 {
		t.Fatalf("expected 2 scheme descriptors, got %d", len(desc.Schemes))
	}
	if !desc.Schemes[0].Shared || desc.Schemes[1].Shared {
		t.Errorf("unexpected sharing flags: %+v", desc.Schemes)
	}
}
