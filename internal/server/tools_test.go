package server

import (
	"encoding/json"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	want := []string{
		"image_load",
		"image_dimensions",
		"patch_grid",
		"patch_crop",
		"classify",
		"attribute",
	}

	if len(tools) != len(want) {
		t.Fatalf("tool count: got %d, want %d", len(tools), len(want))
	}

	byName := make(map[string]Tool)
	for _, tool := range tools {
		byName[tool.Name] = tool
	}

	for _, name := range want {
		tool, ok := byName[name]
		if !ok {
			t.Errorf("missing tool %s", name)
			continue
		}
		if tool.Description == "" {
			t.Errorf("tool %s has no description", name)
		}
		if tool.InputSchema == nil {
			t.Errorf("tool %s has no input schema", name)
		}
	}
}

func TestGetToolDefinitions_SchemasRequirePath(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		required, ok := tool.InputSchema["required"].([]string)
		if !ok {
			t.Errorf("tool %s: required is not []string", tool.Name)
			continue
		}

		hasPath := false
		for _, r := range required {
			if r == "path" {
				hasPath = true
			}
		}
		if !hasPath {
			t.Errorf("tool %s does not require path", tool.Name)
		}
	}
}

func TestGetToolDefinitions_SchemasMarshal(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		if _, err := json.Marshal(tool); err != nil {
			t.Errorf("tool %s schema does not marshal: %v", tool.Name, err)
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New(nil)

	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})
	if resp == nil || resp.Error != nil {
		t.Fatalf("tools/list failed: %+v", resp)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("Result has unexpected type %T", resp.Result)
	}
	tools, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatalf("tools has unexpected type %T", result["tools"])
	}
	if len(tools) == 0 {
		t.Error("tools/list returned no tools")
	}
}
