package cli

import (
	"context"
	"encoding/json"
	"testing"

	"hirematch/internal/domain/matching"

	"github.com/mark3labs/mcp-go/mcp"
)

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args any) (*mcp.CallToolResult, string) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	res, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Content) == 0 {
		t.Fatalf("expected content")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return res, text.Text
}

func TestMCP_CalculateJobMatch(t *testing.T) {
	res, text := callTool(t, handleCalculateJobMatch, map[string]interface{}{
		"candidate": map[string]interface{}{
			"skills":              []interface{}{"React", "TypeScript", "Node.js"},
			"location":            "San Francisco, CA",
			"years_of_experience": float64(5),
		},
		"job": map[string]interface{}{
			"title":              "Frontend",
			"required_skills":    []interface{}{"React", "TypeScript", "GraphQL"},
			"location_city":      "San Francisco",
			"location_country":   "CA",
			"minimum_experience": float64(3),
			"maximum_experience": float64(7),
		},
	})
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", text)
	}

	var out matchRow
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.MatchScore != 87 || out.Title != "Frontend" {
		t.Fatalf("unexpected result: %+v", out)
	}
}

func TestMCP_GetRecommendedJobs(t *testing.T) {
	jobs := []interface{}{
		map[string]interface{}{"title": "Remote", "is_remote": true},
		map[string]interface{}{"title": "Closed", "is_remote": true, "status": "closed"},
		map[string]interface{}{"title": "Onsite", "location_city": "Oslo"},
	}
	res, text := callTool(t, handleGetRecommendedJobs, map[string]interface{}{
		"candidate": map[string]interface{}{},
		"jobs":      jobs,
	})
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", text)
	}

	var rows []matchRow
	if err := json.Unmarshal([]byte(text), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 1 || rows[0].Title != "Remote" || rows[0].MatchScore != 30 {
		t.Fatalf("unexpected ranking: %+v", rows)
	}

	_, text = callTool(t, handleGetRecommendedJobs, map[string]interface{}{
		"candidate": map[string]interface{}{},
		"jobs":      jobs,
		"min_score": float64(0),
	})
	if err := json.Unmarshal([]byte(text), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected both open postings at min_score 0, got %+v", rows)
	}
}

func TestMCP_ArgumentErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args    any
	}{
		{name: "not an object", handler: handleCalculateJobMatch, args: "nope"},
		{name: "missing job", handler: handleCalculateJobMatch, args: map[string]interface{}{"candidate": map[string]interface{}{}}},
		{name: "bad preference", handler: handleCalculateJobMatch, args: map[string]interface{}{
			"candidate": map[string]interface{}{"preferred_location": "Moon"},
			"job":       map[string]interface{}{},
		}},
		{name: "jobs not a list", handler: handleGetRecommendedJobs, args: map[string]interface{}{
			"candidate": map[string]interface{}{},
			"jobs":      "x",
		}},
		{name: "min score out of range", handler: handleGetRecommendedJobs, args: map[string]interface{}{
			"candidate": map[string]interface{}{},
			"jobs":      []interface{}{},
			"min_score": float64(500),
		}},
		{name: "fractional min score", handler: handleGetRecommendedJobs, args: map[string]interface{}{
			"candidate": map[string]interface{}{},
			"jobs":      []interface{}{},
			"min_score": 30.7,
		}},
		{name: "string min score", handler: handleGetRecommendedJobs, args: map[string]interface{}{
			"candidate": map[string]interface{}{},
			"jobs":      []interface{}{},
			"min_score": "40",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, text := callTool(t, tt.handler, tt.args)
			if !res.IsError {
				t.Fatalf("expected a tool error, got %s", text)
			}
		})
	}
}

func TestNewMCPServer_RegistersTools(t *testing.T) {
	if s := newMCPServer(); s == nil {
		t.Fatalf("expected a server")
	}
}

func TestMinScoreArg(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
		want int
	}{
		{name: "absent", args: map[string]interface{}{}, want: matching.DefaultMinScore},
		{name: "null", args: map[string]interface{}{"min_score": nil}, want: matching.DefaultMinScore},
		{name: "whole number", args: map[string]interface{}{"min_score": float64(45)}, want: 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := minScoreArg(tt.args)
			if err != nil || got != tt.want {
				t.Fatalf("expected %d, got %d (%v)", tt.want, got, err)
			}
		})
	}
}
