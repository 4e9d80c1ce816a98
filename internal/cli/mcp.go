package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"hirematch/internal/delivery/http/dto"
	"hirematch/internal/domain/job"
	"hirematch/internal/domain/matching"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMCPCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the scorer as MCP tools over stdio",
		RunE: func(_ *cobra.Command, _ []string) error {
			rt.logger().Info("serving MCP over stdio", zap.String("version", version))
			return server.ServeStdio(newMCPServer())
		},
	}
}

func newMCPServer() *server.MCPServer {
	s := server.NewMCPServer(app, version)
	registerCalculateJobMatch(s)
	registerGetRecommendedJobs(s)
	return s
}

var (
	candidateSchema = map[string]interface{}{
		"type":        "object",
		"description": "Candidate profile: skills, location, years_of_experience, preferred_location",
	}
	jobSchema = map[string]interface{}{
		"type":        "object",
		"description": "Job posting: title, required_skills, is_remote, location_city, location_country, minimum_experience, maximum_experience, status",
	}
)

func registerCalculateJobMatch(s *server.MCPServer) {
	tool := mcp.NewTool("calculate_job_match",
		mcp.WithDescription("Score one job posting for one candidate (0-100) with the reasons behind the score"),
	)
	tool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"candidate": candidateSchema,
			"job":       jobSchema,
		},
		Required: []string{"candidate", "job"},
	}
	s.AddTool(tool, handleCalculateJobMatch)
}

func registerGetRecommendedJobs(s *server.MCPServer) {
	tool := mcp.NewTool("get_recommended_jobs",
		mcp.WithDescription("Rank open job postings for a candidate, best first, dropping those under min_score"),
	)
	tool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"candidate": candidateSchema,
			"jobs": map[string]interface{}{
				"type":        "array",
				"items":       jobSchema,
				"description": "Job postings to rank",
			},
			"min_score": map[string]interface{}{
				"type":        "integer",
				"description": fmt.Sprintf("Minimum score to keep (default %d)", matching.DefaultMinScore),
			},
		},
		Required: []string{"candidate", "jobs"},
	}
	s.AddTool(tool, handleGetRecommendedJobs)
}

func handleCalculateJobMatch(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	var c dto.CandidateProfilePayload
	if err := decodeArg(args, "candidate", &c); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var j dto.JobPostingPayload
	if err := decodeArg(args, "job", &j); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	profile, ok := c.ToDomain()
	if !ok {
		return mcp.NewToolResultError("candidate.preferred_location must be one of Remote, Hybrid, Onsite"), nil
	}

	return jsonResult(dto.NewJobMatchResponse(matching.CalculateJobMatch(profile, j.ToDomain())))
}

func handleGetRecommendedJobs(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	var c dto.CandidateProfilePayload
	if err := decodeArg(args, "candidate", &c); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var jobs []dto.JobPostingPayload
	if err := decodeArg(args, "jobs", &jobs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	minScore, err := minScoreArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	profile, ok := c.ToDomain()
	if !ok {
		return mcp.NewToolResultError("candidate.preferred_location must be one of Remote, Hybrid, Onsite"), nil
	}

	postings := make([]job.Posting, 0, len(jobs))
	for _, j := range jobs {
		postings = append(postings, j.ToDomain())
	}

	return jsonResult(dto.NewJobMatchResponses(matching.GetRecommendedJobs(profile, postings, minScore)))
}

// minScoreArg reads the optional min_score. JSON numbers arrive as float64, so
// anything with a fractional part or of another type is rejected.
func minScoreArg(args map[string]interface{}) (int, error) {
	raw, ok := args["min_score"]
	if !ok || raw == nil {
		return matching.DefaultMinScore, nil
	}
	v, ok := raw.(float64)
	if !ok || v != math.Trunc(v) {
		return 0, fmt.Errorf("min_score must be an integer, got %v", raw)
	}
	if v < 0 || v > 100 {
		return 0, fmt.Errorf("min_score must be between 0 and 100")
	}
	return int(v), nil
}

// decodeArg re-encodes one loosely typed tool argument into its payload type.
func decodeArg(args map[string]interface{}, key string, out any) error {
	raw, ok := args[key]
	if !ok || raw == nil {
		return fmt.Errorf("missing required argument %q", key)
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %v", key, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("invalid %s: %v", key, err)
	}
	return nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
