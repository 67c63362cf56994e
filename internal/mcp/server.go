package mcp

import (
	"context"
	"net/http"

	"github.com/garrettladley/synthonia/internal/metrics"
	"github.com/garrettladley/synthonia/internal/version"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverName = "synthonia"

// Server exposes the formula library as MCP tools. Tools are stateless and
// never touch stored history.
type Server struct {
	server  *mcp.Server
	metrics *metrics.Manager
}

// NewServer registers every formula tool. m may be nil.
func NewServer(m *metrics.Manager) *Server {
	s := &Server{
		server: mcp.NewServer(&mcp.Implementation{
			Name:    serverName,
			Version: version.Get(),
		}, nil),
		metrics: m,
	}
	s.registerTools()
	return s
}

// Run serves the tools over stdio until ctx is done or the client hangs up.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler serves the same tools over the streamable HTTP transport.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "recovery_score",
		Description: "Daily recovery score from muscular, mental and sleep components (each 0-10). Returns the weighted score and its percentage of the maximum.",
	}, s.recoveryScore)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "session_load",
		Description: "Internal load (RPE x minutes) and volume load (sets x reps x kg) of a training session, with the internal load classification.",
	}, s.sessionLoad)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "acwr",
		Description: "Acute:chronic workload ratio over at least 28 daily loads, oldest first. Returns acute (7 day) and chronic (28 day) means, the ratio and its injury risk band.",
	}, s.acwr)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "load_trend",
		Description: "ATL, CTL and TSB series over daily loads, oldest first, with a description of the latest form.",
	}, s.loadTrend)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "jump_analysis",
		Description: "Counter-movement jump readiness against a baseline (default 40 cm). Returns fatigue status, recommended load percentage and estimated peak power.",
	}, s.jumpAnalysis)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "spravato_efficacy",
		Description: "Efficacy score of a single Spravato session from dose, dissociation level and next-day mood, with a dosing recommendation.",
	}, s.spravatoEfficacy)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "predict_next_dose",
		Description: "Suggested next Spravato dose from a session history, oldest first. An empty history yields the 56 mg starting dose.",
	}, s.predictNextDose)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "spravato_trends",
		Description: "Trend summary of a Spravato session history: session count, dissociation/mood correlation, average dose and the best session.",
	}, s.spravatoTrends)
}
