package handlers

import (
	"net/http"

	"github.com/bobmcallan/darwinbox-mcp/internal/common"
	"github.com/bobmcallan/darwinbox-mcp/internal/config"
)

// VersionHandler handles version information requests.
type VersionHandler struct {
	logger *common.Logger
	tools  int
}

// NewVersionHandler creates a new version handler reporting the number of
// registered tools.
func NewVersionHandler(logger *common.Logger, tools int) *VersionHandler {
	return &VersionHandler{logger: logger, tools: tools}
}

// ServeHTTP handles GET /api/version.
func (h *VersionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"version":    config.GetVersion(),
		"build":      config.GetBuild(),
		"git_commit": config.GetGitCommit(),
		"tools":      h.tools,
	})
}
