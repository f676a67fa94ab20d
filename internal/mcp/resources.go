package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/traincoach/internal/models"
)

func (h *handlers) todayContextResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)

	tc, err := h.ds.TodayContext(ctx, uid, models.DisciplineStrength)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(tc)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
