package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Khaja2988/AI-Driven-WAF/internal/application/dto"
	pkgkafka "github.com/Khaja2988/AI-Driven-WAF/pkg/kafka"
)

// LoginAnalyzer is satisfied by *usecase.AnalyzeLogin.
type LoginAnalyzer interface {
	Execute(ctx context.Context, req dto.LoginCheckRequest) (dto.LoginCheckResponse, error)
}

// LoginHandler scores login attempts streamed by an identity provider. Each
// message value is a JSON LoginCheckRequest.
type LoginHandler struct {
	analyzer LoginAnalyzer
	logger   *slog.Logger
}

// NewLoginHandler creates a LoginHandler.
func NewLoginHandler(analyzer LoginAnalyzer, logger *slog.Logger) *LoginHandler {
	return &LoginHandler{analyzer: analyzer, logger: logger}
}

// Handle implements pkgkafka.Handler. Undecodable messages are reported as
// poison so the consumer skips them.
func (h *LoginHandler) Handle(ctx context.Context, msg pkgkafka.Message) error {
	var req dto.LoginCheckRequest
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		return fmt.Errorf("decode login event: %w: %w", pkgkafka.ErrPoison, err)
	}

	resp, err := h.analyzer.Execute(ctx, req)
	if err != nil {
		return fmt.Errorf("analyze login event: %w", err)
	}

	h.logger.InfoContext(ctx, "login event scored",
		slog.String("assessment_id", resp.ID.String()),
		slog.Int("score", resp.AnomalyScore),
		slog.String("risk_level", resp.RiskLevel),
	)
	return nil
}
