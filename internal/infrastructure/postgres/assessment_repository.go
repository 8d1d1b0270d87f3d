package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/model"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/port"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/valueobject"
	pgpkg "github.com/Khaja2988/AI-Driven-WAF/pkg/postgres"
)

// DB is satisfied by *pgxpool.Pool.
type DB interface {
	pgpkg.Querier
	pgpkg.TxBeginner
}

// AssessmentRepository implements port.AssessmentRepository using PostgreSQL.
type AssessmentRepository struct {
	db DB
}

var _ port.AssessmentRepository = (*AssessmentRepository)(nil)

// NewAssessmentRepository creates a new PostgreSQL-backed assessment repository.
func NewAssessmentRepository(db DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

const selectAssessment = `
	SELECT a.id, a.kind, a.subject, a.source,
		a.score, a.raw_score, a.risk_level, a.attack_type, a.decision,
		a.confidence, a.explanation, a.assessed_at, a.created_at,
		ARRAY(
			SELECT s.signal FROM assessment_signals s
			WHERE s.assessment_id = a.id
			ORDER BY s.position
		) AS signals
	FROM risk_assessments a
`

// Save persists an assessment and its signals in one transaction.
func (r *AssessmentRepository) Save(ctx context.Context, assessment *model.Assessment) error {
	return pgpkg.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO risk_assessments (
				id, kind, subject, source,
				score, raw_score, risk_level, attack_type, decision,
				confidence, explanation, assessed_at, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			assessment.ID(),
			string(assessment.Kind()),
			assessment.Subject(),
			assessment.Source(),
			assessment.Score(),
			assessment.RawScore(),
			assessment.RiskLevel().String(),
			assessment.AttackType().String(),
			assessment.Decision().String(),
			assessment.Confidence(),
			assessment.Explanation(),
			assessment.AssessedAt(),
			assessment.CreatedAt(),
		)
		if err != nil {
			return fmt.Errorf("failed to save assessment: %w", err)
		}

		if len(assessment.Signals()) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for i, signal := range assessment.Signals() {
			batch.Queue(
				`INSERT INTO assessment_signals (assessment_id, position, signal) VALUES ($1, $2, $3)`,
				assessment.ID(), i, signal,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to save assessment signals: %w", err)
		}
		return nil
	})
}

// FindByID retrieves an assessment by its unique identifier.
func (r *AssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Assessment, error) {
	row := r.db.QueryRow(ctx, selectAssessment+` WHERE a.id = $1`, id)

	assessment, err := scanAssessment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", port.ErrAssessmentNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return assessment, nil
}

// FindRecent lists assessments newest first. An empty kind matches both kinds.
func (r *AssessmentRepository) FindRecent(ctx context.Context, kind model.Kind, limit, offset int) ([]*model.Assessment, error) {
	query := selectAssessment + `
		WHERE ($1 = '' OR a.kind = $1)
		ORDER BY a.assessed_at DESC, a.id
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, string(kind), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	assessments := make([]*model.Assessment, 0, limit)
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assessments: %w", err)
	}

	return assessments, nil
}

func scanAssessment(row pgx.Row) (*model.Assessment, error) {
	var (
		id          uuid.UUID
		kind        string
		subject     string
		source      string
		score       int
		rawScore    int
		riskLevel   string
		attackType  string
		decision    string
		confidence  decimal.Decimal
		explanation string
		assessedAt  time.Time
		createdAt   time.Time
		signals     []string
	)

	err := row.Scan(
		&id, &kind, &subject, &source,
		&score, &rawScore, &riskLevel, &attackType, &decision,
		&confidence, &explanation, &assessedAt, &createdAt,
		&signals,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan assessment: %w", err)
	}

	return reconstruct(id, kind, subject, source, score, rawScore,
		riskLevel, attackType, decision, confidence, explanation, signals,
		assessedAt, createdAt)
}

func reconstruct(
	id uuid.UUID,
	kindStr, subject, source string,
	score, rawScore int,
	riskLevelStr, attackTypeStr, decisionStr string,
	confidence decimal.Decimal,
	explanation string,
	signals []string,
	assessedAt, createdAt time.Time,
) (*model.Assessment, error) {
	kind, err := model.KindFromString(kindStr)
	if err != nil || kind == "" {
		return nil, fmt.Errorf("failed to parse kind %q: %w", kindStr, model.ErrInvalidKind)
	}

	riskLevel, err := valueobject.RiskLevelFromString(riskLevelStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse risk level: %w", err)
	}

	decision, err := valueobject.DecisionFromString(decisionStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse decision: %w", err)
	}

	var attackType valueobject.AttackType
	if attackTypeStr != "" {
		attackType, err = valueobject.AttackTypeFromString(attackTypeStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse attack type: %w", err)
		}
	}

	if signals == nil {
		signals = make([]string, 0)
	}

	return model.Reconstruct(
		id, kind, subject, source,
		score, rawScore,
		riskLevel, attackType, decision,
		confidence, explanation, signals,
		assessedAt.UTC(), createdAt.UTC(),
	), nil
}
