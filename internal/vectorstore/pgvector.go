package vectorstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SupportSolution is a scraped support article with its embedding. The
// vector column is sized by the store's configured dimension (EMBED_DIM),
// not by a struct tag; see Migrate.
type SupportSolution struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Issue     string
	Problem   string
	Solution  string
	Embedding pgvector.Vector
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is a Postgres + pgvector backed SolutionIndex. Every vector that
// enters or queries the store must match its dimension; mismatches are
// rejected loudly instead of surfacing as per-row Postgres errors.
type Store struct {
	db  *gorm.DB
	dim int
	log *zap.Logger
}

func Open(dsn string, dim int, log *zap.Logger) (*Store, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid embedding dimension %d", dim)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Store{
		db:  db,
		dim: dim,
		log: log.Named("vectorstore"),
	}, nil
}

// Dim returns the configured embedding dimension.
func (s *Store) Dim() int {
	return s.dim
}

// Migrate enables the pgvector extension and creates the solutions table
// with the configured vector dimension. The DDL is explicit rather than
// AutoMigrate so the column dimension follows EMBED_DIM.
func (s *Store) Migrate() error {
	if err := s.db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("failed to enable pgvector extension: %w", err)
	}

	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS support_solutions (
		id uuid PRIMARY KEY,
		issue text,
		problem text,
		solution text,
		embedding vector(%d),
		created_at timestamptz,
		updated_at timestamptz
	)`, s.dim)
	if err := s.db.Exec(ddl).Error; err != nil {
		return fmt.Errorf("failed to create solutions table: %w", err)
	}

	if err := s.db.Exec("CREATE INDEX IF NOT EXISTS idx_support_solutions_issue ON support_solutions (issue)").Error; err != nil {
		return fmt.Errorf("failed to create issue index: %w", err)
	}

	return nil
}

// Upsert writes a solution document, replacing any existing row with the
// same ID.
func (s *Store) Upsert(ctx context.Context, solution *SupportSolution) error {
	if got := len(solution.Embedding.Slice()); got != s.dim {
		return fmt.Errorf("embedding dimension %d does not match index dimension %d", got, s.dim)
	}

	if solution.ID == uuid.Nil {
		solution.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Save(solution).Error; err != nil {
		return fmt.Errorf("failed to upsert solution %s: %w", solution.ID, err)
	}
	return nil
}

// Query returns the topK nearest solutions by cosine distance.
func (s *Store) Query(ctx context.Context, vector []float32, topK int) ([]Match, error) {
	if got := len(vector); got != s.dim {
		return nil, fmt.Errorf("query dimension %d does not match index dimension %d", got, s.dim)
	}
	if topK <= 0 {
		topK = 1
	}

	type row struct {
		ID       uuid.UUID
		Issue    string
		Problem  string
		Solution string
		Distance float64
	}

	var rows []row
	err := s.db.WithContext(ctx).
		Model(&SupportSolution{}).
		Select("id, issue, problem, solution, embedding <=> ? AS distance", pgvector.NewVector(vector)).
		Order(gorm.Expr("embedding <=> ?", pgvector.NewVector(vector))).
		Limit(topK).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("similarity query failed: %w", err)
	}

	matches := make([]Match, 0, len(rows))
	for _, r := range rows {
		matches = append(matches, Match{
			ID:    r.ID.String(),
			Score: r.Distance,
			Metadata: map[string]string{
				"issue":    r.Issue,
				"problem":  r.Problem,
				"solution": r.Solution,
			},
		})
	}

	s.log.Debug("similarity query served",
		zap.Int("top_k", topK),
		zap.Int("matches", len(matches)),
	)

	return matches, nil
}

// Count returns the number of stored solution documents.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&SupportSolution{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count solutions: %w", err)
	}
	return count, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
