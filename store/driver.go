package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// Question model related methods.
	CreateQuestion(ctx context.Context, create *Question) (*Question, error)
	ListQuestions(ctx context.Context, find *FindQuestion) ([]*Question, error)
	UpdateQuestion(ctx context.Context, update *UpdateQuestion) error
	DeleteQuestion(ctx context.Context, delete *DeleteQuestion) error
	GetQuestionStats(ctx context.Context, find *FindQuestion) (*QuestionStats, error)

	// MathQuestion model related methods.
	CreateMathQuestion(ctx context.Context, create *MathQuestion) (*MathQuestion, error)
	ListMathQuestions(ctx context.Context, find *FindMathQuestion) ([]*MathQuestion, error)

	// TemplateProgress model related methods.
	UpsertTemplateProgress(ctx context.Context, upsert *UpsertTemplateProgress) (*TemplateProgress, error)
	ListTemplateProgress(ctx context.Context, find *FindTemplateProgress) ([]*TemplateProgress, error)

	// Review outcome related methods. Reviews are append-only.
	CreateReview(ctx context.Context, create *Review) (*Review, error)
	ListReviews(ctx context.Context, find *FindReview) ([]*Review, error)
	CreateMathReview(ctx context.Context, create *MathReview) (*MathReview, error)
	ListMathHistory(ctx context.Context, limit int) ([]*MathHistoryEntry, error)
}
