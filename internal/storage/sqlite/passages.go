package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/merrysway/baristabot/internal/core"
)

// PassagesRepo stores embedded knowledge-base passages and answers
// nearest-neighbor queries over them. The knowledge base is small
// (tens of passages), so ranking is done in process by cosine
// similarity over deserialized blobs.
type PassagesRepo struct {
	db *sql.DB
}

func NewPassagesRepo(db *sql.DB) *PassagesRepo {
	return &PassagesRepo{db: db}
}

func (r *PassagesRepo) AddPassage(ctx context.Context, p core.Passage) error {
	blob, err := serializeVector(p.Embedding)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO passages (namespace, text, embedding) VALUES (?, ?, ?)`,
		p.Namespace, p.Text, blob,
	)
	if err != nil {
		return fmt.Errorf("failed to insert passage: %w", err)
	}
	return nil
}

func (r *PassagesRepo) GetPassages(ctx context.Context, namespace string) ([]core.Passage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, namespace, text, embedding FROM passages WHERE namespace = ? ORDER BY id`,
		namespace,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query passages: %w", err)
	}
	defer rows.Close()

	var passages []core.Passage
	for rows.Next() {
		var p core.Passage
		var blob []byte
		if err := rows.Scan(&p.ID, &p.Namespace, &p.Text, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan passage: %w", err)
		}
		p.Embedding, err = deserializeVector(blob)
		if err != nil {
			return nil, err
		}
		passages = append(passages, p)
	}
	return passages, rows.Err()
}

// Query implements core.VectorSearch.
func (r *PassagesRepo) Query(ctx context.Context, vector []float32, topK int, namespace string) ([]core.SearchMatch, error) {
	passages, err := r.GetPassages(ctx, namespace)
	if err != nil {
		return nil, err
	}

	matches := make([]core.SearchMatch, 0, len(passages))
	for _, p := range passages {
		matches = append(matches, core.SearchMatch{
			Text:  p.Text,
			Score: cosineSimilarity(vector, p.Embedding),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}
