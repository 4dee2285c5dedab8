package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const timeFormat = time.RFC3339

var searchFolder = cases.Lower(language.Und)

// PostRepo handles database operations for stored feed items.
type PostRepo struct {
	db *DB
}

var _ PostRepository = (*PostRepo)(nil)

func NewPostRepository(db *DB) *PostRepo {
	return &PostRepo{db: db}
}

const postColumns = `id, guid, title, link, description, pub_date, iso_date,
	blog_name, feed_type, matched_keywords, collected_date,
	news_letter_sent_date, created_at, updated_at`

func (r *PostRepo) InsertPost(ctx context.Context, post Post) error {
	keywords, err := encodeKeywords(post.MatchedKeywords)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO posts (
			id, guid, title, link, description, pub_date, iso_date,
			blog_name, feed_type, matched_keywords, search_text,
			collected_date, news_letter_sent_date, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, post.ID, post.GUID, post.Title, post.Link, post.Description,
		post.PubDate, post.IsoDate, post.BlogName, post.FeedType,
		keywords, searchText(post), post.CollectedDate,
		post.NewsletterSentDate,
		post.CreatedAt.UTC().Format(timeFormat),
		post.UpdatedAt.UTC().Format(timeFormat))

	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// GetTitles returns the set of stored titles for one blog, built once
// per ingestion run for O(1) duplicate checks.
func (r *PostRepo) GetTitles(ctx context.Context, blogName string) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT title FROM posts WHERE blog_name = ?`, blogName)
	if err != nil {
		return nil, fmt.Errorf("failed to get stored titles: %w", err)
	}
	defer rows.Close()

	titles := make(map[string]struct{})
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("failed to scan title row: %w", err)
		}
		titles[title] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating title rows: %w", err)
	}

	return titles, nil
}

func (r *PostRepo) GetByDocID(ctx context.Context, docID string) (*Post, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = ?`, docID)
	return scanPost(row)
}

func (r *PostRepo) FindByGUID(ctx context.Context, guid string) (*Post, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE guid = ? LIMIT 1`, guid)
	return scanPost(row)
}

func (r *PostRepo) UpdateKeywords(ctx context.Context, docID string, keywords []string) error {
	encoded, err := encodeKeywords(keywords)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE posts SET matched_keywords = ?, updated_at = ? WHERE id = ?
	`, encoded, time.Now().UTC().Format(timeFormat), docID)
	if err != nil {
		return fmt.Errorf("failed to update keywords: %w", err)
	}

	return requireRow(result)
}

func (r *PostRepo) UpdateNewsletterSentDate(ctx context.Context, docID string, sentDate string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE posts SET news_letter_sent_date = ?, updated_at = ? WHERE id = ?
	`, sentDate, time.Now().UTC().Format(timeFormat), docID)
	if err != nil {
		return fmt.Errorf("failed to update newsletter sent date: %w", err)
	}

	return requireRow(result)
}

func (r *PostRepo) List(ctx context.Context, query ListQuery) (*ListResult, error) {
	where, args := buildFilters(query)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to get total count: %w", err)
	}

	var filtered int
	countQuery := `SELECT COUNT(*) FROM posts` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&filtered); err != nil {
		return nil, fmt.Errorf("failed to get filtered count: %w", err)
	}

	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	selectQuery := `SELECT ` + postColumns + ` FROM posts` + where
	selectArgs := append([]any{}, args...)

	if query.Page > 0 {
		selectQuery += ` ORDER BY iso_date DESC LIMIT ? OFFSET ?`
		selectArgs = append(selectArgs, pageSize, (query.Page-1)*pageSize)
	} else {
		if query.StartAfterIsoDate != "" {
			if where == "" {
				selectQuery += ` WHERE iso_date < ?`
			} else {
				selectQuery += ` AND iso_date < ?`
			}
			selectArgs = append(selectArgs, query.StartAfterIsoDate)
		}
		selectQuery += ` ORDER BY iso_date DESC LIMIT ?`
		selectArgs = append(selectArgs, pageSize)
	}

	rows, err := r.db.QueryContext(ctx, selectQuery, selectArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts, err := collectPosts(rows)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Posts:         posts,
		TotalCount:    total,
		FilteredCount: filtered,
	}, nil
}

func (r *PostRepo) GetPostCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get post count: %w", err)
	}
	return count, nil
}

func (r *PostRepo) ListByCollectedDate(ctx context.Context, date string) ([]Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE collected_date = ? ORDER BY iso_date DESC`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by collected date: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

func (r *PostRepo) DeleteByCollectedDate(ctx context.Context, date string) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM posts WHERE collected_date = ?`, date)
	if err != nil {
		return 0, fmt.Errorf("failed to delete posts by collected date: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get deleted row count: %w", err)
	}

	return int(deleted), nil
}

func buildFilters(query ListQuery) (string, []any) {
	var conditions []string
	var args []any

	if query.BlogName != "" {
		conditions = append(conditions, "blog_name = ?")
		args = append(args, query.BlogName)
	}
	if query.FeedType != "" {
		conditions = append(conditions, "feed_type = ?")
		args = append(args, query.FeedType)
	}
	if query.SearchText != "" {
		// Both sides are folded with the same caser: sqlite's LOWER()
		// only handles ASCII, so the match runs against the folded
		// search_text shadow written at insert time.
		needle := "%" + searchFolder.String(query.SearchText) + "%"
		conditions = append(conditions, "search_text LIKE ?")
		args = append(args, needle)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*Post, error) {
	var post Post
	var keywords, createdAt, updatedAt string

	err := row.Scan(
		&post.ID, &post.GUID, &post.Title, &post.Link, &post.Description,
		&post.PubDate, &post.IsoDate, &post.BlogName, &post.FeedType,
		&keywords, &post.CollectedDate, &post.NewsletterSentDate,
		&createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan post row: %w", err)
	}

	if err := json.Unmarshal([]byte(keywords), &post.MatchedKeywords); err != nil {
		return nil, fmt.Errorf("failed to decode matched keywords: %w", err)
	}
	if post.MatchedKeywords == nil {
		post.MatchedKeywords = []string{}
	}

	if post.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if post.UpdatedAt, err = time.Parse(timeFormat, updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return &post, nil
}

func collectPosts(rows *sql.Rows) ([]Post, error) {
	var posts []Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, nil
}

func searchText(post Post) string {
	return searchFolder.String(post.Title + " " + post.Description)
}

func encodeKeywords(keywords []string) (string, error) {
	if keywords == nil {
		keywords = []string{}
	}
	encoded, err := json.Marshal(keywords)
	if err != nil {
		return "", fmt.Errorf("failed to encode matched keywords: %w", err)
	}
	return string(encoded), nil
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected row count: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
