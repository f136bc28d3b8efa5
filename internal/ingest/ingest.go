// Package ingest bulk-loads posts from the upstream relational store over
// a pgx connection pool and hands rows to the in-memory database at
// startup, before the HTTP API or change-feed listener comes up.
package ingest

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edirooss/booru-index/internal/booru"
)

// LoadAll streams every row of the posts table and converts it into an
// indexed Post. Rows are read in a single forward pass via pgx.CollectRows
// rather than paging, since the whole table must be resident to build the
// database regardless.
func LoadAll(ctx context.Context, pool *pgxpool.Pool) ([]booru.Post, error) {
	rows, err := pool.Query(ctx, bulkSelectSQL)
	if err != nil {
		return nil, fmt.Errorf("ingest: query posts: %w", err)
	}
	defer rows.Close()

	raws, err := pgx.CollectRows(rows, pgx.RowToStructByName[rawRow])
	if err != nil {
		return nil, fmt.Errorf("ingest: scan posts: %w", err)
	}

	posts := make([]booru.Post, len(raws))
	for i, r := range raws {
		posts[i] = r.toRawPost().ToPost()
	}
	return posts, nil
}

const bulkSelectSQL = `
SELECT
	id, parent_id, pixiv_id, uploader_id, approver_id,
	is_banned, is_deleted, is_flagged, is_pending,
	created_at, updated_at, fav_count, score, up_score, down_score,
	image_width, image_height, file_ext, file_size, rating,
	tag_string, tag_count_general, tag_count_artist, tag_count_character,
	tag_count_copyright, tag_count_meta
FROM posts
ORDER BY id
`

// rawRow mirrors the posts table's column shape, scanned directly via
// pgx.RowToStructByName before conversion to booru.RawPost.
type rawRow struct {
	ID                int64   `db:"id"`
	ParentID          *int64  `db:"parent_id"`
	PixivID           *int64  `db:"pixiv_id"`
	UploaderID        int64   `db:"uploader_id"`
	ApproverID        *int64  `db:"approver_id"`
	IsBanned          bool    `db:"is_banned"`
	IsDeleted         bool    `db:"is_deleted"`
	IsFlagged         bool    `db:"is_flagged"`
	IsPending         bool    `db:"is_pending"`
	CreatedAt         int64   `db:"created_at"`
	UpdatedAt         int64   `db:"updated_at"`
	FavCount          uint32  `db:"fav_count"`
	Score             int64   `db:"score"`
	UpScore           uint32  `db:"up_score"`
	DownScore         uint32  `db:"down_score"`
	ImageWidth        uint32  `db:"image_width"`
	ImageHeight       uint32  `db:"image_height"`
	FileExt           string  `db:"file_ext"`
	FileSize          int64   `db:"file_size"`
	Rating            string  `db:"rating"`
	TagString         string  `db:"tag_string"`
	TagCountGeneral   uint32  `db:"tag_count_general"`
	TagCountArtist    uint32  `db:"tag_count_artist"`
	TagCountCharacter uint32  `db:"tag_count_character"`
	TagCountCopyright uint32  `db:"tag_count_copyright"`
	TagCountMeta      uint32  `db:"tag_count_meta"`
}

func optionalID(v *int64) booru.OptionalID {
	if v == nil {
		return booru.NoID
	}
	return booru.SomeID(*v)
}

func (r rawRow) toRawPost() booru.RawPost {
	ext, _ := booru.ParseFileExt(r.FileExt)
	rating, _ := booru.ParseRating(r.Rating)
	return booru.RawPost{
		PostID:     r.ID,
		ParentID:   optionalID(r.ParentID),
		PixivID:    optionalID(r.PixivID),
		ApproverID: optionalID(r.ApproverID),
		UploaderID: r.UploaderID,
		IsBanned:   r.IsBanned,
		IsDeleted:  r.IsDeleted,
		IsFlagged:  r.IsFlagged,
		IsPending:  r.IsPending,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		FavCount:   r.FavCount,
		Score:      r.Score,
		Upvotes:    r.UpScore,
		Downvotes:  r.DownScore,
		Width:      r.ImageWidth,
		Height:     r.ImageHeight,
		FileExt:    ext,
		FileSize:   r.FileSize,
		Rating:     rating,
		TagString:  r.TagString,
		GenTags:    r.TagCountGeneral,
		ArtTags:    r.TagCountArtist,
		CharTags:   r.TagCountCharacter,
		CopyTags:   r.TagCountCopyright,
		MetaTags:   r.TagCountMeta,
	}
}
