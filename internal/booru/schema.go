package booru

import "github.com/edirooss/booru-index/internal/db"

// BuildDatabase assembles the full Database[Post]: the dense id allocator
// plus every named field binding, with the tag field as the default index
// so a bare, unqualified query atom is treated as a tag name or wildcard.
func BuildDatabase(posts []Post) *db.Database[Post] {
	return db.NewDatabaseLoader[Post]().
		WithLoader("id", NewRangeField(
			func(p *Post) int64 { return p.PostID },
			func(a, b int64) bool { return a < b },
			ParseInt64,
		)).
		WithLoader("parent_id", NewKeyField(
			func(p *Post) OptionalID { return p.ParentID },
			ParseOptionalID,
		)).
		WithLoader("pixiv_id", NewKeyField(
			func(p *Post) OptionalID { return p.PixivID },
			ParseOptionalID,
		)).
		WithLoader("uploader_id", NewKeyField(
			func(p *Post) int64 { return p.UploaderID },
			ParseInt64,
		)).
		WithLoader("approver", NewKeyField(
			func(p *Post) OptionalID { return p.ApproverID },
			ParseOptionalID,
		)).
		WithLoader("status", NewKeyField(
			func(p *Post) Status { return p.Status },
			ParseStatus,
		)).
		WithLoader("created_at", NewRangeField(
			func(p *Post) int64 { return p.CreatedAt },
			func(a, b int64) bool { return a < b },
			ParseUnixSeconds,
		)).
		WithLoader("updated_at", NewRangeField(
			func(p *Post) int64 { return p.UpdatedAt },
			func(a, b int64) bool { return a < b },
			ParseUnixSeconds,
		)).
		WithLoader("favcount", NewRangeField(
			func(p *Post) uint32 { return p.FavCount },
			func(a, b uint32) bool { return a < b },
			ParseUint32,
		)).
		WithLoader("score", NewRangeField(
			func(p *Post) int64 { return p.Score },
			func(a, b int64) bool { return a < b },
			ParseInt64,
		)).
		WithLoader("upvotes", NewRangeField(
			func(p *Post) uint32 { return p.Upvotes },
			func(a, b uint32) bool { return a < b },
			ParseUint32,
		)).
		WithLoader("downvotes", NewRangeField(
			func(p *Post) uint32 { return p.Downvotes },
			func(a, b uint32) bool { return a < b },
			ParseUint32,
		)).
		WithLoader("width", NewRangeField(
			func(p *Post) uint32 { return p.Width },
			func(a, b uint32) bool { return a < b },
			ParseUint32,
		)).
		WithLoader("height", NewRangeField(
			func(p *Post) uint32 { return p.Height },
			func(a, b uint32) bool { return a < b },
			ParseUint32,
		)).
		WithLoader("ratio", NewRangeField(
			func(p *Post) AspectRatio { return p.Ratio },
			func(a, b AspectRatio) bool { return a < b },
			ParseAspectRatio,
		)).
		WithLoader("mpixel", NewRangeField(
			func(p *Post) MPixel { return p.MPixel },
			func(a, b MPixel) bool { return a < b },
			ParseMPixel,
		)).
		WithLoader("file_ext", NewKeyField(
			func(p *Post) FileExt { return p.FileExt },
			ParseFileExt,
		)).
		WithLoader("file_size", NewRangeField(
			func(p *Post) int64 { return p.FileSize },
			func(a, b int64) bool { return a < b },
			ParseInt64,
		)).
		WithLoader("rating", NewKeyField(
			func(p *Post) Rating { return p.Rating },
			ParseRating,
		)).
		WithLoader("tagcount", NewRangeField(
			func(p *Post) uint32 { return p.TagCount },
			func(a, b uint32) bool { return a < b },
			ParseUint32,
		)).
		WithLoader("gentags", NewRangeField(
			func(p *Post) uint32 { return p.GenTags },
			func(a, b uint32) bool { return a < b },
			ParseUint32,
		)).
		WithLoader("arttags", NewRangeField(
			func(p *Post) uint32 { return p.ArtTags },
			func(a, b uint32) bool { return a < b },
			ParseUint32,
		)).
		WithLoader("chartags", NewRangeField(
			func(p *Post) uint32 { return p.CharTags },
			func(a, b uint32) bool { return a < b },
			ParseUint32,
		)).
		WithLoader("copytags", NewRangeField(
			func(p *Post) uint32 { return p.CopyTags },
			func(a, b uint32) bool { return a < b },
			ParseUint32,
		)).
		WithLoader("metatags", NewRangeField(
			func(p *Post) uint32 { return p.MetaTags },
			func(a, b uint32) bool { return a < b },
			ParseUint32,
		)).
		WithDefault(NewTagField()).
		Load(posts)
}
