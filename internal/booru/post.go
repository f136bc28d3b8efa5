package booru

// Post is the indexed record. All fields are scalar or small-slice
// projections of the source row, pre-computed once at ingestion so every
// query atom is a plain index lookup with no per-query derivation.
type Post struct {
	PostID     int64
	ParentID   OptionalID
	PixivID    OptionalID
	ApproverID OptionalID
	UploaderID int64
	Status     Status
	CreatedAt  int64
	UpdatedAt  int64
	FavCount   uint32
	Score      int64
	Upvotes    uint32
	Downvotes  uint32
	Width      uint32
	Height     uint32
	Ratio      AspectRatio
	MPixel     MPixel
	FileExt    FileExt
	FileSize   int64
	Rating     Rating
	TagCount   uint32
	GenTags    uint32
	ArtTags    uint32
	CharTags   uint32
	CopyTags   uint32
	MetaTags   uint32
	Tags       []string
}

// RawPost is the shape of one ingested source row, before Status has been
// derived from its independent flag columns and before the space-joined
// tag string has been split.
type RawPost struct {
	PostID     int64      `json:"post_id"`
	ParentID   OptionalID `json:"parent_id"`
	PixivID    OptionalID `json:"pixiv_id"`
	ApproverID OptionalID `json:"approver_id"`
	UploaderID int64      `json:"uploader_id"`
	IsBanned   bool       `json:"is_banned"`
	IsDeleted  bool       `json:"is_deleted"`
	IsFlagged  bool       `json:"is_flagged"`
	IsPending  bool       `json:"is_pending"`
	CreatedAt  int64      `json:"created_at"`
	UpdatedAt  int64      `json:"updated_at"`
	FavCount   uint32     `json:"fav_count"`
	Score      int64      `json:"score"`
	Upvotes    uint32     `json:"up_score"`
	Downvotes  uint32     `json:"down_score"`
	Width      uint32     `json:"image_width"`
	Height     uint32     `json:"image_height"`
	FileExt    FileExt    `json:"file_ext"`
	FileSize   int64      `json:"file_size"`
	Rating     Rating     `json:"rating"`
	TagString  string     `json:"tag_string"`
	GenTags    uint32     `json:"tag_count_general"`
	ArtTags    uint32     `json:"tag_count_artist"`
	CharTags   uint32     `json:"tag_count_character"`
	CopyTags   uint32     `json:"tag_count_copyright"`
	MetaTags   uint32     `json:"tag_count_meta"`
}

// ToPost converts a raw row into its indexed form, deriving Status,
// splitting the tag string, and computing the ratio/megapixel
// conventions from width/height.
func (r RawPost) ToPost() Post {
	var ratio AspectRatio
	var mp MPixel
	if r.Height > 0 {
		ratio = AspectRatio(uint32((float64(r.Width) / float64(r.Height)) * 1000))
	}
	mp = MPixel(uint32(float64(r.Width) * float64(r.Height)))

	var tags []string
	if r.TagString != "" {
		tags = splitTags(r.TagString)
	}

	return Post{
		PostID:     r.PostID,
		ParentID:   r.ParentID,
		PixivID:    r.PixivID,
		ApproverID: r.ApproverID,
		UploaderID: r.UploaderID,
		Status:     StatusFromFlags(r.IsBanned, r.IsDeleted, r.IsFlagged, r.IsPending),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		FavCount:   r.FavCount,
		Score:      r.Score,
		Upvotes:    r.Upvotes,
		Downvotes:  r.Downvotes,
		Width:      r.Width,
		Height:     r.Height,
		Ratio:      ratio,
		MPixel:     mp,
		FileExt:    r.FileExt,
		FileSize:   r.FileSize,
		Rating:     r.Rating,
		TagCount:   r.GenTags + r.ArtTags + r.CharTags + r.CopyTags + r.MetaTags,
		GenTags:    r.GenTags,
		ArtTags:    r.ArtTags,
		CharTags:   r.CharTags,
		CopyTags:   r.CopyTags,
		MetaTags:   r.MetaTags,
		Tags:       tags,
	}
}

func splitTags(s string) []string {
	var tags []string
	start := -1
	for i, r := range s {
		if r == ' ' {
			if start >= 0 {
				tags = append(tags, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tags = append(tags, s[start:])
	}
	return tags
}
