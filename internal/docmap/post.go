package docmap

import (
	"fmt"

	"github.com/taranenko/taskfeed/internal/domain"
	"github.com/taranenko/taskfeed/internal/remote"
	"github.com/taranenko/taskfeed/internal/wiretime"
)

// Subcollection names under a post document.
const (
	SubComments = "comments"
	SubLikes    = "likes"
)

// PostCodec maps domain.Post to the "posts" collection. Comments and likes
// are remote subcollections cached as embedded arrays; a like document's id
// is the liking user's id.
type PostCodec struct{}

var _ SubcollectionCodec[domain.Post] = PostCodec{}

var postDateFields = map[string]struct{}{"timeCreated": {}}

func (PostCodec) Collection() string { return "posts" }

// Encode writes the post's own fields. Subcollection content is never
// embedded on the wire.
func (PostCodec) Encode(p domain.Post) map[string]any {
	return map[string]any{
		"userId":      p.UserID,
		"userName":    p.UserName,
		"title":       p.Title,
		"content":     p.Content,
		"isPublic":    p.IsPublic,
		"timeCreated": wiretime.ToWire(p.TimeCreated),
	}
}

func (PostCodec) Decode(doc remote.Document) (domain.Post, error) {
	var p domain.Post

	userID, err := fieldString(doc.Fields, "userId")
	if err != nil {
		return p, fmt.Errorf("decode post %s: %w", doc.ID, err)
	}
	userName, err := fieldString(doc.Fields, "userName")
	if err != nil {
		return p, fmt.Errorf("decode post %s: %w", doc.ID, err)
	}
	title, err := fieldString(doc.Fields, "title")
	if err != nil {
		return p, fmt.Errorf("decode post %s: %w", doc.ID, err)
	}
	content, err := fieldString(doc.Fields, "content")
	if err != nil {
		return p, fmt.Errorf("decode post %s: %w", doc.ID, err)
	}
	isPublic, err := fieldBool(doc.Fields, "isPublic")
	if err != nil {
		return p, fmt.Errorf("decode post %s: %w", doc.ID, err)
	}
	created, _, err := fieldTimeMs(doc.Fields, "timeCreated")
	if err != nil {
		return p, fmt.Errorf("decode post %s: %w", doc.ID, err)
	}

	return domain.Post{
		ID:          doc.ID,
		UserID:      userID,
		UserName:    userName,
		Title:       title,
		Content:     content,
		IsPublic:    isPublic,
		TimeCreated: created,
	}, nil
}

func (PostCodec) WithID(p domain.Post, id string) domain.Post {
	p.ID = id
	return p
}

func (PostCodec) EncodePatch(patch map[string]any) map[string]any {
	return encodePatchDates(patch, postDateFields)
}

func (PostCodec) ApplyPatch(p domain.Post, patch map[string]any) (domain.Post, error) {
	out := p
	out.Likes = append([]string(nil), p.Likes...)
	out.Comments = append([]domain.Comment(nil), p.Comments...)

	for k, v := range patch {
		switch k {
		case "title":
			s, ok := v.(string)
			if !ok {
				return p, fmt.Errorf("patch title: want string, got %T", v)
			}
			out.Title = s
		case "content":
			s, ok := v.(string)
			if !ok {
				return p, fmt.Errorf("patch content: want string, got %T", v)
			}
			out.Content = s
		case "isPublic":
			b, ok := v.(bool)
			if !ok {
				return p, fmt.Errorf("patch isPublic: want bool, got %T", v)
			}
			out.IsPublic = b
		default:
			return p, fmt.Errorf("patch: unknown post field %q", k)
		}
	}
	return out, nil
}

var commentDateFields = map[string]struct{}{"timeCreated": {}}

// EncodeChild wire-converts a new comment's timeCreated; like payloads
// carry no date fields and pass through copied.
func (PostCodec) EncodeChild(sub string, fields map[string]any) (map[string]any, error) {
	switch sub {
	case SubComments:
		return encodePatchDates(fields, commentDateFields), nil
	case SubLikes:
		out := make(map[string]any, len(fields))
		for k, v := range fields {
			out[k] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("post subcollection %q: unknown", sub)
	}
}

// ChildID keys like documents by the liking user's id, so an unlike can
// address the document directly. Comment ids are store-assigned.
func (PostCodec) ChildID(sub string, fields map[string]any) string {
	if sub != SubLikes {
		return ""
	}
	uid, _ := fields["userId"].(string)
	return uid
}

// ApplyChild merges a comment or like document into the cached post copy.
func (c PostCodec) ApplyChild(p domain.Post, sub string, child remote.Document) (domain.Post, error) {
	switch sub {
	case SubComments:
		comment, err := c.DecodeComment(p.ID, child)
		if err != nil {
			return p, err
		}
		out := p
		out.Comments = append(append([]domain.Comment(nil), p.Comments...), comment)
		return out, nil
	case SubLikes:
		if p.LikedBy(child.ID) {
			return p, nil
		}
		out := p
		out.Likes = append(append([]string(nil), p.Likes...), child.ID)
		return out, nil
	default:
		return p, fmt.Errorf("post subcollection %q: unknown", sub)
	}
}

// RemoveChild removes a comment or like from the cached post copy.
func (PostCodec) RemoveChild(p domain.Post, sub string, childID string) (domain.Post, error) {
	switch sub {
	case SubComments:
		out := p
		out.Comments = make([]domain.Comment, 0, len(p.Comments))
		for _, cm := range p.Comments {
			if cm.ID != childID {
				out.Comments = append(out.Comments, cm)
			}
		}
		return out, nil
	case SubLikes:
		out := p
		out.Likes = make([]string, 0, len(p.Likes))
		for _, id := range p.Likes {
			if id != childID {
				out.Likes = append(out.Likes, id)
			}
		}
		return out, nil
	default:
		return p, fmt.Errorf("post subcollection %q: unknown", sub)
	}
}

// DecodeComment builds a comment record from a subcollection document.
func (PostCodec) DecodeComment(postID string, doc remote.Document) (domain.Comment, error) {
	var cm domain.Comment

	userID, err := fieldString(doc.Fields, "userId")
	if err != nil {
		return cm, fmt.Errorf("decode comment %s: %w", doc.ID, err)
	}
	name, err := fieldString(doc.Fields, "name")
	if err != nil {
		return cm, fmt.Errorf("decode comment %s: %w", doc.ID, err)
	}
	content, err := fieldString(doc.Fields, "content")
	if err != nil {
		return cm, fmt.Errorf("decode comment %s: %w", doc.ID, err)
	}
	created, _, err := fieldTimeMs(doc.Fields, "timeCreated")
	if err != nil {
		return cm, fmt.Errorf("decode comment %s: %w", doc.ID, err)
	}

	return domain.Comment{
		ID:          doc.ID,
		PostID:      postID,
		UserID:      userID,
		Name:        name,
		TimeCreated: created,
		Content:     content,
	}, nil
}

// EncodeComment builds the subcollection document fields for a new comment.
func (PostCodec) EncodeComment(cm domain.Comment) map[string]any {
	return map[string]any{
		"userId":      cm.UserID,
		"name":        cm.Name,
		"content":     cm.Content,
		"timeCreated": wiretime.ToWire(cm.TimeCreated),
	}
}
