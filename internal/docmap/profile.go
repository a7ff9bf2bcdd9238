package docmap

import (
	"fmt"

	"github.com/taranenko/taskfeed/internal/domain"
	"github.com/taranenko/taskfeed/internal/remote"
	"github.com/taranenko/taskfeed/internal/wiretime"
)

// ProfileCodec maps domain.UserProfile to the "users" collection.
// A profile document's id is the auth principal id.
type ProfileCodec struct{}

var _ Codec[domain.UserProfile] = ProfileCodec{}

var profileDateFields = map[string]struct{}{"createdAt": {}}

func (ProfileCodec) Collection() string { return "users" }

func (ProfileCodec) Encode(u domain.UserProfile) map[string]any {
	fields := map[string]any{
		"name":      u.Name,
		"isPublic":  u.IsPublic,
		"createdAt": wiretime.ToWire(u.CreatedAt),
	}
	if u.AvatarPath != nil {
		fields["avatarPath"] = *u.AvatarPath
	}
	return fields
}

func (ProfileCodec) Decode(doc remote.Document) (domain.UserProfile, error) {
	var u domain.UserProfile

	name, err := fieldString(doc.Fields, "name")
	if err != nil {
		return u, fmt.Errorf("decode profile %s: %w", doc.ID, err)
	}
	isPublic, err := fieldBool(doc.Fields, "isPublic")
	if err != nil {
		return u, fmt.Errorf("decode profile %s: %w", doc.ID, err)
	}
	created, _, err := fieldTimeMs(doc.Fields, "createdAt")
	if err != nil {
		return u, fmt.Errorf("decode profile %s: %w", doc.ID, err)
	}

	return domain.UserProfile{
		ID:         doc.ID,
		Name:       name,
		AvatarPath: fieldOptString(doc.Fields, "avatarPath"),
		IsPublic:   isPublic,
		CreatedAt:  created,
	}, nil
}

func (ProfileCodec) WithID(u domain.UserProfile, id string) domain.UserProfile {
	u.ID = id
	return u
}

func (ProfileCodec) EncodePatch(patch map[string]any) map[string]any {
	return encodePatchDates(patch, profileDateFields)
}

func (ProfileCodec) ApplyPatch(u domain.UserProfile, patch map[string]any) (domain.UserProfile, error) {
	out := u
	for k, v := range patch {
		switch k {
		case "name":
			s, ok := v.(string)
			if !ok {
				return u, fmt.Errorf("patch name: want string, got %T", v)
			}
			out.Name = s
		case "avatarPath":
			p, err := patchOptString(v)
			if err != nil {
				return u, fmt.Errorf("patch avatarPath: %w", err)
			}
			out.AvatarPath = p
		case "isPublic":
			b, ok := v.(bool)
			if !ok {
				return u, fmt.Errorf("patch isPublic: want bool, got %T", v)
			}
			out.IsPublic = b
		default:
			return u, fmt.Errorf("patch: unknown profile field %q", k)
		}
	}
	return out, nil
}
