package libdiff

import (
	"encoding/json"
	"fmt"

	"github.com/bitmk2/flocker/tree"
)

// Type tags of the serialized form.
const (
	TypeDiff   = "Diff"
	TypeRemove = "Remove"
	TypeSet    = "Set"
	TypeAdd    = "Add"
)

// SerializableTypes lists every type tag a serialized diff may contain.
func SerializableTypes() []string {
	return []string{TypeDiff, TypeRemove, TypeSet, TypeAdd}
}

type changeJSON struct {
	Type  string      `json:"$type"`
	Path  tree.Path   `json:"path"`
	Item  *tree.Value `json:"item,omitempty"`
	Value *tree.Value `json:"value,omitempty"`
}

type diffJSON struct {
	Type    string            `json:"$type"`
	Changes []json.RawMessage `json:"changes"`
}

func nonNil(p tree.Path) tree.Path {
	if p == nil {
		return tree.Path{}
	}
	return p
}

func (c Remove) MarshalJSON() ([]byte, error) {
	return json.Marshal(&changeJSON{Type: TypeRemove, Path: nonNil(c.Path), Item: &c.Item})
}

func (c Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(&changeJSON{Type: TypeSet, Path: nonNil(c.Path), Value: &c.Value})
}

func (c Add) MarshalJSON() ([]byte, error) {
	return json.Marshal(&changeJSON{Type: TypeAdd, Path: nonNil(c.Path), Item: &c.Item})
}

// MarshalJSON encodes d as {"$type": "Diff", "changes": [...]}.
func (d Diff) MarshalJSON() ([]byte, error) {
	tmp := &diffJSON{Type: TypeDiff, Changes: make([]json.RawMessage, len(d.Changes))}
	for i, c := range d.Changes {
		if c == nil {
			return nil, &MalformedDiffError{Index: i, Reason: "nil change"}
		}
		b, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		tmp.Changes[i] = b
	}
	return json.Marshal(tmp)
}

func (d *Diff) UnmarshalJSON(b []byte) error {
	var tmp diffJSON
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	if tmp.Type != TypeDiff {
		return fmt.Errorf("expected $type %q, got %q", TypeDiff, tmp.Type)
	}
	changes := make([]Change, len(tmp.Changes))
	for i, raw := range tmp.Changes {
		c, err := DecodeChange(raw)
		if err != nil {
			return fmt.Errorf("change %d: %w", i, err)
		}
		changes[i] = c
	}
	res := Diff{Changes: changes}
	if err := res.Validate(); err != nil {
		return err
	}
	*d = res
	return nil
}

// DecodeChange decodes one serialized change, dispatching on its $type.
func DecodeChange(b []byte) (Change, error) {
	var tmp changeJSON
	if err := json.Unmarshal(b, &tmp); err != nil {
		return nil, err
	}
	switch tmp.Type {
	case TypeRemove:
		if tmp.Item == nil {
			return nil, fmt.Errorf("%s without item", tmp.Type)
		}
		return Remove{Path: tmp.Path, Item: *tmp.Item}, nil
	case TypeSet:
		if tmp.Value == nil {
			return nil, fmt.Errorf("%s without value", tmp.Type)
		}
		return Set{Path: tmp.Path, Value: *tmp.Value}, nil
	case TypeAdd:
		if tmp.Item == nil {
			return nil, fmt.Errorf("%s without item", tmp.Type)
		}
		return Add{Path: tmp.Path, Item: *tmp.Item}, nil
	case "":
		return nil, fmt.Errorf("change without $type")
	default:
		return nil, fmt.Errorf("unknown change type %q", tmp.Type)
	}
}
