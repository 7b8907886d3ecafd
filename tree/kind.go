package tree

import "fmt"

type Kind int

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	MappingKind
	SetKind
	RecordKind

	// AnyKind is only meaningful as a field constraint in a FieldSpec.
	AnyKind Kind = -1
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		NullKind:    "Null",
		BoolKind:    "Bool",
		NumberKind:  "Number",
		StringKind:  "String",
		MappingKind: "Mapping",
		SetKind:     "Set",
		RecordKind:  "Record",
		AnyKind:     "Any",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := map[string]Kind{
		"Null":    NullKind,
		"Bool":    BoolKind,
		"Number":  NumberKind,
		"String":  StringKind,
		"Mapping": MappingKind,
		"Set":     SetKind,
		"Record":  RecordKind,
		"Any":     AnyKind,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized kind %q", d)
	}
	*k = kk
	return nil
}

func Kinds() []Kind {
	return []Kind{
		NullKind,
		BoolKind,
		NumberKind,
		StringKind,
		MappingKind,
		SetKind,
		RecordKind,
	}
}

// IsContainer reports whether values of kind k can be opened with an
// Evolver and addressed by path segments.
func (k Kind) IsContainer() bool {
	switch k {
	case MappingKind, SetKind, RecordKind:
		return true
	default:
		return false
	}
}
