package models

import (
	"bytes"
	"encoding/json"
	"maps"
	"reflect"
	"slices"
	"strings"
)

// Records are opaque to the engine apart from the few fields it reads. Keys a
// record type does not declare are kept in its Extra map and written back
// unchanged, so a snapshot produced elsewhere survives a pull and a push.

type (
	projectFields        Project
	customerFields       Customer
	teamMemberFields     TeamMember
	commentFields        Comment
	workAssignmentFields WorkAssignment
)

var (
	projectKeys        = declaredKeys(projectFields{})
	customerKeys       = declaredKeys(customerFields{})
	teamMemberKeys     = declaredKeys(teamMemberFields{})
	commentKeys        = declaredKeys(commentFields{})
	workAssignmentKeys = declaredKeys(workAssignmentFields{})
)

// declaredKeys returns the lower-cased JSON names of the fields of v.
func declaredKeys(v any) map[string]struct{} {
	t := reflect.TypeOf(v)
	keys := make(map[string]struct{}, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		keys[strings.ToLower(name)] = struct{}{}
	}
	return keys
}

// unknownFields returns the members of the JSON object data whose names are
// not in known. encoding/json matches names case-insensitively, so does this.
func unknownFields(data []byte, known map[string]struct{}) (map[string]json.RawMessage, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	var extra map[string]json.RawMessage
	for name, value := range all {
		if _, ok := known[strings.ToLower(name)]; ok {
			continue
		}
		if extra == nil {
			extra = make(map[string]json.RawMessage)
		}
		extra[name] = value
	}
	return extra, nil
}

// withExtra appends the extra members to the encoded object. Declared fields
// come first in declaration order, extra ones follow sorted by name.
func withExtra(encoded []byte, extra map[string]json.RawMessage, known map[string]struct{}) ([]byte, error) {
	if len(extra) == 0 {
		return encoded, nil
	}

	var buf bytes.Buffer
	buf.Write(encoded[:len(encoded)-1])
	empty := len(bytes.TrimSpace(encoded)) == 2
	for _, name := range slices.Sorted(maps.Keys(extra)) {
		if _, ok := known[strings.ToLower(name)]; ok {
			continue
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		if !empty {
			buf.WriteByte(',')
		}
		empty = false
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(extra[name])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (p Project) MarshalJSON() ([]byte, error) {
	encoded, err := json.Marshal(projectFields(p))
	if err != nil {
		return nil, err
	}
	return withExtra(encoded, p.Extra, projectKeys)
}

func (p *Project) UnmarshalJSON(data []byte) error {
	var v projectFields
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	extra, err := unknownFields(data, projectKeys)
	if err != nil {
		return err
	}
	*p = Project(v)
	p.Extra = extra
	return nil
}

func (c Customer) MarshalJSON() ([]byte, error) {
	encoded, err := json.Marshal(customerFields(c))
	if err != nil {
		return nil, err
	}
	return withExtra(encoded, c.Extra, customerKeys)
}

func (c *Customer) UnmarshalJSON(data []byte) error {
	var v customerFields
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	extra, err := unknownFields(data, customerKeys)
	if err != nil {
		return err
	}
	*c = Customer(v)
	c.Extra = extra
	return nil
}

func (m TeamMember) MarshalJSON() ([]byte, error) {
	encoded, err := json.Marshal(teamMemberFields(m))
	if err != nil {
		return nil, err
	}
	return withExtra(encoded, m.Extra, teamMemberKeys)
}

func (m *TeamMember) UnmarshalJSON(data []byte) error {
	var v teamMemberFields
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	extra, err := unknownFields(data, teamMemberKeys)
	if err != nil {
		return err
	}
	*m = TeamMember(v)
	m.Extra = extra
	return nil
}

func (c Comment) MarshalJSON() ([]byte, error) {
	encoded, err := json.Marshal(commentFields(c))
	if err != nil {
		return nil, err
	}
	return withExtra(encoded, c.Extra, commentKeys)
}

func (c *Comment) UnmarshalJSON(data []byte) error {
	var v commentFields
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	extra, err := unknownFields(data, commentKeys)
	if err != nil {
		return err
	}
	*c = Comment(v)
	c.Extra = extra
	return nil
}

func (a WorkAssignment) MarshalJSON() ([]byte, error) {
	encoded, err := json.Marshal(workAssignmentFields(a))
	if err != nil {
		return nil, err
	}
	return withExtra(encoded, a.Extra, workAssignmentKeys)
}

func (a *WorkAssignment) UnmarshalJSON(data []byte) error {
	var v workAssignmentFields
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	extra, err := unknownFields(data, workAssignmentKeys)
	if err != nil {
		return err
	}
	*a = WorkAssignment(v)
	a.Extra = extra
	return nil
}
